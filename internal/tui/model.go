package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/glabrego/jobtriage-cli/internal/app"
	"github.com/glabrego/jobtriage-cli/internal/jobs"
	"github.com/glabrego/jobtriage-cli/internal/render/description"
	"github.com/glabrego/jobtriage-cli/internal/storage"
	tuiactions "github.com/glabrego/jobtriage-cli/internal/tui/actions"
	"github.com/glabrego/jobtriage-cli/internal/tui/platform"
	tuistate "github.com/glabrego/jobtriage-cli/internal/tui/state"
	tuitheme "github.com/glabrego/jobtriage-cli/internal/tui/theme"
	tuiview "github.com/glabrego/jobtriage-cli/internal/tui/view"
	"github.com/glabrego/jobtriage-cli/internal/viewer"
)

const (
	DefaultLinkBase     = "jobtriage://jobs"
	DefaultSaveDebounce = time.Second

	statusTTL   = 4 * time.Second
	chromeLines = 8
)

// FreshnessTickMsg asks the model to check for new matching jobs. The
// poll scheduler sends it into the program.
type FreshnessTickMsg struct{}

type saveDueMsg struct {
	key viewer.SaveKey
	seq int
}

type clearStatusMsg struct {
	id int
}

type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputComments
	inputNewJob
	inputPresetName
)

type Options struct {
	Criteria     jobs.Criteria
	Location     string
	LinkBase     string
	SaveDebounce time.Duration
	Presets      []storage.Preset
	History      map[string][]string
	Logger       logrus.FieldLogger

	Now           func() time.Time
	OpenURL       func(string) error
	CopyText      func(string) error
	ReadClipboard func() (string, error)
}

type Model struct {
	service tuiactions.Service
	state   viewer.State
	keys    keyMap
	theme   tuitheme.Theme
	log     logrus.FieldLogger

	input      textinput.Model
	mode       inputMode
	editJobID  int64
	histories  map[string][]string
	historyPos int

	presets    []storage.Preset
	presetIdx  int
	presetName string

	showHelp  bool
	inDetail  bool
	detailTop int
	width     int
	height    int

	status   string
	statusID int

	saveDebounce time.Duration
	linkBase     string
	startup      []tea.Cmd

	nowFn      func() time.Time
	openURLFn  func(string) error
	copyFn     func(string) error
	readClipFn func() (string, error)
}

func NewModel(service tuiactions.Service, opts Options) Model {
	criteria := opts.Criteria
	if criteria.Size < 1 {
		criteria = jobs.DefaultCriteria(jobs.DefaultPageSize)
	}
	log := opts.Logger
	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = quiet
	}

	ti := textinput.New()
	ti.CharLimit = 2000

	m := Model{
		service:      service,
		state:        viewer.NewState(criteria),
		keys:         defaultKeyMap(),
		theme:        tuitheme.Default(),
		log:          log.WithField("component", "tui"),
		input:        ti,
		histories:    make(map[string][]string),
		historyPos:   -1,
		presets:      opts.Presets,
		presetIdx:    -1,
		saveDebounce: opts.SaveDebounce,
		linkBase:     opts.LinkBase,
		nowFn:        opts.Now,
		openURLFn:    opts.OpenURL,
		copyFn:       opts.CopyText,
		readClipFn:   opts.ReadClipboard,
	}
	for k, v := range opts.History {
		m.histories[k] = v
	}
	if m.saveDebounce <= 0 {
		m.saveDebounce = DefaultSaveDebounce
	}
	if m.linkBase == "" {
		m.linkBase = DefaultLinkBase
	}
	if m.nowFn == nil {
		m.nowFn = time.Now
	}
	if m.openURLFn == nil {
		m.openURLFn = platform.OpenURLInBrowser
	}
	if m.copyFn == nil {
		m.copyFn = platform.CopyToClipboard
	}
	if m.readClipFn == nil {
		m.readClipFn = platform.ReadClipboard
	}
	m.startup = m.startCmds(opts.Location)
	return m
}

// startCmds issues the first page load. A start link is reconciled
// before it so its criteria win.
func (m *Model) startCmds(location string) []tea.Cmd {
	var cmds []tea.Cmd
	started := false
	if location != "" {
		if err := m.state.Links.SetLocation(location); err != nil {
			m.log.WithError(err).Warn("ignoring malformed start link")
		} else {
			eff := m.state.ApplyDeepLinks(m.nowFn())
			started = eff.Page != nil
			cmds = append(cmds, m.linkEffectCmds(eff)...)
		}
	}
	if !started {
		cmds = append(cmds, m.loadCmd(m.state.Start()))
	}
	return cmds
}

func (m Model) Init() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return tea.Batch(m.startup...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-20)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tuiactions.PageLoadedMsg:
		if !m.state.OnPageLoaded(msg.Req, msg.Page) {
			m.log.WithField("page", msg.Req.Page()).Debug("dropping stale page")
			return m, nil
		}
		m.log.WithFields(logrus.Fields{
			"page":  msg.Req.Page(),
			"items": len(msg.Page.Items),
			"total": msg.Page.Total,
			"took":  msg.Duration,
		}).Debug("page loaded")
		m.leaveDetailIfUnfocused()
		return m, nil
	case tuiactions.PageErrorMsg:
		if m.state.OnPageFailed(msg.Req, msg.Err) {
			m.log.WithError(msg.Err).WithField("page", msg.Req.Page()).Warn("page load failed")
		}
		return m, nil
	case tuiactions.JobFetchedMsg:
		m.state.OnJobFetched(msg.Job)
		return m, nil
	case tuiactions.JobFetchErrorMsg:
		m.log.WithError(msg.Err).WithField("job_id", msg.ID).Debug("linked job unavailable")
		m.state.OnJobFetchFailed(msg.ID)
		return m, nil

	case tuiactions.JobUpdatedMsg:
		m.state.OnRecordUpdated(msg.Req, msg.Job)
		m.leaveDetailIfUnfocused()
		cmd := m.setStatus(msg.Status)
		return m, cmd
	case tuiactions.UpdateErrorMsg:
		m.log.WithError(msg.Err).WithField("job_id", msg.ID).Warn("update failed")
		m.state.OnUpdateFailed(msg.Req, msg.Err)
		return m, nil
	case tuiactions.ActionDoneMsg:
		switch msg.Action.Kind {
		case viewer.ActionBulkUpdate:
			m.state.OnBulkUpdated(msg.Action)
		case viewer.ActionBulkDelete:
			m.state.OnBulkDeleted(msg.Action)
		}
		m.leaveDetailIfUnfocused()
		cmd := m.setStatus(msg.Status)
		return m, cmd
	case tuiactions.ActionErrorMsg:
		m.log.WithError(msg.Err).WithField("select_all", msg.Action.Target.SelectAll).Warn("bulk action failed")
		m.state.OnBulkFailed(msg.Err)
		return m, nil
	case tuiactions.JobCreatedMsg:
		req := m.state.OnRecordCreated(msg.Job)
		cmd := m.setStatus(fmt.Sprintf("Created job #%d", msg.Job.ID))
		return m, tea.Batch(cmd, m.loadCmd(req))
	case tuiactions.CreateErrorMsg:
		m.log.WithError(msg.Err).Warn("create failed")
		m.state.Mutations.Err = fmt.Errorf("create job: %w", msg.Err)
		return m, nil

	case FreshnessTickMsg:
		if m.service == nil {
			return m, nil
		}
		req, ok := m.state.BeginFreshness()
		if !ok {
			return m, nil
		}
		return m, tuiactions.FreshnessCmd(m.service, req)
	case tuiactions.FreshnessMsg:
		if m.state.OnFreshness(msg.Req, msg.Page, m.nowFn()) && m.state.Fresh.NewCount > 0 {
			m.log.WithField("new", m.state.Fresh.NewCount).Debug("new jobs match the filters")
		}
		return m, nil
	case tuiactions.FreshnessErrorMsg:
		m.log.WithError(msg.Err).Debug("freshness check failed")
		m.state.OnFreshnessFailed(msg.Req)
		return m, nil

	case tuiactions.PresetsSavedMsg:
		m.presets = msg.Presets
		m.presetName = msg.Name
		for i, p := range m.presets {
			if p.Name == msg.Name {
				m.presetIdx = i
			}
		}
		cmd := m.setStatus(fmt.Sprintf("Saved preset %q", msg.Name))
		return m, cmd
	case tuiactions.HistorySavedMsg:
		m.histories[msg.Key] = msg.Values
		return m, nil
	case tuiactions.StoreErrorMsg:
		m.log.WithError(msg.Err).Warn("local store write failed")
		cmd := m.setStatus("Could not save: " + msg.Err.Error())
		return m, cmd
	case tuiactions.LinkPastedMsg:
		return m.applyLocation(msg.Location)
	case tuiactions.OpenURLSuccessMsg:
		cmd := m.setStatus(msg.Status)
		return m, cmd
	case tuiactions.OpenURLErrorMsg:
		cmd := m.setStatus("Error: " + msg.Err.Error())
		return m, cmd

	case saveDueMsg:
		req, ok := m.state.SaveDue(msg.key, msg.seq)
		if !ok || m.service == nil {
			return m, nil
		}
		req = m.state.BeginUpdate(req.ID, req.Patch)
		return m, tuiactions.UpdateJobCmd(m.service, req)
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	if m.mode != inputNone {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.state.Mutations.Pending(); ok {
		switch {
		case key.Matches(msg, m.keys.Yes):
			return m.confirm()
		case key.Matches(msg, m.keys.No):
			m.state.Cancel()
			cmd := m.setStatus("Cancelled")
			return m, cmd
		}
		return m, nil
	}
	if m.mode != inputNone {
		return m.handleInputKey(msg)
	}

	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		switch {
		case msg.String() == "esc":
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if msg.String() == "esc" && m.state.Mutations.Err != nil {
		m.state.Mutations.DismissError()
		return m, nil
	}
	if f, ok := flagKeys[msg.String()]; ok {
		return m.toggleFlag(f)
	}

	switch {
	case key.Matches(msg, m.keys.Delete):
		return m.requestDelete()
	case key.Matches(msg, m.keys.CopyLink):
		return m.copyLink()
	case key.Matches(msg, m.keys.OpenURL):
		return m.openPosting()
	case key.Matches(msg, m.keys.Comments):
		return m.editComments()
	case key.Matches(msg, m.keys.PasteLink):
		return m, tuiactions.PasteLinkCmd(m.readClipFn)
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadCmd(m.state.Reload())
	}

	if m.inDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.inDetail = false
		m.detailTop = 0
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.detailTop > 0 {
			m.detailTop--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		maxTop := tuiview.DetailMaxTop(len(m.detailLines()), m.detailBodyHeight())
		if m.detailTop < maxTop {
			m.detailTop++
		}
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.detailTop = 0
		return m.navigate(-1)
	case key.Matches(msg, m.keys.Next):
		m.detailTop = 0
		return m.navigate(1)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if f, ok := filterFlag(msg.String()); ok {
		return m.setCriteria(func(c *jobs.Criteria) {
			c.SetFlag(f, nextFlagFilter(c.Flags[f]))
		})
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return m.navigate(-1)
	case key.Matches(msg, m.keys.Down):
		return m.navigate(1)
	case key.Matches(msg, m.keys.PageUp):
		return m.jumpBy(-tuistate.PageStep(m.height, m.status != ""))
	case key.Matches(msg, m.keys.PageDown):
		return m.jumpBy(tuistate.PageStep(m.height, m.status != ""))
	case key.Matches(msg, m.keys.Top):
		return m.jumpTo(0)
	case key.Matches(msg, m.keys.Bottom):
		return m.jumpTo(len(m.state.Pages.Items) - 1)
	case key.Matches(msg, m.keys.Open):
		return m.openDetail()
	case key.Matches(msg, m.keys.Mark):
		if id := m.state.Selection.FocusID; id != 0 {
			m.state.Selection.Toggle(id, m.nowFn())
		}
		return m, nil
	case key.Matches(msg, m.keys.MarkAll):
		m.state.Selection.ToggleAll()
		return m, nil
	case key.Matches(msg, m.keys.Search):
		return m.startInput(inputSearch, "/ ", m.state.Criteria().Search)
	case key.Matches(msg, m.keys.Sort):
		return m.setCriteria(func(c *jobs.Criteria) { c.Sort = nextSort(c.Sort) })
	case key.Matches(msg, m.keys.SavePreset):
		return m.startInput(inputPresetName, "preset name: ", m.presetName)
	case key.Matches(msg, m.keys.NextPreset):
		return m.applyNextPreset()
	case key.Matches(msg, m.keys.NewJob):
		return m.startInput(inputNewJob, "new job title: ", "")
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submitInput()
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		if m.mode == inputSearch || m.mode == inputComments {
			dir := 1
			if msg.Type == tea.KeyDown {
				dir = -1
			}
			m.recallHistory(dir)
			return m, m.afterInputChange()
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		cmd = tea.Batch(cmd, m.afterInputChange())
	}
	return m, cmd
}

// afterInputChange schedules the debounced save while comments are
// being edited.
func (m *Model) afterInputChange() tea.Cmd {
	if m.mode != inputComments || m.editJobID == 0 {
		return nil
	}
	saveKey, seq := m.state.ScheduleSave(m.editJobID, jobs.FieldComments, m.input.Value())
	return tea.Tick(m.saveDebounce, func(time.Time) tea.Msg {
		return saveDueMsg{key: saveKey, seq: seq}
	})
}

func (m Model) startInput(mode inputMode, prompt, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.historyPos = -1
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	value := strings.TrimSpace(raw)
	mode := m.mode
	jobID := m.editJobID
	m.closeInput()

	switch mode {
	case inputSearch:
		model, loadCmd := m.setCriteria(func(c *jobs.Criteria) { c.Search = value })
		next := model.(Model)
		if value == "" || next.service == nil {
			return next, loadCmd
		}
		return next, tea.Batch(loadCmd, tuiactions.RememberInputCmd(next.service, app.HistorySearch, value))
	case inputComments:
		m.editJobID = 0
		if value == "" || m.service == nil {
			return m, nil
		}
		m.log.WithField("job_id", jobID).Debug("comments edit finished")
		return m, tuiactions.RememberInputCmd(m.service, app.HistoryComments, value)
	case inputNewJob:
		if value == "" || m.service == nil {
			return m, nil
		}
		return m, tuiactions.CreateJobCmd(m.service, jobs.FieldPatch(jobs.FieldTitle, value))
	case inputPresetName:
		if value == "" || m.service == nil {
			return m, nil
		}
		return m, tuiactions.SavePresetCmd(m.service, value, m.state.Criteria())
	}
	return m, nil
}

// recallHistory walks the input history; dir 1 is older.
func (m *Model) recallHistory(dir int) {
	values := m.histories[m.historyKey()]
	if len(values) == 0 {
		return
	}
	pos := m.historyPos + dir
	if pos < -1 {
		pos = -1
	}
	if pos > len(values)-1 {
		pos = len(values) - 1
	}
	m.historyPos = pos
	if pos == -1 {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(values[pos])
	m.input.CursorEnd()
}

func (m Model) historyKey() string {
	if m.mode == inputComments {
		return app.HistoryComments
	}
	return app.HistorySearch
}

func (m Model) setCriteria(patch func(*jobs.Criteria)) (tea.Model, tea.Cmd) {
	before := m.state.Criteria().QueryKey()
	req, ok := m.state.SetCriteria(patch)
	if !ok {
		return m, nil
	}
	if m.state.Criteria().QueryKey() != before {
		m.presetName = ""
		m.inDetail = false
		m.detailTop = 0
	}
	return m, m.loadCmd(req)
}

func (m Model) applyNextPreset() (tea.Model, tea.Cmd) {
	if len(m.presets) == 0 {
		cmd := m.setStatus("No presets saved (P to save one)")
		return m, cmd
	}
	idx := (m.presetIdx + 1) % len(m.presets)
	preset := m.presets[idx]
	size := m.state.Criteria().Size
	model, cmd := m.setCriteria(func(c *jobs.Criteria) {
		*c = preset.Criteria.Clone()
		c.Size = size
	})
	next := model.(Model)
	next.presetIdx = idx
	next.presetName = preset.Name
	return next, cmd
}

func (m Model) navigate(dir int) (tea.Model, tea.Cmd) {
	req, ok := m.state.Navigate(dir, m.nowFn())
	if !ok {
		return m, nil
	}
	return m, m.loadCmd(req)
}

func (m Model) jumpTo(idx int) (tea.Model, tea.Cmd) {
	items := m.state.Pages.Items
	if len(items) == 0 {
		return m, nil
	}
	idx = tuistate.ClampCursor(idx, len(items))
	m.state.Select(items[idx].ID, m.nowFn())
	return m, nil
}

func (m Model) jumpBy(delta int) (tea.Model, tea.Cmd) {
	items := m.state.Pages.Items
	if len(items) == 0 {
		return m, nil
	}
	target := m.state.Pages.Index(m.state.Selection.FocusID) + delta
	model, _ := m.jumpTo(target)
	next := model.(Model)
	if target >= len(items)-1 {
		if req, ok := next.state.LoadMore(); ok {
			return next, next.loadCmd(req)
		}
	}
	return next, nil
}

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	job, ok := m.state.Focused()
	if !ok {
		if len(m.state.Pages.Items) == 0 {
			return m, nil
		}
		job = m.state.Pages.Items[0]
	}
	if m.state.Pages.Index(job.ID) >= 0 {
		m.state.Select(job.ID, m.nowFn())
	}
	m.inDetail = true
	m.detailTop = 0
	return m, nil
}

func (m *Model) leaveDetailIfUnfocused() {
	if !m.inDetail {
		return
	}
	if _, ok := m.state.Focused(); !ok {
		m.inDetail = false
		m.detailTop = 0
	}
}

// toggleFlag flips a flag on the focused job. With marked jobs the flag
// goes to the whole selection through a confirmed bulk update.
func (m Model) toggleFlag(f jobs.Flag) (tea.Model, tea.Cmd) {
	if m.state.Selection.Mode != viewer.SelectNone {
		if err := m.state.RequestBulkUpdate(jobs.FlagPatch(f, m.bulkFlagValue(f))); err != nil {
			cmd := m.setStatus(err.Error())
			return m, cmd
		}
		return m, nil
	}
	job, ok := m.state.Focused()
	if !ok || m.service == nil {
		return m, nil
	}
	req := m.state.BeginUpdate(job.ID, jobs.FlagPatch(f, !job.Flag(f)))
	return m, tuiactions.UpdateJobCmd(m.service, req)
}

// bulkFlagValue sets the flag unless every loaded selected job has it.
func (m Model) bulkFlagValue(f jobs.Flag) bool {
	matched := false
	for _, job := range m.state.Pages.Items {
		if !m.state.Selection.IsSelected(job.ID) {
			continue
		}
		matched = true
		if !job.Flag(f) {
			return true
		}
	}
	return !matched
}

func (m Model) requestDelete() (tea.Model, tea.Cmd) {
	var err error
	if m.state.Selection.Mode != viewer.SelectNone {
		err = m.state.RequestBulkDelete()
	} else if job, ok := m.state.Focused(); ok {
		err = m.state.RequestDelete(job.ID)
	} else {
		err = viewer.ErrNothingSelected
	}
	if err != nil {
		cmd := m.setStatus(err.Error())
		return m, cmd
	}
	return m, nil
}

func (m Model) confirm() (tea.Model, tea.Cmd) {
	action, ok := m.state.Confirm()
	if !ok || m.service == nil {
		return m, nil
	}
	return m, tuiactions.RunActionCmd(m.service, action)
}

func (m Model) editComments() (tea.Model, tea.Cmd) {
	job, ok := m.state.Focused()
	if !ok {
		return m, nil
	}
	value := job.Text(jobs.FieldComments)
	if pending, ok := m.state.Saves.Pending(viewer.SaveKey{JobID: job.ID, Field: jobs.FieldComments}); ok {
		value = pending
	}
	m.editJobID = job.ID
	return m.startInput(inputComments, fmt.Sprintf("comments #%d: ", job.ID), value)
}

func (m Model) copyLink() (tea.Model, tea.Cmd) {
	job, ok := m.state.Focused()
	if !ok {
		return m, nil
	}
	return m, tuiactions.CopyURLCmd(viewer.Permalink(m.linkBase, job.ID), m.copyFn)
}

func (m Model) openPosting() (tea.Model, tea.Cmd) {
	job, ok := m.state.Focused()
	if !ok {
		return m, nil
	}
	target, err := platform.ValidateJobURL(job.URL)
	if err != nil {
		cmd := m.setStatus("Error: " + err.Error())
		return m, cmd
	}
	return m, tuiactions.OpenURLCmd(target, m.openURLFn, m.copyFn)
}

// applyLocation reconciles a pasted link against the view.
func (m Model) applyLocation(raw string) (tea.Model, tea.Cmd) {
	if err := m.state.Links.SetLocation(raw); err != nil {
		cmd := m.setStatus("Error: " + err.Error())
		return m, cmd
	}
	eff := m.state.ApplyDeepLinks(m.nowFn())
	cmds := m.linkEffectCmds(eff)
	if eff.Page != nil {
		m.presetName = ""
		m.inDetail = false
		m.detailTop = 0
	}
	if eff.Skipped {
		cmds = append(cmds, m.setStatus("Link ignored: selection changed just now"))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) linkEffectCmds(eff viewer.LinkEffects) []tea.Cmd {
	if m.service == nil {
		return nil
	}
	var cmds []tea.Cmd
	if eff.Page != nil {
		cmds = append(cmds, tuiactions.LoadPageCmd(m.service, *eff.Page))
	}
	if eff.Fetch != nil {
		cmds = append(cmds, tuiactions.FetchJobCmd(m.service, *eff.Fetch))
	}
	return cmds
}

func (m Model) loadCmd(req viewer.PageRequest) tea.Cmd {
	if m.service == nil {
		return nil
	}
	return tuiactions.LoadPageCmd(m.service, req)
}

func (m *Model) setStatus(status string) tea.Cmd {
	m.statusID++
	m.status = status
	return clearStatusCmd(m.statusID, statusTTL)
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Job Triage"))
	if badge := tuiview.NewJobsBadge(m.state.Fresh.NewCount, m.theme); badge != "" {
		b.WriteString("  ")
		b.WriteString(badge)
	}
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString("Help (? to close)\n\n")
		b.WriteString(m.helpView())
		b.WriteString("\n\n")
		b.WriteString(m.footer())
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(tuiview.Toolbar(m.inDetail))
	b.WriteString("\n\n")
	if m.inDetail {
		b.WriteString(m.detailView())
	} else {
		b.WriteString(m.listView())
	}
	b.WriteString("\n")
	b.WriteString(m.promptLine())
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	return b.String()
}

func (m Model) listView() string {
	var b strings.Builder
	pages := m.state.Pages
	now := m.nowFn()
	width := m.contentWidth()

	if m.state.Selection.Mode == viewer.SelectAllMatching {
		b.WriteString(tuiview.AllMatchingBanner(pages.Total, m.theme))
		b.WriteString("\n")
	}
	if job, ok := m.state.Focused(); ok && pages.Index(job.ID) < 0 {
		b.WriteString(m.theme.Banner.Render("Linked job"))
		b.WriteString("\n")
		b.WriteString(tuiview.RenderJobLine(tuiview.JobLineParams{Job: job, Now: now, Active: true, Width: width}, m.theme))
		b.WriteString("\n")
	}

	if len(pages.Items) == 0 {
		switch {
		case pages.Loading:
			b.WriteString("Loading jobs...\n")
		case pages.Err != nil:
			b.WriteString("Could not load jobs.\n")
		default:
			b.WriteString("No jobs match these filters.\n")
		}
		return b.String()
	}

	cursor := pages.Index(m.state.Selection.FocusID)
	start, end := tuistate.CenteredWindow(len(pages.Items), max(cursor, 0), tuistate.ListHeight(m.height, chromeLines))
	for i := start; i < end; i++ {
		job := pages.Items[i]
		b.WriteString(tuiview.RenderJobLine(tuiview.JobLineParams{
			Job:     job,
			Now:     now,
			Active:  i == cursor,
			Checked: m.state.Selection.Mode == viewer.SelectManual && m.state.Selection.IsSelected(job.ID),
			Width:   width,
		}, m.theme))
		b.WriteString("\n")
	}
	switch {
	case pages.LoadingMore:
		b.WriteString("Loading more...\n")
	case pages.HasMore():
		b.WriteString(m.theme.MetaLabel.Render(fmt.Sprintf("%d more on the server", pages.Total-len(pages.Items))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) detailLines() []string {
	job, ok := m.state.Focused()
	if !ok {
		return nil
	}
	lines := tuiview.DetailLines(job, m.contentWidth()-4, 2, description.Wrap)
	if pending, ok := m.state.Saves.Pending(viewer.SaveKey{JobID: job.ID, Field: jobs.FieldComments}); ok {
		lines = append(lines, "", "  Saving comments: "+pending)
	}
	return lines
}

func (m Model) detailView() string {
	lines := m.detailLines()
	if len(lines) == 0 {
		return "No job selected.\n"
	}
	return tuiview.RenderDetailLines(lines, m.detailTop, m.detailBodyHeight())
}

func (m Model) detailBodyHeight() int {
	return tuistate.ListHeight(m.height, chromeLines)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 100
	}
	return m.width
}

func (m Model) promptLine() string {
	if c, ok := m.state.Mutations.Pending(); ok {
		return tuiview.ConfirmLine(c.Message, m.theme)
	}
	if m.mode != inputNone {
		return m.input.View()
	}
	warning := ""
	if err := m.state.Mutations.Err; err != nil {
		warning = err.Error() + " (esc to dismiss)"
	} else if err := m.state.Pages.Err; err != nil {
		warning = "load failed: " + err.Error()
	}
	loading := m.state.Pages.Loading || m.state.Pages.LoadingMore
	return tuiview.Message(loading, warning != "", m.status, warning, m.theme)
}

func (m Model) footer() string {
	mode := "list"
	if m.inDetail {
		mode = "detail"
	}
	return tuiview.Footer(tuiview.FooterInfo{
		Mode:     mode,
		Criteria: m.state.Criteria().Describe(),
		Shown:    len(m.state.Pages.Items),
		Total:    m.state.Pages.Total,
		Marked:   m.state.Selection.Count(m.state.Pages.Total),
		Preset:   m.presetName,
	}, m.theme)
}

func (m Model) helpView() string {
	lines := make([]string, 0, 32)
	for _, b := range m.keys.helpBindings() {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("  %-8s %s", h.Key, h.Desc))
	}
	lines = append(lines,
		"",
		"Flags:",
		"  s/a/d/i/c/f/l toggle seen/applied/discarded/ignored/closed/flagged/liked",
		"  with marked jobs the flag is applied to the selection after confirmation",
		"Filters:",
	)
	for i, f := range jobs.AllFlags {
		if i >= 9 {
			break
		}
		lines = append(lines, fmt.Sprintf("  %d  %s: not applied, include, exclude", i+1, f))
	}
	return strings.Join(lines, "\n")
}
