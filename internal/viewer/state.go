package viewer

import (
	"fmt"
	"time"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

// FetchRequest asks the controller to fetch a single job by id.
type FetchRequest struct {
	ID int64
}

// LinkEffects lists the requests a deep-link pass produced.
type LinkEffects struct {
	Page    *PageRequest
	Fetch   *FetchRequest
	Skipped bool
}

// State is the single owned view state. Every transition goes through
// its methods; the returned request values tell the caller which remote
// calls to make.
type State struct {
	Filters   Filters
	Pages     Pages
	Selection Selection
	Links     DeepLinks
	Mutations Mutations
	Fresh     Freshness
	Saves     Debouncer

	// PrimaryView is false while the list is pinned to a single job by a
	// jobId link.
	PrimaryView bool

	advance *PendingAdvance
	// advanceSeq is the update that armed advance; 0 when a confirmed
	// bulk action armed it.
	advanceSeq int
	updateSeq  int
	pendingNav int
	linkedID   int64
	linked     *jobs.Job
}

func NewState(c jobs.Criteria) State {
	s := State{
		Filters:     NewFilters(c),
		PrimaryView: true,
	}
	s.Fresh.Reset(s.Filters.Criteria().QueryKey())
	return s
}

// Criteria returns the active criteria.
func (s State) Criteria() jobs.Criteria {
	return s.Filters.Criteria()
}

// Start issues the first page load.
func (s *State) Start() PageRequest {
	return s.Pages.Load(s.Filters.Criteria())
}

// SetCriteria applies a criteria patch. A query change resets the
// selection and returns the page-1 load; a page change loads more.
func (s *State) SetCriteria(patch func(*jobs.Criteria)) (PageRequest, bool) {
	switch s.Filters.Apply(patch) {
	case QueryChanged:
		s.PrimaryView = true
		return s.queryChanged(), true
	case PageChanged:
		return s.Pages.LoadMore()
	}
	return PageRequest{}, false
}

func (s *State) queryChanged() PageRequest {
	c := s.Filters.Criteria()
	s.Selection.Reset()
	s.advance = nil
	s.pendingNav = 0
	s.linkedID = 0
	s.linked = nil
	s.Fresh.Reset(c.QueryKey())
	return s.Pages.Load(c)
}

// Reload refetches page 1 for the same criteria. The selection survives.
func (s *State) Reload() PageRequest {
	s.Fresh.NewCount = 0
	s.pendingNav = 0
	return s.Pages.Load(s.Filters.Criteria())
}

func (s *State) LoadMore() (PageRequest, bool) {
	return s.Pages.LoadMore()
}

// OnPageLoaded merges a list response. It reports false for responses
// that no longer apply.
func (s *State) OnPageLoaded(req PageRequest, page jobs.Page) bool {
	if !s.Pages.Resolve(req, page) {
		return false
	}
	if req.Page() == 1 {
		s.pendingNav = 0
		s.settle()
	} else {
		s.Selection.Restore(s.Pages.Items)
		if s.pendingNav != 0 {
			dir := s.pendingNav
			s.pendingNav = 0
			s.Selection.Navigate(s.Pages.Items, dir, s.Pages.HasMore(), s.Selection.LastManual)
		}
	}
	if s.linkedID != 0 && s.Pages.Index(s.linkedID) >= 0 {
		s.Selection.Focus(s.Pages.Items, s.linkedID)
		s.linkedID = 0
		s.linked = nil
	}
	return true
}

func (s *State) OnPageFailed(req PageRequest, err error) bool {
	if !s.Pages.Fail(req, err) {
		return false
	}
	if req.Page() > 1 {
		s.pendingNav = 0
	}
	return true
}

// settle runs after the list changed: a pending advance is consumed,
// otherwise the focus is restored.
func (s *State) settle() {
	if s.advance == nil {
		s.restoreFocus()
		return
	}
	adv := *s.advance
	s.advance = nil
	switch outcome, id, idx := adv.Resolve(s.Pages.Items); outcome {
	case AdvanceKept:
		s.restoreFocus()
	case AdvanceMoved:
		s.Selection.FocusID = id
		s.Selection.FocusIndex = idx
	case AdvanceCleared:
		s.Selection.ClearFocus()
	}
}

func (s *State) restoreFocus() {
	if s.linked != nil && s.Selection.FocusID == s.linked.ID && s.Pages.Index(s.linked.ID) < 0 {
		return
	}
	s.Selection.Restore(s.Pages.Items)
}

// PendingAdvance returns the advance waiting for the next list change.
func (s State) PendingAdvance() (PendingAdvance, bool) {
	if s.advance == nil {
		return PendingAdvance{}, false
	}
	return *s.advance, true
}

// Navigate moves the focus. When the end of the loaded list is reached
// and the server has more, the next page is requested and the move
// completes once it arrives.
func (s *State) Navigate(dir int, now time.Time) (PageRequest, bool) {
	res := s.Selection.Navigate(s.Pages.Items, dir, s.Pages.HasMore(), now)
	if res != NavNeedsMore {
		s.pendingNav = 0
		return PageRequest{}, false
	}
	req, ok := s.Pages.LoadMore()
	if !ok {
		// A page already in flight completes the move; otherwise there
		// is nothing to wait for.
		if !s.Pages.LoadingMore {
			s.pendingNav = 0
		}
		return PageRequest{}, false
	}
	s.pendingNav = dir
	return req, true
}

func (s *State) Select(id int64, now time.Time) {
	s.Selection.Select(s.Pages.Items, id, now)
	s.linkedID = 0
	s.linked = nil
}

// Focused returns the focused job.
func (s State) Focused() (jobs.Job, bool) {
	id := s.Selection.FocusID
	if id == 0 {
		return jobs.Job{}, false
	}
	if job, ok := s.Pages.Get(id); ok {
		return job, true
	}
	if s.linked != nil && s.linked.ID == id {
		return *s.linked, true
	}
	return jobs.Job{}, false
}

// ApplyDeepLinks runs one reconciliation pass over the location.
func (s *State) ApplyDeepLinks(now time.Time) LinkEffects {
	var eff LinkEffects
	res := s.Links.Reconcile(s.Filters.Criteria(), s.Selection.LastManual, now)
	eff.Skipped = res.Skipped
	if res.Criteria != nil {
		if s.Filters.Replace(*res.Criteria) == QueryChanged {
			req := s.queryChanged()
			eff.Page = &req
		}
		s.PrimaryView = res.JobID == 0
	}
	if res.JobID != 0 {
		if s.Pages.Index(res.JobID) >= 0 {
			s.Selection.Focus(s.Pages.Items, res.JobID)
		} else {
			s.linkedID = res.JobID
			eff.Fetch = &FetchRequest{ID: res.JobID}
		}
	}
	return eff
}

// OnJobFetched focuses a job fetched for a jobId link.
func (s *State) OnJobFetched(job jobs.Job) {
	if s.linkedID != job.ID {
		return
	}
	if s.Pages.Index(job.ID) >= 0 {
		s.Selection.Focus(s.Pages.Items, job.ID)
		s.linkedID = 0
		return
	}
	s.linked = &job
	s.Selection.FocusID = job.ID
	s.Selection.FocusIndex = 0
}

// OnJobFetchFailed drops an unresolvable link; the view keeps no
// selection.
func (s *State) OnJobFetchFailed(id int64) {
	if s.linkedID == id {
		s.linkedID = 0
	}
}

// BeginUpdate prepares a single-job PATCH. A flag change on the focused
// job arms the auto-advance before the request is issued; only that
// request's outcome, or the next page-1 refresh, resolves it.
func (s *State) BeginUpdate(id int64, patch jobs.Patch) UpdateRequest {
	s.updateSeq++
	req := UpdateRequest{ID: id, Patch: patch, Seq: s.updateSeq}
	if id == s.Selection.FocusID {
		if adv, ok := PrepareAdvance(s.Selection, s.Pages.Items, s.PrimaryView, patch); ok {
			s.advance = &adv
			s.advanceSeq = req.Seq
		}
	}
	return req
}

// OnRecordUpdated applies the server's copy of an updated job. A job
// that no longer matches the flag filters leaves the list.
func (s *State) OnRecordUpdated(req UpdateRequest, job jobs.Job) {
	s.Mutations.Err = nil
	if s.linked != nil && s.linked.ID == job.ID {
		s.linked = &job
	}
	if s.Filters.Criteria().Admits(job) {
		s.Pages.Replace(job)
	} else {
		s.removeConfirmed(job.ID)
	}
	if !s.armedBy(req) {
		s.restoreFocus()
		return
	}
	s.settle()
}

func (s *State) OnUpdateFailed(req UpdateRequest, err error) {
	s.Mutations.Err = err
	if s.armedBy(req) {
		s.advance = nil
	}
}

func (s State) armedBy(req UpdateRequest) bool {
	return s.advance != nil && req.Seq != 0 && s.advanceSeq == req.Seq
}

// OnRecordsDeleted drops deleted jobs from the list.
func (s *State) OnRecordsDeleted(ids ...int64) {
	s.Mutations.Err = nil
	s.removeConfirmed(ids...)
	s.settleBulk()
}

func (s *State) removeConfirmed(ids ...int64) {
	s.Pages.Remove(ids...)
	s.Fresh.Remember(ids...)
	s.Selection.Prune(ids...)
}

// RequestDelete asks to confirm deleting a single job.
func (s *State) RequestDelete(id int64) error {
	return s.Mutations.Request(Confirmation{
		Message: fmt.Sprintf("Delete job #%d?", id),
		Action:  Action{Kind: ActionBulkDelete, Target: jobs.BulkTarget{IDs: []int64{id}}},
	})
}

// RequestBulkUpdate asks to confirm applying patch to the selection.
func (s *State) RequestBulkUpdate(patch jobs.Patch) error {
	target := s.Selection.Target(s.Filters.Criteria())
	return s.Mutations.Request(Confirmation{
		Message: fmt.Sprintf("%s on %s?", describePatch(patch), describeTarget(target, s.Pages.Total)),
		Action:  Action{Kind: ActionBulkUpdate, Target: target, Patch: patch},
	})
}

// RequestBulkDelete asks to confirm deleting the selection.
func (s *State) RequestBulkDelete() error {
	target := s.Selection.Target(s.Filters.Criteria())
	return s.Mutations.Request(Confirmation{
		Message: fmt.Sprintf("Delete %s?", describeTarget(target, s.Pages.Total)),
		Action:  Action{Kind: ActionBulkDelete, Target: target},
	})
}

// Confirm closes the open confirmation and returns the action to run.
// An action that is likely to drop the focused job arms the
// auto-advance.
func (s *State) Confirm() (Action, bool) {
	action, ok := s.Mutations.Confirm()
	if !ok {
		return Action{}, false
	}
	if s.targets(action.Target, s.Selection.FocusID) {
		var (
			adv   PendingAdvance
			armed bool
		)
		switch action.Kind {
		case ActionBulkDelete:
			adv, armed = prepareForRemoval(s.Selection, s.Pages.Items, s.PrimaryView)
		case ActionBulkUpdate:
			adv, armed = PrepareAdvance(s.Selection, s.Pages.Items, s.PrimaryView, action.Patch)
		}
		if armed {
			s.advance = &adv
			s.advanceSeq = 0
		}
	}
	return action, true
}

func (s *State) Cancel() {
	s.Mutations.Cancel()
}

func (s State) targets(t jobs.BulkTarget, id int64) bool {
	if id == 0 {
		return false
	}
	if t.SelectAll {
		return true
	}
	for _, tid := range t.IDs {
		if tid == id {
			return true
		}
	}
	return false
}

// affected lists the loaded ids a bulk action reached.
func (s State) affected(t jobs.BulkTarget) []int64 {
	if t.SelectAll {
		return s.Pages.IDs()
	}
	out := make([]int64, 0, len(t.IDs))
	for _, id := range t.IDs {
		if s.Pages.Index(id) >= 0 {
			out = append(out, id)
		}
	}
	return out
}

// OnBulkUpdated applies a confirmed bulk update locally and resets the
// selection.
func (s *State) OnBulkUpdated(action Action) {
	s.Mutations.Err = nil
	criteria := s.Filters.Criteria()
	var gone []int64
	for _, id := range s.affected(action.Target) {
		job, _ := s.Pages.Get(id)
		job = action.Patch.Apply(job)
		if criteria.Admits(job) {
			s.Pages.Replace(job)
		} else {
			gone = append(gone, id)
		}
	}
	s.removeConfirmed(gone...)
	s.Selection.ClearMarks()
	s.settleBulk()
}

// OnBulkDeleted purges the deleted jobs and resets the selection.
func (s *State) OnBulkDeleted(action Action) {
	s.Mutations.Err = nil
	s.removeConfirmed(s.affected(action.Target)...)
	if action.Target.SelectAll {
		s.Pages.Total = len(s.Pages.Items)
	}
	s.Selection.ClearMarks()
	s.settleBulk()
}

func (s *State) OnBulkFailed(err error) {
	s.Mutations.Err = err
	if s.advance != nil && s.advanceSeq == 0 {
		s.advance = nil
	}
}

// settleBulk leaves an advance armed by a single-job update in flight
// to that update.
func (s *State) settleBulk() {
	if s.advance != nil && s.advanceSeq != 0 {
		s.restoreFocus()
		return
	}
	s.settle()
}

// OnRecordCreated reloads page 1; the server decides where the new job
// sorts.
func (s *State) OnRecordCreated(jobs.Job) PageRequest {
	s.Mutations.Err = nil
	return s.Reload()
}

// BeginFreshness starts a poll for the active criteria.
// No poll starts while page 1 is loading: the loaded ids may still
// belong to the previous criteria.
func (s *State) BeginFreshness() (PageRequest, bool) {
	if !s.Pages.Settled() {
		return PageRequest{}, false
	}
	return s.Fresh.Begin(s.Filters.Criteria())
}

// OnFreshness counts new jobs in a poll response. A response that
// arrives while page 1 is reloading, or for other criteria, is dropped.
func (s *State) OnFreshness(req PageRequest, page jobs.Page, now time.Time) bool {
	if !s.Pages.Settled() || s.Pages.Key() != req.Key {
		s.Fresh.Fail(req)
		return false
	}
	return s.Fresh.Resolve(req, page.Items, s.Fresh.Known(s.Pages.Items), now)
}

func (s *State) OnFreshnessFailed(req PageRequest) {
	s.Fresh.Fail(req)
}

// ScheduleSave records a free-text edit for job id. The returned
// sequence number is handed back to SaveDue when the timer fires.
func (s *State) ScheduleSave(id int64, field jobs.Field, value string) (SaveKey, int) {
	key := SaveKey{JobID: id, Field: field}
	return key, s.Saves.Schedule(key, value)
}

// SaveDue returns the PATCH for a debounced edit when seq is still the
// latest for key.
func (s *State) SaveDue(key SaveKey, seq int) (UpdateRequest, bool) {
	value, ok := s.Saves.Due(key, seq)
	if !ok {
		return UpdateRequest{}, false
	}
	return UpdateRequest{ID: key.JobID, Patch: jobs.FieldPatch(key.Field, value)}, true
}
