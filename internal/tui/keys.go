package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Open       key.Binding
	Back       key.Binding
	Prev       key.Binding
	Next       key.Binding
	Mark       key.Binding
	MarkAll    key.Binding
	Delete     key.Binding
	Search     key.Binding
	Sort       key.Binding
	SavePreset key.Binding
	NextPreset key.Binding
	PasteLink  key.Binding
	CopyLink   key.Binding
	OpenURL    key.Binding
	Comments   key.Binding
	NewJob     key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
	Yes        key.Binding
	No         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "move up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "move down, loads more at the end")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdown", "page down")),
		Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first loaded job")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last loaded job")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select and open detail")),
		Back:       key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back / dismiss error")),
		Prev:       key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous job")),
		Next:       key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next job")),
		Mark:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "mark job")),
		MarkAll:    key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "select all matching")),
		Delete:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete job or selection")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Sort:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "cycle sort")),
		SavePreset: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "save filters as preset")),
		NextPreset: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "apply next preset")),
		PasteLink:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "open link from clipboard")),
		CopyLink:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link to job")),
		OpenURL:    key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "open posting")),
		Comments:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit comments")),
		NewJob:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new job")),
		Reload:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Yes:        key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		No:         key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
	}
}

func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom,
		k.Open, k.Back, k.Prev, k.Next,
		k.Mark, k.MarkAll, k.Delete,
		k.Search, k.Sort, k.SavePreset, k.NextPreset,
		k.PasteLink, k.CopyLink, k.OpenURL,
		k.Comments, k.NewJob, k.Reload, k.Help, k.Quit,
	}
}

// flagKeys toggle a status flag on the focused job, or on the selection
// through a confirmed bulk update.
var flagKeys = map[string]jobs.Flag{
	"s": jobs.FlagSeen,
	"a": jobs.FlagApplied,
	"d": jobs.FlagDiscarded,
	"i": jobs.FlagIgnored,
	"c": jobs.FlagClosed,
	"f": jobs.FlagFlagged,
	"l": jobs.FlagLiked,
}

// filterFlag maps 1-9 to the flag filter they cycle.
func filterFlag(s string) (jobs.Flag, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return "", false
	}
	idx := int(s[0] - '1')
	if idx >= len(jobs.AllFlags) {
		return "", false
	}
	return jobs.AllFlags[idx], true
}

// nextFlagFilter cycles not applied -> include -> exclude.
func nextFlagFilter(v jobs.FlagFilter) jobs.FlagFilter {
	switch v {
	case jobs.FlagInclude:
		return jobs.FlagExclude
	case jobs.FlagExclude:
		return ""
	}
	return jobs.FlagInclude
}

var sortOptions = []jobs.Sort{
	{Field: "created", Desc: true},
	{Field: "created"},
	{Field: "company"},
	{Field: "title"},
}

func nextSort(current jobs.Sort) jobs.Sort {
	for i, s := range sortOptions {
		if s == current {
			return sortOptions[(i+1)%len(sortOptions)]
		}
	}
	return sortOptions[0]
}
