package viewer

import (
	"sort"
	"time"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

// Mode is the selection mode.
type Mode int

const (
	SelectNone Mode = iota
	SelectManual
	SelectAllMatching
)

func (m Mode) String() string {
	switch m {
	case SelectManual:
		return "manual"
	case SelectAllMatching:
		return "all-matching"
	}
	return "none"
}

// NavResult reports what Navigate did.
type NavResult int

const (
	NavNone NavResult = iota
	NavMoved
	NavNeedsMore
)

// Selection tracks the selected ids and the focused job. In
// SelectAllMatching mode every job matching the criteria server side is
// selected, loaded or not, and ids is unused.
type Selection struct {
	Mode       Mode
	FocusID    int64
	FocusIndex int
	LastManual time.Time

	ids map[int64]struct{}
}

// Select makes id the only selected job and focuses it.
func (s *Selection) Select(items []jobs.Job, id int64, now time.Time) {
	s.Mode = SelectManual
	s.ids = map[int64]struct{}{id: {}}
	s.focus(items, id)
	s.LastManual = now
}

// Toggle flips id in the manual set. Toggling out of all-matching
// degrades to a manual set holding only id; there is no "all minus some"
// state. A toggle counts as a manual selection.
func (s *Selection) Toggle(id int64, now time.Time) {
	s.LastManual = now
	switch s.Mode {
	case SelectAllMatching, SelectNone:
		s.Mode = SelectManual
		s.ids = map[int64]struct{}{id: {}}
	case SelectManual:
		if s.ids == nil {
			s.ids = make(map[int64]struct{})
		}
		if _, ok := s.ids[id]; ok {
			delete(s.ids, id)
		} else {
			s.ids[id] = struct{}{}
		}
		if len(s.ids) == 0 {
			s.Mode = SelectNone
		}
	}
}

// ToggleAll flips between none and all-matching.
func (s *Selection) ToggleAll() {
	if s.Mode == SelectAllMatching {
		s.Mode = SelectNone
	} else {
		s.Mode = SelectAllMatching
	}
	s.ids = nil
}

// Reset clears the selection and the focus.
func (s *Selection) Reset() {
	s.Mode = SelectNone
	s.ids = nil
	s.FocusID = 0
	s.FocusIndex = 0
}

// ClearMarks drops the selected set but keeps the focus.
func (s *Selection) ClearMarks() {
	s.Mode = SelectNone
	s.ids = nil
}

// Focus moves the focus to id without counting as a manual selection.
func (s *Selection) Focus(items []jobs.Job, id int64) {
	s.focus(items, id)
}

func (s *Selection) ClearFocus() {
	s.FocusID = 0
	s.FocusIndex = 0
}

func (s Selection) IsSelected(id int64) bool {
	switch s.Mode {
	case SelectAllMatching:
		return true
	case SelectManual:
		_, ok := s.ids[id]
		return ok
	}
	return false
}

// IDs returns the manual selection in ascending order.
func (s Selection) IDs() []int64 {
	if s.Mode != SelectManual {
		return nil
	}
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Count is the number of selected jobs, using total for all-matching.
func (s Selection) Count(total int) int {
	switch s.Mode {
	case SelectAllMatching:
		return total
	case SelectManual:
		return len(s.ids)
	}
	return 0
}

// Target addresses the selection for a bulk operation.
func (s Selection) Target(criteria jobs.Criteria) jobs.BulkTarget {
	switch s.Mode {
	case SelectAllMatching:
		c := criteria.Clone()
		c.Page = 1
		return jobs.BulkTarget{SelectAll: true, Criteria: c}
	case SelectManual:
		return jobs.BulkTarget{IDs: s.IDs()}
	}
	return jobs.BulkTarget{}
}

// Navigate moves the focus by dir within items. Moving past the last
// loaded job asks for another page when one exists.
func (s *Selection) Navigate(items []jobs.Job, dir int, hasMore bool, now time.Time) NavResult {
	if len(items) == 0 {
		return NavNone
	}
	idx := indexOf(items, s.FocusID)
	if idx < 0 {
		s.focus(items, items[0].ID)
		s.LastManual = now
		return NavMoved
	}
	next := idx + dir
	if next < 0 {
		return NavNone
	}
	if next >= len(items) {
		if hasMore {
			return NavNeedsMore
		}
		return NavNone
	}
	s.focus(items, items[next].ID)
	s.LastManual = now
	return NavMoved
}

// Restore refreshes FocusIndex after the list changed. A focus that is
// no longer loaded is dropped.
func (s *Selection) Restore(items []jobs.Job) {
	if s.FocusID == 0 {
		return
	}
	idx := indexOf(items, s.FocusID)
	if idx < 0 {
		s.ClearFocus()
		return
	}
	s.FocusIndex = idx
}

// Prune drops manual marks for ids that are gone.
func (s *Selection) Prune(ids ...int64) {
	if s.Mode != SelectManual {
		return
	}
	for _, id := range ids {
		delete(s.ids, id)
	}
	if len(s.ids) == 0 {
		s.Mode = SelectNone
	}
}

func (s *Selection) focus(items []jobs.Job, id int64) {
	s.FocusID = id
	s.FocusIndex = indexOf(items, id)
	if s.FocusIndex < 0 {
		s.FocusIndex = 0
	}
}

func indexOf(items []jobs.Job, id int64) int {
	if id == 0 {
		return -1
	}
	for i, job := range items {
		if job.ID == id {
			return i
		}
	}
	return -1
}
