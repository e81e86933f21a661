package viewer

import "github.com/glabrego/jobtriage-cli/internal/jobs"

// PendingAdvance remembers where the focus was before a mutation that is
// likely to drop the focused job from the view.
type PendingAdvance struct {
	PreviousID    int64
	PreviousIndex int
}

// AdvanceOutcome reports what resolving a PendingAdvance did.
type AdvanceOutcome int

const (
	AdvanceKept AdvanceOutcome = iota
	AdvanceMoved
	AdvanceCleared
)

// PrepareAdvance returns a pending advance when patch touches a status
// flag, the primary list view is showing and a job is focused.
func PrepareAdvance(sel Selection, items []jobs.Job, primary bool, patch jobs.Patch) (PendingAdvance, bool) {
	if !patch.TouchesFlags() {
		return PendingAdvance{}, false
	}
	return prepareForRemoval(sel, items, primary)
}

func prepareForRemoval(sel Selection, items []jobs.Job, primary bool) (PendingAdvance, bool) {
	if !primary || sel.FocusID == 0 {
		return PendingAdvance{}, false
	}
	idx := indexOf(items, sel.FocusID)
	if idx < 0 {
		return PendingAdvance{}, false
	}
	return PendingAdvance{PreviousID: sel.FocusID, PreviousIndex: idx}, true
}

// Resolve picks the replacement focus after the list refreshed. When the
// previous job is gone the job now at max(0, i-1), clamped to the list,
// takes the focus; an empty list clears it.
func (p PendingAdvance) Resolve(items []jobs.Job) (AdvanceOutcome, int64, int) {
	if indexOf(items, p.PreviousID) >= 0 {
		return AdvanceKept, 0, 0
	}
	if len(items) == 0 {
		return AdvanceCleared, 0, 0
	}
	idx := p.PreviousIndex - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(items)-1 {
		idx = len(items) - 1
	}
	return AdvanceMoved, items[idx].ID, idx
}
