package viewer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

func TestPrepareAdvance(t *testing.T) {
	items := makeJobs(1, 2, 3)
	var sel Selection
	sel.Select(items, 2, time.Now())

	adv, ok := PrepareAdvance(sel, items, true, jobs.FlagPatch(jobs.FlagSeen, true))
	require.True(t, ok)
	assert.Equal(t, PendingAdvance{PreviousID: 2, PreviousIndex: 1}, adv)

	_, ok = PrepareAdvance(sel, items, true, jobs.FieldPatch(jobs.FieldComments, "note"))
	assert.False(t, ok, "text edits do not change membership")

	_, ok = PrepareAdvance(sel, items, false, jobs.FlagPatch(jobs.FlagSeen, true))
	assert.False(t, ok, "only the primary list view advances")

	_, ok = PrepareAdvance(Selection{}, items, true, jobs.FlagPatch(jobs.FlagSeen, true))
	assert.False(t, ok)
}

func TestPendingAdvance_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		adv     PendingAdvance
		items   []jobs.Job
		outcome AdvanceOutcome
		id      int64
		idx     int
	}{
		{
			name:    "first job removed",
			adv:     PendingAdvance{PreviousID: 1, PreviousIndex: 0},
			items:   makeJobs(2, 3),
			outcome: AdvanceMoved,
			id:      2,
			idx:     0,
		},
		{
			name:    "middle job removed",
			adv:     PendingAdvance{PreviousID: 3, PreviousIndex: 2},
			items:   makeJobs(1, 2, 4, 5),
			outcome: AdvanceMoved,
			id:      2,
			idx:     1,
		},
		{
			name:    "index clamped to shorter list",
			adv:     PendingAdvance{PreviousID: 9, PreviousIndex: 8},
			items:   makeJobs(1, 2),
			outcome: AdvanceMoved,
			id:      2,
			idx:     1,
		},
		{
			name:    "list emptied",
			adv:     PendingAdvance{PreviousID: 1, PreviousIndex: 0},
			items:   nil,
			outcome: AdvanceCleared,
		},
		{
			name:    "job still present",
			adv:     PendingAdvance{PreviousID: 2, PreviousIndex: 1},
			items:   makeJobs(1, 2, 3),
			outcome: AdvanceKept,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, id, idx := tt.adv.Resolve(tt.items)
			assert.Equal(t, tt.outcome, outcome)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.idx, idx)
		})
	}
}
