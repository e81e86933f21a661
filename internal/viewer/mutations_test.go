package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

func TestDescribePatch_StableOrder(t *testing.T) {
	url := "https://example.com"
	note := "ok"
	p := jobs.Patch{
		Flags: map[jobs.Flag]bool{
			jobs.FlagLiked:   false,
			jobs.FlagSeen:    true,
			jobs.FlagApplied: true,
		},
		Fields: map[jobs.Field]*string{
			jobs.FieldURL:      &url,
			jobs.FieldComments: &note,
		},
	}
	want := "mark seen, mark applied, unmark liked, edit comments, edit url"
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, describePatch(p))
	}
}

func TestDescribePatch_Empty(t *testing.T) {
	assert.Equal(t, "update", describePatch(jobs.Patch{}))
}

func TestRequestBulkUpdate_MessageIsDeterministic(t *testing.T) {
	s := loadedState(t, jobs.DefaultCriteria(20), 2, 1, 2)
	s.Selection.ToggleAll()
	patch := jobs.Patch{Flags: map[jobs.Flag]bool{jobs.FlagFlagged: true, jobs.FlagSeen: true}}

	assert.NoError(t, s.RequestBulkUpdate(patch))
	conf, ok := s.Mutations.Pending()
	assert.True(t, ok)
	assert.Equal(t, "mark seen, mark flagged on all 2 matching jobs?", conf.Message)
}
