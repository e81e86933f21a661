package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteria_QueryKeyIgnoresPage(t *testing.T) {
	a := DefaultCriteria(20)
	b := a.Clone()
	b.Page = 4
	assert.Equal(t, a.QueryKey(), b.QueryKey())

	b.Search = "golang"
	assert.NotEqual(t, a.QueryKey(), b.QueryKey())
}

func TestCriteria_CloneDoesNotShareFlags(t *testing.T) {
	a := DefaultCriteria(20)
	b := a.Clone()
	b.SetFlag(FlagSeen, FlagExclude)
	_, ok := a.Flags[FlagSeen]
	assert.False(t, ok)
}

func TestCriteria_Admits(t *testing.T) {
	c := Criteria{Flags: map[Flag]FlagFilter{FlagSeen: FlagExclude, FlagLiked: FlagInclude}}

	assert.True(t, c.Admits(Job{ID: 1, Liked: true}))
	assert.False(t, c.Admits(Job{ID: 2, Liked: true, Seen: true}))
	assert.False(t, c.Admits(Job{ID: 3}))
	assert.True(t, Criteria{}.Admits(Job{ID: 4, Seen: true, Discarded: true}))
}

func TestCriteria_ClearedFlagsAreOmitted(t *testing.T) {
	c := DefaultCriteria(20)
	c.ClearFlags()
	q := c.Values()
	for _, f := range AllFlags {
		assert.False(t, q.Has(string(f)), "flag %s must not be sent", f)
	}
}

func TestPatch_Apply(t *testing.T) {
	job := Job{ID: 1, Title: "Old"}
	patch := FlagPatch(FlagApplied, true)
	patch.Fields = FieldPatch(FieldTitle, "New").Fields

	out := patch.Apply(job)
	require.True(t, out.Applied)
	assert.Equal(t, "New", out.Title)
	assert.True(t, patch.TouchesFlags())
	assert.False(t, FieldPatch(FieldComments, "x").TouchesFlags())
}

func TestParseFlag(t *testing.T) {
	f, err := ParseFlag("easy_apply")
	require.NoError(t, err)
	assert.Equal(t, FlagEasyApply, f)

	_, err = ParseFlag("bogus")
	assert.Error(t, err)
}

func TestIDsPredicate(t *testing.T) {
	assert.Equal(t, "id IN (5,9,12)", IDsPredicate([]int64{5, 9, 12}))
	assert.Equal(t, "id = 7", IDPredicate(7))
}
