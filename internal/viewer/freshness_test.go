package viewer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

func TestCountNew(t *testing.T) {
	known := map[int64]struct{}{1: {}, 2: {}}
	assert.Equal(t, 0, CountNew(makeJobs(1, 2), known))
	assert.Equal(t, 2, CountNew(makeJobs(3, 1, 4, 3), known))
	assert.Equal(t, 0, CountNew(nil, known))
}

func TestFreshness_OnePollAtATime(t *testing.T) {
	var f Freshness
	c := jobs.DefaultCriteria(20)
	c.Page = 3
	req, ok := f.Begin(c)
	require.True(t, ok)
	assert.Equal(t, 1, req.Page())

	_, ok = f.Begin(c)
	assert.False(t, ok)

	f.Fail(req)
	_, ok = f.Begin(c)
	assert.True(t, ok)
}

func TestFreshness_DropsStaleResults(t *testing.T) {
	var f Freshness
	c := jobs.DefaultCriteria(20)
	req, _ := f.Begin(c)

	c.Search = "new search"
	f.Reset(c.QueryKey())
	assert.False(t, f.Resolve(req, makeJobs(1, 2), nil, time.Now()))
	assert.Zero(t, f.NewCount)
}

func TestFreshness_KnownIncludesRemembered(t *testing.T) {
	var f Freshness
	f.Remember(4)
	known := f.Known(makeJobs(1, 2))
	assert.Len(t, known, 3)
	assert.Contains(t, known, int64(4))

	f.Reset("other")
	assert.Len(t, f.Known(nil), 0)
}
