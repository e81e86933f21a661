package viewer

import (
	"time"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

// Freshness counts matching jobs that appeared on the server since the
// list was loaded. It only reads the list.
type Freshness struct {
	NewCount  int
	Checking  bool
	CheckedAt time.Time

	key     string
	removed map[int64]struct{}
}

// Reset forgets everything tied to the previous criteria.
func (f *Freshness) Reset(key string) {
	f.key = key
	f.removed = nil
	f.NewCount = 0
	f.Checking = false
}

// Remember records ids that left the list because of a confirmed
// mutation, so a later poll does not count them as new.
func (f *Freshness) Remember(ids ...int64) {
	if len(ids) == 0 {
		return
	}
	if f.removed == nil {
		f.removed = make(map[int64]struct{}, len(ids))
	}
	for _, id := range ids {
		f.removed[id] = struct{}{}
	}
}

// Known is the set of loaded ids plus ids removed by confirmed
// mutations under the same criteria.
func (f Freshness) Known(items []jobs.Job) map[int64]struct{} {
	known := make(map[int64]struct{}, len(items)+len(f.removed))
	for _, job := range items {
		known[job.ID] = struct{}{}
	}
	for id := range f.removed {
		known[id] = struct{}{}
	}
	return known
}

// Begin returns the poll request for page 1 of c. It reports false
// while a previous poll is still running.
func (f *Freshness) Begin(c jobs.Criteria) (PageRequest, bool) {
	if f.Checking {
		return PageRequest{}, false
	}
	c = c.Clone()
	c.Page = 1
	key := c.QueryKey()
	if key != f.key {
		f.Reset(key)
	}
	f.Checking = true
	return PageRequest{Key: key, Criteria: c}, true
}

// Resolve counts fetched ids missing from known. Results for criteria
// that are no longer active are dropped.
func (f *Freshness) Resolve(req PageRequest, fetched []jobs.Job, known map[int64]struct{}, now time.Time) bool {
	if req.Key != f.key {
		return false
	}
	f.Checking = false
	f.CheckedAt = now
	f.NewCount = CountNew(fetched, known)
	return true
}

// Fail ends a poll without touching NewCount.
func (f *Freshness) Fail(req PageRequest) {
	if req.Key == f.key {
		f.Checking = false
	}
}

// CountNew returns |fetched - known|.
func CountNew(fetched []jobs.Job, known map[int64]struct{}) int {
	n := 0
	counted := make(map[int64]struct{}, len(fetched))
	for _, job := range fetched {
		if _, ok := known[job.ID]; ok {
			continue
		}
		if _, ok := counted[job.ID]; ok {
			continue
		}
		counted[job.ID] = struct{}{}
		n++
	}
	return n
}
