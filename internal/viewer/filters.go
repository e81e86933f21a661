package viewer

import "github.com/glabrego/jobtriage-cli/internal/jobs"

// Change classifies what a criteria patch altered.
type Change int

const (
	Unchanged Change = iota
	PageChanged
	QueryChanged
)

// Filters holds the active criteria.
type Filters struct {
	criteria jobs.Criteria
}

func NewFilters(c jobs.Criteria) Filters {
	c = c.Clone()
	if c.Page < 1 {
		c.Page = 1
	}
	if c.Size < 1 {
		c.Size = jobs.DefaultPageSize
	}
	return Filters{criteria: c}
}

// Criteria returns a copy of the active criteria.
func (f Filters) Criteria() jobs.Criteria {
	return f.criteria.Clone()
}

// Apply merges patch into the criteria. Any change other than the page
// number puts pagination back on page 1.
func (f *Filters) Apply(patch func(*jobs.Criteria)) Change {
	next := f.criteria.Clone()
	patch(&next)
	if next.Size < 1 {
		next.Size = jobs.DefaultPageSize
	}

	if next.QueryKey() != f.criteria.QueryKey() {
		next.Page = 1
		f.criteria = next
		return QueryChanged
	}
	if next.Page < 1 {
		next.Page = 1
	}
	if next.Page != f.criteria.Page {
		f.criteria = next
		return PageChanged
	}
	return Unchanged
}

// Replace swaps the whole criteria, keeping the page-reset rule.
func (f *Filters) Replace(c jobs.Criteria) Change {
	return f.Apply(func(cur *jobs.Criteria) { *cur = c.Clone() })
}
