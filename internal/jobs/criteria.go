package jobs

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const DefaultPageSize = 20

// FlagFilter is the applied state of one status-flag filter. A flag that
// is absent from Criteria.Flags is not applied at all.
type FlagFilter string

const (
	FlagInclude FlagFilter = "include"
	FlagExclude FlagFilter = "exclude"
)

// Sort orders results server side.
type Sort struct {
	Field string
	Desc  bool
}

func (s Sort) String() string {
	if s.Field == "" {
		return ""
	}
	if s.Desc {
		return "-" + s.Field
	}
	return s.Field
}

// Criteria selects and orders jobs server side.
type Criteria struct {
	Search      string
	Flags       map[Flag]FlagFilter
	MaxAgeDays  int
	SalaryRegex string
	Predicate   string
	Sort        Sort
	Page        int
	Size        int
}

// DefaultCriteria hides what a triage session usually does not want to
// see again.
func DefaultCriteria(size int) Criteria {
	if size < 1 {
		size = DefaultPageSize
	}
	return Criteria{
		Flags: map[Flag]FlagFilter{
			FlagDiscarded: FlagExclude,
			FlagIgnored:   FlagExclude,
			FlagClosed:    FlagExclude,
		},
		Sort: Sort{Field: "created", Desc: true},
		Page: 1,
		Size: size,
	}
}

// Clone returns a copy that shares no maps with c.
func (c Criteria) Clone() Criteria {
	out := c
	if c.Flags != nil {
		out.Flags = make(map[Flag]FlagFilter, len(c.Flags))
		for f, v := range c.Flags {
			out.Flags[f] = v
		}
	}
	return out
}

// SetFlag applies, or with an empty value removes, a flag filter.
func (c *Criteria) SetFlag(f Flag, v FlagFilter) {
	if v == "" {
		delete(c.Flags, f)
		return
	}
	if c.Flags == nil {
		c.Flags = make(map[Flag]FlagFilter)
	}
	c.Flags[f] = v
}

// ClearFlags removes every flag filter so no flag restricts the view.
func (c *Criteria) ClearFlags() {
	c.Flags = nil
}

// Admits reports whether j can belong to a view with these criteria,
// judged on status flags only. Search, age, salary and predicate are
// evaluated by the server.
func (c Criteria) Admits(j Job) bool {
	for f, want := range c.Flags {
		switch want {
		case FlagInclude:
			if !j.Flag(f) {
				return false
			}
		case FlagExclude:
			if j.Flag(f) {
				return false
			}
		}
	}
	return true
}

// Values encodes the criteria as query parameters. Flags that are not
// applied are omitted.
func (c Criteria) Values() url.Values {
	q := c.queryValues()
	page := c.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	return q
}

// QueryKey identifies the result set independent of the page number.
func (c Criteria) QueryKey() string {
	return c.queryValues().Encode()
}

func (c Criteria) queryValues() url.Values {
	q := make(url.Values)
	if s := strings.TrimSpace(c.Search); s != "" {
		q.Set("search", s)
	}
	for f, v := range c.Flags {
		if v == FlagInclude || v == FlagExclude {
			q.Set(string(f), string(v))
		}
	}
	if c.MaxAgeDays > 0 {
		q.Set("max_age_days", strconv.Itoa(c.MaxAgeDays))
	}
	if c.SalaryRegex != "" {
		q.Set("salary_regex", c.SalaryRegex)
	}
	if c.Predicate != "" {
		q.Set("where", c.Predicate)
	}
	if s := c.Sort.String(); s != "" {
		q.Set("order", s)
	}
	size := c.Size
	if size < 1 {
		size = DefaultPageSize
	}
	q.Set("size", strconv.Itoa(size))
	return q
}

// Describe renders a short human label for the criteria.
func (c Criteria) Describe() string {
	parts := make([]string, 0, 6)
	if c.Search != "" {
		parts = append(parts, strconv.Quote(c.Search))
	}
	flags := make([]string, 0, len(c.Flags))
	for f, v := range c.Flags {
		switch v {
		case FlagInclude:
			flags = append(flags, "+"+string(f))
		case FlagExclude:
			flags = append(flags, "-"+string(f))
		}
	}
	sort.Strings(flags)
	parts = append(parts, flags...)
	if c.MaxAgeDays > 0 {
		parts = append(parts, "<="+strconv.Itoa(c.MaxAgeDays)+"d")
	}
	if c.SalaryRegex != "" {
		parts = append(parts, "salary~"+c.SalaryRegex)
	}
	if c.Predicate != "" {
		parts = append(parts, "where "+c.Predicate)
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " ")
}

// IDsPredicate selects exactly the given ids.
func IDsPredicate(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "id IN (" + strings.Join(parts, ",") + ")"
}

// IDPredicate selects a single id.
func IDPredicate(id int64) string {
	return "id = " + strconv.FormatInt(id, 10)
}

// BulkTarget addresses the jobs of a bulk operation: either explicit ids
// or every job matching Criteria.
type BulkTarget struct {
	IDs       []int64
	SelectAll bool
	Criteria  Criteria
}

func (t BulkTarget) Empty() bool {
	return !t.SelectAll && len(t.IDs) == 0
}
