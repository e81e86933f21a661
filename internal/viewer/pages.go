package viewer

import "github.com/glabrego/jobtriage-cli/internal/jobs"

// PageRequest describes one list fetch the controller must issue. Key
// ties the response back to the criteria it was issued for.
type PageRequest struct {
	Key      string
	Criteria jobs.Criteria
}

func (r PageRequest) Page() int {
	if r.Criteria.Page < 1 {
		return 1
	}
	return r.Criteria.Page
}

// Pages accumulates successive pages for the active criteria into one
// ordered list without duplicate ids.
type Pages struct {
	Items       []jobs.Job
	Total       int
	Loading     bool
	LoadingMore bool
	Err         error

	key       string
	itemsKey  string
	criteria  jobs.Criteria
	loaded    int
	requested map[int]bool
}

// Load starts page 1 for c. The requested-page set is cleared.
func (p *Pages) Load(c jobs.Criteria) PageRequest {
	c = c.Clone()
	c.Page = 1
	p.criteria = c
	p.key = c.QueryKey()
	p.requested = map[int]bool{1: true}
	p.Loading = true
	p.LoadingMore = false
	p.Err = nil
	return PageRequest{Key: p.key, Criteria: c}
}

// LoadMore requests the next page. It reports false when that page was
// already requested, page 1 is still loading, or everything is loaded.
func (p *Pages) LoadMore() (PageRequest, bool) {
	if p.key == "" || p.Loading || !p.HasMore() {
		return PageRequest{}, false
	}
	next := p.loaded + 1
	if p.requested[next] {
		return PageRequest{}, false
	}
	p.requested[next] = true
	p.LoadingMore = true

	c := p.criteria.Clone()
	c.Page = next
	return PageRequest{Key: p.key, Criteria: c}, true
}

// HasMore reports whether the server holds matching jobs not yet loaded.
func (p Pages) HasMore() bool {
	return p.loaded > 0 && len(p.Items) < p.Total
}

// LoadedPages is the highest page merged into Items.
func (p Pages) LoadedPages() int {
	return p.loaded
}

func (p Pages) Key() string {
	return p.key
}

// Settled reports whether Items hold page 1 of the active criteria and
// no page-1 load is in flight.
func (p Pages) Settled() bool {
	return p.key != "" && p.itemsKey == p.key && !p.Loading
}

// Resolve merges a successful response. Responses for superseded
// criteria, or for pages no longer requested, are dropped and Resolve
// reports false.
func (p *Pages) Resolve(req PageRequest, res jobs.Page) bool {
	if req.Key != p.key {
		return false
	}
	page := req.Page()
	if page == 1 {
		p.Items = appendUnseen(nil, res.Items)
		p.itemsKey = p.key
		p.loaded = 1
		p.requested = map[int]bool{1: true}
		p.Loading = false
	} else {
		if !p.requested[page] {
			return false
		}
		p.Items = appendUnseen(p.Items, res.Items)
		if page > p.loaded {
			p.loaded = page
		}
		p.LoadingMore = false
	}
	p.Total = res.Total
	if p.Total < len(p.Items) {
		p.Total = len(p.Items)
	}
	p.Err = nil
	return true
}

// Fail records a failed fetch. A failed page 1 leaves the stale items in
// place; a failed later page is forgotten so it can be retried.
func (p *Pages) Fail(req PageRequest, err error) bool {
	if req.Key != p.key {
		return false
	}
	if req.Page() == 1 {
		p.Loading = false
	} else {
		delete(p.requested, req.Page())
		p.LoadingMore = false
	}
	p.Err = err
	return true
}

func (p Pages) Index(id int64) int {
	for i, job := range p.Items {
		if job.ID == id {
			return i
		}
	}
	return -1
}

func (p Pages) Get(id int64) (jobs.Job, bool) {
	if i := p.Index(id); i >= 0 {
		return p.Items[i], true
	}
	return jobs.Job{}, false
}

// Replace swaps the loaded copy of job. It reports false when the job is
// not loaded.
func (p *Pages) Replace(job jobs.Job) bool {
	i := p.Index(job.ID)
	if i < 0 {
		return false
	}
	items := append([]jobs.Job(nil), p.Items...)
	items[i] = job
	p.Items = items
	return true
}

// Remove drops the given ids and returns how many were loaded.
func (p *Pages) Remove(ids ...int64) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := make([]jobs.Job, 0, len(p.Items))
	removed := 0
	for _, job := range p.Items {
		if _, ok := drop[job.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, job)
	}
	p.Items = kept
	p.Total -= removed
	if p.Total < len(p.Items) {
		p.Total = len(p.Items)
	}
	return removed
}

// IDs returns the loaded ids in list order.
func (p Pages) IDs() []int64 {
	out := make([]int64, len(p.Items))
	for i, job := range p.Items {
		out[i] = job.ID
	}
	return out
}

func appendUnseen(dst, src []jobs.Job) []jobs.Job {
	seen := make(map[int64]struct{}, len(dst)+len(src))
	for _, job := range dst {
		seen[job.ID] = struct{}{}
	}
	for _, job := range src {
		if _, ok := seen[job.ID]; ok {
			continue
		}
		seen[job.ID] = struct{}{}
		dst = append(dst, job)
	}
	return dst
}
