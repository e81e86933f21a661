package viewer

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

const (
	ParamJobID = "jobId"
	ParamIDs   = "ids"

	// ManualSelectionGuard is how long a manual selection wins over a
	// jobId link that may still describe the previous selection.
	ManualSelectionGuard = 500 * time.Millisecond
)

// LinkResult is the outcome of one reconciliation pass.
type LinkResult struct {
	// Criteria is set when a channel rewrote the criteria.
	Criteria *jobs.Criteria
	// JobID is the job a jobId link asked to focus.
	JobID int64
	// Skipped is true when a jobId link lost to a recent manual selection.
	Skipped bool
}

func (r LinkResult) Empty() bool {
	return r.Criteria == nil && r.JobID == 0 && !r.Skipped
}

// DeepLinks holds the query parameters of the current location. Both
// channels are one-shot: a parameter is removed as soon as a pass reads
// it, whatever the outcome.
type DeepLinks struct {
	location url.Values
}

// SetLocation replaces the location. raw may be a full URL or a bare
// query string.
func (d *DeepLinks) SetLocation(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.location = nil
		return nil
	}
	query := raw
	if strings.Contains(raw, "://") || strings.HasPrefix(raw, "/") {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("parse link: %w", err)
		}
		query = u.RawQuery
	}
	query = strings.TrimPrefix(query, "?")
	values, err := url.ParseQuery(query)
	if err != nil {
		return fmt.Errorf("parse link query: %w", err)
	}
	d.location = values
	return nil
}

// Location returns the encoded remaining query.
func (d DeepLinks) Location() string {
	return d.location.Encode()
}

func (d DeepLinks) Has(param string) bool {
	return d.location.Has(param)
}

// Reconcile consumes the ids and jobId parameters. The ids channel runs
// first; a jobId link in the same location narrows further to its job.
func (d *DeepLinks) Reconcile(current jobs.Criteria, lastManual, now time.Time) LinkResult {
	var res LinkResult

	if d.location.Has(ParamIDs) {
		raw := d.location.Get(ParamIDs)
		d.location.Del(ParamIDs)
		if ids := parseIDList(raw); len(ids) > 0 {
			c := current.Clone()
			c.Predicate = jobs.IDsPredicate(ids)
			c.ClearFlags()
			c.Page = 1
			res.Criteria = &c
		}
	}

	if d.location.Has(ParamJobID) {
		raw := d.location.Get(ParamJobID)
		d.location.Del(ParamJobID)
		if !lastManual.IsZero() && now.Sub(lastManual) < ManualSelectionGuard {
			res.Skipped = true
			return res
		}
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || id <= 0 {
			return res
		}
		base := current
		if res.Criteria != nil {
			base = *res.Criteria
		}
		c := base.Clone()
		c.Predicate = jobs.IDPredicate(id)
		c.Search = ""
		c.ClearFlags()
		c.MaxAgeDays = 0
		c.Page = 1
		res.Criteria = &c
		res.JobID = id
	}
	return res
}

// Permalink renders a link that reopens job id. base is the link prefix,
// for example "jobtriage://jobs".
func Permalink(base string, id int64) string {
	q := url.Values{}
	q.Set(ParamJobID, strconv.FormatInt(id, 10))
	return strings.TrimRight(base, "?") + "?" + q.Encode()
}

func parseIDList(raw string) []int64 {
	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))
	seen := make(map[int64]struct{}, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
