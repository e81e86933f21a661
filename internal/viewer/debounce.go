package viewer

import "github.com/glabrego/jobtriage-cli/internal/jobs"

// SaveKey identifies one debounced field of one job. The job id is
// captured at edit time so a save never follows the focus elsewhere.
type SaveKey struct {
	JobID int64
	Field jobs.Field
}

// Debouncer coalesces rapid edits per SaveKey. Every Schedule returns a
// sequence number; only the latest one for a key is ever due.
type Debouncer struct {
	seq     int
	latest  map[SaveKey]int
	pending map[SaveKey]string
}

// Schedule records value as the pending save for key and supersedes any
// earlier pending save for the same key.
func (d *Debouncer) Schedule(key SaveKey, value string) int {
	if d.latest == nil {
		d.latest = make(map[SaveKey]int)
		d.pending = make(map[SaveKey]string)
	}
	d.seq++
	d.latest[key] = d.seq
	d.pending[key] = value
	return d.seq
}

// Due is called when the timer for (key, seq) fires. It returns the value
// to send only when seq is still the latest for key.
func (d *Debouncer) Due(key SaveKey, seq int) (string, bool) {
	if d.latest[key] != seq {
		return "", false
	}
	value := d.pending[key]
	delete(d.latest, key)
	delete(d.pending, key)
	return value, true
}

// Pending returns the unsent value for key.
func (d Debouncer) Pending(key SaveKey) (string, bool) {
	v, ok := d.pending[key]
	return v, ok
}

// Len is the number of keys with an unsent value.
func (d Debouncer) Len() int {
	return len(d.pending)
}
