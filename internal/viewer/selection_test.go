package viewer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

func TestSelection_SelectIsManualAndStamped(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var s Selection
	s.Select(makeJobs(1, 2, 3), 2, now)

	assert.Equal(t, SelectManual, s.Mode)
	assert.Equal(t, []int64{2}, s.IDs())
	assert.Equal(t, int64(2), s.FocusID)
	assert.Equal(t, 1, s.FocusIndex)
	assert.Equal(t, now, s.LastManual)
}

func TestSelection_ToggleOutOfAllDegradesToManual(t *testing.T) {
	var s Selection
	s.ToggleAll()
	assert.Equal(t, SelectAllMatching, s.Mode)
	assert.True(t, s.IsSelected(99))

	s.Toggle(4, t0)
	assert.Equal(t, SelectManual, s.Mode)
	assert.Equal(t, []int64{4}, s.IDs())
	assert.False(t, s.IsSelected(99))

	s.Toggle(7, t0)
	s.Toggle(4, t0)
	assert.Equal(t, []int64{7}, s.IDs())

	s.Toggle(7, t0)
	assert.Equal(t, SelectNone, s.Mode)
}

func TestSelection_ToggleIsStamped(t *testing.T) {
	var s Selection
	now := t0.Add(time.Minute)
	s.Toggle(4, now)
	assert.Equal(t, now, s.LastManual)
}

func TestSelection_ToggleAllNeverPassesThroughManual(t *testing.T) {
	var s Selection
	s.Toggle(1, t0)
	s.ToggleAll()
	assert.Equal(t, SelectAllMatching, s.Mode)
	assert.Nil(t, s.IDs())
	s.ToggleAll()
	assert.Equal(t, SelectNone, s.Mode)
}

func TestSelection_Target(t *testing.T) {
	c := jobs.DefaultCriteria(20)
	c.SalaryRegex = "^1[0-9]{5}$"
	c.Page = 3

	var s Selection
	assert.True(t, s.Target(c).Empty())

	s.Toggle(9, t0)
	s.Toggle(3, t0)
	assert.Equal(t, jobs.BulkTarget{IDs: []int64{3, 9}}, s.Target(c))
	assert.Equal(t, 2, s.Count(100))

	s.ToggleAll()
	target := s.Target(c)
	assert.True(t, target.SelectAll)
	assert.Equal(t, "^1[0-9]{5}$", target.Criteria.SalaryRegex)
	assert.Equal(t, 1, target.Criteria.Page)
	assert.Equal(t, 100, s.Count(100))
}

func TestSelection_Navigate(t *testing.T) {
	now := time.Now()
	items := makeJobs(1, 2, 3)
	var s Selection

	assert.Equal(t, NavMoved, s.Navigate(items, 1, false, now))
	assert.Equal(t, int64(1), s.FocusID)

	assert.Equal(t, NavNone, s.Navigate(items, -1, false, now))
	assert.Equal(t, int64(1), s.FocusID)

	s.Navigate(items, 1, false, now)
	s.Navigate(items, 1, false, now)
	assert.Equal(t, int64(3), s.FocusID)

	assert.Equal(t, NavNone, s.Navigate(items, 1, false, now))
	assert.Equal(t, NavNeedsMore, s.Navigate(items, 1, true, now))
	assert.Equal(t, int64(3), s.FocusID)
	assert.Equal(t, SelectNone, s.Mode, "navigation moves focus only")
}

func TestSelection_RestoreDropsMissingFocus(t *testing.T) {
	var s Selection
	s.Select(makeJobs(1, 2, 3), 3, time.Now())

	s.Restore(makeJobs(3, 1))
	assert.Equal(t, 0, s.FocusIndex)
	assert.Equal(t, int64(3), s.FocusID)

	s.Restore(makeJobs(1))
	assert.Zero(t, s.FocusID)
}
