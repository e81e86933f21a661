package view

import (
	"strings"
	"testing"
	"time"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

func TestDetailLines_MetaAndDescription(t *testing.T) {
	job := jobs.Job{
		Title:       "Go Developer",
		Company:     "Acme",
		Location:    "Remote",
		Salary:      "100k",
		URL:         "https://example.com/jobs/1",
		CreatedAt:   time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		Seen:        true,
		Applied:     true,
		Description: "<p>Build services.</p>",
	}
	lines := DetailLines(job, 60, 2, func(s string, _ int) []string { return []string{s} })
	joined := stripANSI(strings.Join(lines, "\n"))
	for _, want := range []string{
		"  Go Developer @ Acme",
		"  Location: Remote",
		"  Salary: 100k",
		"  Created: 2026-02-01T12:00:00Z",
		"  Flags: seen, applied",
		"  Build services.",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in detail, got:\n%s", want, joined)
		}
	}
}

func TestFlagList(t *testing.T) {
	if got := FlagList(jobs.Job{}); got != "none" {
		t.Fatalf("unexpected empty flag list: %q", got)
	}
	if got := FlagList(jobs.Job{Closed: true, EasyApply: true}); got != "closed, easy_apply" {
		t.Fatalf("unexpected flag list: %q", got)
	}
}

func TestRenderDetailLines(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}
	if got := RenderDetailLines(lines, 1, 2); got != "b\nc\n" {
		t.Fatalf("unexpected window: %q", got)
	}
	if got := RenderDetailLines(lines, 10, 2); got != "d\n" {
		t.Fatalf("expected top clamped to last line, got %q", got)
	}
	if got := DetailMaxTop(4, 10); got != 0 {
		t.Fatalf("expected 0 max top, got %d", got)
	}
	if got := DetailMaxTop(10, 4); got != 6 {
		t.Fatalf("expected 6 max top, got %d", got)
	}
}
