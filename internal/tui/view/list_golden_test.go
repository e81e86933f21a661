package view

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tuitheme "github.com/glabrego/jobtriage-cli/internal/tui/theme"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

var updateViewGolden = flag.Bool("update-view-golden", false, "update view golden files")

func TestListRendering_Golden(t *testing.T) {
	th := tuitheme.Default()
	now := time.Date(2026, 2, 11, 16, 0, 0, 0, time.UTC)

	lines := []string{
		AllMatchingBanner(57, th),
		RenderJobLine(JobLineParams{
			Job: jobs.Job{
				ID:        42,
				Title:     "Backend Engineer",
				Company:   "Acme",
				Flagged:   true,
				CreatedAt: now.Add(-3 * time.Hour),
			},
			Now:     now,
			Active:  true,
			Checked: true,
			Width:   60,
		}, th),
		RenderJobLine(JobLineParams{
			Job: jobs.Job{
				ID:        7,
				Title:     "Site Reliability Engineer",
				Company:   "Globex Corporation International",
				Seen:      true,
				Applied:   true,
				Interview: true,
				CreatedAt: now.Add(-2 * 24 * time.Hour),
			},
			Now:   now,
			Width: 60,
		}, th),
		NewJobsBadge(2, th),
	}
	got := stripANSI(strings.Join(lines, "\n"))
	assertViewGolden(t, "list_rendering.golden", got)
}

func assertViewGolden(t *testing.T, name, got string) {
	t.Helper()
	path := filepath.Join("testdata", name)
	if *updateViewGolden {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got+"\n"), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
	}

	wantBytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	want := strings.TrimRight(string(wantBytes), "\n")
	got = strings.TrimRight(got, "\n")
	if got != want {
		t.Fatalf("golden mismatch for %s\n--- got ---\n%s\n--- want ---\n%s", name, got, want)
	}
}
