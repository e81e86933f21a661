package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

func TestStyleJobTitle_ByFlags(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := Default()

	for name, job := range map[string]jobs.Job{
		"unseen":    {},
		"seen":      {Seen: true},
		"applied":   {Seen: true, Applied: true},
		"flagged":   {Flagged: true},
		"discarded": {Discarded: true, Flagged: true},
	} {
		got := th.StyleJobTitle(job, "Backend Engineer")
		if !strings.Contains(got, "\x1b[") {
			t.Fatalf("expected styled %s title, got %q", name, got)
		}
		if !strings.Contains(got, "Backend Engineer") {
			t.Fatalf("expected %s title text preserved, got %q", name, got)
		}
	}

	if got := th.StyleJobTitle(jobs.Job{}, ""); got != "" {
		t.Fatalf("expected empty title untouched, got %q", got)
	}
}

func TestRenderActiveLine(t *testing.T) {
	th := Default()
	if got := th.RenderActiveLine(false, "row"); got != "row" {
		t.Fatalf("expected inactive line untouched, got %q", got)
	}
}
