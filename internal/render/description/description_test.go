package description

import (
	"strings"
	"testing"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

func plainLines(job jobs.Job, width int) []string {
	lines := Lines(job, width)
	for i := range lines {
		lines[i] = stripANSI(lines[i])
	}
	return lines
}

func TestLines_PlainTextIsWrapped(t *testing.T) {
	job := jobs.Job{Description: "We are hiring a backend engineer to build & run services."}
	got := plainLines(job, 20)
	for _, line := range got {
		if visibleLen(line) > 20 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
	if !strings.Contains(strings.Join(got, " "), "& run") {
		t.Fatalf("expected text preserved, got %q", got)
	}
}

func TestLines_RendersCommonElements(t *testing.T) {
	job := jobs.Job{
		Description: `<h2>About the role</h2>
			<p>Join our <strong>platform</strong> team. Apply at <a href="https://example.com/apply">our site</a>.</p>
			<ul><li>Go</li><li>PostgreSQL<ul><li>replication</li></ul></li></ul>
			<ol><li>Screen</li><li>Onsite</li></ol>
			<script>track()</script>`,
	}
	got := strings.Join(plainLines(job, 80), "\n")

	for _, want := range []string{
		"About the role",
		"Join our platform team.",
		"our site (https://example.com/apply)",
		"• Go",
		"  ◦ replication",
		"1. Screen",
		"2. Onsite",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
	if strings.Contains(got, "track()") {
		t.Fatalf("script content leaked into output:\n%s", got)
	}
}

func TestLines_AppendsComments(t *testing.T) {
	comments := "Recruiter: Ana"
	job := jobs.Job{Description: "<p>Remote first.</p>", Comments: &comments}
	got := plainLines(job, 80)
	if len(got) != 4 || got[2] != "Comments" || got[3] != "Recruiter: Ana" {
		t.Fatalf("unexpected lines: %q", got)
	}
}

func TestLines_Empty(t *testing.T) {
	if got := Lines(jobs.Job{}, 80); len(got) != 0 {
		t.Fatalf("expected no lines, got %q", got)
	}
}

func TestText_IsUnstyled(t *testing.T) {
	got := Text(jobs.Job{Description: "<p><b>Senior</b> role</p>"})
	if got != "Senior role" {
		t.Fatalf("unexpected text: %q", got)
	}
}
