package view

import (
	"regexp"
	"strings"
	"testing"

	tuitheme "github.com/glabrego/jobtriage-cli/internal/tui/theme"
)

var ansiStrip = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiStrip.ReplaceAllString(s, "")
}

func TestToolbar(t *testing.T) {
	if got := Toolbar(false); !strings.Contains(got, "j/k move") {
		t.Fatalf("unexpected list toolbar: %q", got)
	}
	if got := Toolbar(true); !strings.Contains(got, "j/k scroll") {
		t.Fatalf("unexpected detail toolbar: %q", got)
	}
}

func TestFooter(t *testing.T) {
	th := tuitheme.Default()
	got := stripANSI(Footer(FooterInfo{Mode: "list", Criteria: "-closed", Shown: 20, Total: 42, Marked: 3, Preset: "remote"}, th))
	for _, want := range []string{"mode list", "filter -closed", "20/42 shown", "3 marked", "preset remote"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in footer, got %q", want, got)
		}
	}
	got = stripANSI(Footer(FooterInfo{Mode: "list", Criteria: "all"}, th))
	if strings.Contains(got, "marked") || strings.Contains(got, "preset") {
		t.Fatalf("expected optional parts omitted, got %q", got)
	}
}

func TestMessage(t *testing.T) {
	th := tuitheme.Default()
	if got := stripANSI(Message(false, false, "", "", th)); !strings.Contains(got, "state: idle | Ready") {
		t.Fatalf("unexpected idle message: %q", got)
	}
	if got := stripANSI(Message(true, false, "", "", th)); !strings.Contains(got, "state: loading") {
		t.Fatalf("unexpected loading message: %q", got)
	}
	if got := stripANSI(Message(false, true, "", "boom", th)); !strings.Contains(got, "state: warning | boom") {
		t.Fatalf("unexpected warning message: %q", got)
	}
}

func TestNewJobsBadge(t *testing.T) {
	th := tuitheme.Default()
	if got := NewJobsBadge(0, th); got != "" {
		t.Fatalf("expected no badge, got %q", got)
	}
	if got := stripANSI(NewJobsBadge(1, th)); got != "1 new job (R to reload)" {
		t.Fatalf("unexpected badge: %q", got)
	}
	if got := stripANSI(NewJobsBadge(4, th)); got != "4 new jobs (R to reload)" {
		t.Fatalf("unexpected badge: %q", got)
	}
}

func TestConfirmLine(t *testing.T) {
	got := stripANSI(ConfirmLine("Delete job #3?", tuitheme.Default()))
	if got != "Confirm: Delete job #3? [y/n]" {
		t.Fatalf("unexpected confirm line: %q", got)
	}
}
