package view

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	tuitheme "github.com/glabrego/jobtriage-cli/internal/tui/theme"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// markerFlags are the flags shown as single letters in a list row.
var markerFlags = []struct {
	flag   jobs.Flag
	letter string
}{
	{jobs.FlagApplied, "A"},
	{jobs.FlagFlagged, "F"},
	{jobs.FlagLiked, "L"},
	{jobs.FlagInterview, "I"},
}

type JobLineParams struct {
	Job     jobs.Job
	Now     time.Time
	Active  bool
	Checked bool
	Width   int
}

func RenderJobLine(p JobLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	checkMarker := " "
	if p.Checked {
		checkMarker = "✓"
	}
	unseenMarker := " "
	if !p.Job.Seen {
		unseenMarker = "●"
	}

	prefix := fmt.Sprintf("  %s%s %s %s ", cursorMarker, checkMarker, unseenMarker, FlagMarkers(p.Job))
	dateLabel := "[" + RelativeTimeLabel(p.Now, p.Job.CreatedAt) + "]"
	available := p.Width - visibleLen(prefix) - 1 - visibleLen(dateLabel)
	if available < 1 {
		available = 1
	}

	label := truncateRunes(JobLabel(p.Job), available)
	styledTitle := th.StyleJobTitle(p.Job, label)
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(dateLabel)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, prefix+styledTitle+strings.Repeat(" ", gap)+dateLabel)
}

// FlagMarkers renders one column per marker flag, "·" when unset.
func FlagMarkers(job jobs.Job) string {
	var b strings.Builder
	for _, m := range markerFlags {
		if job.Flag(m.flag) {
			b.WriteString(m.letter)
		} else {
			b.WriteString("·")
		}
	}
	return b.String()
}

func JobLabel(job jobs.Job) string {
	title := strings.TrimSpace(job.Title)
	if title == "" {
		title = "(untitled)"
	}
	if company := strings.TrimSpace(job.Company); company != "" {
		return title + " @ " + company
	}
	return title
}

func RelativeTimeLabel(now, then time.Time) string {
	if now.IsZero() {
		now = time.Now()
	}
	if then.IsZero() {
		return "unknown"
	}
	if then.After(now) {
		return "just now"
	}
	d := now.Sub(then)
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		n := int(d / time.Minute)
		if n == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", n)
	}
	if d < 24*time.Hour {
		n := int(d / time.Hour)
		if n == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", n)
	}
	n := int(d / (24 * time.Hour))
	if n == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", n)
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
