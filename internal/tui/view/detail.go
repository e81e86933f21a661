package view

import (
	"strings"
	"time"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
	"github.com/glabrego/jobtriage-cli/internal/render/description"
)

type WrapFunc func(string, int) []string

func DetailMetaLines(job jobs.Job, width int, wrap WrapFunc) []string {
	lines := make([]string, 0, 16)
	title := JobLabel(job)
	lines = append(lines, wrap(title, width)...)
	lines = append(lines, strings.Repeat("=", max(1, min(width, len(title)))))
	lines = append(lines, "")

	if job.Location != "" {
		lines = append(lines, wrap("Location: "+job.Location, width)...)
	}
	if job.Salary != "" {
		lines = append(lines, wrap("Salary: "+job.Salary, width)...)
	}
	if !job.CreatedAt.IsZero() {
		lines = append(lines, "Created: "+job.CreatedAt.UTC().Format(time.RFC3339))
	}
	if job.URL != "" {
		lines = append(lines, wrap("URL: "+job.URL, width)...)
	}
	lines = append(lines, wrap("Flags: "+FlagList(job), width)...)
	return lines
}

// FlagList names the flags set on job.
func FlagList(job jobs.Job) string {
	set := make([]string, 0, len(jobs.AllFlags))
	for _, f := range jobs.AllFlags {
		if job.Flag(f) {
			set = append(set, string(f))
		}
	}
	if len(set) == 0 {
		return "none"
	}
	return strings.Join(set, ", ")
}

func DetailLines(job jobs.Job, contentWidth, horizontalMargin int, wrap WrapFunc) []string {
	lines := DetailMetaLines(job, contentWidth, wrap)
	if body := description.Lines(job, contentWidth); len(body) > 0 {
		lines = append(lines, "")
		lines = append(lines, body...)
	}
	return leftPadLines(lines, horizontalMargin)
}

func DetailMaxTop(linesLen, bodyHeight int) int {
	maxTop := linesLen - bodyHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}

func RenderDetailLines(lines []string, top, maxLines int) string {
	if len(lines) == 0 {
		return ""
	}
	if top < 0 {
		top = 0
	}
	if top > len(lines)-1 {
		top = len(lines) - 1
	}
	end := len(lines)
	if maxLines > 0 && top+maxLines < end {
		end = top + maxLines
	}
	return strings.Join(lines[top:end], "\n") + "\n"
}

func leftPadLines(lines []string, padding int) []string {
	if padding <= 0 || len(lines) == 0 {
		return lines
	}
	prefix := strings.Repeat(" ", padding)
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == "" {
			out[i] = line
			continue
		}
		out[i] = prefix + line
	}
	return out
}
