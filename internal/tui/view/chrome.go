package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/jobtriage-cli/internal/tui/theme"
)

func Toolbar(inDetail bool) string {
	if inDetail {
		return "j/k scroll | [ ] prev/next | s/a/d/f toggle | e comments | O open | y link | esc back | ? help"
	}
	return "j/k move | enter open | space mark | A all | / search | 1-9 filters | x delete | n new | R reload | ? help"
}

// FooterInfo is what the footer reports about the list.
type FooterInfo struct {
	Mode     string
	Criteria string
	Shown    int
	Total    int
	Marked   int
	Preset   string
}

func Footer(info FooterInfo, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("mode") + " " + th.MetaValue.Render(info.Mode),
		th.MetaLabel.Render("filter") + " " + th.MetaValue.Render(info.Criteria),
		th.MetaValue.Render(fmt.Sprintf("%d/%d shown", info.Shown, info.Total)),
	}
	if info.Marked > 0 {
		parts = append(parts, th.MetaValue.Render(fmt.Sprintf("%d marked", info.Marked)))
	}
	if info.Preset != "" {
		parts = append(parts, th.MetaLabel.Render("preset")+" "+th.MetaValue.Render(info.Preset))
	}
	return strings.Join(parts, " • ")
}

func Message(loading bool, hasWarning bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}

// AllMatchingBanner is shown while every job matching the criteria is
// selected, loaded or not.
func AllMatchingBanner(total int, th tuitheme.Theme) string {
	return th.Banner.Render(fmt.Sprintf("All %d matching jobs selected (A to clear)", total))
}

func NewJobsBadge(count int, th tuitheme.Theme) string {
	if count <= 0 {
		return ""
	}
	noun := "jobs"
	if count == 1 {
		noun = "job"
	}
	return th.NewBadge.Render(fmt.Sprintf("%d new %s (R to reload)", count, noun))
}

func ConfirmLine(message string, th tuitheme.Theme) string {
	return th.Prompt.Render("Confirm:") + " " + message + " [y/n]"
}
