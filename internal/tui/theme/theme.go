package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Banner     lipgloss.Style
	NewBadge   lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style
	Prompt     lipgloss.Style
	FlagOn     lipgloss.Style
	FlagOff    lipgloss.Style

	TitleUnseen  lipgloss.Style
	TitleApplied lipgloss.Style
	TitleFlagged lipgloss.Style
	TitleSeen    lipgloss.Style
	TitleGone    lipgloss.Style
}

func Default() Theme {
	cpRosewater := lipgloss.Color("#f5e0dc")
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay0 := lipgloss.Color("#6c7086")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:   lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Banner:     lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		NewBadge:   lipgloss.NewStyle().Foreground(cpYellow).Bold(true),
		ActiveLine: lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:  lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:  lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:  lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:  lipgloss.NewStyle().Foreground(cpPeach),
		Prompt:     lipgloss.NewStyle().Bold(true).Foreground(cpPeach),
		FlagOn:     lipgloss.NewStyle().Foreground(cpGreen),
		FlagOff:    lipgloss.NewStyle().Foreground(cpOverlay0),

		TitleUnseen:  lipgloss.NewStyle().Bold(true).Foreground(cpText),
		TitleApplied: lipgloss.NewStyle().Foreground(cpGreen),
		TitleFlagged: lipgloss.NewStyle().Bold(true).Italic(true).Foreground(cpRosewater),
		TitleSeen:    lipgloss.NewStyle().Foreground(cpSubtext0),
		TitleGone:    lipgloss.NewStyle().Strikethrough(true).Foreground(cpOverlay1),
	}
}

// StyleJobTitle picks the title style from the job's status flags.
func (t Theme) StyleJobTitle(job jobs.Job, title string) string {
	if title == "" {
		return title
	}
	switch {
	case job.Discarded || job.Ignored || job.Closed:
		return t.TitleGone.Render(title)
	case job.Flagged || job.Liked:
		return t.TitleFlagged.Render(title)
	case job.Applied || job.Interview:
		return t.TitleApplied.Render(title)
	case !job.Seen:
		return t.TitleUnseen.Render(title)
	default:
		return t.TitleSeen.Render(title)
	}
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
