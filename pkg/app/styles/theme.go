package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/logolink/pkg/data"
)

var (
	// Color palette
	Primary   = lipgloss.Color("#FF6B9D")
	Secondary = lipgloss.Color("#C792EA")
	Success   = lipgloss.Color("#C3E88D")
	Warning   = lipgloss.Color("#FFCB6B")
	Error     = lipgloss.Color("#F07178")
	Info      = lipgloss.Color("#82AAFF")
	Muted     = lipgloss.Color("#546E7A")

	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 1)

	ActiveCardStyle = lipgloss.NewStyle().
			Border(ThickBorder).
			BorderForeground(Primary).
			Padding(0, 1)

	// Outcome styles
	StatusUpdated = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusMissing = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusSkipped = lipgloss.NewStyle().
			Foreground(Info)

	StatusError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Ratio bar
	ProgressBarStyle = lipgloss.NewStyle().
				Foreground(Primary)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(Muted)

	// Filter tabs
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Background(lipgloss.Color("#37474F")).
			Padding(0, 2).
			Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Padding(0, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)

	SummaryStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 2)
)

// StatusStyle picks the style for an outcome.
func StatusStyle(outcome data.Outcome) lipgloss.Style {
	switch outcome {
	case data.OutcomeUpdated:
		return StatusUpdated
	case data.OutcomeMissing:
		return StatusMissing
	case data.OutcomeSkipped:
		return StatusSkipped
	default:
		return MutedStyle
	}
}

// Glyph is the status marker printed in front of an outcome.
func Glyph(outcome data.Outcome) string {
	switch outcome {
	case data.OutcomeUpdated:
		return "✅"
	case data.OutcomeMissing:
		return "⚠️ "
	case data.OutcomeSkipped:
		return "⏭️ "
	default:
		return "•"
	}
}
