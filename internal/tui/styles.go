package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorAccent  = lipgloss.Color("#F2C94C")
	ColorSuccess = lipgloss.Color("#27AE60")
	ColorDanger  = lipgloss.Color("#EB5757")
	ColorMuted   = lipgloss.Color("#828282")
	ColorBorder  = lipgloss.Color("#4F4F4F")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	BestRowStyle     = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	MutedStyle       = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle       = lipgloss.NewStyle().Foreground(ColorDanger)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Bold(true)

	StatusBarStyle = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)
	StatusKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
)
