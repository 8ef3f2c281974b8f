package tui

import "github.com/charmbracelet/lipgloss"

const (
	cellWidth    = 26
	cellHeight   = 2
	defaultWidth = 80
)

var (
	gold  = lipgloss.Color("#D4AF37")
	slate = lipgloss.Color("#1F2A36")
	muted = lipgloss.Color("240")
	red   = lipgloss.Color("#C0392B")

	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(gold).
			Background(slate).
			Padding(0, 1)

	greetingTitleStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	greetingTextStyle  = lipgloss.NewStyle().Foreground(muted)

	loaderStyle = lipgloss.NewStyle().MarginTop(1)

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Width(cellWidth).
			Height(cellHeight).
			Padding(0, 1)

	selectedCellStyle = cellStyle.BorderForeground(gold)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(gold).
			Padding(0, 1).
			MarginTop(1)

	detailTitleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle       = lipgloss.NewStyle().Foreground(muted)

	statusStyle  = lipgloss.NewStyle().Foreground(muted).MarginTop(1)
	failureStyle = lipgloss.NewStyle().Foreground(red)
)
