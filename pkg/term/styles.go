package term

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan  = lipgloss.Color("36")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleScrim  = lipgloss.NewStyle().Foreground(colorDim).Faint(true)
	styleButton = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(colorCyan)
	styleLabel  = lipgloss.NewStyle().Foreground(colorWhite)
	styleHelp   = lipgloss.NewStyle().Foreground(colorGray)

	// BubbleStyle frames step content.
	BubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Padding(0, 1)

	styleBubbleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)
