package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleKey     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleFrame   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)
