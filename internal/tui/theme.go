package tui

import "charm.land/lipgloss/v2"

// Color palette, muted and readable on dark terminals.
var (
	colorPrompt  = lipgloss.Color("#F8FAFC") // near white
	colorDim     = lipgloss.Color("#94A3B8") // slate
	colorCorrect = lipgloss.Color("#22C55E") // green
	colorPartial = lipgloss.Color("#F59E0B") // amber
	colorWrong   = lipgloss.Color("#F43F5E") // rose
	colorAccent  = lipgloss.Color("#14B8A6") // teal
	colorBorder  = lipgloss.Color("#334155") // slate
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(colorPrompt).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	correctStyle = lipgloss.NewStyle().
			Foreground(colorCorrect).
			Bold(true)

	partialStyle = lipgloss.NewStyle().
			Foreground(colorPartial).
			Bold(true)

	wrongStyle = lipgloss.NewStyle().
			Foreground(colorWrong).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	ruleStyle = lipgloss.NewStyle().
			Foreground(colorBorder)
)
