package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): primary text
// - Accent (soft teal #5EEAD4): field paths, entity names
// - Muted (gray): secondary info

var (
	// Accent style for field paths, entity names, and matches
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#5EEAD4"))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)
)
