package ui

import "github.com/charmbracelet/lipgloss"

// Palette: plain text for content, one accent for paths and ids, muted gray
// for hints. Success and failure use symbols rather than colour.
const accentHex = "#A78BFA"

var (
	// Accent style for file paths, record ids, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(accentHex))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)
)
