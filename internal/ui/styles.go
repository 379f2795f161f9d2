package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): primary text
// - Accent (soft teal #2DD4BF): tags, paths, highlights
// - Muted (gray): secondary info, skip reports
// - No colored success/error/warning - use unicode symbols only

var (
	// Accent style for tags, file paths, and highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DD4BF"))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)
