package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): primary text
// - Accent (soft green #34D399): highlights, paths, counts
// - Muted (gray): secondary info, hints
// - No colored success/error/warning - use unicode symbols only

const defaultAccent = "#34D399"

var (
	// Accent style for file paths, plant ids, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)

	accentColor = defaultAccent
	plainOutput bool
)

// ConfigureTheme applies the configured accent color. Accepts ANSI color
// codes ("0" to "255") or hex colors ("#RRGGBB"); "none" disables styling
// entirely. An empty value keeps the default.
func ConfigureTheme(accent string) {
	if accent == "none" {
		plainOutput = true
		Accent = lipgloss.NewStyle()
		Muted = lipgloss.NewStyle()
		Bold = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle()
		accentColor = ""
		return
	}
	if accent == "" {
		return
	}
	plainOutput = false
	accentColor = accent
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(accent))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	Bold = lipgloss.NewStyle().Bold(true)
}

// AccentColor returns the active accent color, or ok=false when styling is
// disabled.
func AccentColor() (string, bool) {
	if plainOutput || accentColor == "" {
		return "", false
	}
	return accentColor, true
}
