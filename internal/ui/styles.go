package ui

import "github.com/charmbracelet/lipgloss"

// Terminal palette.
const (
	ColorBlue   = "#58a6ff"
	ColorGreen  = "#3fb950"
	ColorRed    = "#f85149"
	ColorYellow = "#d29922"
	ColorCyan   = "#39c5cf"
	ColorGray   = "#8b949e"
)

// Styles holds the lipgloss styles used for console output.
type Styles struct {
	Title   lipgloss.Style
	License lipgloss.Style
	Step    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	File    lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles creates the style set bound to a renderer.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorBlue)),

		License: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorRed)),

		Step: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorBlue)),

		Success: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorGreen)),

		Warning: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorYellow)),

		Error: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorRed)),

		File: r.NewStyle().
			Foreground(lipgloss.Color(ColorCyan)),

		Muted: r.NewStyle().
			Foreground(lipgloss.Color(ColorGray)),
	}
}
