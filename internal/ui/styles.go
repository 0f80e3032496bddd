package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across all TUI components
var (
	Pink   = lipgloss.Color("205") // user messages, accents
	Orange = lipgloss.Color("208") // model name
	Grey   = lipgloss.Color("8")   // muted text, thinking
	Red    = lipgloss.Color("9")   // errors
	White  = lipgloss.Color("15")  // header text
)

// Styles returns styled text helpers bound to a renderer
type Styles struct {
	renderer *lipgloss.Renderer

	Title    lipgloss.Style
	Model    lipgloss.Style
	User     lipgloss.Style
	Thinking lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles creates a new Styles instance for the given output
func NewStyles(output *os.File) *Styles {
	r := lipgloss.NewRenderer(output)

	return &Styles{
		renderer: r,

		Title: r.NewStyle().
			Bold(true).
			Foreground(White),

		Model: r.NewStyle().
			Bold(true).
			Foreground(Orange),

		User: r.NewStyle().
			Bold(true).
			Foreground(Pink),

		Thinking: r.NewStyle().
			Foreground(Grey).
			Italic(true),

		Error: r.NewStyle().
			Foreground(Red),

		Muted: r.NewStyle().
			Foreground(Grey),
	}
}
