package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#bb9af7"),
	Accent:    lipgloss.Color("#7dcfff"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Info:    lipgloss.Color("#7aa2f7"),
}

// Current holds the active theme
var Current = TokyoNight

// Styles holds all the pre-computed styles for terminal output
type Styles struct {
	// Project tree
	Project  lipgloss.Style
	TaskName lipgloss.Style
	TaskDone lipgloss.Style
	TaskID   lipgloss.Style

	// Priority badges, indexed by models.Priority
	Priority [4]lipgloss.Style

	// Task details
	Label lipgloss.Style
	Value lipgloss.Style

	// Messages
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style

	// Prompt
	Question lipgloss.Style
	Hint     lipgloss.Style
}

// NewStyles creates styles based on the current theme. Styles are bound to r
// so output that is not a terminal comes out as plain text.
func NewStyles(r *lipgloss.Renderer) *Styles {
	t := Current
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	return &Styles{
		Project: r.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TaskName: r.NewStyle().
			Foreground(t.Foreground),

		TaskDone: r.NewStyle().
			Foreground(t.ForegroundDim).
			Strikethrough(true),

		TaskID: r.NewStyle().
			Foreground(t.Accent),

		Priority: [4]lipgloss.Style{
			r.NewStyle().Foreground(t.ForegroundDim),
			r.NewStyle().Foreground(t.Info),
			r.NewStyle().Foreground(t.Warning),
			r.NewStyle().Foreground(t.Error).Bold(true),
		},

		Label: r.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		Value: r.NewStyle().
			Foreground(t.Foreground),

		Muted: r.NewStyle().
			Foreground(t.ForegroundDim),

		Success: r.NewStyle().
			Foreground(t.Success),

		Error: r.NewStyle().
			Foreground(t.Error).
			Bold(true),

		Question: r.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Hint: r.NewStyle().
			Foreground(t.ForegroundDim),
	}
}
