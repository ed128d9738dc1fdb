package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Query       lipgloss.Style
	ListBox     lipgloss.Style
	Row         lipgloss.Style
	RowActive   lipgloss.Style
	Desc        lipgloss.Style
	DescActive  lipgloss.Style
	Empty       lipgloss.Style
	Scroll      lipgloss.Style
	Help        lipgloss.Style
	Badge       lipgloss.Style
	Breadcrumb  lipgloss.Style
	Submenu     lipgloss.Style
	StatusInfo  lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusError lipgloss.Style
	Current     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Query: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		ListBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
		Row:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		RowActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Desc:       lipgloss.NewStyle().Faint(true),
		DescActive: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Faint(true),
		Empty:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Scroll:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Help:       lipgloss.NewStyle().Faint(true),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Breadcrumb:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Submenu:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		StatusInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		StatusWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Current:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	}
}

// Truncate cuts s to at most width cells, appending an ellipsis when content
// was dropped. Rows never wrap, so every rendered line goes through this.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// PadRight pads s with spaces to exactly width runes (truncating if longer)
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
