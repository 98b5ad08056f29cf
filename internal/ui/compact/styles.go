package compact

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/ui/styles"
)

// Styles holds the styling for the compact list view
type Styles struct {
	HeaderCell lipgloss.Style
	Separator  lipgloss.Style

	Row         lipgloss.Style
	RowActive   lipgloss.Style
	RowSelected lipgloss.Style

	Muted    lipgloss.Style
	Overdue  lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
}

// NewStyles creates a new Styles instance with Catppuccin Macchiato theme
func NewStyles() *Styles {
	return &Styles{
		HeaderCell: lipgloss.NewStyle().
			Foreground(styles.Text).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(styles.Surface1),

		Row: lipgloss.NewStyle().
			Foreground(styles.Text),

		RowActive: lipgloss.NewStyle().
			Foreground(styles.Text).
			Background(styles.Surface0),

		RowSelected: lipgloss.NewStyle().
			Foreground(styles.Text).
			Background(styles.Surface1),

		Muted: lipgloss.NewStyle().
			Foreground(styles.Overlay1),

		Overdue: lipgloss.NewStyle().
			Foreground(styles.Red).
			Bold(true),

		Cursor: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(styles.Mauve).
			Bold(true),
	}
}

// Lane returns the lane cell style
func (s *Styles) Lane(q domain.Quadrant) lipgloss.Style {
	color, ok := styles.QuadrantColors[q]
	if !ok {
		color = styles.Subtext0
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// State returns the state cell style
func (s *Styles) State(state domain.State) lipgloss.Style {
	color, ok := styles.StateColors[state]
	if !ok {
		color = styles.Overlay0
	}
	return lipgloss.NewStyle().Foreground(color)
}
