package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/quadrant/internal/domain"
)

// Styles holds all the UI styles
type Styles struct {
	// Board
	Board       lipgloss.Style
	Column      lipgloss.Style
	ColumnEmpty lipgloss.Style
	LaneHint    lipgloss.Style

	// Cards
	Card            lipgloss.Style
	CardActive      lipgloss.Style
	CardSelected    lipgloss.Style
	TaskTitle       lipgloss.Style
	TaskDescription lipgloss.Style

	// Card metadata
	Deadline  lipgloss.Style
	Overdue   lipgloss.Style
	Estimate  lipgloss.Style
	Completed lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Overlays
	Overlay          lipgloss.Style
	OverlayTitle     lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemActive   lipgloss.Style
	MenuItemDisabled lipgloss.Style
	MenuKey          lipgloss.Style
	Separator        lipgloss.Style
	FieldLabel       lipgloss.Style
	FieldError       lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Board: lipgloss.NewStyle().
			Background(Base),

		Column: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		ColumnEmpty: lipgloss.NewStyle().
			Foreground(Overlay0).
			Italic(true),

		LaneHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		CardActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Lavender).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Mauve).
			Padding(0, 1),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true),

		TaskDescription: lipgloss.NewStyle().
			Foreground(Subtext0),

		Deadline: lipgloss.NewStyle().
			Foreground(Sapphire),

		Overdue: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),

		Estimate: lipgloss.NewStyle().
			Foreground(Subtext0),

		Completed: lipgloss.NewStyle().
			Foreground(Green).
			Italic(true),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuItemDisabled: lipgloss.NewStyle().
			Foreground(Overlay0),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		FieldLabel: lipgloss.NewStyle().
			Foreground(Subtext1).
			Bold(true),

		FieldError: lipgloss.NewStyle().
			Foreground(Red),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}

// LaneHeader returns the header style for a lane
func (s *Styles) LaneHeader(q domain.Quadrant, active bool) lipgloss.Style {
	color, ok := QuadrantColors[q]
	if !ok {
		color = Subtext0
	}
	style := lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Padding(0, 1)
	if active {
		style = style.Background(Surface0).Underline(true)
	}
	return style
}

// StateBadge returns the badge style for a lifecycle state
func (s *Styles) StateBadge(state domain.State) lipgloss.Style {
	color, ok := StateColors[state]
	if !ok {
		color = Overlay0
	}
	return lipgloss.NewStyle().
		Foreground(Base).
		Background(color).
		Padding(0, 1).
		Bold(true)
}

// TagChip returns the chip style for a tag, colored from its palette entry
func (s *Styles) TagChip(name string) lipgloss.Style {
	c := domain.TagColorFor(name)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Text)).
		Background(lipgloss.Color(c.Bg)).
		Padding(0, 1)
}
