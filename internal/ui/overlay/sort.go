package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/quadrant/internal/domain"
)

// SortOption represents a sort option with metadata
type SortOption struct {
	Key         string
	Field       domain.SortField
	Description string
}

// SortChange is the value of the SelectionMsg a SortMenu sends
type SortChange struct {
	Sort      domain.Sort
	DoneOrder domain.SortOrder
}

// SortMenu is a menu overlay for ordering the active lanes and the done lane
type SortMenu struct {
	sort      domain.Sort
	doneOrder domain.SortOrder
	options   []SortOption
	styles    *Styles
}

// NewSortMenu creates a new sort menu seeded with the current orders
func NewSortMenu(sort domain.Sort, doneOrder domain.SortOrder) *SortMenu {
	return &SortMenu{
		sort:      sort,
		doneOrder: doneOrder,
		styles:    New(),
		options: []SortOption{
			{Key: "c", Field: domain.SortByCreated, Description: "Order tasks were added"},
			{Key: "d", Field: domain.SortByDeadline, Description: "Earliest deadline first, no deadline last"},
			{Key: "e", Field: domain.SortByEstimate, Description: "Shortest estimate first"},
			{Key: "t", Field: domain.SortByTitle, Description: "Alphabetical"},
		},
	}
}

// Init initializes the menu
func (m *SortMenu) Init() tea.Cmd {
	return nil
}

func (m *SortMenu) emit(key string) tea.Cmd {
	return selectCmd(key, SortChange{Sort: m.sort, DoneOrder: m.doneOrder})
}

// Update handles messages
func (m *SortMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := keyMsg.String()
	switch key {
	case "esc", "q":
		return m, closeCmd
	case "D":
		m.doneOrder = m.doneOrder.Flip()
		return m, m.emit(key)
	}

	for _, opt := range m.options {
		if opt.Key == key {
			// Same field flips the direction
			m.sort.Toggle(opt.Field)
			return m, m.emit(key)
		}
	}
	return m, nil
}

func arrow(order domain.SortOrder) string {
	if order == domain.SortDesc {
		return "↓"
	}
	return "↑"
}

// View renders the menu
func (m *SortMenu) View() string {
	var b strings.Builder

	b.WriteString(m.styles.MenuHeader.Render("Active lanes"))
	b.WriteString("\n")

	for _, opt := range m.options {
		isActive := m.sort.Field == opt.Field

		keyStyle := m.styles.MenuItem
		labelStyle := m.styles.MenuItem
		if isActive {
			keyStyle = m.styles.MenuKey
			labelStyle = m.styles.MenuItemActive
		}

		b.WriteString(keyStyle.Render("[" + opt.Key + "]"))
		b.WriteString(" ")
		b.WriteString(labelStyle.Render(opt.Field.Label()))
		b.WriteString(" ")
		b.WriteString(m.styles.Suggestion.Render("(" + opt.Description + ")"))
		if isActive {
			b.WriteString(" ")
			b.WriteString(m.styles.MenuItemActive.Render("● " + arrow(m.sort.Order)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MenuHeader.Render("Done lane"))
	b.WriteString("\n")

	order := "newest first"
	if m.doneOrder == domain.SortAsc {
		order = "oldest first"
	}
	b.WriteString(m.styles.MenuKey.Render("[D]"))
	b.WriteString(" ")
	b.WriteString(m.styles.MenuItem.Render("Completion date: "))
	b.WriteString(m.styles.MenuItemActive.Render(order + " " + arrow(m.doneOrder)))
	b.WriteString("\n")

	b.WriteString(m.styles.Footer.Render("Press same key to toggle direction • Esc to close"))

	return b.String()
}

// Title returns the overlay title
func (m *SortMenu) Title() string {
	return "Sort"
}

// Size returns the overlay dimensions
func (m *SortMenu) Size() (width, height int) {
	return 72, len(m.options) + 9
}
