package overlay

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/quadrant/internal/domain"
)

// filterMode represents the current selection mode
type filterMode string

const (
	filterModeNormal filterMode = "normal"
	filterModeTags   filterMode = "tags"
	filterModeStatus filterMode = "status"
	filterModeDate   filterMode = "date"
)

// FilterChangedMsg is sent after every change the menu makes to the filter
type FilterChangedMsg struct{}

// FilterMenu is a menu overlay for task filtering
type FilterMenu struct {
	filter    *domain.Filter
	tags      []string
	tagCursor int
	now       func() time.Time
	styles    *Styles
	mode      filterMode
}

// NewFilterMenu creates a new filter menu editing filter in place. tags are
// the selectable tag names; now anchors the deadline presets.
func NewFilterMenu(filter *domain.Filter, tags []string, now func() time.Time) *FilterMenu {
	if now == nil {
		now = time.Now
	}
	return &FilterMenu{
		filter: filter,
		tags:   tags,
		now:    now,
		styles: New(),
		mode:   filterModeNormal,
	}
}

// Init initializes the menu
func (m *FilterMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *FilterMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.mode {
		case filterModeNormal:
			return m.handleNormalMode(msg)
		case filterModeTags:
			return m.handleTagsMode(msg)
		case filterModeStatus:
			return m.handleStatusMode(msg)
		case filterModeDate:
			return m.handleDateMode(msg)
		}
	}
	return m, nil
}

func filterChanged() tea.Msg {
	return FilterChangedMsg{}
}

// handleNormalMode handles keys in normal mode
func (m *FilterMenu) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, closeCmd

	case "t":
		if len(m.tags) > 0 {
			m.mode = filterModeTags
		}
		return m, nil

	case "s":
		m.mode = filterModeStatus
		return m, nil

	case "d":
		m.mode = filterModeDate
		return m, nil

	case "m":
		m.filter.TagMode = m.filter.TagMode.Toggle()
		return m, filterChanged

	case "i":
		m.filter.CycleImportant()
		return m, filterChanged

	case "u":
		m.filter.CycleUrgent()
		return m, filterChanged

	case "c":
		m.filter.Clear()
		return m, filterChanged
	}

	return m, nil
}

// handleTagsMode moves through the tag list and toggles entries
func (m *FilterMenu) handleTagsMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "t":
		m.mode = filterModeNormal
		return m, nil

	case "j", "down":
		if m.tagCursor < len(m.tags)-1 {
			m.tagCursor++
		}
		return m, nil

	case "k", "up":
		if m.tagCursor > 0 {
			m.tagCursor--
		}
		return m, nil

	case " ", "enter", "x":
		if m.tagCursor < len(m.tags) {
			m.filter.ToggleTag(m.tags[m.tagCursor])
			return m, filterChanged
		}
		return m, nil

	case "m":
		m.filter.TagMode = m.filter.TagMode.Toggle()
		return m, filterChanged
	}

	return m, nil
}

// handleStatusMode handles keys in status selection mode
func (m *FilterMenu) handleStatusMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	states := map[string]domain.State{
		"c": domain.StateCreated,
		"i": domain.StateInProgress,
		"w": domain.StateWIP,
		"d": domain.StateDone,
	}

	key := msg.String()
	if key == "esc" {
		m.mode = filterModeNormal
		return m, nil
	}
	if state, ok := states[key]; ok {
		m.filter.ToggleStatus(state)
		m.mode = filterModeNormal
		return m, filterChanged
	}
	return m, nil
}

// handleDateMode handles keys in deadline preset mode
func (m *FilterMenu) handleDateMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	presets := map[string]domain.DatePreset{
		"a": domain.DateAny,
		"o": domain.DateOverdue,
		"t": domain.DateToday,
		"w": domain.DateThisWeek,
	}

	key := msg.String()
	if key == "esc" {
		m.mode = filterModeNormal
		return m, nil
	}
	if preset, ok := presets[key]; ok {
		m.filter.SetDatePreset(preset, m.now())
		m.mode = filterModeNormal
		return m, filterChanged
	}
	return m, nil
}

// View renders the menu
func (m *FilterMenu) View() string {
	var b strings.Builder

	b.WriteString(m.renderTags())

	b.WriteString(m.renderFilterLine("Status", "s", []filterOption{
		{key: "c", label: "Created", active: m.filter.Status[domain.StateCreated]},
		{key: "i", label: "In Progress", active: m.filter.Status[domain.StateInProgress]},
		{key: "w", label: "WIP", active: m.filter.Status[domain.StateWIP]},
		{key: "d", label: "Done", active: m.filter.Status[domain.StateDone]},
	}, m.mode == filterModeStatus))

	b.WriteString(m.renderFilterLine("Deadline", "d", []filterOption{
		{key: "a", label: "Any", active: m.filter.DatePreset == domain.DateAny},
		{key: "o", label: "Overdue", active: m.filter.DatePreset == domain.DateOverdue},
		{key: "t", label: "Today", active: m.filter.DatePreset == domain.DateToday},
		{key: "w", label: "7 days", active: m.filter.DatePreset == domain.DateThisWeek},
	}, m.mode == filterModeDate))

	b.WriteString(m.styles.Separator.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")

	b.WriteString(m.renderFlag("i", "Important", m.filter.Important))
	b.WriteString(m.renderFlag("u", "Urgent", m.filter.Urgent))

	b.WriteString(m.styles.Separator.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")

	b.WriteString(m.styles.MenuKey.Render("[c]") + " " + m.styles.MenuItem.Render("Clear all filters"))
	b.WriteString("\n")

	// Footer hint based on mode
	var hint string
	switch m.mode {
	case filterModeTags:
		hint = "j/k: move • Space: toggle • m: any/all • Esc: back"
	case filterModeStatus, filterModeDate:
		hint = "Press key to toggle filter, Esc to cancel"
	}
	if hint != "" {
		b.WriteString(m.styles.Footer.Render(hint))
	}

	return b.String()
}

// filterOption represents a single filter option
type filterOption struct {
	key    string
	label  string
	active bool
}

// renderFilterLine renders a filter category line
func (m *FilterMenu) renderFilterLine(category string, categoryKey string, options []filterOption, selecting bool) string {
	var b strings.Builder

	// Category with key hint
	keyStyle := m.styles.MenuKey
	if selecting {
		keyStyle = m.styles.MenuItemActive
	}
	b.WriteString(keyStyle.Render(fmt.Sprintf("[%s]", categoryKey)))
	b.WriteString(" ")
	b.WriteString(m.styles.MenuItem.Render(category + ":"))
	b.WriteString(" ")

	for i, opt := range options {
		if i > 0 {
			b.WriteString(" ")
		}

		indicator := " "
		style := m.styles.MenuItem
		if opt.active {
			indicator = "●"
			style = m.styles.MenuItemActive
		}

		b.WriteString(style.Render(fmt.Sprintf("[%s%s=%s]", indicator, opt.key, opt.label)))
	}

	b.WriteString("\n")
	return b.String()
}

// renderTags renders the tag selection. In tag mode the list opens with a
// cursor; otherwise only the summary line shows.
func (m *FilterMenu) renderTags() string {
	var b strings.Builder

	keyStyle := m.styles.MenuKey
	if m.mode == filterModeTags {
		keyStyle = m.styles.MenuItemActive
	}
	match := "any"
	if m.filter.TagMode == domain.TagModeAnd {
		match = "all"
	}

	selected := m.filter.SelectedTags()
	summary := "none"
	if len(selected) > 0 {
		summary = strings.Join(selected, ", ")
	}
	b.WriteString(keyStyle.Render("[t]") + " " + m.styles.MenuItem.Render("Tags: "+summary))
	b.WriteString("  " + m.styles.MenuKey.Render("[m]") + " " + m.styles.MenuItem.Render("match "+match))
	b.WriteString("\n")

	if m.mode != filterModeTags {
		return b.String()
	}

	for i, tag := range m.tags {
		box := "[ ]"
		style := m.styles.MenuItem
		if m.filter.Tags[domain.NormalizeTag(tag)] {
			box = "[●]"
		}
		cursor := "  "
		if i == m.tagCursor {
			cursor = "▶ "
			style = m.styles.MenuItemActive
		}
		b.WriteString("    " + cursor + style.Render(box+" "+tag))
		b.WriteString("\n")
	}
	return b.String()
}

// renderFlag renders a tri-state importance or urgency constraint
func (m *FilterMenu) renderFlag(key, label string, value *bool) string {
	state := "any"
	style := m.styles.MenuItem
	if value != nil {
		style = m.styles.MenuItemActive
		if *value {
			state = "yes"
		} else {
			state = "no"
		}
	}
	return m.styles.MenuKey.Render("["+key+"]") + " " +
		m.styles.MenuItem.Render(label+": ") + style.Render(state) + "\n"
}

// Title returns the overlay title
func (m *FilterMenu) Title() string {
	return "Filter Tasks"
}

// Size returns the overlay dimensions
func (m *FilterMenu) Size() (width, height int) {
	height = 16
	if m.mode == filterModeTags {
		height += len(m.tags)
	}
	return 64, height
}
