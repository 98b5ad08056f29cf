package overlay

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/quadrant/internal/config"
)

// SettingType represents the type of a setting
type SettingType int

const (
	// SettingToggle is a boolean on/off setting (Space/Enter to toggle)
	SettingToggle SettingType = iota
	// SettingChoice is a numeric setting cycled with Left/Right
	SettingChoice
	// SettingAction triggers something on Enter
	SettingAction
	// SettingSeparator is a visual separator (not selectable)
	SettingSeparator
)

// SettingItem represents a single setting in the settings menu
type SettingItem struct {
	Key     string
	Label   string
	Type    SettingType
	Choices []int // for SettingChoice
	Unit    string
}

// SettingsChangedMsg carries the edited UI settings. Save is set when the
// user asked for them to be written to the config file.
type SettingsChangedMsg struct {
	UI   config.UIConfig
	Save bool
}

// SettingsOverlay edits the terminal UI settings
type SettingsOverlay struct {
	ui     config.UIConfig
	items  []SettingItem
	cursor int
	styles *Styles
}

// NewSettingsOverlay creates a settings overlay seeded with ui
func NewSettingsOverlay(ui config.UIConfig) *SettingsOverlay {
	return &SettingsOverlay{
		ui: ui,
		items: []SettingItem{
			{Key: "descriptions", Label: "Show descriptions on cards", Type: SettingToggle},
			{Key: "debounce", Label: "Search debounce", Type: SettingChoice, Choices: []int{0, 150, 300, 500}, Unit: "ms"},
			{Key: "suggestions", Label: "Search suggestions", Type: SettingChoice, Choices: []int{0, 3, 5, 8, 10}},
			{Key: "toast", Label: "Notification time", Type: SettingChoice, Choices: []int{1500, 3000, 5000}, Unit: "ms"},
			{Label: separatorLabel, Type: SettingSeparator},
			{Key: "save", Label: "Save to config file", Type: SettingAction},
		},
		styles: New(),
	}
}

// Init initializes the overlay
func (m *SettingsOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *SettingsOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "q":
		return m, closeCmd
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "h", "left":
		return m, m.cycleChoice(-1)
	case "l", "right":
		return m, m.cycleChoice(1)
	case " ", "enter":
		return m, m.activate()
	}
	return m, nil
}

func (m *SettingsOverlay) moveCursor(dir int) {
	n := len(m.items)
	for i := 1; i <= n; i++ {
		next := ((m.cursor+dir*i)%n + n) % n
		if m.items[next].Type != SettingSeparator {
			m.cursor = next
			return
		}
	}
}

func (m *SettingsOverlay) changed(save bool) tea.Cmd {
	msg := SettingsChangedMsg{UI: m.ui, Save: save}
	return func() tea.Msg { return msg }
}

func (m *SettingsOverlay) value(key string) *int {
	switch key {
	case "debounce":
		return &m.ui.SearchDebounceMs
	case "suggestions":
		return &m.ui.SuggestionLimit
	case "toast":
		return &m.ui.ToastDurationMs
	}
	return nil
}

func (m *SettingsOverlay) cycleChoice(step int) tea.Cmd {
	item := m.items[m.cursor]
	v := m.value(item.Key)
	if item.Type != SettingChoice || v == nil || len(item.Choices) == 0 {
		return nil
	}

	current := -1
	for i, c := range item.Choices {
		if c == *v {
			current = i
			break
		}
	}
	next := 0
	if current >= 0 {
		next = (current + step + len(item.Choices)) % len(item.Choices)
	}
	*v = item.Choices[next]
	return m.changed(false)
}

func (m *SettingsOverlay) activate() tea.Cmd {
	switch item := m.items[m.cursor]; item.Type {
	case SettingToggle:
		m.ui.HideDescriptions = !m.ui.HideDescriptions
		return m.changed(false)
	case SettingChoice:
		return m.cycleChoice(1)
	case SettingAction:
		return tea.Batch(m.changed(true), closeCmd)
	}
	return nil
}

func (m *SettingsOverlay) display(item SettingItem) string {
	switch item.Type {
	case SettingToggle:
		if m.ui.HideDescriptions {
			return "[off]"
		}
		return "[on]"
	case SettingChoice:
		v := m.value(item.Key)
		if v == nil {
			return ""
		}
		text := strconv.Itoa(*v) + item.Unit
		if item.Key == "debounce" && *v == 0 {
			text = "instant"
		}
		if item.Key == "suggestions" && *v == 0 {
			text = "off"
		}
		return "<" + text + ">"
	}
	return ""
}

// View renders the settings menu
func (m *SettingsOverlay) View() string {
	var b strings.Builder

	for i, item := range m.items {
		if item.Type == SettingSeparator {
			b.WriteString(m.styles.Separator.Render(item.Label))
			b.WriteString("\n")
			continue
		}

		style := m.styles.MenuItem
		if i == m.cursor {
			style = m.styles.MenuItemActive
		}

		line := style.Render(item.Label)
		if v := m.display(item); v != "" {
			line = fmt.Sprintf("%s %s", line, style.Render(v))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("j/k: navigate • h/l: change • space/enter: toggle/activate • esc: close"))
	return b.String()
}

// UI returns the edited settings
func (m *SettingsOverlay) UI() config.UIConfig {
	return m.ui
}

// Title returns the overlay title
func (m *SettingsOverlay) Title() string {
	return "Settings"
}

// Size returns the overlay dimensions
func (m *SettingsOverlay) Size() (width, height int) {
	return 60, len(m.items) + 6
}
