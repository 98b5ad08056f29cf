package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// Keymap is the reference shown by the help overlay
var Keymap = []KeyCategory{
	{
		Name: "Navigation",
		Bindings: []KeyBinding{
			{Key: "h/j/k/l", Description: "Move between tasks and lanes"},
			{Key: "Tab/S-Tab", Description: "Next/previous lane"},
			{Key: "1-5", Description: "Jump to lane"},
			{Key: "C-d/C-u", Description: "Half page down/up"},
			{Key: "gg/G", Description: "First/last task in lane"},
			{Key: "ge", Description: "Last task in lane"},
			{Key: "gw", Description: "Jump to task by label"},
		},
	},
	{
		Name: "Tasks",
		Bindings: []KeyBinding{
			{Key: "n", Description: "New task in current lane"},
			{Key: "e", Description: "Edit task"},
			{Key: "Enter", Description: "Task details"},
			{Key: "Space", Description: "Action menu"},
			{Key: "x", Description: "Complete / reopen"},
			{Key: "m", Description: "Advance state"},
			{Key: "!", Description: "Toggle important"},
			{Key: "u", Description: "Toggle urgent"},
			{Key: "d", Description: "Delete task"},
		},
	},
	{
		Name: "View",
		Bindings: []KeyBinding{
			{Key: "/", Description: "Search"},
			{Key: "f", Description: "Filter menu"},
			{Key: "s", Description: "Sort menu"},
			{Key: "c", Description: "Clear filters"},
			{Key: "D", Description: "Toggle descriptions"},
			{Key: "L", Description: "Toggle list view"},
		},
	},
	{
		Name: "Selection",
		Bindings: []KeyBinding{
			{Key: "v", Description: "Select mode"},
			{Key: "Space", Description: "Toggle selection (select mode)"},
			{Key: "%", Description: "Select all visible"},
			{Key: "a", Description: "Bulk actions"},
			{Key: "Esc", Description: "Clear selection"},
		},
	},
	{
		Name: "Other",
		Bindings: []KeyBinding{
			{Key: ",", Description: "Settings"},
			{Key: "?", Description: "Help (this screen)"},
			{Key: "q", Description: "Quit"},
		},
	},
}

const (
	helpWidth  = 50
	helpHeight = 20
)

// HelpOverlay displays the keybinding reference in a scrollable viewport
type HelpOverlay struct {
	styles   *Styles
	viewport viewport.Model
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay() *HelpOverlay {
	h := &HelpOverlay{
		styles:   New(),
		viewport: viewport.New(helpWidth-4, helpHeight),
	}
	h.viewport.SetContent(h.renderKeymap())
	return h
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch keyMsg.String() {
	case "esc", "q", "?":
		return h, closeCmd
	case "g":
		h.viewport.GotoTop()
		return h, nil
	case "G":
		h.viewport.GotoBottom()
		return h, nil
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

func (h *HelpOverlay) renderKeymap() string {
	var b strings.Builder
	for i, cat := range Keymap {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(h.styles.MenuHeader.Render(cat.Name + ":"))
		b.WriteString("\n")
		for _, binding := range cat.Bindings {
			b.WriteString("  ")
			b.WriteString(h.styles.MenuKey.Render(fmt.Sprintf("%-10s", binding.Key)))
			b.WriteString(" ")
			b.WriteString(h.styles.MenuItem.Render(binding.Description))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	view := h.viewport.View()
	if h.viewport.TotalLineCount() > h.viewport.Height {
		view += "\n" + h.styles.Footer.Render(
			fmt.Sprintf("j/k scroll • g/G jump • %3.f%%", h.viewport.ScrollPercent()*100),
		)
	}
	return view
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	return helpWidth, helpHeight + 4
}
