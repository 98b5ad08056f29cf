package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/quadrant/internal/ui/styles"
)

// ConfirmDialog asks a yes/no question before an action runs
type ConfirmDialog struct {
	title       string
	message     string
	action      any
	destructive bool
	styles      *Styles
	yes         bool
}

// ConfirmResult is the value of the SelectionMsg a ConfirmDialog sends.
// Action is the payload the dialog was opened with.
type ConfirmResult struct {
	Confirmed bool
	Action    any
}

// NewConfirmDialog creates a dialog for action. No is preselected.
func NewConfirmDialog(title, message string, action any) *ConfirmDialog {
	return &ConfirmDialog{
		title:   title,
		message: message,
		action:  action,
		styles:  New(),
	}
}

// Destructive marks the dialog as confirming data loss
func (c *ConfirmDialog) Destructive() *ConfirmDialog {
	c.destructive = true
	return c
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

func (c *ConfirmDialog) answer(confirmed bool) tea.Cmd {
	key := "no"
	if confirmed {
		key = "yes"
	}
	return selectCmd(key, ConfirmResult{Confirmed: confirmed, Action: c.action})
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return c, c.answer(true)
	case "n", "N", "esc":
		return c, c.answer(false)
	case "enter":
		return c, c.answer(c.yes)
	case "left", "h":
		c.yes = true
	case "right", "l":
		c.yes = false
	case "tab":
		c.yes = !c.yes
	}
	return c, nil
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	if c.message != "" {
		b.WriteString(c.styles.MenuItem.Render(c.message))
		b.WriteString("\n\n")
	}

	yesStyle := c.styles.MenuItem
	noStyle := c.styles.MenuItem
	if c.yes {
		yesStyle = c.styles.MenuItemActive
		if c.destructive {
			yesStyle = yesStyle.Foreground(styles.Red)
		}
	} else {
		noStyle = c.styles.MenuItemActive
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		yesStyle.Render("[Y] Yes"),
		"    ",
		noStyle.Render("[N] No"),
	))
	b.WriteString("\n")
	b.WriteString(c.styles.Footer.Render("← → / Tab: Switch • Enter: Confirm • Esc: Cancel"))

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return c.title
}

// Size returns the dialog dimensions
func (c *ConfirmDialog) Size() (width, height int) {
	messageLines := len(strings.Split(c.message, "\n"))
	return 60, messageLines + 6
}
