// Package overlay holds the modal dialogs drawn over the board
package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// SelectionMsg is sent when a menu entry is chosen
type SelectionMsg struct {
	Key   string
	Value any
}

func closeCmd() tea.Msg {
	return CloseOverlayMsg{}
}

// selectCmd wraps a selection into a command
func selectCmd(key string, value any) tea.Cmd {
	return func() tea.Msg {
		return SelectionMsg{Key: key, Value: value}
	}
}
