package app

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/ui/board"
	"github.com/riordanpawley/quadrant/internal/ui/compact"
	"github.com/riordanpawley/quadrant/internal/ui/statusbar"
	"github.com/riordanpawley/quadrant/internal/ui/toast"
)

// View renders the current state as a string
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.loading {
		return m.renderLoading()
	}

	now := m.now()
	columns := m.buildColumns()

	// Bottom rows: full-width overlays (the search bar), toasts, status bar
	var bottom []string
	current := m.overlayStack.Current()
	if current != nil {
		if w, _ := current.Size(); w == 0 {
			bottom = append(bottom, current.View())
			current = nil
		}
	}
	if t := toast.New(m.styles).Render(m.toasts, m.width, now); t != "" {
		bottom = append(bottom, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, t))
	}
	bottom = append(bottom, m.renderStatusBar(columns))

	footer := lipgloss.JoinVertical(lipgloss.Left, bottom...)
	mainHeight := max(1, m.height-lipgloss.Height(footer))

	var mainView string
	if current != nil {
		mainView = m.renderModal(mainHeight)
	} else if m.viewMode == ViewModeList {
		mainView = m.renderListView(columns, mainHeight)
	} else {
		mainView = m.renderBoardView(columns, mainHeight)
	}
	mainView = lipgloss.NewStyle().Height(mainHeight).MaxHeight(mainHeight).Render(mainView)

	return lipgloss.JoinVertical(lipgloss.Left, mainView, footer)
}

// renderModal draws the top overlay centered in the board area
func (m Model) renderModal(height int) string {
	current := m.overlayStack.Current()
	overlayView := current.View()
	overlayWidth, overlayHeight := current.Size()

	if title := current.Title(); title != "" {
		titleView := m.styles.OverlayTitle.Render(title)
		overlayView = lipgloss.JoinVertical(lipgloss.Left, titleView, overlayView)
	}
	overlayView = m.styles.Overlay.
		Width(min(overlayWidth, m.width-2)).
		MaxHeight(min(overlayHeight, height)).
		Render(overlayView)

	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, overlayView)
}

func (m Model) renderBoardView(columns []board.Column, height int) string {
	pos := m.nav.GetPosition(columns)
	cursor := board.Cursor{
		Column: pos.Column,
		Task:   pos.Task,
	}
	opts := board.Options{
		Now:              m.now(),
		HideDescriptions: m.config.UI.HideDescriptions,
	}
	return board.Render(columns, cursor, m.editor.GetSelectedTasks(), opts, m.styles, m.width, height)
}

func (m Model) renderListView(columns []board.Column, height int) string {
	flat := compact.Flatten(columns)
	lv := compact.NewListView(flat, m.width, height, m.now())
	if task := m.nav.GetCurrentTask(columns); task != nil {
		lv.SetCursor(lv.IndexOf(task.ID))
	}
	lv.SetSelected(m.editor.GetSelectedTasks())
	return lv.Render()
}

func (m Model) renderStatusBar(columns []board.Column) string {
	visible := 0
	for _, col := range columns {
		visible += len(col.Tasks)
	}
	return statusbar.New(m.editor.GetMode(), m.width, m.styles).
		WithInfo(statusbar.Info{
			Overview: domain.Summarize(m.tasks),
			Visible:  visible,
			Selected: m.editor.SelectionCount(),
			Filter:   m.editor.GetFilter(),
			Sort:     *m.editor.GetSort(),
		}).
		Render()
}

// renderLoading renders a centered loading spinner with message
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.spinner.View(),
		"Loading tasks...",
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
