package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/ui/board"
	"github.com/riordanpawley/quadrant/internal/ui/compact"
	"github.com/riordanpawley/quadrant/internal/ui/overlay"
)

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+l" {
		return m, tea.ClearScreen
	}

	switch m.editor.GetMode() {
	case ModeGoto:
		return m.handleGotoMode(msg)
	case ModeSelect:
		return m.handleSelectMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes keyboard input in normal mode
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.handleMovement(msg) {
		return m, nil
	}

	columns := m.buildColumns()
	task := m.nav.GetCurrentTask(columns)

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "g":
		m.editor.EnterGoto()
		return m, nil

	// Tasks
	case "n":
		lane := m.nav.GetCurrentQuadrant(columns)
		return m, m.overlayStack.Push(overlay.NewTaskForm(lane, m.now))

	case "e":
		if task != nil {
			return m, m.overlayStack.Push(overlay.EditTaskForm(*task, m.now))
		}

	case "enter":
		if task != nil {
			return m, m.overlayStack.Push(overlay.NewDetailPanel(*task, m.now))
		}

	case " ":
		if task != nil {
			return m, m.overlayStack.Push(overlay.NewActionMenu(*task))
		}

	case "x":
		if task != nil {
			if task.IsDone() {
				return m, m.changeStateCmd([]string{task.ID}, domain.StateCreated)
			}
			return m, m.changeStateCmd([]string{task.ID}, domain.StateDone)
		}

	case "m":
		if task != nil && !task.IsDone() {
			return m, m.changeStateCmd([]string{task.ID}, nextState(task.State))
		}

	case "!":
		if task != nil {
			return m, m.toggleFlagCmd([]string{task.ID}, flagImportant)
		}

	case "u":
		if task != nil {
			return m, m.toggleFlagCmd([]string{task.ID}, flagUrgent)
		}

	case "d":
		if task != nil {
			return m, m.confirmDelete([]string{task.ID})
		}

	// View
	case "/":
		m.editor.EnterSearch()
		search := overlay.NewSearchOverlay(
			m.editor.GetFilter().SearchQuery,
			m.tasks,
			m.config.UI.SearchDebounce(),
			m.config.UI.SuggestionLimit,
		)
		search.SetMatchCount(len(m.editor.FilterAndSort(m.tasks)))
		return m, m.overlayStack.Push(search)

	case "f":
		return m, m.overlayStack.Push(overlay.NewFilterMenu(m.editor.GetFilter(), m.filterTags(), m.now))

	case "s":
		return m, m.overlayStack.Push(overlay.NewSortMenu(*m.editor.GetSort(), m.editor.GetDoneOrder()))

	case "c":
		if m.editor.IsFilterActive() {
			m.editor.ClearFilters()
			cmd := m.addToast(ToastInfo, "Filters cleared")
			return m, tea.Batch(cmd, m.saveFilterCmd())
		}

	case "D":
		m.config.UI.HideDescriptions = !m.config.UI.HideDescriptions
		if m.config.UI.HideDescriptions {
			return m, m.addToast(ToastInfo, "Descriptions hidden")
		}
		return m, m.addToast(ToastInfo, "Descriptions shown")

	case "L":
		if m.viewMode == ViewModeBoard {
			m.viewMode = ViewModeList
			return m, m.addToast(ToastInfo, "Switched to list view")
		}
		m.viewMode = ViewModeBoard
		return m, m.addToast(ToastInfo, "Switched to board view")

	// Selection
	case "v":
		m.editor.EnterSelect()
		return m, nil

	case "%":
		m.selectAllVisible(columns)
		return m, nil

	case "a":
		if m.editor.HasSelection() {
			return m, m.overlayStack.Push(overlay.NewBulkActionMenu(m.editor.GetSelectedTasksList()))
		}

	case "esc":
		m.editor.ClearSelection()
		return m, nil

	// Other
	case "?":
		return m, m.overlayStack.Push(overlay.NewHelpOverlay())

	case ",":
		return m, m.overlayStack.Push(overlay.NewSettingsOverlay(m.config.UI))
	}

	return m, nil
}

// handleMovement handles cursor keys shared by normal and select mode. It
// reports whether the key was consumed.
func (m Model) handleMovement(msg tea.KeyMsg) bool {
	columns := m.buildColumns()

	if m.viewMode == ViewModeList {
		switch msg.String() {
		case "j", "down":
			m.moveFlat(columns, 1)
			return true
		case "k", "up":
			m.moveFlat(columns, -1)
			return true
		case "ctrl+d":
			m.moveFlat(columns, m.halfPage())
			return true
		case "ctrl+u":
			m.moveFlat(columns, -m.halfPage())
			return true
		}
	}

	switch msg.String() {
	case "j", "down":
		m.nav.MoveDown(columns)
	case "k", "up":
		m.nav.MoveUp(columns)
	case "h", "left":
		m.nav.MoveLeft(columns)
	case "l", "right":
		m.nav.MoveRight(columns)
	case "tab":
		m.nav.NextLane(columns)
	case "shift+tab":
		m.nav.PrevLane(columns)
	case "ctrl+d":
		m.nav.HalfPageDown(columns, m.halfPage())
	case "ctrl+u":
		m.nav.HalfPageUp(columns, m.halfPage())
	case "G":
		m.nav.GotoBottom(columns)
	case "1", "2", "3", "4", "5":
		m.nav.GotoLane(columns, int(msg.String()[0]-'1'))
	default:
		return false
	}
	return true
}

// moveFlat moves the cursor delta rows through the lanes laid end to end
func (m Model) moveFlat(columns []board.Column, delta int) {
	flat := compact.Flatten(columns)
	if len(flat) == 0 {
		return
	}
	idx := 0
	if task := m.nav.GetCurrentTask(columns); task != nil {
		for i, t := range flat {
			if t.ID == task.ID {
				idx = i
				break
			}
		}
	}
	idx = max(0, min(idx+delta, len(flat)-1))
	m.nav.JumpToTaskByID(columns, flat[idx].ID)
}

// handleGotoMode processes the key after g
func (m Model) handleGotoMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := m.buildColumns()
	// Always return to normal mode after processing
	m.editor.EnterNormal()

	switch msg.String() {
	case "g":
		if m.viewMode == ViewModeList {
			m.moveFlat(columns, -len(m.tasks))
		} else {
			m.nav.GotoTop(columns)
		}
	case "e":
		if m.viewMode == ViewModeList {
			m.moveFlat(columns, len(m.tasks))
		} else {
			m.nav.GotoBottom(columns)
		}
	case "w":
		return m, m.overlayStack.Push(overlay.NewJumpMode(jumpTargets(columns)))
	case "1", "2", "3", "4", "5":
		m.nav.GotoLane(columns, int(msg.String()[0]-'1'))
	}

	return m, nil
}

// handleSelectMode processes keyboard input in select mode
func (m Model) handleSelectMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if task := m.currentTask(); task != nil {
			m.editor.ToggleSelection(task.ID)
		}
		return m, nil

	case "v":
		// Leave select mode, keep the selection
		m.editor.EnterNormal()
		return m, nil

	case "esc":
		m.editor.ClearSelection()
		m.editor.EnterNormal()
		return m, nil
	}

	return m.handleNormalMode(msg)
}

// selectAllVisible selects every task left after filtering
func (m Model) selectAllVisible(columns []board.Column) {
	m.editor.SelectAll(compact.Flatten(columns))
}

// filterTags lists the tags offered by the filter menu: the registry plus any
// tag still in use, in registry order
func (m Model) filterTags() []string {
	seen := make(map[string]bool, len(m.tags))
	result := make([]string, 0, len(m.tags))
	for _, tag := range m.tags {
		if !seen[tag] {
			seen[tag] = true
			result = append(result, tag)
		}
	}
	for _, tag := range domain.AllTags(m.tasks) {
		if !seen[tag] {
			seen[tag] = true
			result = append(result, tag)
		}
	}
	return result
}

// jumpTargets lists tasks in board order for jump labels
func jumpTargets(columns []board.Column) []overlay.JumpTarget {
	var targets []overlay.JumpTarget
	for _, col := range columns {
		for _, t := range col.Tasks {
			targets = append(targets, overlay.JumpTarget{ID: t.ID, Title: t.Title, Quadrant: col.Quadrant})
		}
	}
	return targets
}

// halfPage calculates half-page scroll distance based on terminal height
func (m Model) halfPage() int {
	if m.viewMode == ViewModeList {
		return max(1, (m.height-4)/2)
	}
	// Two lane rows share the board; cards are about five lines tall
	laneHeight := (m.height-1)/2 - 2
	return max(1, laneHeight/5/2)
}
