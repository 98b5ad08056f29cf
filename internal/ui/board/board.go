package board

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/quadrant/internal/ui/styles"
)

// Render renders the matrix. With all five lanes present the four active
// quadrants form a 2x2 grid and the done lane runs down the right edge; any
// other lane count is laid out in a single row.
func Render(
	columns []Column,
	cursor Cursor,
	selectedTasks map[string]bool,
	opts Options,
	s *styles.Styles,
	width int,
	height int,
) string {
	if len(columns) == 0 {
		return ""
	}

	lane := func(i, w, h int) string {
		isActive := i == cursor.Column
		cursorTask := 0
		if isActive {
			cursorTask = cursor.Task
		}
		str := renderColumn(columns[i], cursorTask, isActive, selectedTasks, opts, w, h, s)
		// Force consistent size using lipgloss Width
		return lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h).Render(str)
	}

	if len(columns) != LaneCount {
		columnWidth := width / len(columns)
		var columnStrings []string
		for i := range columns {
			columnStrings = append(columnStrings, lane(i, columnWidth, height))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
	}

	doneWidth := width / 4
	matrixWidth := width - doneWidth
	leftWidth := matrixWidth / 2
	rightWidth := matrixWidth - leftWidth
	topHeight := height / 2
	bottomHeight := height - topHeight

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		lane(LaneDoFirst, leftWidth, topHeight),
		lane(LaneSchedule, rightWidth, topHeight),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		lane(LaneDelegate, leftWidth, bottomHeight),
		lane(LaneEliminate, rightWidth, bottomHeight),
	)
	matrix := lipgloss.JoinVertical(lipgloss.Left, top, bottom)

	return lipgloss.JoinHorizontal(lipgloss.Top, matrix, lane(LaneDone, doneWidth, height))
}
