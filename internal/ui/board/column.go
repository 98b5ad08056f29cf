package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/ui/styles"
)

// renderColumn renders a lane with header and the visible task cards
func renderColumn(
	col Column,
	cursorTask int,
	isActive bool,
	selectedTasks map[string]bool,
	opts Options,
	width int,
	height int,
	s *styles.Styles,
) string {
	header := s.LaneHeader(col.Quadrant, isActive).Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Tasks)))
	hint := s.LaneHint.Render(col.Quadrant.Description())

	// Border takes 2 columns, padding takes 2 more
	inner := max(width-4, 1)
	avail := max(height-2-2, 1) // border and the two heading lines

	var body string
	if len(col.Tasks) == 0 {
		body = s.ColumnEmpty.Render(emptyText(col.Quadrant))
	} else {
		cards := make([]string, len(col.Tasks))
		for i, task := range col.Tasks {
			cards[i] = renderCard(task, isActive && i == cursorTask, selectedTasks[task.ID], inner, opts, s)
		}
		start, end := visibleRange(cards, cursorTask, avail)
		body = strings.Join(cards[start:end], "\n")
		if hidden := len(cards) - (end - start); hidden > 0 {
			body += "\n" + s.LaneHint.Render(fmt.Sprintf("+%d more", hidden))
		}
	}

	columnStyle := s.Column
	if isActive {
		if color, ok := styles.QuadrantColors[col.Quadrant]; ok {
			columnStyle = columnStyle.BorderForeground(color)
		}
	}
	content := lipgloss.JoinVertical(lipgloss.Left, header, hint, body)

	return columnStyle.
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		MaxHeight(max(height, 1)).
		Render(content)
}

func emptyText(q domain.Quadrant) string {
	if q == domain.QuadrantDone {
		return "No completed tasks"
	}
	return "No active tasks"
}

// visibleRange picks the window of cards that fits avail lines and keeps the
// cursor card in view. One line is held back for the "+N more" hint.
func visibleRange(cards []string, cursor, avail int) (start, end int) {
	fill := func(from int) int {
		used := 0
		i := from
		for i < len(cards) {
			h := lipgloss.Height(cards[i])
			if i > from {
				h++ // separator newline
			}
			if used+h > avail-1 && i > from {
				break
			}
			used += h
			i++
		}
		return i
	}

	cursor = min(max(cursor, 0), len(cards)-1)
	end = fill(start)
	for cursor >= end && start < cursor {
		start++
		end = fill(start)
	}
	return start, end
}
