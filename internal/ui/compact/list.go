// Package compact renders the board as a single scrolling table
package compact

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/ui/board"
)

const (
	numberWidth   = 5
	laneWidth     = 6
	stateWidth    = 6
	deadlineWidth = 12
	estimateWidth = 8
	tagsWidth     = 18
	minTitleWidth = 10
)

var laneAbbrev = map[domain.Quadrant]string{
	domain.QuadrantDoFirst:   "DO",
	domain.QuadrantSchedule:  "SCHED",
	domain.QuadrantDelegate:  "DELEG",
	domain.QuadrantEliminate: "ELIM",
	domain.QuadrantDone:      "DONE",
}

var stateAbbrev = map[domain.State]string{
	domain.StateCreated:    "new",
	domain.StateInProgress: "prog",
	domain.StateWIP:        "wip",
	domain.StateDone:       "done",
}

// Flatten lists the tasks of columns in lane order
func Flatten(columns []board.Column) []domain.Task {
	var tasks []domain.Task
	for _, col := range columns {
		tasks = append(tasks, col.Tasks...)
	}
	return tasks
}

// ListView represents a table-based list view for tasks
type ListView struct {
	tasks    []domain.Task
	cursor   int
	offset   int
	selected map[string]bool
	now      time.Time
	styles   *Styles
	width    int
	height   int
}

// NewListView creates a new ListView with the given tasks and dimensions
func NewListView(tasks []domain.Task, width, height int, now time.Time) *ListView {
	return &ListView{
		tasks:    tasks,
		selected: make(map[string]bool),
		now:      now,
		styles:   NewStyles(),
		width:    width,
		height:   height,
	}
}

// SetCursor sets the cursor position, clamped to the task list, and scrolls
// it into view
func (lv *ListView) SetCursor(index int) {
	lv.cursor = max(0, min(index, len(lv.tasks)-1))

	rows := lv.visibleRows()
	if lv.cursor < lv.offset {
		lv.offset = lv.cursor
	} else if lv.cursor >= lv.offset+rows {
		lv.offset = lv.cursor - rows + 1
	}
}

// Cursor returns the cursor position
func (lv *ListView) Cursor() int {
	return lv.cursor
}

// IndexOf returns the row of the task with id, or -1
func (lv *ListView) IndexOf(id string) int {
	for i, t := range lv.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// SetSelected sets the selected tasks map
func (lv *ListView) SetSelected(selected map[string]bool) {
	lv.selected = selected
}

// visibleRows is the number of task rows that fit below the header
func (lv *ListView) visibleRows() int {
	return max(1, lv.height-3)
}

func (lv *ListView) titleWidth() int {
	fixed := numberWidth + laneWidth + stateWidth + deadlineWidth + estimateWidth + tagsWidth
	return max(minTitleWidth, lv.width-fixed)
}

// Render renders the full table
func (lv *ListView) Render() string {
	if len(lv.tasks) == 0 {
		return lv.styles.Muted.Render("No tasks to display. Press n to add one.")
	}

	var b strings.Builder
	b.WriteString(lv.renderHeader())
	b.WriteString("\n")
	b.WriteString(lv.styles.Separator.Render(strings.Repeat("─", lv.width)))

	end := min(lv.offset+lv.visibleRows(), len(lv.tasks))
	for i := lv.offset; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(lv.renderRow(i, lv.tasks[i]))
	}

	if end < len(lv.tasks) {
		b.WriteString("\n")
		b.WriteString(lv.styles.Separator.Render(fmt.Sprintf(" ↓ %d more tasks ↓ ", len(lv.tasks)-end)))
	}

	return b.String()
}

func (lv *ListView) renderHeader() string {
	h := lv.styles.HeaderCell
	return lipgloss.JoinHorizontal(lipgloss.Top,
		h.Width(numberWidth).Render("#"),
		h.Width(laneWidth).Render("Lane"),
		h.Width(lv.titleWidth()).Render("Title"),
		h.Width(stateWidth).Render("State"),
		h.Width(deadlineWidth).Render("Deadline"),
		h.Width(estimateWidth).Render("Est"),
		h.Width(tagsWidth).Render("Tags"),
	)
}

func (lv *ListView) renderRow(index int, task domain.Task) string {
	isActive := index == lv.cursor
	isSelected := lv.selected[task.ID]

	rowStyle := lv.styles.Row
	if isSelected {
		rowStyle = lv.styles.RowSelected
	} else if isActive {
		rowStyle = lv.styles.RowActive
	}

	var indicator string
	switch {
	case isActive && isSelected:
		indicator = lv.styles.Selected.Render("●▶")
	case isActive:
		indicator = lv.styles.Cursor.Render("▶ ")
	case isSelected:
		indicator = lv.styles.Selected.Render("● ")
	default:
		indicator = "  "
	}

	lane := task.Quadrant()
	title := ansi.Truncate(task.Title, lv.titleWidth()-1, "…")
	tags := ansi.Truncate(strings.Join(task.Tags, ","), tagsWidth-1, "…")

	return lipgloss.JoinHorizontal(lipgloss.Top,
		rowStyle.Width(numberWidth).Render(indicator+fmt.Sprintf("%2d", index+1)),
		lv.styles.Lane(lane).Width(laneWidth).Render(laneAbbrev[lane]),
		rowStyle.Width(lv.titleWidth()).Render(title),
		lv.styles.State(task.State).Width(stateWidth).Render(stateAbbrev[task.State]),
		lv.renderDeadline(task),
		lv.styles.Muted.Width(estimateWidth).Render(estimate(task)),
		lv.styles.Muted.Width(tagsWidth).Render(tags),
	)
}

func (lv *ListView) renderDeadline(task domain.Task) string {
	d, ok := task.DeadlineTime()
	if !ok {
		return lv.styles.Muted.Width(deadlineWidth).Render("")
	}
	text := domain.FormatDeadline(d, lv.now)
	if !task.IsDone() && domain.IsOverdue(d, lv.now) {
		return lv.styles.Overdue.Width(deadlineWidth).Render("! " + text)
	}
	return lv.styles.Muted.Width(deadlineWidth).Render(text)
}

func estimate(task domain.Task) string {
	if d, ok := task.Estimate(); ok {
		return domain.FormatEstimate(d)
	}
	return ""
}
