package board

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stripANSI removes ANSI escape codes from a string for testing
func stripANSI(s string) string {
	return ansi.Strip(s)
}

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)

func sampleTasks() []domain.Task {
	done := testNow.Add(-time.Hour)
	return []domain.Task{
		{ID: "t1", Title: "Ship release", State: domain.StateInProgress, Important: true, Urgent: true, Tags: []string{"work"}},
		{ID: "t2", Title: "Plan roadmap", State: domain.StateCreated, Important: true, Tags: []string{"work"}},
		{ID: "t3", Title: "Answer emails", State: domain.StateCreated, Urgent: true, Tags: []string{"others"}},
		{ID: "t4", Title: "Browse forums", State: domain.StateWIP, Tags: []string{"personal"}},
		{ID: "t5", Title: "Write tests", State: domain.StateDone, Important: true, CompletedAt: &done, Tags: []string{"work"}},
		{ID: "t6", Title: "Fix login", State: domain.StateCreated, Important: true, Urgent: true, Tags: []string{"work"}},
	}
}

func TestBuildColumns(t *testing.T) {
	columns := BuildColumns(sampleTasks())
	require.Len(t, columns, LaneCount)

	want := map[int][]string{
		LaneDoFirst:   {"t1", "t6"},
		LaneSchedule:  {"t2"},
		LaneDelegate:  {"t3"},
		LaneEliminate: {"t4"},
		LaneDone:      {"t5"},
	}
	for i, col := range columns {
		assert.Equal(t, domain.AllQuadrants()[i], col.Quadrant)
		assert.Equal(t, col.Quadrant.Title(), col.Title)
		var ids []string
		for _, task := range col.Tasks {
			ids = append(ids, task.ID)
		}
		assert.Equal(t, want[i], ids, col.Title)
	}
}

func TestBuildColumnsEmpty(t *testing.T) {
	columns := BuildColumns(nil)
	require.Len(t, columns, LaneCount)
	for _, col := range columns {
		assert.Empty(t, col.Tasks)
	}
}

func TestLaneIndex(t *testing.T) {
	assert.Equal(t, LaneDoFirst, LaneIndex(domain.QuadrantDoFirst))
	assert.Equal(t, LaneDone, LaneIndex(domain.QuadrantDone))
	assert.Equal(t, -1, LaneIndex(domain.Quadrant("nope")))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		cursor Cursor
		width  int
		height int
	}{
		{"default_cursor_at_origin", Cursor{Column: 0, Task: 0}, 120, 30},
		{"cursor_in_done_lane", Cursor{Column: LaneDone, Task: 0}, 120, 30},
		{"narrow_terminal", Cursor{Column: 0, Task: 0}, 80, 24},
		{"wide_terminal", Cursor{Column: LaneEliminate, Task: 0}, 160, 40},
	}

	s := styles.New()
	columns := BuildColumns(sampleTasks())
	opts := Options{Now: testNow}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(columns, tt.cursor, map[string]bool{}, opts, s, tt.width, tt.height)
			stripped := stripANSI(got)

			for _, q := range domain.AllQuadrants() {
				assert.Contains(t, stripped, q.Title())
			}
			assert.Contains(t, stripped, "Ship release")
			assert.Contains(t, stripped, "Write tests")
			assert.Contains(t, stripped, "▶")
			assert.LessOrEqual(t, lipgloss.Height(got), tt.height)
			assert.LessOrEqual(t, lipgloss.Width(got), tt.width)
		})
	}
}

func TestRenderGridLayout(t *testing.T) {
	s := styles.New()
	got := stripANSI(Render(BuildColumns(sampleTasks()), Cursor{}, nil, Options{Now: testNow}, s, 120, 30))
	lines := strings.Split(got, "\n")

	row := func(title string) int {
		for i, line := range lines {
			if strings.Contains(line, title+" (") {
				return i
			}
		}
		t.Fatalf("lane %q not rendered", title)
		return -1
	}

	assert.Equal(t, row("Do First"), row("Schedule"), "top row")
	assert.Equal(t, row("Delegate"), row("Eliminate"), "bottom row")
	assert.Greater(t, row("Delegate"), row("Do First"))
	assert.Equal(t, row("Do First"), row("Done"), "done lane spans full height")
}

func TestRenderEmptyLanes(t *testing.T) {
	s := styles.New()
	got := stripANSI(Render(BuildColumns(nil), Cursor{}, nil, Options{Now: testNow}, s, 120, 30))

	assert.Contains(t, got, "No active tasks")
	assert.Contains(t, got, "No completed tasks")
}

func TestRenderEmptyBoard(t *testing.T) {
	s := styles.New()
	got := Render([]Column{}, Cursor{}, make(map[string]bool), Options{}, s, 120, 30)

	if got != "" {
		t.Errorf("Render() with empty columns should return empty string, got: %q", got)
	}
}

func TestRenderRowFallback(t *testing.T) {
	s := styles.New()
	columns := BuildColumns(sampleTasks())[:2]
	got := stripANSI(Render(columns, Cursor{}, nil, Options{Now: testNow}, s, 80, 20))

	assert.Contains(t, got, "Do First")
	assert.Contains(t, got, "Schedule")
	assert.NotContains(t, got, "Eliminate")
}

func TestCursorBounds(t *testing.T) {
	// Test that rendering doesn't panic with out-of-bounds cursor
	s := styles.New()
	columns := BuildColumns(sampleTasks())

	tests := []struct {
		name   string
		cursor Cursor
	}{
		{
			name:   "cursor_column_out_of_bounds",
			cursor: Cursor{Column: 99, Task: 0},
		},
		{
			name:   "cursor_task_out_of_bounds",
			cursor: Cursor{Column: 0, Task: 99},
		},
		{
			name:   "cursor_task_negative",
			cursor: Cursor{Column: 0, Task: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				Render(columns, tt.cursor, nil, Options{Now: testNow}, s, 120, 30)
			})
		})
	}
}

func TestRenderScrollsToCursor(t *testing.T) {
	s := styles.New()
	var tasks []domain.Task
	for i := 0; i < 20; i++ {
		tasks = append(tasks, domain.Task{
			ID:        string(rune('a' + i)),
			Title:     "Task " + string(rune('A'+i)),
			State:     domain.StateCreated,
			Important: true,
			Urgent:    true,
			Tags:      []string{"work"},
		})
	}
	columns := BuildColumns(tasks)

	top := stripANSI(Render(columns, Cursor{}, nil, Options{Now: testNow}, s, 120, 30))
	assert.Contains(t, top, "Task A")
	assert.NotContains(t, top, "Task T")
	assert.Contains(t, top, "more")

	bottom := stripANSI(Render(columns, Cursor{Column: 0, Task: 19}, nil, Options{Now: testNow}, s, 120, 30))
	assert.Contains(t, bottom, "Task T")
	assert.NotContains(t, bottom, "Task A")
}

func TestVisibleRange(t *testing.T) {
	cards := []string{"a\nb", "c\nd", "e\nf", "g\nh"}

	start, end := visibleRange(cards, 0, 6)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end, "third card would overrun the reserved hint line")

	start, end = visibleRange(cards, 3, 6)
	assert.Equal(t, 2, start)
	assert.Equal(t, 4, end)

	start, end = visibleRange(cards, 0, 100)
	assert.Equal(t, 0, start)
	assert.Equal(t, 4, end)
}
