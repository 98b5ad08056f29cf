package compact

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/ui/board"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

func makeTasks(n int) []domain.Task {
	tasks := make([]domain.Task, n)
	for i := range tasks {
		tasks[i] = domain.Task{
			ID:        fmt.Sprintf("t-%d", i),
			Title:     fmt.Sprintf("Task %d", i),
			State:     domain.StateCreated,
			Important: true,
			Tags:      []string{domain.TagWork},
		}
	}
	return tasks
}

func TestNewListView(t *testing.T) {
	lv := NewListView(makeTasks(1), 80, 20, now)

	if lv == nil {
		t.Fatal("Expected non-nil ListView")
	}
	if lv.Cursor() != 0 {
		t.Errorf("Expected cursor at 0, got %d", lv.Cursor())
	}
	if lv.width != 80 || lv.height != 20 {
		t.Errorf("Expected 80x20, got %dx%d", lv.width, lv.height)
	}
}

func TestFlatten(t *testing.T) {
	tasks := []domain.Task{
		{ID: "done", State: domain.StateDone},
		{ID: "elim"},
		{ID: "do", Important: true, Urgent: true},
	}

	flat := Flatten(board.BuildColumns(tasks))

	var ids []string
	for _, task := range flat {
		ids = append(ids, task.ID)
	}
	if got := strings.Join(ids, ","); got != "do,elim,done" {
		t.Errorf("Expected lane order do,elim,done, got %s", got)
	}
}

func TestSetCursorClamps(t *testing.T) {
	lv := NewListView(makeTasks(3), 80, 20, now)

	lv.SetCursor(10)
	if lv.Cursor() != 2 {
		t.Errorf("Expected cursor clamped to 2, got %d", lv.Cursor())
	}

	lv.SetCursor(-4)
	if lv.Cursor() != 0 {
		t.Errorf("Expected cursor clamped to 0, got %d", lv.Cursor())
	}
}

func TestSetCursorScrolls(t *testing.T) {
	// 10 rows tall leaves 7 task rows
	lv := NewListView(makeTasks(30), 80, 10, now)

	lv.SetCursor(15)
	if lv.offset != 9 {
		t.Errorf("Expected offset 9 after moving down, got %d", lv.offset)
	}

	lv.SetCursor(3)
	if lv.offset != 3 {
		t.Errorf("Expected offset 3 after moving up, got %d", lv.offset)
	}

	lv.SetCursor(5)
	if lv.offset != 3 {
		t.Errorf("Expected offset unchanged while cursor visible, got %d", lv.offset)
	}
}

func TestIndexOf(t *testing.T) {
	lv := NewListView(makeTasks(3), 80, 20, now)

	if got := lv.IndexOf("t-2"); got != 2 {
		t.Errorf("Expected index 2, got %d", got)
	}
	if got := lv.IndexOf("missing"); got != -1 {
		t.Errorf("Expected -1 for unknown id, got %d", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	lv := NewListView(nil, 80, 20, now)

	out := lv.Render()
	if !strings.Contains(out, "No tasks") {
		t.Errorf("Expected empty message, got %q", out)
	}
}

func TestRenderRows(t *testing.T) {
	tasks := []domain.Task{
		{
			ID:           "a",
			Title:        "Write report",
			State:        domain.StateInProgress,
			Important:    true,
			Urgent:       true,
			Deadline:     "2025-03-01",
			TimeEstimate: "90 minutes",
			Tags:         []string{"work", "q1"},
		},
		{ID: "b", Title: "Water plants", State: domain.StateDone, Tags: []string{"home"}},
	}
	lv := NewListView(tasks, 100, 20, now)
	lv.SetSelected(map[string]bool{"b": true})

	out := ansi.Strip(lv.Render())

	for _, want := range []string{"Lane", "Title", "Deadline", "Write report", "DO", "prog", "1h 30m", "work,q1", "Water plants", "DONE", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
	if !strings.Contains(out, "▶") {
		t.Error("Expected cursor indicator on first row")
	}
	if !strings.Contains(out, "! ") {
		t.Error("Expected overdue marker on past deadline")
	}
}

func TestRenderMoreIndicator(t *testing.T) {
	lv := NewListView(makeTasks(20), 80, 10, now)

	out := ansi.Strip(lv.Render())
	if !strings.Contains(out, "13 more tasks") {
		t.Errorf("Expected scroll indicator for 13 hidden rows\n%s", out)
	}
}

func TestRenderTruncatesTitle(t *testing.T) {
	tasks := makeTasks(1)
	tasks[0].Title = strings.Repeat("x", 200)
	lv := NewListView(tasks, 80, 10, now)

	out := ansi.Strip(lv.Render())
	if !strings.Contains(out, "…") {
		t.Error("Expected long title to be truncated")
	}
}
