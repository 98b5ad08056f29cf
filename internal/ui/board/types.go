package board

import (
	"time"

	"github.com/riordanpawley/quadrant/internal/domain"
)

// Lane indices. They follow domain.AllQuadrants order.
const (
	LaneDoFirst = iota
	LaneSchedule
	LaneDelegate
	LaneEliminate
	LaneDone
	LaneCount
)

// Column represents one lane of the matrix with its tasks
type Column struct {
	Quadrant domain.Quadrant
	Title    string
	Tasks    []domain.Task
}

// Cursor represents the current cursor position
type Cursor struct {
	Column int // Lane index (0-4)
	Task   int // Task index within lane
}

// Options carries render settings that don't belong to the lanes themselves
type Options struct {
	Now              time.Time
	HideDescriptions bool
}

// BuildColumns buckets tasks into the five lanes. Order within a lane is the
// input order.
func BuildColumns(tasks []domain.Task) []Column {
	grouped := domain.GroupByQuadrant(tasks)
	columns := make([]Column, 0, LaneCount)
	for _, q := range domain.AllQuadrants() {
		columns = append(columns, Column{
			Quadrant: q,
			Title:    q.Title(),
			Tasks:    grouped[q],
		})
	}
	return columns
}

// LaneIndex returns the lane index for a quadrant, or -1
func LaneIndex(q domain.Quadrant) int {
	for i, candidate := range domain.AllQuadrants() {
		if candidate == q {
			return i
		}
	}
	return -1
}
