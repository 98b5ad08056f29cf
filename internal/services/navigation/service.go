// Package navigation provides cursor and navigation state management
package navigation

import (
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/ui/board"
)

// Position represents a computed position in the board
type Position struct {
	Column int  // Lane index, see board.LaneDoFirst..board.LaneDone
	Task   int  // Index within the lane
	Valid  bool // Whether the position is valid
}

// Lane neighbors on the matrix layout. -1 means there is nothing that way.
//
//	Do First  | Schedule  | Done
//	Delegate  | Eliminate | Done
var (
	laneRight = [board.LaneCount]int{board.LaneSchedule, board.LaneDone, board.LaneEliminate, board.LaneDone, -1}
	laneLeft  = [board.LaneCount]int{-1, board.LaneDoFirst, -1, board.LaneDelegate, board.LaneSchedule}
	laneDown  = [board.LaneCount]int{board.LaneDelegate, board.LaneEliminate, -1, -1, -1}
	laneUp    = [board.LaneCount]int{-1, -1, board.LaneDoFirst, board.LaneSchedule, -1}
)

// neighbor returns the lane reached from col in the given direction. Boards
// that are not the five-lane matrix fall back to a single row of lanes.
func neighbor(columns []board.Column, col int, table [board.LaneCount]int, rowDelta int) int {
	if len(columns) == board.LaneCount && col >= 0 && col < board.LaneCount {
		return table[col]
	}
	next := col + rowDelta
	if rowDelta == 0 || next < 0 || next >= len(columns) {
		return -1
	}
	return next
}

// Cursor tracks the selected task by ID (survives filter/sort changes)
type Cursor struct {
	TaskID         string // Primary state: selected task ID
	FallbackColumn int    // Column to use when TaskID not found
}

// FindPosition computes the position of the cursor's task in the given columns
func (c *Cursor) FindPosition(columns []board.Column) Position {
	if c.TaskID != "" {
		for colIdx, col := range columns {
			for taskIdx, task := range col.Tasks {
				if task.ID == c.TaskID {
					return Position{Column: colIdx, Task: taskIdx, Valid: true}
				}
			}
		}
	}

	// No task selected, or it was filtered out: first task of the fallback lane
	col := c.FallbackColumn
	if col < 0 || col >= len(columns) {
		col = 0
	}
	if col < len(columns) && len(columns[col].Tasks) > 0 {
		return Position{Column: col, Task: 0, Valid: true}
	}
	return Position{Column: col, Task: 0, Valid: false}
}

// SetTask updates the cursor to point to a specific task
func (c *Cursor) SetTask(taskID string, column int) {
	c.TaskID = taskID
	c.FallbackColumn = column
}

// enterLane puts the cursor on row taskIdx of lane col, clamped to its length
func (c *Cursor) enterLane(columns []board.Column, col, taskIdx int) string {
	c.FallbackColumn = col
	tasks := columns[col].Tasks
	if len(tasks) == 0 {
		c.TaskID = "" // No task in new lane
		return c.TaskID
	}
	taskIdx = min(max(taskIdx, 0), len(tasks)-1)
	c.TaskID = tasks[taskIdx].ID
	return c.TaskID
}

// MoveVertical moves up or down within a lane. A single step past the edge
// of a matrix lane continues into the lane above or below it.
func (c *Cursor) MoveVertical(columns []board.Column, delta int) string {
	if len(columns) == 0 {
		return c.TaskID
	}
	pos := c.FindPosition(columns)
	col := columns[pos.Column]
	newIdx := pos.Task + delta

	if !pos.Valid || newIdx < 0 || newIdx >= len(col.Tasks) {
		if delta == 1 {
			if below := neighbor(columns, pos.Column, laneDown, 0); below >= 0 {
				return c.enterLane(columns, below, 0)
			}
		}
		if delta == -1 {
			if above := neighbor(columns, pos.Column, laneUp, 0); above >= 0 {
				return c.enterLane(columns, above, len(columns[above].Tasks)-1)
			}
		}
	}

	if !pos.Valid {
		return c.TaskID
	}

	// Clamp to lane bounds
	newIdx = min(max(newIdx, 0), len(col.Tasks)-1)
	c.TaskID = col.Tasks[newIdx].ID
	c.FallbackColumn = pos.Column
	return c.TaskID
}

// MoveHorizontal moves left (delta < 0) or right (delta > 0) to the adjacent
// lane, keeping the row index where the target lane is long enough
func (c *Cursor) MoveHorizontal(columns []board.Column, delta int) string {
	if len(columns) == 0 || delta == 0 {
		return c.TaskID
	}
	pos := c.FindPosition(columns)

	var target int
	if delta > 0 {
		target = neighbor(columns, pos.Column, laneRight, 1)
	} else {
		target = neighbor(columns, pos.Column, laneLeft, -1)
	}
	if target < 0 {
		return c.TaskID
	}
	return c.enterLane(columns, target, pos.Task)
}

// CycleLane steps through lanes in index order, wrapping at either end
func (c *Cursor) CycleLane(columns []board.Column, delta int) string {
	if len(columns) == 0 {
		return c.TaskID
	}
	pos := c.FindPosition(columns)
	n := len(columns)
	target := ((pos.Column+delta)%n + n) % n
	return c.enterLane(columns, target, 0)
}

// JumpToStart moves to first task in current lane
func (c *Cursor) JumpToStart(columns []board.Column) string {
	pos := c.FindPosition(columns)
	if pos.Column < len(columns) && len(columns[pos.Column].Tasks) > 0 {
		c.TaskID = columns[pos.Column].Tasks[0].ID
	}
	return c.TaskID
}

// JumpToEnd moves to last task in current lane
func (c *Cursor) JumpToEnd(columns []board.Column) string {
	pos := c.FindPosition(columns)
	if pos.Column < len(columns) {
		col := columns[pos.Column]
		if len(col.Tasks) > 0 {
			c.TaskID = col.Tasks[len(col.Tasks)-1].ID
		}
	}
	return c.TaskID
}

// JumpToColumn moves to a specific lane, keeping relative row position
func (c *Cursor) JumpToColumn(columns []board.Column, colIdx int) string {
	if len(columns) == 0 {
		return c.TaskID
	}
	colIdx = min(max(colIdx, 0), len(columns)-1)
	pos := c.FindPosition(columns)
	return c.enterLane(columns, colIdx, pos.Task)
}

// Service manages navigation state
type Service struct {
	cursor Cursor
}

// NewService creates a new navigation service
func NewService() *Service {
	return &Service{
		cursor: Cursor{},
	}
}

// GetCursor returns the current cursor (for read access)
func (s *Service) GetCursor() *Cursor {
	return &s.cursor
}

// GetPosition returns the computed position of the cursor in the given columns
func (s *Service) GetPosition(columns []board.Column) Position {
	return s.cursor.FindPosition(columns)
}

// GetCurrentTask returns the task under the cursor, or nil
func (s *Service) GetCurrentTask(columns []board.Column) *domain.Task {
	pos := s.cursor.FindPosition(columns)
	if !pos.Valid || pos.Column >= len(columns) {
		return nil
	}

	col := columns[pos.Column]
	if pos.Task >= len(col.Tasks) {
		return nil
	}

	task := col.Tasks[pos.Task]
	return &task
}

// GetCurrentQuadrant returns the lane the cursor is in. New tasks created from
// the board land here.
func (s *Service) GetCurrentQuadrant(columns []board.Column) domain.Quadrant {
	pos := s.cursor.FindPosition(columns)
	if pos.Column < 0 || pos.Column >= len(columns) {
		return domain.QuadrantDoFirst
	}
	return columns[pos.Column].Quadrant
}

// MoveDown moves cursor down in current lane
func (s *Service) MoveDown(columns []board.Column) {
	s.cursor.MoveVertical(columns, 1)
}

// MoveUp moves cursor up in current lane
func (s *Service) MoveUp(columns []board.Column) {
	s.cursor.MoveVertical(columns, -1)
}

// MoveLeft moves cursor to left lane
func (s *Service) MoveLeft(columns []board.Column) {
	s.cursor.MoveHorizontal(columns, -1)
}

// MoveRight moves cursor to right lane
func (s *Service) MoveRight(columns []board.Column) {
	s.cursor.MoveHorizontal(columns, 1)
}

// NextLane moves to the next lane, wrapping around
func (s *Service) NextLane(columns []board.Column) {
	s.cursor.CycleLane(columns, 1)
}

// PrevLane moves to the previous lane, wrapping around
func (s *Service) PrevLane(columns []board.Column) {
	s.cursor.CycleLane(columns, -1)
}

// HalfPageDown moves cursor half a page down
func (s *Service) HalfPageDown(columns []board.Column, halfPage int) {
	s.cursor.MoveVertical(columns, halfPage)
}

// HalfPageUp moves cursor half a page up
func (s *Service) HalfPageUp(columns []board.Column, halfPage int) {
	s.cursor.MoveVertical(columns, -halfPage)
}

// GotoTop moves cursor to first task in lane
func (s *Service) GotoTop(columns []board.Column) {
	s.cursor.JumpToStart(columns)
}

// GotoBottom moves cursor to last task in lane
func (s *Service) GotoBottom(columns []board.Column) {
	s.cursor.JumpToEnd(columns)
}

// GotoLane moves cursor to lane idx
func (s *Service) GotoLane(columns []board.Column, idx int) {
	s.cursor.JumpToColumn(columns, idx)
}

// SelectTask directly sets the cursor to a specific task
func (s *Service) SelectTask(taskID string, column int) {
	s.cursor.SetTask(taskID, column)
}

// JumpToTaskByID finds and selects a task by ID
func (s *Service) JumpToTaskByID(columns []board.Column, taskID string) bool {
	for colIdx, col := range columns {
		for _, task := range col.Tasks {
			if task.ID == taskID {
				s.cursor.SetTask(task.ID, colIdx)
				return true
			}
		}
	}
	return false
}
