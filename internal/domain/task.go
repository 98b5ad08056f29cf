// Package domain contains core business types for the Quadrant application.
package domain

import "time"

// Task represents a unit of work placed on the matrix
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Deadline     string     `json:"deadline,omitempty"`
	TimeEstimate string     `json:"timeEstimate,omitempty"`
	State        State      `json:"state"`
	Important    bool       `json:"important"`
	Urgent       bool       `json:"urgent"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	Tags         []string   `json:"tags"`
}

// State represents the lifecycle state of a task
type State string

const (
	StateCreated    State = "created"
	StateInProgress State = "in-progress"
	StateWIP        State = "wip"
	StateDone       State = "done"
)

// AllStates lists the lifecycle states in display order
func AllStates() []State {
	return []State{StateCreated, StateInProgress, StateWIP, StateDone}
}

// Valid reports whether s is one of the known states
func (s State) Valid() bool {
	switch s {
	case StateCreated, StateInProgress, StateWIP, StateDone:
		return true
	default:
		return false
	}
}

// String returns the display string
func (s State) String() string {
	return string(s)
}

// Label returns the human readable label
func (s State) Label() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateInProgress:
		return "In Progress"
	case StateWIP:
		return "WIP"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Short returns single character representation
func (s State) Short() string {
	switch s {
	case StateCreated:
		return "C"
	case StateInProgress:
		return "I"
	case StateWIP:
		return "W"
	case StateDone:
		return "D"
	default:
		return "?"
	}
}

// IsDone returns true if the task has been completed
func (t Task) IsDone() bool {
	return t.State == StateDone
}

// HasTag reports whether the task carries the tag, ignoring case
func (t Task) HasTag(tag string) bool {
	want := NormalizeTag(tag)
	for _, have := range t.Tags {
		if NormalizeTag(have) == want {
			return true
		}
	}
	return false
}

// DeadlineTime parses the deadline. ok is false when the task has none or it
// cannot be parsed.
func (t Task) DeadlineTime() (time.Time, bool) {
	if t.Deadline == "" {
		return time.Time{}, false
	}
	d, err := ParseDate(t.Deadline)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Estimate returns the structured form of TimeEstimate
func (t Task) Estimate() (time.Duration, bool) {
	return ParseEstimate(t.TimeEstimate)
}

// Quadrant returns the display lane for the task
func (t Task) Quadrant() Quadrant {
	return Classify(t)
}

// Clone returns a deep copy so callers can't alias store state
func (t Task) Clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return c
}

// TaskInput carries the fields of a create or edit form. Nil fields are left
// untouched on update; on create Important defaults to true and Urgent to false.
type TaskInput struct {
	Title        *string
	Description  *string
	Deadline     *string
	TimeEstimate *string
	Important    *bool
	Urgent       *bool
	Tags         []string // nil keeps the current tags on update
	CompletedAt  *time.Time
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}
