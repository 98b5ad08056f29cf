package domain

import (
	"sort"
	"strings"
)

// SortField represents a field to sort active lanes by
type SortField string

const (
	SortByCreated  SortField = ""
	SortByDeadline SortField = "deadline"
	SortByEstimate SortField = "estimate"
	SortByTitle    SortField = "title"
)

// Label returns the menu label
func (f SortField) Label() string {
	switch f {
	case SortByDeadline:
		return "Deadline"
	case SortByEstimate:
		return "Estimate"
	case SortByTitle:
		return "Title"
	default:
		return "Created"
	}
}

// SortOrder represents sort direction
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// Char returns the persisted single character form
func (o SortOrder) Char() string {
	if o == SortAsc {
		return "a"
	}
	return "d"
}

// ParseSortOrder reads the persisted form, defaulting to descending
func ParseSortOrder(s string) SortOrder {
	if s == "a" {
		return SortAsc
	}
	return SortDesc
}

// Flip returns the opposite direction
func (o SortOrder) Flip() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// Sort represents sorting state of the active lanes
type Sort struct {
	Field SortField
	Order SortOrder
}

// Toggle toggles the sort field or direction
// If field is different, sets new field with ascending order
// If field is same, toggles between ascending and descending
func (s *Sort) Toggle(field SortField) {
	if s.Field == field {
		s.Order = s.Order.Flip()
	} else {
		s.Field = field
		s.Order = SortAsc
	}
}

// Apply sorts a list of tasks. Tasks missing the sort key go last in either
// direction.
func (s *Sort) Apply(tasks []Task) []Task {
	if len(tasks) == 0 {
		return tasks
	}

	// Make a copy to avoid modifying the input slice
	result := make([]Task, len(tasks))
	copy(result, tasks)

	switch s.Field {
	case SortByDeadline:
		sort.SliceStable(result, func(i, j int) bool {
			di, oki := result[i].DeadlineTime()
			dj, okj := result[j].DeadlineTime()
			if oki != okj {
				return oki
			}
			if s.Order == SortAsc {
				return di.Before(dj)
			}
			return di.After(dj)
		})

	case SortByEstimate:
		sort.SliceStable(result, func(i, j int) bool {
			ei, oki := result[i].Estimate()
			ej, okj := result[j].Estimate()
			if oki != okj {
				return oki
			}
			if s.Order == SortAsc {
				return ei < ej
			}
			return ei > ej
		})

	case SortByTitle:
		sort.SliceStable(result, func(i, j int) bool {
			ti := strings.ToLower(result[i].Title)
			tj := strings.ToLower(result[j].Title)
			if s.Order == SortAsc {
				return ti < tj
			}
			return ti > tj
		})

	default:
		if s.Order == SortDesc {
			for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
				result[i], result[j] = result[j], result[i]
			}
		}
	}

	return result
}

// SortByCompletion orders done tasks by completion stamp. Tasks without a
// stamp go last.
func SortByCompletion(tasks []Task, order SortOrder) []Task {
	result := make([]Task, len(tasks))
	copy(result, tasks)
	sort.SliceStable(result, func(i, j int) bool {
		ci, cj := result[i].CompletedAt, result[j].CompletedAt
		if (ci == nil) != (cj == nil) {
			return ci != nil
		}
		if ci == nil {
			return false
		}
		if order == SortAsc {
			return ci.Before(*cj)
		}
		return ci.After(*cj)
	})
	return result
}
