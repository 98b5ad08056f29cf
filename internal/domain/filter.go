package domain

import (
	"sort"
	"strings"
	"time"
)

// TagMode controls how several selected tags combine
type TagMode string

const (
	TagModeAnd TagMode = "AND"
	TagModeOr  TagMode = "OR"
)

// ParseTagMode returns the mode for s, falling back to OR
func ParseTagMode(s string) TagMode {
	if strings.EqualFold(strings.TrimSpace(s), string(TagModeAnd)) {
		return TagModeAnd
	}
	return TagModeOr
}

// Toggle flips between AND and OR
func (m TagMode) Toggle() TagMode {
	if m == TagModeAnd {
		return TagModeOr
	}
	return TagModeAnd
}

// SearchByText keeps tasks where every whitespace separated term of query
// appears in the title or the description, ignoring case.
func SearchByText(tasks []Task, query string) []Task {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return tasks
	}

	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		title := strings.ToLower(t.Title)
		desc := strings.ToLower(t.Description)
		matched := true
		for _, term := range terms {
			if !strings.Contains(title, term) && !strings.Contains(desc, term) {
				matched = false
				break
			}
		}
		if matched {
			result = append(result, t)
		}
	}
	return result
}

// FilterByTags keeps tasks carrying all (AND) or any (OR) of tags
func FilterByTags(tasks []Task, tags []string, mode TagMode) []Task {
	if len(tags) == 0 {
		return tasks
	}

	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesTags(t, tags, mode) {
			result = append(result, t)
		}
	}
	return result
}

func matchesTags(t Task, tags []string, mode TagMode) bool {
	if len(t.Tags) == 0 {
		return false
	}
	if mode == TagModeAnd {
		for _, tag := range tags {
			if !t.HasTag(tag) {
				return false
			}
		}
		return true
	}
	for _, tag := range tags {
		if t.HasTag(tag) {
			return true
		}
	}
	return false
}

// FilterByStatus keeps tasks whose state is one of statuses
func FilterByStatus(tasks []Task, statuses []State) []Task {
	if len(statuses) == 0 {
		return tasks
	}

	want := make(map[State]bool, len(statuses))
	for _, s := range statuses {
		want[s] = true
	}

	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if want[t.State] {
			result = append(result, t)
		}
	}
	return result
}

// FilterByDateRange keeps tasks whose deadline lies in [start, end]. Either
// bound may be nil. Tasks without a parseable deadline never match once a
// bound is set.
func FilterByDateRange(tasks []Task, start, end *time.Time) []Task {
	if start == nil && end == nil {
		return tasks
	}

	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		d, ok := t.DeadlineTime()
		if !ok {
			continue
		}
		if start != nil && d.Before(*start) {
			continue
		}
		if end != nil && d.After(*end) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// FilterByPriority keeps tasks matching each non-nil flag exactly
func FilterByPriority(tasks []Task, important, urgent *bool) []Task {
	if important == nil && urgent == nil {
		return tasks
	}

	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if important != nil && t.Important != *important {
			continue
		}
		if urgent != nil && t.Urgent != *urgent {
			continue
		}
		result = append(result, t)
	}
	return result
}

// DatePreset is a named deadline window offered by the filter menu
type DatePreset string

const (
	DateAny      DatePreset = ""
	DateOverdue  DatePreset = "overdue"
	DateToday    DatePreset = "today"
	DateThisWeek DatePreset = "week"
)

// Label returns the menu label
func (p DatePreset) Label() string {
	switch p {
	case DateOverdue:
		return "Overdue"
	case DateToday:
		return "Due today"
	case DateThisWeek:
		return "Due in 7 days"
	default:
		return "Any deadline"
	}
}

// Range returns the inclusive bounds of the preset relative to now
func (p DatePreset) Range(now time.Time) (start, end *time.Time) {
	today := StartOfDay(now)
	switch p {
	case DateOverdue:
		e := today.Add(-time.Nanosecond)
		return nil, &e
	case DateToday:
		e := EndOfDay(now)
		return &today, &e
	case DateThisWeek:
		e := EndOfDay(today.AddDate(0, 0, 6))
		return &today, &e
	default:
		return nil, nil
	}
}

// Filter represents the combined view filter state
type Filter struct {
	SearchQuery string
	Tags        map[string]bool
	TagMode     TagMode
	Status      map[State]bool
	DatePreset  DatePreset
	Start       *time.Time
	End         *time.Time
	Important   *bool
	Urgent      *bool
}

// NewFilter creates a new empty filter
func NewFilter() *Filter {
	return &Filter{
		Tags:    make(map[string]bool),
		TagMode: TagModeOr,
		Status:  make(map[State]bool),
	}
}

// IsActive returns true if any filter is active
func (f *Filter) IsActive() bool {
	return strings.TrimSpace(f.SearchQuery) != "" ||
		len(f.Tags) > 0 ||
		len(f.Status) > 0 ||
		f.Start != nil ||
		f.End != nil ||
		f.Important != nil ||
		f.Urgent != nil
}

// Apply runs text, tag, status, date and priority filters in that order
func (f *Filter) Apply(tasks []Task) []Task {
	if !f.IsActive() {
		return tasks
	}

	result := SearchByText(tasks, f.SearchQuery)
	result = FilterByTags(result, f.SelectedTags(), f.TagMode)
	result = FilterByStatus(result, f.SelectedStatuses())
	result = FilterByDateRange(result, f.Start, f.End)
	return FilterByPriority(result, f.Important, f.Urgent)
}

// Matches returns true if the task passes all active filters
func (f *Filter) Matches(t Task) bool {
	return len(f.Apply([]Task{t})) == 1
}

// SelectedTags returns the selected tag names in sorted order
func (f *Filter) SelectedTags() []string {
	tags := make([]string, 0, len(f.Tags))
	for tag := range f.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// SelectedStatuses returns the selected states in lifecycle order
func (f *Filter) SelectedStatuses() []State {
	var states []State
	for _, s := range AllStates() {
		if f.Status[s] {
			states = append(states, s)
		}
	}
	return states
}

// SetTags replaces the tag selection
func (f *Filter) SetTags(tags []string) {
	f.Tags = make(map[string]bool, len(tags))
	for _, tag := range tags {
		if name := NormalizeTag(tag); name != "" {
			f.Tags[name] = true
		}
	}
}

// SetDatePreset sets the deadline window from a preset
func (f *Filter) SetDatePreset(p DatePreset, now time.Time) {
	f.DatePreset = p
	f.Start, f.End = p.Range(now)
}

// Clear resets all filters. The tag mode is a preference and survives.
func (f *Filter) Clear() {
	f.SearchQuery = ""
	f.Tags = make(map[string]bool)
	f.Status = make(map[State]bool)
	f.DatePreset = DateAny
	f.Start = nil
	f.End = nil
	f.Important = nil
	f.Urgent = nil
}

// ToggleTag toggles a tag filter
func (f *Filter) ToggleTag(tag string) {
	name := NormalizeTag(tag)
	if f.Tags[name] {
		delete(f.Tags, name)
	} else {
		f.Tags[name] = true
	}
}

// ToggleStatus toggles a status filter
func (f *Filter) ToggleStatus(s State) {
	if f.Status[s] {
		delete(f.Status, s)
	} else {
		f.Status[s] = true
	}
}

// CycleImportant steps the important constraint through any, yes, no
func (f *Filter) CycleImportant() {
	f.Important = cycleFlag(f.Important)
}

// CycleUrgent steps the urgent constraint through any, yes, no
func (f *Filter) CycleUrgent() {
	f.Urgent = cycleFlag(f.Urgent)
}

func cycleFlag(b *bool) *bool {
	switch {
	case b == nil:
		return BoolPtr(true)
	case *b:
		return BoolPtr(false)
	default:
		return nil
	}
}
