// Package editor provides input mode and view state management
package editor

import (
	"sort"
	"strings"
	"time"

	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/types"
	"github.com/riordanpawley/quadrant/internal/ui/board"
)

// Re-export Mode type for convenience
type Mode = types.Mode

// Mode constants
const (
	ModeNormal = types.ModeNormal
	ModeSelect = types.ModeSelect
	ModeSearch = types.ModeSearch
	ModeGoto   = types.ModeGoto
)

// Service manages view state (mode, filter, sort, selections)
type Service struct {
	mode          Mode
	filter        *domain.Filter
	sort          *domain.Sort
	doneOrder     domain.SortOrder
	selectedTasks map[string]bool
}

// NewService creates a new editor service with defaults
func NewService() *Service {
	return &Service{
		mode:   ModeNormal,
		filter: domain.NewFilter(),
		sort: &domain.Sort{
			Field: domain.SortByCreated,
			Order: domain.SortAsc,
		},
		doneOrder:     domain.SortDesc,
		selectedTasks: make(map[string]bool),
	}
}

// GetMode returns the current mode
func (s *Service) GetMode() Mode {
	return s.mode
}

// SetMode sets the current mode
func (s *Service) SetMode(mode Mode) {
	s.mode = mode
}

// EnterNormal switches to normal mode
func (s *Service) EnterNormal() {
	s.mode = ModeNormal
}

// EnterSelect switches to select mode
func (s *Service) EnterSelect() {
	s.mode = ModeSelect
}

// EnterSearch switches to search mode
func (s *Service) EnterSearch() {
	s.mode = ModeSearch
}

// EnterGoto switches to goto mode
func (s *Service) EnterGoto() {
	s.mode = ModeGoto
}

// ExitMode returns to normal mode if not already normal
func (s *Service) ExitMode() bool {
	if s.mode != ModeNormal {
		s.mode = ModeNormal
		return true
	}
	return false
}

// IsNormal returns true if in normal mode
func (s *Service) IsNormal() bool {
	return s.mode == ModeNormal
}

// IsSelect returns true if in select mode
func (s *Service) IsSelect() bool {
	return s.mode == ModeSelect
}

// IsSearch returns true if in search mode
func (s *Service) IsSearch() bool {
	return s.mode == ModeSearch
}

// IsGoto returns true if in goto mode
func (s *Service) IsGoto() bool {
	return s.mode == ModeGoto
}

// Filter management

// GetFilter returns the current filter
func (s *Service) GetFilter() *domain.Filter {
	return s.filter
}

// SetFilter sets the filter
func (s *Service) SetFilter(filter *domain.Filter) {
	s.filter = filter
}

// SetSearchQuery updates the search query in the filter
func (s *Service) SetSearchQuery(query string) {
	s.filter.SearchQuery = query
}

// ClearSearch clears the search query
func (s *Service) ClearSearch() {
	s.filter.SearchQuery = ""
}

// ToggleTagFilter toggles a tag in the filter
func (s *Service) ToggleTagFilter(tag string) {
	s.filter.ToggleTag(tag)
}

// SetTagFilters replaces the tag selection, e.g. from saved preferences
func (s *Service) SetTagFilters(tags []string) {
	s.filter.SetTags(tags)
}

// ToggleTagMode flips between matching any and all selected tags
func (s *Service) ToggleTagMode() domain.TagMode {
	s.filter.TagMode = s.filter.TagMode.Toggle()
	return s.filter.TagMode
}

// SetTagMode sets the tag matching mode
func (s *Service) SetTagMode(mode domain.TagMode) {
	s.filter.TagMode = mode
}

// ToggleStatusFilter toggles a state in the filter
func (s *Service) ToggleStatusFilter(state domain.State) {
	s.filter.ToggleStatus(state)
}

// CycleImportantFilter steps the important constraint through any, yes, no
func (s *Service) CycleImportantFilter() {
	s.filter.CycleImportant()
}

// CycleUrgentFilter steps the urgent constraint through any, yes, no
func (s *Service) CycleUrgentFilter() {
	s.filter.CycleUrgent()
}

// SetDatePreset sets the deadline window relative to now
func (s *Service) SetDatePreset(preset domain.DatePreset, now time.Time) {
	s.filter.SetDatePreset(preset, now)
}

// RefreshDateWindow recomputes a preset window so "today" follows the clock
func (s *Service) RefreshDateWindow(now time.Time) {
	if s.filter.DatePreset != domain.DateAny {
		s.filter.SetDatePreset(s.filter.DatePreset, now)
	}
}

// ClearFilters clears all filters. The tag mode survives.
func (s *Service) ClearFilters() {
	s.filter.Clear()
}

// IsFilterActive returns true if any filter is active
func (s *Service) IsFilterActive() bool {
	return s.filter.IsActive()
}

// ApplyFilter filters a list of tasks
func (s *Service) ApplyFilter(tasks []domain.Task) []domain.Task {
	return s.filter.Apply(tasks)
}

// Sort management

// GetSort returns the current sort settings of the active lanes
func (s *Service) GetSort() *domain.Sort {
	return s.sort
}

// SetSort sets the sort settings
func (s *Service) SetSort(sort *domain.Sort) {
	s.sort = sort
}

// SetSortField sets the sort field
func (s *Service) SetSortField(field domain.SortField) {
	s.sort.Field = field
}

// SetSortOrder sets the sort order
func (s *Service) SetSortOrder(order domain.SortOrder) {
	s.sort.Order = order
}

// ToggleSort toggles between fields or direction
func (s *Service) ToggleSort(field domain.SortField) {
	s.sort.Toggle(field)
}

// ApplySort sorts a list of tasks
func (s *Service) ApplySort(tasks []domain.Task) []domain.Task {
	return s.sort.Apply(tasks)
}

// GetDoneOrder returns the completion order of the done lane
func (s *Service) GetDoneOrder() domain.SortOrder {
	return s.doneOrder
}

// SetDoneOrder sets the completion order of the done lane
func (s *Service) SetDoneOrder(order domain.SortOrder) {
	s.doneOrder = order
}

// FlipDoneOrder toggles the done lane between newest and oldest first
func (s *Service) FlipDoneOrder() domain.SortOrder {
	s.doneOrder = s.doneOrder.Flip()
	return s.doneOrder
}

// Selection management

// GetSelectedTasks returns the set of selected task IDs
func (s *Service) GetSelectedTasks() map[string]bool {
	return s.selectedTasks
}

// IsSelected returns true if the task is selected
func (s *Service) IsSelected(taskID string) bool {
	return s.selectedTasks[taskID]
}

// ToggleSelection toggles selection of a task
func (s *Service) ToggleSelection(taskID string) {
	if s.selectedTasks[taskID] {
		delete(s.selectedTasks, taskID)
	} else {
		s.selectedTasks[taskID] = true
	}
}

// Select adds a task to the selection
func (s *Service) Select(taskID string) {
	s.selectedTasks[taskID] = true
}

// Deselect removes a task from the selection
func (s *Service) Deselect(taskID string) {
	delete(s.selectedTasks, taskID)
}

// SelectAll selects all tasks from a list
func (s *Service) SelectAll(tasks []domain.Task) {
	for _, task := range tasks {
		s.selectedTasks[task.ID] = true
	}
}

// ClearSelection clears all selections
func (s *Service) ClearSelection() {
	s.selectedTasks = make(map[string]bool)
}

// PruneSelection drops selected IDs that no longer exist
func (s *Service) PruneSelection(tasks []domain.Task) {
	present := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		present[task.ID] = true
	}
	for id := range s.selectedTasks {
		if !present[id] {
			delete(s.selectedTasks, id)
		}
	}
}

// SelectionCount returns the number of selected tasks
func (s *Service) SelectionCount() int {
	return len(s.selectedTasks)
}

// HasSelection returns true if any tasks are selected
func (s *Service) HasSelection() bool {
	return len(s.selectedTasks) > 0
}

// GetSelectedTasksList returns the selected task IDs in sorted order
func (s *Service) GetSelectedTasksList() []string {
	result := make([]string, 0, len(s.selectedTasks))
	for id := range s.selectedTasks {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

// FilterAndSort applies both filter and sort to a task list
func (s *Service) FilterAndSort(tasks []domain.Task) []domain.Task {
	filtered := s.filter.Apply(tasks)
	return s.sort.Apply(filtered)
}

// Lanes filters the tasks and buckets them into the five board lanes. Active
// lanes follow the sort settings; with the default order and a search query
// they are ranked by relevance instead. The done lane is ordered by
// completion time.
func (s *Service) Lanes(tasks []domain.Task) []board.Column {
	columns := board.BuildColumns(s.filter.Apply(tasks))
	query := strings.TrimSpace(s.filter.SearchQuery)

	for i := range columns {
		if columns[i].Quadrant == domain.QuadrantDone {
			columns[i].Tasks = domain.SortByCompletion(columns[i].Tasks, s.doneOrder)
			continue
		}
		if query != "" && s.sort.Field == domain.SortByCreated && s.sort.Order == domain.SortAsc {
			columns[i].Tasks = domain.RankByRelevance(columns[i].Tasks, query)
			continue
		}
		columns[i].Tasks = s.sort.Apply(columns[i].Tasks)
	}
	return columns
}
