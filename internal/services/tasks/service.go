// Package tasks owns the authoritative task list and its lifecycle.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/storage"
)

// TagRegistry is the part of the tag service the store drives
type TagRegistry interface {
	RegisterCustom(ctx context.Context, name string) bool
	CleanupUnused(ctx context.Context, tasks []domain.Task)
}

// Service holds the task list for the session. Every successful mutation
// writes the whole list to storage.KeyTasks exactly once; write failures are
// logged and never returned.
type Service struct {
	mu     sync.RWMutex
	tasks  []domain.Task
	kv     storage.KV
	tags   TagRegistry
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Service
type Option func(*Service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator replaces the UUID generator
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// NewService creates an empty store. Call LoadInitial to read persisted tasks.
func NewService(kv storage.KV, tags TagRegistry, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		kv:     kv,
		tags:   tags,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadInitial replaces the in-memory list with the persisted one. Records are
// repaired on the way in; if any needed repair the list is written back
// immediately. Unreadable storage yields an empty list.
func (s *Service) LoadInitial(ctx context.Context) []domain.Task {
	s.logger.Debug("loading tasks")

	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, changed := s.read(ctx)
	s.tasks = loaded

	if changed {
		s.logger.Info("repaired stored tasks", "count", len(loaded))
		s.flush(ctx)
	}

	s.logger.Debug("loaded tasks", "count", len(loaded))
	return s.snapshot()
}

// List returns a copy of all tasks in insertion order
func (s *Service) List() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Get returns a copy of the task with id
func (s *Service) Get(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return domain.Task{}, false
}

// Create appends a new task in the created state
func (s *Service) Create(ctx context.Context, input domain.TaskInput) (domain.Task, error) {
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		return domain.Task{}, domain.ErrEmptyTitle
	}
	if err := validateDeadline(input.Deadline); err != nil {
		return domain.Task{}, err
	}

	task := domain.Task{
		ID:        s.newID(),
		Title:     strings.TrimSpace(*input.Title),
		State:     domain.StateCreated,
		Important: true,
		Tags:      domain.ResolveTags(input.Tags),
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Deadline != nil {
		task.Deadline = strings.TrimSpace(*input.Deadline)
	}
	if input.TimeEstimate != nil {
		task.TimeEstimate = strings.TrimSpace(*input.TimeEstimate)
	}
	if input.Important != nil {
		task.Important = *input.Important
	}
	if input.Urgent != nil {
		task.Urgent = *input.Urgent
	}

	s.logger.Debug("creating task", "id", task.ID, "tags", task.Tags)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, task)
	s.registerTags(ctx, task.Tags)
	s.flush(ctx)
	s.tags.CleanupUnused(ctx, s.snapshot())

	return task.Clone(), nil
}

// Update merges the non-nil fields of input into the task with id
func (s *Service) Update(ctx context.Context, id string, input domain.TaskInput) (domain.Task, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return domain.Task{}, domain.ErrEmptyTitle
	}
	if err := validateDeadline(input.Deadline); err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug("update of unknown task ignored", "id", id)
		return domain.Task{}, domain.ErrNotFound
	}

	task := s.tasks[i].Clone()
	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Deadline != nil {
		task.Deadline = strings.TrimSpace(*input.Deadline)
	}
	if input.TimeEstimate != nil {
		task.TimeEstimate = strings.TrimSpace(*input.TimeEstimate)
	}
	if input.Important != nil {
		task.Important = *input.Important
	}
	if input.Urgent != nil {
		task.Urgent = *input.Urgent
	}
	if input.Tags != nil {
		task.Tags = domain.ResolveTags(input.Tags)
	} else {
		task.Tags = domain.ResolveTags(task.Tags)
	}
	if input.CompletedAt != nil {
		at := *input.CompletedAt
		task.CompletedAt = &at
	}

	s.logger.Debug("updating task", "id", id)

	s.tasks[i] = task
	s.registerTags(ctx, task.Tags)
	s.flush(ctx)
	s.tags.CleanupUnused(ctx, s.snapshot())

	return task.Clone(), nil
}

// ChangeState moves a task to state. Entering done stamps CompletedAt once;
// leaving done keeps the stamp.
func (s *Service) ChangeState(ctx context.Context, id string, state domain.State) (domain.Task, error) {
	if !state.Valid() {
		return domain.Task{}, &domain.ValidationError{Field: "state", Message: "unknown state " + string(state)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug("state change of unknown task ignored", "id", id)
		return domain.Task{}, domain.ErrNotFound
	}

	task := &s.tasks[i]
	s.logger.Debug("changing task state", "id", id, "from", task.State, "to", state)

	task.State = state
	if state == domain.StateDone && task.CompletedAt == nil {
		at := s.now()
		task.CompletedAt = &at
	}

	s.flush(ctx)
	return task.Clone(), nil
}

// Delete removes the task with id
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}

	s.logger.Debug("deleting task", "id", id)

	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.flush(ctx)
	s.tags.CleanupUnused(ctx, s.snapshot())
	return nil
}

func (s *Service) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t domain.Task) bool { return t.ID == id })
}

func (s *Service) snapshot() []domain.Task {
	out := make([]domain.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (s *Service) registerTags(ctx context.Context, tags []string) {
	for _, tag := range tags {
		s.tags.RegisterCustom(ctx, tag)
	}
}

// flush writes the full list; callers hold the write lock
func (s *Service) flush(ctx context.Context) {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		s.logger.Warn("failed to encode tasks", "error", err)
		return
	}
	if err := s.kv.Set(ctx, storage.KeyTasks, string(data)); err != nil {
		s.logger.Warn("failed to save tasks", "error", err, "count", len(s.tasks))
	}
}

// read decodes and repairs the persisted list. changed reports whether any
// record was altered or dropped.
func (s *Service) read(ctx context.Context) (tasks []domain.Task, changed bool) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyTasks)
	if err != nil {
		if !errors.Is(err, storage.ErrUnavailable) {
			s.logger.Warn("failed to read tasks", "error", err)
		}
		return []domain.Task{}, false
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []domain.Task{}, false
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warn("failed to decode tasks", "error", &domain.StorageError{Op: "decode", Key: storage.KeyTasks, Err: err})
		return []domain.Task{}, false
	}

	tasks = make([]domain.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		t, lossy, err := decodeRecord(rec)
		if err != nil {
			s.logger.Warn("dropping unreadable task record", "error", err)
			changed = true
			continue
		}
		repaired, keep, fixed := repair(t)
		if !keep || seen[repaired.ID] {
			s.logger.Warn("dropping invalid task record", "id", t.ID)
			changed = true
			continue
		}
		if lossy {
			s.logger.Warn("repaired malformed task fields", "id", t.ID)
		}
		seen[repaired.ID] = true
		changed = changed || fixed || lossy
		tasks = append(tasks, repaired)
	}
	return tasks, changed
}

// decodeRecord reads one stored task field by field. A field of the wrong
// shape falls back to its zero value and sets lossy, as does a completedAt
// that had to be rewritten. Only a record that is not a JSON object fails.
func decodeRecord(rec json.RawMessage) (t domain.Task, lossy bool, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rec, &fields); err != nil {
		return domain.Task{}, false, err
	}
	if fields == nil {
		return domain.Task{}, false, errors.New("null task record")
	}

	str := func(key string) string {
		raw, ok := fields[key]
		if !ok || isNull(raw) {
			return ""
		}
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			lossy = true
			return ""
		}
		return v
	}
	flag := func(key string) bool {
		raw, ok := fields[key]
		if !ok || isNull(raw) {
			return false
		}
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			lossy = true
			return false
		}
		return v
	}

	t = domain.Task{
		ID:           str("id"),
		Title:        str("title"),
		Description:  str("description"),
		Deadline:     str("deadline"),
		TimeEstimate: str("timeEstimate"),
		State:        domain.State(str("state")),
		Important:    flag("important"),
		Urgent:       flag("urgent"),
	}

	if raw, ok := fields["completedAt"]; ok && !isNull(raw) {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil || strings.TrimSpace(v) == "" {
			lossy = true
		} else if at, err := domain.ParseDate(v); err != nil {
			lossy = true
		} else {
			t.CompletedAt = &at
			lossy = lossy || at.Format(time.RFC3339Nano) != v
		}
	}

	if raw, ok := fields["tags"]; ok && !isNull(raw) {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			lossy = true
		}
		for _, item := range items {
			var tag string
			if err := json.Unmarshal(item, &tag); err != nil {
				lossy = true
				continue
			}
			t.Tags = append(t.Tags, tag)
		}
	}

	return t, lossy, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// repair coerces a decoded record into a valid task. keep is false when the
// record cannot be salvaged.
func repair(t domain.Task) (repaired domain.Task, keep, fixed bool) {
	if t.ID == "" || strings.TrimSpace(t.Title) == "" {
		return t, false, true
	}

	if !t.State.Valid() {
		t.State = domain.StateCreated
		fixed = true
	}

	tags := domain.ResolveTags(t.Tags)
	if !slices.Equal(tags, t.Tags) {
		t.Tags = tags
		fixed = true
	}

	return t, true, fixed
}

func validateDeadline(deadline *string) error {
	if deadline == nil || strings.TrimSpace(*deadline) == "" {
		return nil
	}
	if _, err := domain.ParseDate(*deadline); err != nil {
		return &domain.ValidationError{Field: "deadline", Message: err.Error()}
	}
	return nil
}
