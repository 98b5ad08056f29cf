// Package tags manages the custom tag registry and tag colors.
package tags

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/storage"
)

// Service is the source of truth for which tag names exist. The built-in
// tags are implicit; user tags live in the custom registry under
// storage.KeyCustomTags. Storage failures are logged and swallowed.
type Service struct {
	mu     sync.Mutex
	kv     storage.KV
	logger *slog.Logger
}

// NewService creates a tag registry backed by kv
func NewService(kv storage.KV, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		kv:     kv,
		logger: logger,
	}
}

// ValidateName checks a candidate tag name
func (s *Service) ValidateName(name string) domain.TagValidation {
	return domain.ValidateTagName(name)
}

// ColorFor returns the chip colors for a tag
func (s *Service) ColorFor(name string) domain.TagColor {
	return domain.TagColorFor(name)
}

// Custom returns the registered custom tags in insertion order
func (s *Service) Custom(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

// AvailableTags returns the built-in tags followed by the custom tags
func (s *Service) AvailableTags(ctx context.Context) []string {
	custom := s.Custom(ctx)
	return append(domain.DefaultTags(), custom...)
}

// RegisterCustom adds name to the registry. It reports whether the registry
// changed; built-in names, existing names and invalid names are ignored.
func (s *Service) RegisterCustom(ctx context.Context, name string) bool {
	normalized := domain.NormalizeTag(name)
	if domain.IsDefaultTag(normalized) || !domain.ValidateTagName(normalized).Valid {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	custom := s.read(ctx)
	for _, existing := range custom {
		if domain.NormalizeTag(existing) == normalized {
			return false
		}
	}

	s.logger.Debug("registering custom tag", "tag", normalized)
	s.write(ctx, append(custom, normalized))
	return true
}

// CleanupUnused removes custom tags no task refers to. The registry is only
// written when it shrinks, so repeated calls with the same tasks are no-ops.
func (s *Service) CleanupUnused(ctx context.Context, tasks []domain.Task) {
	inUse := make(map[string]bool)
	for _, t := range tasks {
		for _, tag := range t.Tags {
			inUse[domain.NormalizeTag(tag)] = true
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	custom := s.read(ctx)
	kept := make([]string, 0, len(custom))
	for _, tag := range custom {
		name := domain.NormalizeTag(tag)
		if inUse[name] || domain.IsDefaultTag(name) {
			kept = append(kept, tag)
		}
	}

	if len(kept) < len(custom) {
		s.logger.Debug("removing unused custom tags", "before", len(custom), "after", len(kept))
		s.write(ctx, kept)
	}
}

// CleanupDuplicates collapses case variants to one lower-case entry, keeping
// first-seen order, and drops built-in names that leaked into the registry
func (s *Service) CleanupDuplicates(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	custom := s.read(ctx)
	seen := make(map[string]bool, len(custom))
	cleaned := make([]string, 0, len(custom))
	changed := false
	for _, tag := range custom {
		name := domain.NormalizeTag(tag)
		if seen[name] || domain.IsDefaultTag(name) || name == "" {
			changed = true
			continue
		}
		if name != tag {
			changed = true
		}
		seen[name] = true
		cleaned = append(cleaned, name)
	}

	if changed {
		s.logger.Debug("collapsing duplicate custom tags", "before", len(custom), "after", len(cleaned))
		s.write(ctx, cleaned)
	}
}

// AllTags returns the distinct tags in use across tasks, sorted
func (s *Service) AllTags(tasks []domain.Task) []string {
	return domain.AllTags(tasks)
}

// TagCounts returns how many tasks carry each tag
func (s *Service) TagCounts(tasks []domain.Task) map[string]int {
	return domain.TagCounts(tasks)
}

// read loads the registry; any failure reads as an empty registry
func (s *Service) read(ctx context.Context) []string {
	raw, ok, err := s.kv.Get(ctx, storage.KeyCustomTags)
	if err != nil {
		if !errors.Is(err, storage.ErrUnavailable) {
			s.logger.Warn("failed to read custom tags", "error", err)
		}
		return []string{}
	}
	if !ok || raw == "" {
		return []string{}
	}

	var custom []string
	if err := json.Unmarshal([]byte(raw), &custom); err != nil {
		s.logger.Warn("failed to decode custom tags", "error", &domain.StorageError{Op: "decode", Key: storage.KeyCustomTags, Err: err})
		return []string{}
	}
	return custom
}

func (s *Service) write(ctx context.Context, custom []string) {
	data, err := json.Marshal(custom)
	if err != nil {
		s.logger.Warn("failed to encode custom tags", "error", err)
		return
	}
	if err := s.kv.Set(ctx, storage.KeyCustomTags, string(data)); err != nil {
		s.logger.Warn("failed to save custom tags", "error", err)
	}
}
