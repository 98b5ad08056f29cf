// Package preferences persists view choices that outlive a session.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/storage"
)

// Preferences are the persisted view choices
type Preferences struct {
	FilterTags []string
	FilterMode domain.TagMode
	DoneSort   domain.SortOrder
}

// Defaults returns the preferences used when nothing is stored
func Defaults() Preferences {
	return Preferences{
		FilterTags: []string{},
		FilterMode: domain.TagModeOr,
		DoneSort:   domain.SortDesc,
	}
}

// Service reads and writes preferences. Failures fall back to defaults on
// read and are dropped on write.
type Service struct {
	kv     storage.KV
	logger *slog.Logger
}

// NewService creates a preferences service backed by kv
func NewService(kv storage.KV, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{kv: kv, logger: logger}
}

// Load returns stored preferences, using defaults for anything missing
func (s *Service) Load(ctx context.Context) Preferences {
	prefs := Defaults()

	if raw, ok := s.get(ctx, storage.KeyFilterTags); ok {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			s.logger.Warn("failed to decode filter tags", "error", err)
		} else {
			prefs.FilterTags = domain.NormalizeTags(tags)
		}
	}

	if raw, ok := s.get(ctx, storage.KeyFilterMode); ok {
		prefs.FilterMode = domain.ParseTagMode(raw)
	}

	if raw, ok := s.get(ctx, storage.KeyDoneSort); ok {
		prefs.DoneSort = domain.ParseSortOrder(raw)
	}

	s.logger.Debug("loaded preferences", "filterTags", len(prefs.FilterTags), "filterMode", prefs.FilterMode, "doneSort", prefs.DoneSort.Char())
	return prefs
}

// SaveFilterTags stores the selected filter tags. An empty selection removes
// the key.
func (s *Service) SaveFilterTags(ctx context.Context, tags []string) {
	if len(tags) == 0 {
		s.remove(ctx, storage.KeyFilterTags)
		return
	}
	data, err := json.Marshal(tags)
	if err != nil {
		s.logger.Warn("failed to encode filter tags", "error", err)
		return
	}
	s.set(ctx, storage.KeyFilterTags, string(data))
}

// SaveFilterMode stores the AND/OR tag combination
func (s *Service) SaveFilterMode(ctx context.Context, mode domain.TagMode) {
	s.set(ctx, storage.KeyFilterMode, string(mode))
}

// SaveDoneSort stores the done lane order as "a" or "d"
func (s *Service) SaveDoneSort(ctx context.Context, order domain.SortOrder) {
	s.set(ctx, storage.KeyDoneSort, order.Char())
}

func (s *Service) get(ctx context.Context, key string) (string, bool) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrUnavailable) {
			s.logger.Warn("failed to read preference", "key", key, "error", err)
		}
		return "", false
	}
	return raw, ok && raw != ""
}

func (s *Service) set(ctx context.Context, key, value string) {
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.logger.Warn("failed to save preference", "key", key, "error", err)
	}
}

func (s *Service) remove(ctx context.Context, key string) {
	if err := s.kv.Remove(ctx, key); err != nil {
		s.logger.Warn("failed to remove preference", "key", key, "error", err)
	}
}
