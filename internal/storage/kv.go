// Package storage provides the key-value persistence boundary the task store
// and tag registry flush to.
package storage

import (
	"context"
	"errors"
)

// Keys used by the application. The names match the browser storage keys of
// earlier clients so exported blobs can be imported unchanged.
const (
	KeyTasks      = "eisenhower-tasks"
	KeyCustomTags = "eisenhower-custom-tags"
	KeyFilterTags = "eisenhower-filter-tags"
	KeyFilterMode = "eisenhower-filter-mode"
	KeyDoneSort   = "eisenhower-done-sort"
)

// ErrUnavailable is returned by every operation of a backend that could not
// be opened
var ErrUnavailable = errors.New("storage unavailable")

// KV is a string key-value store. Get reports ok=false for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Store is a KV that holds resources
type Store interface {
	KV
	Close() error
}

// Unavailable is the store used when the configured backend cannot be
// reached. Reads and writes fail with ErrUnavailable.
type Unavailable struct{}

func (Unavailable) Get(context.Context, string) (string, bool, error) {
	return "", false, ErrUnavailable
}

func (Unavailable) Set(context.Context, string, string) error {
	return ErrUnavailable
}

func (Unavailable) Remove(context.Context, string) error {
	return ErrUnavailable
}

func (Unavailable) Close() error {
	return nil
}
