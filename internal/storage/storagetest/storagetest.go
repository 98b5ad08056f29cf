// Package storagetest provides KV doubles for service tests.
package storagetest

import (
	"context"
	"errors"
	"sync"

	"github.com/riordanpawley/quadrant/internal/storage"
)

// ErrInjected is returned by Failing operations
var ErrInjected = errors.New("injected storage failure")

// Failing is a KV whose reads, writes or both fail
type Failing struct {
	FailGet    bool
	FailSet    bool
	FailRemove bool
	*Recorder
}

// NewFailing wraps an empty Recorder
func NewFailing(failGet, failSet bool) *Failing {
	return &Failing{FailGet: failGet, FailSet: failSet, Recorder: NewRecorder(nil)}
}

func (f *Failing) Get(ctx context.Context, key string) (string, bool, error) {
	if f.FailGet {
		return "", false, ErrInjected
	}
	return f.Recorder.Get(ctx, key)
}

func (f *Failing) Set(ctx context.Context, key, value string) error {
	if f.FailSet {
		f.Recorder.count(key)
		return ErrInjected
	}
	return f.Recorder.Set(ctx, key, value)
}

func (f *Failing) Remove(ctx context.Context, key string) error {
	if f.FailRemove {
		return ErrInjected
	}
	return f.Recorder.Remove(ctx, key)
}

// Recorder is a memory KV that counts writes per key
type Recorder struct {
	*storage.Memory
	mu   sync.Mutex
	sets map[string]int
}

// NewRecorder creates a recorder seeded with initial
func NewRecorder(initial map[string]string) *Recorder {
	return &Recorder{
		Memory: storage.NewMemory(initial),
		sets:   make(map[string]int),
	}
}

func (r *Recorder) Set(ctx context.Context, key, value string) error {
	r.count(key)
	return r.Memory.Set(ctx, key, value)
}

// Sets returns how many writes key has received
func (r *Recorder) Sets(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sets[key]
}

// Value returns the stored value of key, or "" when missing
func (r *Recorder) Value(key string) string {
	v, _, _ := r.Memory.Get(context.Background(), key)
	return v
}

func (r *Recorder) count(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[key]++
}
