package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/riordanpawley/quadrant/internal/domain"
)

// File persists all keys as one JSON object. Writes go to a temp file in the
// same directory and are renamed into place.
type File struct {
	mu     sync.RWMutex
	path   string
	cache  map[string]string
	loaded bool
}

// NewFile creates a file store at path, creating parent directories
func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &domain.StorageError{Op: "open", Err: err}
	}
	return &File{path: path}, nil
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.RLock()
	if f.loaded {
		v, ok := f.cache[key]
		f.mu.RUnlock()
		return v, ok, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return "", false, &domain.StorageError{Op: "get", Key: key, Err: err}
	}
	v, ok := f.cache[key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return &domain.StorageError{Op: "set", Key: key, Err: err}
	}

	next := make(map[string]string, len(f.cache)+1)
	for k, v := range f.cache {
		next[k] = v
	}
	next[key] = value
	if err := f.write(next); err != nil {
		return &domain.StorageError{Op: "set", Key: key, Err: err}
	}
	f.cache = next
	return nil
}

func (f *File) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return &domain.StorageError{Op: "remove", Key: key, Err: err}
	}
	if _, ok := f.cache[key]; !ok {
		return nil
	}

	next := make(map[string]string, len(f.cache))
	for k, v := range f.cache {
		if k != key {
			next[k] = v
		}
	}
	if err := f.write(next); err != nil {
		return &domain.StorageError{Op: "remove", Key: key, Err: err}
	}
	f.cache = next
	return nil
}

func (f *File) Close() error {
	return nil
}

// load must be called with the write lock held
func (f *File) load() error {
	if f.loaded {
		return nil
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		f.cache = make(map[string]string)
		f.loaded = true
		return nil
	}
	if err != nil {
		return err
	}

	cache := make(map[string]string)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &cache); err != nil {
			return fmt.Errorf("decode %s: %w", f.path, err)
		}
	}
	f.cache = cache
	f.loaded = true
	return nil
}

func (f *File) write(data map[string]string) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
