package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/quadrant/internal/domain"
)

func TestFile(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "nested", "store.json"))
	require.NoError(t, err)
	testKV(t, f)
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, KeyFilterMode, "AND"))
	require.NoError(t, first.Set(ctx, KeyDoneSort, "a"))

	second, err := NewFile(path)
	require.NoError(t, err)
	v, ok, err := second.Get(ctx, KeyFilterMode)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "AND", v)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]string{KeyFilterMode: "AND", KeyDoneSort: "a"}, raw)
}

func TestFile_NoTempFilesLeft(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	f, err := NewFile(filepath.Join(dir, "store.json"))
	require.NoError(t, err)
	require.NoError(t, f.Set(ctx, KeyTasks, "[]"))
	require.NoError(t, f.Remove(ctx, KeyTasks))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "store.json", entries[0].Name())
}

func TestFile_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	f, err := NewFile(path)
	require.NoError(t, err)

	_, _, err = f.Get(ctx, KeyTasks)
	require.Error(t, err)

	var se *domain.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "get", se.Op)
	assert.Equal(t, KeyTasks, se.Key)

	err = f.Set(ctx, KeyTasks, "[]")
	assert.Error(t, err, "writes must not clobber a file that could not be read")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestFile_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	f, err := NewFile(path)
	require.NoError(t, err)

	_, ok, err := f.Get(context.Background(), KeyTasks)
	require.NoError(t, err)
	assert.False(t, ok)
}
