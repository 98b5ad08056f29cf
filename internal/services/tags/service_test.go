package tags

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/storage"
	"github.com/riordanpawley/quadrant/internal/storage/storagetest"
)

func newTestService(initial map[string]string) (*Service, *storagetest.Recorder) {
	kv := storagetest.NewRecorder(initial)
	return NewService(kv, nil), kv
}

func TestService_AvailableTagsDefaultsFirst(t *testing.T) {
	svc, _ := newTestService(map[string]string{storage.KeyCustomTags: `["errands","reading"]`})

	got := svc.AvailableTags(context.Background())

	assert.Equal(t, []string{"work", "personal", "others", "errands", "reading"}, got)
}

func TestService_RegisterCustom(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		initial string
		tag     string
		added   bool
		want    string
	}{
		{"new tag is lower-cased", `[]`, "Errands", true, `["errands"]`},
		{"existing ignoring case", `["errands"]`, "ERRANDS", false, `["errands"]`},
		{"default ignored", `[]`, "Work", false, `[]`},
		{"invalid ignored", `[]`, "two words", false, `[]`},
		{"appends in order", `["a1"]`, "b2", true, `["a1","b2"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, kv := newTestService(map[string]string{storage.KeyCustomTags: tt.initial})

			assert.Equal(t, tt.added, svc.RegisterCustom(ctx, tt.tag))
			assert.Equal(t, tt.want, kv.Value(storage.KeyCustomTags))
			if !tt.added {
				assert.Zero(t, kv.Sets(storage.KeyCustomTags), "no-op must not write")
			}
		})
	}
}

func TestService_ValidNameRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	for _, name := range []string{"q3-goals", "Reading_List", "x"} {
		require.True(t, svc.ValidateName(name).Valid, name)
		svc.RegisterCustom(ctx, name)
		assert.Contains(t, svc.AvailableTags(ctx), domain.NormalizeTag(name))
	}
}

func TestService_CleanupUnused(t *testing.T) {
	ctx := context.Background()
	svc, kv := newTestService(map[string]string{storage.KeyCustomTags: `["errands","reading","garden"]`})
	tasks := []domain.Task{
		{ID: "1", Tags: []string{"Errands", "work"}},
		{ID: "2", Tags: []string{"garden"}},
	}

	svc.CleanupUnused(ctx, tasks)
	assert.Equal(t, []string{"errands", "garden"}, svc.Custom(ctx))
	assert.Equal(t, 1, kv.Sets(storage.KeyCustomTags))

	svc.CleanupUnused(ctx, tasks)
	assert.Equal(t, []string{"errands", "garden"}, svc.Custom(ctx))
	assert.Equal(t, 1, kv.Sets(storage.KeyCustomTags), "second pass must be a no-op")

	svc.CleanupUnused(ctx, nil)
	assert.Empty(t, svc.Custom(ctx))
}

func TestService_CleanupDuplicates(t *testing.T) {
	ctx := context.Background()

	t.Run("collapses case variants", func(t *testing.T) {
		svc, kv := newTestService(map[string]string{storage.KeyCustomTags: `["Errands","reading","errands","READING","work"]`})

		svc.CleanupDuplicates(ctx)

		assert.Equal(t, []string{"errands", "reading"}, svc.Custom(ctx))
		assert.Equal(t, 1, kv.Sets(storage.KeyCustomTags))
	})

	t.Run("clean registry is not rewritten", func(t *testing.T) {
		svc, kv := newTestService(map[string]string{storage.KeyCustomTags: `["errands","reading"]`})

		svc.CleanupDuplicates(ctx)

		assert.Zero(t, kv.Sets(storage.KeyCustomTags))
	})
}

func TestService_ReadFailuresYieldEmpty(t *testing.T) {
	ctx := context.Background()

	t.Run("get error", func(t *testing.T) {
		svc := NewService(storagetest.NewFailing(true, false), nil)
		assert.Empty(t, svc.Custom(ctx))
		assert.Equal(t, domain.DefaultTags(), svc.AvailableTags(ctx))
	})

	t.Run("corrupt json", func(t *testing.T) {
		svc, _ := newTestService(map[string]string{storage.KeyCustomTags: `{oops`})
		assert.Empty(t, svc.Custom(ctx))
	})

	t.Run("unavailable backend", func(t *testing.T) {
		svc := NewService(storage.Unavailable{}, nil)
		assert.Empty(t, svc.Custom(ctx))
		assert.True(t, svc.RegisterCustom(ctx, "errands"), "write failures are swallowed")
	})
}

func TestService_WriteFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	kv := storagetest.NewFailing(false, true)
	svc := NewService(kv, nil)

	assert.NotPanics(t, func() {
		svc.RegisterCustom(ctx, "errands")
		svc.CleanupDuplicates(ctx)
		svc.CleanupUnused(ctx, nil)
	})
	assert.Equal(t, 1, kv.Sets(storage.KeyCustomTags))
	assert.Empty(t, svc.Custom(ctx))
}

func TestService_ColorFor(t *testing.T) {
	svc, _ := newTestService(nil)

	assert.Equal(t, svc.ColorFor("work"), svc.ColorFor("WORK"))
	assert.Equal(t, domain.TagPalette[0], svc.ColorFor("Work"))
	assert.Equal(t, domain.TagColorFor("errands"), svc.ColorFor("errands"))
}

func TestService_AllTagsAndCounts(t *testing.T) {
	svc, _ := newTestService(nil)
	tasks := []domain.Task{
		{Tags: []string{"work", "errands"}},
		{Tags: []string{"errands"}},
	}

	assert.Equal(t, []string{"errands", "work"}, svc.AllTags(tasks))
	assert.Equal(t, map[string]int{"errands": 2, "work": 1}, svc.TagCounts(tasks))
}
