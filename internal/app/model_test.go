package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/quadrant/internal/config"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/services/preferences"
	"github.com/riordanpawley/quadrant/internal/services/tags"
	"github.com/riordanpawley/quadrant/internal/services/tasks"
	"github.com/riordanpawley/quadrant/internal/storage"
	"github.com/riordanpawley/quadrant/internal/ui/overlay"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

type testEnv struct {
	kv  *storage.Memory
	svc Services
}

func newEnv(t *testing.T, seed ...domain.Task) *testEnv {
	t.Helper()

	initial := map[string]string{}
	if len(seed) > 0 {
		data, err := json.Marshal(seed)
		require.NoError(t, err)
		initial[storage.KeyTasks] = string(data)
	}
	kv := storage.NewMemory(initial)

	seq := 0
	tagSvc := tags.NewService(kv, nil)
	taskSvc := tasks.NewService(kv, tagSvc, nil,
		tasks.WithClock(func() time.Time { return testNow }),
		tasks.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("new-%d", seq)
		}),
	)
	return &testEnv{
		kv: kv,
		svc: Services{
			Tasks:       taskSvc,
			Tags:        tagSvc,
			Preferences: preferences.NewService(kv, nil),
		},
	}
}

// newTestModel builds a loaded model over env
func newTestModel(t *testing.T, env *testEnv, opts ...Option) Model {
	t.Helper()

	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	m := New(config.DefaultConfig(), env.svc, nil, opts...)
	m = step(t, m, m.loadCmd()())
	m.width = 120
	m.height = 40
	return m
}

func sampleTasks() []domain.Task {
	return []domain.Task{
		{ID: "a", Title: "Fix outage", State: domain.StateCreated, Important: true, Urgent: true, Tags: []string{"work"}},
		{ID: "b", Title: "Plan quarter", State: domain.StateInProgress, Important: true, Tags: []string{"work"}},
		{ID: "c", Title: "Answer email", State: domain.StateCreated, Urgent: true, Tags: []string{"personal"}},
		{ID: "d", Title: "Sort photos", State: domain.StateCreated, Tags: []string{"home"}},
	}
}

// step feeds msg to the model
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

// press sends a key and returns the model and its command
func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// apply runs a store command and feeds its result back
func apply(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	return step(t, m, cmd())
}

func currentID(m Model) string {
	if task := m.currentTask(); task != nil {
		return task.ID
	}
	return ""
}

func findTask(m Model, id string) (domain.Task, bool) {
	for _, task := range m.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}

func TestLoad(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	env.svc.Preferences.SaveFilterTags(context.Background(), []string{"work"})
	env.svc.Preferences.SaveFilterMode(context.Background(), domain.TagModeAnd)
	env.svc.Preferences.SaveDoneSort(context.Background(), domain.SortAsc)

	m := newTestModel(t, env)

	assert.False(t, m.loading)
	assert.Len(t, m.tasks, 4)
	assert.Equal(t, domain.DefaultTags(), m.tags)
	assert.Equal(t, []string{"work"}, m.editor.GetFilter().SelectedTags())
	assert.Equal(t, domain.TagModeAnd, m.editor.GetFilter().TagMode)
	assert.Equal(t, domain.SortAsc, m.editor.GetDoneOrder())
}

func TestLoadRemovesUnusedCustomTags(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	env.kv.Set(context.Background(), storage.KeyCustomTags, `["home","stale","HOME"]`)

	m := newTestModel(t, env)

	assert.Contains(t, m.tags, "home")
	assert.NotContains(t, m.tags, "stale")
	assert.Equal(t, []string{"home"}, env.svc.Tags.Custom(context.Background()))
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	env := newEnv(t)
	m := New(config.DefaultConfig(), env.svc, nil)

	m, cmd := press(t, m, "n")
	assert.Nil(t, cmd)
	assert.True(t, m.overlayStack.IsEmpty())
}

func TestCreateTaskFromForm(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)

	next, cmd := m.Update(overlay.TaskFormMsg{Input: domain.TaskInput{
		Title:  domain.StringPtr("Book flights"),
		Urgent: domain.BoolPtr(true),
		Tags:   []string{"travel"},
	}})
	m = apply(t, next.(Model), cmd)

	task, ok := findTask(m, "new-1")
	require.True(t, ok)
	assert.Equal(t, domain.QuadrantDoFirst, task.Quadrant())
	assert.Equal(t, "new-1", currentID(m), "cursor follows the new task")
	assert.Contains(t, m.tags, "travel")
	require.NotEmpty(t, m.toasts)
	assert.Equal(t, "Added to "+domain.QuadrantDoFirst.Title(), m.toasts[len(m.toasts)-1].Message)
}

func TestCreateTaskErrorShowsToast(t *testing.T) {
	env := newEnv(t)
	m := newTestModel(t, env)

	next, cmd := m.Update(overlay.TaskFormMsg{Input: domain.TaskInput{Title: domain.StringPtr("  ")}})
	m = apply(t, next.(Model), cmd)

	assert.Empty(t, m.tasks)
	require.Len(t, m.toasts, 1)
	assert.Equal(t, ToastError, m.toasts[0].Level)
}

func TestNewTaskUsesCurrentLane(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)

	m, _ = press(t, m, "4") // Eliminate lane
	m, _ = press(t, m, "n")

	form, ok := m.overlayStack.Current().(*overlay.TaskForm)
	require.True(t, ok)
	assert.Contains(t, form.View(), domain.QuadrantEliminate.Title())
}

func TestCompleteAndReopen(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)
	require.Equal(t, "a", currentID(m))

	m, cmd := press(t, m, "x")
	m = apply(t, m, cmd)

	task, _ := findTask(m, "a")
	assert.Equal(t, domain.StateDone, task.State)
	require.NotNil(t, task.CompletedAt)
	assert.True(t, task.CompletedAt.Equal(testNow))
	assert.Equal(t, "a", currentID(m), "cursor follows the task into the done lane")

	m, cmd = press(t, m, "x")
	m = apply(t, m, cmd)

	task, _ = findTask(m, "a")
	assert.Equal(t, domain.StateCreated, task.State)
	assert.NotNil(t, task.CompletedAt, "completion time is kept")
}

func TestAdvanceState(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)

	for _, want := range []domain.State{domain.StateInProgress, domain.StateWIP, domain.StateDone} {
		var cmd tea.Cmd
		m, cmd = press(t, m, "m")
		m = apply(t, m, cmd)
		task, _ := findTask(m, "a")
		assert.Equal(t, want, task.State)
	}

	_, cmd := press(t, m, "m")
	assert.Nil(t, cmd, "done tasks don't advance")
}

func TestToggleFlagsMoveLanes(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)

	m, cmd := press(t, m, "u")
	m = apply(t, m, cmd)

	task, _ := findTask(m, "a")
	assert.Equal(t, domain.QuadrantSchedule, task.Quadrant())
	assert.Equal(t, "a", currentID(m))

	m, cmd = press(t, m, "!")
	m = apply(t, m, cmd)

	task, _ = findTask(m, "a")
	assert.Equal(t, domain.QuadrantEliminate, task.Quadrant())
}

// failingUpdates rejects updates to the listed ids
type failingUpdates struct {
	*tasks.Service
	fail map[string]bool
}

func (f failingUpdates) Update(ctx context.Context, id string, input domain.TaskInput) (domain.Task, error) {
	if f.fail[id] {
		return domain.Task{}, errors.New("disk full")
	}
	return f.Service.Update(ctx, id, input)
}

func TestToggleFlagsKeepsGoingAfterFailure(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	newTestModel(t, env)
	store := failingUpdates{Service: env.svc.Tasks, fail: map[string]bool{"b": true}}

	focus, message, err := toggleFlags(context.Background(), store, []string{"a", "b", "c", "missing"}, flagUrgent)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "updated 2, failed 1")
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, focus)
	assert.Empty(t, message)

	a, _ := env.svc.Tasks.Get("a")
	b, _ := env.svc.Tasks.Get("b")
	c, _ := env.svc.Tasks.Get("c")
	assert.Equal(t, domain.QuadrantSchedule, a.Quadrant())
	assert.Equal(t, domain.QuadrantSchedule, b.Quadrant())
	assert.Equal(t, domain.QuadrantEliminate, c.Quadrant())
}

func TestToggleFlagsResults(t *testing.T) {
	ctx := context.Background()

	t.Run("all fail", func(t *testing.T) {
		env := newEnv(t, sampleTasks()...)
		newTestModel(t, env)
		store := failingUpdates{Service: env.svc.Tasks, fail: map[string]bool{"a": true}}

		_, _, err := toggleFlags(ctx, store, []string{"a"}, flagImportant)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "update task")
	})

	t.Run("bulk success", func(t *testing.T) {
		env := newEnv(t, sampleTasks()...)
		newTestModel(t, env)

		focus, message, err := toggleFlags(ctx, env.svc.Tasks, []string{"c", "d"}, flagImportant)
		require.NoError(t, err)
		assert.Empty(t, focus)
		assert.Equal(t, "Updated 2 tasks", message)
	})

	t.Run("nothing known", func(t *testing.T) {
		env := newEnv(t, sampleTasks()...)
		newTestModel(t, env)

		focus, message, err := toggleFlags(ctx, env.svc.Tasks, []string{"missing"}, flagImportant)
		require.NoError(t, err)
		assert.Empty(t, focus)
		assert.Empty(t, message)
	})
}

func TestDeleteFlow(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)

	m, _ = press(t, m, "d")
	m, cmd := press(t, m, "y")
	next, deleteCmd := m.Update(cmd())
	m = apply(t, next.(Model), deleteCmd)

	_, ok := findTask(m, "a")
	assert.False(t, ok)
	assert.Len(t, m.tasks, 3)
	assert.Len(t, env.svc.Tasks.List(), 3)
}

func TestDeleteCancelled(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)

	m, _ = press(t, m, "d")
	m, cmd := press(t, m, "n")
	next, deleteCmd := m.Update(cmd())
	m = next.(Model)

	assert.Nil(t, deleteCmd)
	assert.True(t, m.overlayStack.IsEmpty())
	assert.Len(t, m.tasks, 4)
}

func TestActionEditReplacesMenu(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	edit := overlay.ActionMsg{
		Action:  overlay.Action{Key: "e", Kind: overlay.ActionEdit, Enabled: true},
		TaskIDs: []string{"a"},
	}

	t.Run("payload before close", func(t *testing.T) {
		m := newTestModel(t, env)
		m, _ = press(t, m, " ")
		require.IsType(t, &overlay.ActionMenu{}, m.overlayStack.Current())

		m = step(t, m, edit)
		m = step(t, m, overlay.CloseOverlayMsg{})

		assert.IsType(t, &overlay.TaskForm{}, m.overlayStack.Current())
		assert.Equal(t, 1, m.overlayStack.Len())
	})

	t.Run("close before payload", func(t *testing.T) {
		m := newTestModel(t, env)
		m, _ = press(t, m, " ")

		m = step(t, m, overlay.CloseOverlayMsg{})
		m = step(t, m, edit)

		assert.IsType(t, &overlay.TaskForm{}, m.overlayStack.Current())
		assert.Equal(t, 1, m.overlayStack.Len())
	})
}

func TestSearch(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)

	m, _ = press(t, m, "/")
	assert.Equal(t, ModeSearch, m.editor.GetMode())
	require.IsType(t, &overlay.SearchOverlay{}, m.overlayStack.Current())

	m = step(t, m, overlay.SearchMsg{Query: "photos"})
	assert.Equal(t, "photos", m.editor.GetFilter().SearchQuery)
	assert.Len(t, m.editor.FilterAndSort(m.tasks), 1)

	m = step(t, m, overlay.CloseOverlayMsg{})
	assert.Equal(t, ModeNormal, m.editor.GetMode())
	assert.True(t, m.overlayStack.IsEmpty())
}

func TestFilterChangePersistsTags(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)

	m.editor.ToggleTagFilter("home")
	m.editor.ToggleTagMode()
	_, cmd := m.Update(overlay.FilterChangedMsg{})
	require.NotNil(t, cmd)
	cmd()

	prefs := env.svc.Preferences.Load(context.Background())
	assert.Equal(t, []string{"home"}, prefs.FilterTags)
	assert.Equal(t, domain.TagModeAnd, prefs.FilterMode)
}

func TestClearFilters(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)
	m.editor.ToggleTagFilter("work")
	m.editor.SetSearchQuery("plan")

	m, cmd := press(t, m, "c")
	assert.NotNil(t, cmd)
	assert.False(t, m.editor.IsFilterActive())

	_, cmd = press(t, m, "c")
	assert.Nil(t, cmd, "nothing to clear")
}

func TestSortChange(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)

	change := overlay.SortChange{
		Sort:      domain.Sort{Field: domain.SortByTitle, Order: domain.SortDesc},
		DoneOrder: domain.SortAsc,
	}
	next, cmd := m.Update(overlay.SelectionMsg{Key: "D", Value: change})
	m = next.(Model)
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, domain.SortByTitle, m.editor.GetSort().Field)
	assert.Equal(t, domain.SortAsc, m.editor.GetDoneOrder())
	assert.Equal(t, domain.SortAsc, env.svc.Preferences.Load(context.Background()).DoneSort)

	_, cmd = m.Update(overlay.SelectionMsg{Key: "t", Value: change})
	assert.Nil(t, cmd, "unchanged done order isn't saved again")
}

func TestSelectModeBulkAction(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)

	m, _ = press(t, m, "v")
	assert.Equal(t, ModeSelect, m.editor.GetMode())
	m, _ = press(t, m, " ")
	m, _ = press(t, m, "l") // Schedule lane
	m, _ = press(t, m, " ")
	assert.Equal(t, 2, m.editor.SelectionCount())

	m, _ = press(t, m, "a")
	require.IsType(t, &overlay.BulkActionMenu{}, m.overlayStack.Current())

	next, cmd := m.Update(overlay.ActionMsg{
		Action:  overlay.Action{Key: "D", Kind: overlay.ActionSetState, State: domain.StateDone, Enabled: true},
		TaskIDs: m.editor.GetSelectedTasksList(),
	})
	m = apply(t, next.(Model), cmd)

	for _, id := range []string{"a", "b"} {
		task, _ := findTask(m, id)
		assert.Equal(t, domain.StateDone, task.State, id)
	}
	assert.False(t, m.editor.HasSelection())
	assert.Equal(t, ModeNormal, m.editor.GetMode())
	assert.True(t, m.overlayStack.IsEmpty())
}

func TestSelectAllVisible(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)
	m.editor.ToggleTagFilter("work")

	m, _ = press(t, m, "%")
	assert.ElementsMatch(t, []string{"a", "b"}, m.editor.GetSelectedTasksList())

	m, _ = press(t, m, "esc")
	assert.False(t, m.editor.HasSelection())
}

func TestSelectionPrunedAfterDelete(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)
	m.editor.Select("a")
	m.editor.Select("b")

	m = apply(t, m, m.deleteTasksCmd([]string{"a"}))
	assert.Equal(t, []string{"b"}, m.editor.GetSelectedTasksList())
}

func TestGotoMode(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)

	m, _ = press(t, m, "g")
	assert.Equal(t, ModeGoto, m.editor.GetMode())
	m, _ = press(t, m, "3")
	assert.Equal(t, ModeNormal, m.editor.GetMode())
	assert.Equal(t, "c", currentID(m))

	m, _ = press(t, m, "g")
	m, _ = press(t, m, "w")
	require.IsType(t, &overlay.JumpMode{}, m.overlayStack.Current())

	m = step(t, m, overlay.JumpSelectedMsg{TaskID: "d"})
	m = step(t, m, overlay.CloseOverlayMsg{})
	assert.Equal(t, "d", currentID(m))
	assert.True(t, m.overlayStack.IsEmpty())
}

func TestListViewNavigation(t *testing.T) {
	env := newEnv(t, sampleTasks()...)
	m := newTestModel(t, env)

	m, _ = press(t, m, "L")
	assert.Equal(t, ViewModeList, m.viewMode)

	// j walks across lanes in board order
	var ids []string
	for range 4 {
		ids = append(ids, currentID(m))
		m, _ = press(t, m, "j")
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
	assert.Equal(t, "d", currentID(m), "stops at the last row")

	m, _ = press(t, m, "g")
	m, _ = press(t, m, "g")
	assert.Equal(t, "a", currentID(m))

	m, _ = press(t, m, "L")
	assert.Equal(t, ViewModeBoard, m.viewMode)
}

func TestToggleDescriptions(t *testing.T) {
	env := newEnv(t)
	m := newTestModel(t, env)

	m, _ = press(t, m, "D")
	assert.True(t, m.config.UI.HideDescriptions)
	m, _ = press(t, m, "D")
	assert.False(t, m.config.UI.HideDescriptions)
}

func TestSettingsSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.YAMLFileName)
	env := newEnv(t)
	m := newTestModel(t, env, WithConfigPath(path))

	ui := m.config.UI
	ui.SuggestionLimit = 8
	m = step(t, m, overlay.SettingsChangedMsg{UI: ui})
	assert.Equal(t, 8, m.config.UI.SuggestionLimit)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "live edits aren't written")

	m = step(t, m, overlay.SettingsChangedMsg{UI: ui, Save: true})
	loaded, err := config.LoadConfig(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.UI.SuggestionLimit)
	assert.Equal(t, "Settings saved", m.toasts[len(m.toasts)-1].Message)
}

func TestSettingsSaveWritesOnlyUI(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.JSONFileName)
	env := newEnv(t)
	m := newTestModel(t, env, WithConfigPath(path))
	m.config.Storage.Driver = config.DriverPostgres
	m.config.Storage.DatabaseURL = "postgres://user:s3cret@db/quadrant"

	ui := m.config.UI
	ui.HideDescriptions = true
	m = step(t, m, overlay.SettingsChangedMsg{UI: ui, Save: true})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "s3cret")
	assert.Contains(t, string(data), `"hideDescriptions": true`)
	assert.Equal(t, "postgres://user:s3cret@db/quadrant", m.config.Storage.DatabaseURL, "runtime config keeps its overrides")
}

func TestToastExpiry(t *testing.T) {
	env := newEnv(t)
	m := newTestModel(t, env)

	m.addToast(ToastInfo, "hello")
	require.Len(t, m.toasts, 1)

	m = step(t, m, toastTickMsg(testNow.Add(time.Second)))
	assert.Len(t, m.toasts, 1)

	m = step(t, m, toastTickMsg(testNow.Add(time.Hour)))
	assert.Empty(t, m.toasts)
}

func TestNextState(t *testing.T) {
	tests := []struct {
		from, want domain.State
	}{
		{domain.StateCreated, domain.StateInProgress},
		{domain.StateInProgress, domain.StateWIP},
		{domain.StateWIP, domain.StateDone},
		{domain.StateDone, domain.StateDone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nextState(tt.from), tt.from)
	}
}
