package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/quadrant/internal/domain"
)

// Commands. Each runs off the update loop and reports back with a fresh
// snapshot of the store.

type taskFlag int

const (
	flagImportant taskFlag = iota
	flagUrgent
)

// storeContext bounds a store call by the configured storage timeout
func (m Model) storeContext() (context.Context, context.CancelFunc) {
	timeout := m.config.Storage.Timeout()
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

// loadCmd reads tasks, tags and preferences. Duplicate and unused custom tags
// are cleaned up around the task load.
func (m Model) loadCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := m.storeContext()
		defer cancel()

		svc.Tags.CleanupDuplicates(ctx)
		loaded := svc.Tasks.LoadInitial(ctx)
		svc.Tags.CleanupUnused(ctx, loaded)

		return loadedMsg{
			tasks: loaded,
			tags:  svc.Tags.AvailableTags(ctx),
			prefs: svc.Preferences.Load(ctx),
		}
	}
}

// mutate runs fn against the store and wraps the outcome in tasksChangedMsg
func (m Model) mutate(fn func(ctx context.Context) (focus, message string, err error)) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := m.storeContext()
		defer cancel()

		focus, message, err := fn(ctx)
		return tasksChangedMsg{
			tasks:   svc.Tasks.List(),
			tags:    svc.Tags.AvailableTags(ctx),
			focus:   focus,
			message: message,
			err:     err,
		}
	}
}

func (m Model) createTaskCmd(input domain.TaskInput) tea.Cmd {
	return m.mutate(func(ctx context.Context) (string, string, error) {
		task, err := m.svc.Tasks.Create(ctx, input)
		if err != nil {
			return "", "", fmt.Errorf("create task: %w", err)
		}
		return task.ID, fmt.Sprintf("Added to %s", task.Quadrant().Title()), nil
	})
}

func (m Model) updateTaskCmd(id string, input domain.TaskInput, message string) tea.Cmd {
	return m.mutate(func(ctx context.Context) (string, string, error) {
		task, err := m.svc.Tasks.Update(ctx, id, input)
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", nil
		}
		if err != nil {
			return "", "", fmt.Errorf("update task: %w", err)
		}
		return task.ID, message, nil
	})
}

// changeStateCmd moves every task in ids to state. Unknown ids are skipped.
func (m Model) changeStateCmd(ids []string, state domain.State) tea.Cmd {
	return m.mutate(func(ctx context.Context) (string, string, error) {
		moved := 0
		for _, id := range ids {
			if _, err := m.svc.Tasks.ChangeState(ctx, id, state); err == nil {
				moved++
			}
		}
		if moved == 0 {
			return "", "", nil
		}
		focus := ""
		if len(ids) == 1 {
			focus = ids[0]
		}
		if moved == 1 {
			return focus, "Marked " + state.Label(), nil
		}
		return focus, fmt.Sprintf("Marked %d tasks %s", moved, state.Label()), nil
	})
}

// toggleFlagCmd flips the importance or urgency of every task in ids
func (m Model) toggleFlagCmd(ids []string, flag taskFlag) tea.Cmd {
	return m.mutate(func(ctx context.Context) (string, string, error) {
		return toggleFlags(ctx, m.svc.Tasks, ids, flag)
	})
}

// flagUpdater is the part of the task store a flag toggle needs
type flagUpdater interface {
	Get(id string) (domain.Task, bool)
	Update(ctx context.Context, id string, input domain.TaskInput) (domain.Task, error)
}

// toggleFlags flips flag on each known task in ids. A failed update doesn't
// stop the rest; the error then reports how many went through.
func toggleFlags(ctx context.Context, store flagUpdater, ids []string, flag taskFlag) (focus, message string, err error) {
	var (
		last    domain.Task
		changed int
		failed  int
		errs    []error
	)
	for _, id := range ids {
		task, ok := store.Get(id)
		if !ok {
			continue
		}
		var input domain.TaskInput
		if flag == flagImportant {
			input.Important = domain.BoolPtr(!task.Important)
		} else {
			input.Urgent = domain.BoolPtr(!task.Urgent)
		}
		updated, err := store.Update(ctx, id, input)
		if err != nil {
			failed++
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		last = updated
		changed++
	}

	switch {
	case failed > 0 && changed == 0:
		return "", "", fmt.Errorf("update task: %w", errors.Join(errs...))
	case failed > 0:
		return "", "", fmt.Errorf("updated %d, failed %d: %w", changed, failed, errors.Join(errs...))
	case changed == 0:
		return "", "", nil
	case changed == 1:
		return last.ID, "Moved to " + last.Quadrant().Title(), nil
	default:
		return "", fmt.Sprintf("Updated %d tasks", changed), nil
	}
}

func (m Model) deleteTasksCmd(ids []string) tea.Cmd {
	return m.mutate(func(ctx context.Context) (string, string, error) {
		deleted := 0
		for _, id := range ids {
			if err := m.svc.Tasks.Delete(ctx, id); err == nil {
				deleted++
			}
		}
		switch deleted {
		case 0:
			return "", "", nil
		case 1:
			return "", "Task deleted", nil
		default:
			return "", fmt.Sprintf("Deleted %d tasks", deleted), nil
		}
	})
}

// saveFilterCmd persists the tag part of the filter
func (m Model) saveFilterCmd() tea.Cmd {
	tags := m.editor.GetFilter().SelectedTags()
	mode := m.editor.GetFilter().TagMode
	prefs := m.svc.Preferences
	return func() tea.Msg {
		ctx, cancel := m.storeContext()
		defer cancel()
		prefs.SaveFilterTags(ctx, tags)
		prefs.SaveFilterMode(ctx, mode)
		return nil
	}
}

func (m Model) saveDoneSortCmd(order domain.SortOrder) tea.Cmd {
	prefs := m.svc.Preferences
	return func() tea.Msg {
		ctx, cancel := m.storeContext()
		defer cancel()
		prefs.SaveDoneSort(ctx, order)
		return nil
	}
}

// nextState is the state m advances a task to. Done stays done.
func nextState(s domain.State) domain.State {
	switch s {
	case domain.StateCreated:
		return domain.StateInProgress
	case domain.StateInProgress:
		return domain.StateWIP
	default:
		return domain.StateDone
	}
}
