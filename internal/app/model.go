// Package app contains the main application model and TEA implementation.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/quadrant/internal/config"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/services/editor"
	"github.com/riordanpawley/quadrant/internal/services/navigation"
	"github.com/riordanpawley/quadrant/internal/services/preferences"
	"github.com/riordanpawley/quadrant/internal/services/tags"
	"github.com/riordanpawley/quadrant/internal/services/tasks"
	"github.com/riordanpawley/quadrant/internal/types"
	"github.com/riordanpawley/quadrant/internal/ui/board"
	"github.com/riordanpawley/quadrant/internal/ui/overlay"
	"github.com/riordanpawley/quadrant/internal/ui/styles"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal = types.ModeNormal
	ModeSelect = types.ModeSelect
	ModeSearch = types.ModeSearch
	ModeGoto   = types.ModeGoto
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// ViewMode represents the current view mode
type ViewMode int

const (
	ViewModeBoard ViewMode = iota
	ViewModeList
)

// Services are the stateful backends the model drives
type Services struct {
	Tasks       *tasks.Service
	Tags        *tags.Service
	Preferences *preferences.Service
}

// Model is the main application state
type Model struct {
	// Core data, refreshed from the task store after every mutation
	tasks []domain.Task
	tags  []string

	svc Services

	// Navigation (using NavigationService)
	nav *navigation.Service

	// Editor state (mode, filter, sort, selections)
	editor *editor.Service

	// UI state
	overlayStack *overlay.Stack
	viewMode     ViewMode

	// closes still owed by overlays the model dismissed itself
	pendingCloses int

	toasts []Toast

	// Terminal size
	width  int
	height int

	styles *styles.Styles

	config     *config.Config
	configPath string

	loading bool
	spinner spinner.Model

	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Model
type Option func(*Model)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// WithConfigPath sets where the settings overlay saves the config
func WithConfigPath(path string) Option {
	return func(m *Model) {
		m.configPath = path
	}
}

// New creates a new application model with the given config
func New(cfg *config.Config, svc Services, logger *slog.Logger, opts ...Option) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	m := Model{
		tasks:        []domain.Task{},
		tags:         domain.DefaultTags(),
		svc:          svc,
		nav:          navigation.NewService(),
		editor:       editor.NewService(),
		overlayStack: overlay.NewStack(),
		viewMode:     ViewModeBoard,
		styles:       styles.New(),
		config:       cfg,
		loading:      true,
		spinner:      s,
		now:          time.Now,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadCmd(),
	)
}

// Message types for async operations

type loadedMsg struct {
	tasks []domain.Task
	tags  []string
	prefs preferences.Preferences
}

// tasksChangedMsg follows every store mutation with a fresh snapshot
type tasksChangedMsg struct {
	tasks   []domain.Task
	tags    []string
	focus   string // task to move the cursor to
	message string
	err     error
}

type toastTickMsg time.Time

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}
		// If overlay is open, route to overlay stack
		if !m.overlayStack.IsEmpty() {
			return m, m.overlayStack.Update(msg)
		}
		return m.handleKey(msg)

	case loadedMsg:
		m.loading = false
		m.tasks = msg.tasks
		m.tags = msg.tags
		m.editor.SetTagFilters(msg.prefs.FilterTags)
		m.editor.SetTagMode(msg.prefs.FilterMode)
		m.editor.SetDoneOrder(msg.prefs.DoneSort)
		m.logger.Debug("board loaded", "tasks", len(msg.tasks), "tags", len(msg.tags))
		return m, nil

	case tasksChangedMsg:
		m.tasks = msg.tasks
		if msg.tags != nil {
			m.tags = msg.tags
		}
		m.editor.PruneSelection(m.tasks)
		if msg.focus != "" {
			m.nav.JumpToTaskByID(m.buildColumns(), msg.focus)
		}
		if msg.err != nil {
			m.logger.Warn("task operation failed", "error", msg.err)
			return m, m.addToast(ToastError, msg.err.Error())
		}
		if msg.message != "" {
			return m, m.addToast(ToastSuccess, msg.message)
		}
		return m, nil

	case toastTickMsg:
		m.toasts = types.PruneToasts(m.toasts, time.Time(msg))
		m.editor.RefreshDateWindow(time.Time(msg))
		return m, nil

	// Overlay messages
	case overlay.CloseOverlayMsg:
		if m.pendingCloses > 0 {
			m.pendingCloses--
			return m, nil
		}
		m.overlayStack.Pop()
		if m.overlayStack.IsEmpty() && m.editor.IsSearch() {
			m.editor.EnterNormal()
		}
		return m, nil

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case overlay.SearchMsg:
		m.editor.SetSearchQuery(msg.Query)
		if search, ok := m.overlayStack.Current().(*overlay.SearchOverlay); ok {
			search.SetMatchCount(len(m.editor.FilterAndSort(m.tasks)))
		}
		return m, nil

	case overlay.FilterChangedMsg:
		return m, m.saveFilterCmd()

	case overlay.TaskFormMsg:
		if msg.ID == "" {
			return m, m.createTaskCmd(msg.Input)
		}
		return m, m.updateTaskCmd(msg.ID, msg.Input, "Task saved")

	case overlay.ActionMsg:
		m.dismissSender()
		return m.handleAction(msg)

	case overlay.JumpSelectedMsg:
		m.nav.JumpToTaskByID(m.buildColumns(), msg.TaskID)
		return m, nil

	case overlay.SettingsChangedMsg:
		return m.applySettings(msg)
	}

	// Anything else (debounce ticks, cursor blinks) belongs to the open overlay
	if !m.overlayStack.IsEmpty() {
		return m, m.overlayStack.Update(msg)
	}
	return m, nil
}

// dismissSender closes a menu that sent a payload before its own close
// message arrived. The late close is then swallowed so it can't pop whatever
// the payload opened.
func (m *Model) dismissSender() {
	switch m.overlayStack.Current().(type) {
	case *overlay.ActionMenu, *overlay.BulkActionMenu, *overlay.DetailPanel:
		m.overlayStack.Pop()
		m.pendingCloses++
	}
}

// deleteRequest is the payload of the delete confirmation dialog
type deleteRequest struct {
	ids []string
}

// handleSelection processes menu selections from overlays
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	switch v := msg.Value.(type) {
	case overlay.SortChange:
		m.editor.SetSort(&v.Sort)
		if v.DoneOrder != m.editor.GetDoneOrder() {
			m.editor.SetDoneOrder(v.DoneOrder)
			return m, m.saveDoneSortCmd(v.DoneOrder)
		}
		return m, nil

	case overlay.ConfirmResult:
		m.overlayStack.Pop()
		req, ok := v.Action.(deleteRequest)
		if !ok || !v.Confirmed {
			return m, nil
		}
		if m.editor.IsSelect() || len(req.ids) > 1 {
			m.editor.ClearSelection()
			m.editor.EnterNormal()
		}
		return m, m.deleteTasksCmd(req.ids)
	}

	m.logger.Debug("unhandled selection", "key", msg.Key)
	return m, nil
}

// handleAction runs an action chosen from an action menu or detail panel
func (m Model) handleAction(msg overlay.ActionMsg) (tea.Model, tea.Cmd) {
	ids := msg.TaskIDs
	if len(ids) == 0 {
		return m, nil
	}
	bulk := m.editor.IsSelect() || len(ids) > 1

	var cmd tea.Cmd
	switch msg.Action.Kind {
	case overlay.ActionSetState:
		cmd = m.changeStateCmd(ids, msg.Action.State)

	case overlay.ActionToggleImportant:
		cmd = m.toggleFlagCmd(ids, flagImportant)

	case overlay.ActionToggleUrgent:
		cmd = m.toggleFlagCmd(ids, flagUrgent)

	case overlay.ActionEdit:
		task, ok := m.svc.Tasks.Get(ids[0])
		if !ok {
			return m, nil
		}
		return m, m.overlayStack.Push(overlay.EditTaskForm(task, m.now))

	case overlay.ActionDelete:
		return m, m.confirmDelete(ids)

	case overlay.ActionClearSelection:
		m.editor.ClearSelection()
		m.editor.EnterNormal()
		return m, nil

	default:
		return m, nil
	}

	if bulk {
		m.editor.ClearSelection()
		m.editor.EnterNormal()
	}
	return m, cmd
}

// confirmDelete asks before deleting ids
func (m Model) confirmDelete(ids []string) tea.Cmd {
	title := "Delete Task"
	message := fmt.Sprintf("Delete %d tasks? This cannot be undone.", len(ids))
	if len(ids) == 1 {
		if task, ok := m.svc.Tasks.Get(ids[0]); ok {
			message = fmt.Sprintf("Delete %q? This cannot be undone.", task.Title)
		}
	} else {
		title = "Delete Tasks"
	}
	dialog := overlay.NewConfirmDialog(title, message, deleteRequest{ids: ids}).Destructive()
	return m.overlayStack.Push(dialog)
}

// applySettings applies edited UI settings and saves them when asked
func (m Model) applySettings(msg overlay.SettingsChangedMsg) (tea.Model, tea.Cmd) {
	m.config.UI = msg.UI
	if !msg.Save {
		return m, nil
	}
	if m.configPath == "" {
		return m, m.addToast(ToastWarning, "No config file to save to")
	}
	if err := config.SaveUI(m.configPath, m.config.UI); err != nil {
		m.logger.Error("failed to save config", "path", m.configPath, "error", err)
		return m, m.addToast(ToastError, err.Error())
	}
	m.logger.Info("saved config", "path", m.configPath)
	return m, m.addToast(ToastSuccess, "Settings saved")
}

// buildColumns filters and sorts the tasks into the five lanes
func (m Model) buildColumns() []board.Column {
	return m.editor.Lanes(m.tasks)
}

// currentTask returns the task under the cursor, or nil
func (m Model) currentTask() *domain.Task {
	return m.nav.GetCurrentTask(m.buildColumns())
}

// addToast queues a notification and schedules its expiry
func (m *Model) addToast(level ToastLevel, message string) tea.Cmd {
	d := m.config.UI.ToastDuration()
	if level == ToastError {
		d *= 2
	}
	m.toasts = append(m.toasts, types.NewToast(level, message, m.now(), d))
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}
