package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/quadrant/internal/domain"
)

// ActionKind identifies what an action does to its tasks
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionSetState
	ActionToggleImportant
	ActionToggleUrgent
	ActionEdit
	ActionDelete
	ActionClearSelection
)

// Action represents a menu action
type Action struct {
	Key     string
	Label   string
	Kind    ActionKind
	State   domain.State // target of ActionSetState
	Enabled bool
}

// ActionMsg is sent when an action is chosen for one or more tasks
type ActionMsg struct {
	Action  Action
	TaskIDs []string
}

const separatorLabel = "───────────────────"

func separator() Action {
	return Action{Label: separatorLabel}
}

func stateActions(current domain.State) []Action {
	keys := map[domain.State]string{
		domain.StateCreated:    "c",
		domain.StateInProgress: "i",
		domain.StateWIP:        "w",
		domain.StateDone:       "D",
	}
	actions := make([]Action, 0, len(keys))
	for _, state := range domain.AllStates() {
		label := "Set to " + state.Label()
		if state == domain.StateDone {
			label = "Complete"
		}
		actions = append(actions, Action{
			Key:     keys[state],
			Label:   label,
			Kind:    ActionSetState,
			State:   state,
			Enabled: state != current,
		})
	}
	return actions
}

// actionList is the cursor and key handling shared by the action menus
type actionList struct {
	actions []Action
	taskIDs []string
	cursor  int
	styles  *Styles
}

func newActionList(actions []Action, taskIDs []string) actionList {
	l := actionList{actions: actions, taskIDs: taskIDs, cursor: -1, styles: New()}
	l.moveCursor(1)
	return l
}

func (l *actionList) selectable(i int) bool {
	return l.actions[i].Enabled && l.actions[i].Key != ""
}

// moveCursor steps to the next enabled action in dir, wrapping around
func (l *actionList) moveCursor(dir int) {
	n := len(l.actions)
	for i := 1; i <= n; i++ {
		next := ((l.cursor+dir*i)%n + n) % n
		if l.selectable(next) {
			l.cursor = next
			return
		}
	}
}

func (l *actionList) choose(action Action) tea.Cmd {
	msg := ActionMsg{Action: action, TaskIDs: l.taskIDs}
	return tea.Batch(
		func() tea.Msg { return msg },
		closeCmd,
	)
}

func (l *actionList) update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key := keyMsg.String(); key {
	case "esc", "q":
		return closeCmd
	case "j", "down":
		l.moveCursor(1)
	case "k", "up":
		l.moveCursor(-1)
	case "enter":
		if l.cursor >= 0 && l.selectable(l.cursor) {
			return l.choose(l.actions[l.cursor])
		}
	default:
		for i, action := range l.actions {
			if action.Key == key && l.selectable(i) {
				return l.choose(action)
			}
		}
	}
	return nil
}

func (l *actionList) view() string {
	var b strings.Builder
	for i, action := range l.actions {
		if action.Key == "" {
			b.WriteString(l.styles.Separator.Render(action.Label))
			b.WriteString("\n")
			continue
		}

		style, keyStyle := l.styles.MenuItem, l.styles.MenuKey
		if !action.Enabled {
			style = l.styles.MenuItemDisabled
			keyStyle = l.styles.MenuKeyDisabled
		} else if i == l.cursor {
			style = l.styles.MenuItemActive
		}

		b.WriteString(keyStyle.Render("["+action.Key+"]") + " " + style.Render(action.Label))
		b.WriteString("\n")
	}
	return b.String()
}

// ActionMenu is a menu overlay for a single task
type ActionMenu struct {
	actionList
	task domain.Task
}

// NewActionMenu creates a new action menu for the given task
func NewActionMenu(task domain.Task) *ActionMenu {
	important := "Mark important"
	if task.Important {
		important = "Mark not important"
	}
	urgent := "Mark urgent"
	if task.Urgent {
		urgent = "Mark not urgent"
	}

	actions := stateActions(task.State)
	actions = append(actions,
		separator(),
		Action{Key: "!", Label: important, Kind: ActionToggleImportant, Enabled: true},
		Action{Key: "u", Label: urgent, Kind: ActionToggleUrgent, Enabled: true},
		separator(),
		Action{Key: "e", Label: "Edit task", Kind: ActionEdit, Enabled: true},
		Action{Key: "d", Label: "Delete task", Kind: ActionDelete, Enabled: true},
	)

	return &ActionMenu{
		actionList: newActionList(actions, []string{task.ID}),
		task:       task,
	}
}

// Init initializes the menu
func (m *ActionMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *ActionMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, m.update(msg)
}

// View renders the menu
func (m *ActionMenu) View() string {
	return m.view()
}

// Title returns the overlay title
func (m *ActionMenu) Title() string {
	return "Actions"
}

// Size returns the overlay dimensions
func (m *ActionMenu) Size() (width, height int) {
	return 36, len(m.actions) + 4
}

// BulkActionMenu is a menu overlay for the selected tasks
type BulkActionMenu struct {
	actionList
}

// NewBulkActionMenu creates a new bulk action menu for selected tasks
func NewBulkActionMenu(selectedIDs []string) *BulkActionMenu {
	actions := stateActions("")
	actions = append(actions,
		separator(),
		Action{Key: "d", Label: "Delete selected", Kind: ActionDelete, Enabled: true},
		Action{Key: "x", Label: "Clear selection", Kind: ActionClearSelection, Enabled: true},
	)
	return &BulkActionMenu{actionList: newActionList(actions, selectedIDs)}
}

// Init initializes the menu
func (m *BulkActionMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *BulkActionMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, m.update(msg)
}

// View renders the menu
func (m *BulkActionMenu) View() string {
	var b strings.Builder

	count := len(m.taskIDs)
	b.WriteString(m.styles.MenuHeader.Render("Selected: "))
	b.WriteString(m.styles.MenuCount.Render(strings.Repeat("●", min(count, 10))))
	if count > 10 {
		b.WriteString(m.styles.MenuCount.Render("..."))
	}
	b.WriteString("\n\n")
	b.WriteString(m.view())

	return b.String()
}

// Title returns the overlay title
func (m *BulkActionMenu) Title() string {
	return "Bulk Actions"
}

// Size returns the overlay dimensions
func (m *BulkActionMenu) Size() (width, height int) {
	return 40, len(m.actions) + 6
}
