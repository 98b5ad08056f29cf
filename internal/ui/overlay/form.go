package overlay

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/quadrant/internal/domain"
)

// TaskFormMsg is emitted when the form is submitted. ID is empty for a new task.
type TaskFormMsg struct {
	ID    string
	Input domain.TaskInput
}

const (
	focusTitle = iota
	focusDescription
	focusDeadline
	focusEstimate
	focusImportant
	focusUrgent
	focusTags
	focusSubmit
	formFieldCount
)

// TaskForm creates or edits a task
type TaskForm struct {
	id              string
	title           textinput.Model
	description     textarea.Model
	deadline        textinput.Model
	estimate        textinput.Model
	tags            textinput.Model
	important       bool
	urgent          bool
	initialDeadline string
	focusIndex      int
	err             string
	now             func() time.Time
	styles          *Styles
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 50
	return ti
}

func newTaskForm(now func() time.Time) *TaskForm {
	if now == nil {
		now = time.Now
	}

	ta := textarea.New()
	ta.Placeholder = "Description (optional)..."
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetWidth(56)
	ta.SetHeight(4)

	f := &TaskForm{
		title:       newInput("What needs doing?", 200),
		description: ta,
		deadline:    newInput(domain.DateInputLayout, 25),
		estimate:    newInput("e.g. 30 minutes, 2 hours", 40),
		tags:        newInput("work, personal, others", 200),
		now:         now,
		styles:      New(),
	}
	f.title.Focus()
	return f
}

// NewTaskForm opens an empty form whose flags place the task in lane. The
// done lane has no flags of its own and falls back to important, not urgent.
func NewTaskForm(lane domain.Quadrant, now func() time.Time) *TaskForm {
	f := newTaskForm(now)
	f.important, f.urgent = true, false
	if important, urgent, ok := lane.Flags(); ok {
		f.important, f.urgent = important, urgent
	}
	return f
}

// EditTaskForm opens a form prefilled from task
func EditTaskForm(task domain.Task, now func() time.Time) *TaskForm {
	f := newTaskForm(now)
	f.id = task.ID
	f.title.SetValue(task.Title)
	f.description.SetValue(task.Description)
	f.estimate.SetValue(task.TimeEstimate)
	f.tags.SetValue(strings.Join(task.Tags, ", "))
	f.important = task.Important
	f.urgent = task.Urgent

	f.initialDeadline = strings.TrimSpace(task.Deadline)
	if !domain.IsDateOnly(f.initialDeadline) {
		if d, ok := task.DeadlineTime(); ok {
			f.initialDeadline = domain.FormatDateForInput(d)
		}
	}
	f.deadline.SetValue(f.initialDeadline)
	return f
}

// IsEdit reports whether the form edits an existing task
func (f *TaskForm) IsEdit() bool {
	return f.id != ""
}

// Init initializes the overlay
func (f *TaskForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f *TaskForm) setFocus(index int) tea.Cmd {
	f.focusIndex = (index + formFieldCount) % formFieldCount
	f.title.Blur()
	f.description.Blur()
	f.deadline.Blur()
	f.estimate.Blur()
	f.tags.Blur()

	switch f.focusIndex {
	case focusTitle:
		return f.title.Focus()
	case focusDescription:
		return f.description.Focus()
	case focusDeadline:
		return f.deadline.Focus()
	case focusEstimate:
		return f.estimate.Focus()
	case focusTags:
		return f.tags.Focus()
	}
	return nil
}

// Update handles messages
func (f *TaskForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return f, closeCmd
		case "ctrl+s":
			return f, f.submit()
		case "tab":
			return f, f.setFocus(f.focusIndex + 1)
		case "shift+tab":
			return f, f.setFocus(f.focusIndex - 1)
		}

		switch f.focusIndex {
		case focusImportant, focusUrgent:
			switch keyMsg.String() {
			case " ", "enter", "x":
				if f.focusIndex == focusImportant {
					f.important = !f.important
				} else {
					f.urgent = !f.urgent
				}
				return f, nil
			}
			return f, nil

		case focusSubmit:
			if keyMsg.String() == "enter" {
				return f, f.submit()
			}
			return f, nil

		case focusEstimate:
			switch keyMsg.String() {
			case "up":
				f.cyclePreset(-1)
				return f, nil
			case "down":
				f.cyclePreset(1)
				return f, nil
			}

		case focusDeadline:
			switch keyMsg.String() {
			case "up":
				f.shiftDeadline(1)
				return f, nil
			case "down":
				f.shiftDeadline(-1)
				return f, nil
			}
		}

		// Single line fields advance on enter
		if keyMsg.String() == "enter" && f.focusIndex != focusDescription {
			return f, f.setFocus(f.focusIndex + 1)
		}
	}

	var cmd tea.Cmd
	switch f.focusIndex {
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
	case focusDescription:
		f.description, cmd = f.description.Update(msg)
	case focusDeadline:
		f.deadline, cmd = f.deadline.Update(msg)
	case focusEstimate:
		f.estimate, cmd = f.estimate.Update(msg)
	case focusTags:
		f.tags, cmd = f.tags.Update(msg)
	}
	return f, cmd
}

// cyclePreset steps the estimate through the presets, starting from the
// first one when the current value is free text.
func (f *TaskForm) cyclePreset(step int) {
	presets := domain.EstimatePresets
	current := -1
	for i, p := range presets {
		if strings.EqualFold(p, strings.TrimSpace(f.estimate.Value())) {
			current = i
			break
		}
	}
	next := 0
	if current >= 0 {
		next = (current + step + len(presets)) % len(presets)
	}
	f.estimate.SetValue(presets[next])
	f.estimate.CursorEnd()
}

// shiftDeadline moves the deadline by days, starting from today when empty
// or unparseable.
func (f *TaskForm) shiftDeadline(days int) {
	base := domain.StartOfDay(f.now())
	if d, err := domain.ParseDate(f.deadline.Value()); err == nil {
		base = d
	} else {
		days = 0
	}
	f.deadline.SetValue(domain.FormatDateForInput(base.AddDate(0, 0, days)))
	f.deadline.CursorEnd()
}

func splitTags(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// validate returns the first problem with the form, or ""
func (f *TaskForm) validate() string {
	if strings.TrimSpace(f.title.Value()) == "" {
		return "Title is required"
	}
	if d := strings.TrimSpace(f.deadline.Value()); d != "" {
		if _, err := domain.ParseDate(d); err != nil {
			return "Deadline must be " + domain.DateInputLayout
		}
	}
	for _, tag := range splitTags(f.tags.Value()) {
		if v := domain.ValidateTagName(tag); !v.Valid {
			return fmt.Sprintf("%s: %s", tag, v.Error)
		}
	}
	return ""
}

// Input builds the task input from the current field values. Editing leaves
// an untouched deadline out so full timestamps survive.
func (f *TaskForm) Input() domain.TaskInput {
	input := domain.TaskInput{
		Title:        domain.StringPtr(strings.TrimSpace(f.title.Value())),
		Description:  domain.StringPtr(strings.TrimSpace(f.description.Value())),
		TimeEstimate: domain.StringPtr(strings.TrimSpace(f.estimate.Value())),
		Important:    domain.BoolPtr(f.important),
		Urgent:       domain.BoolPtr(f.urgent),
		Tags:         domain.NormalizeTags(splitTags(f.tags.Value())),
	}

	deadline := strings.TrimSpace(f.deadline.Value())
	if !f.IsEdit() || deadline != f.initialDeadline {
		input.Deadline = domain.StringPtr(deadline)
	}
	return input
}

func (f *TaskForm) submit() tea.Cmd {
	if f.err = f.validate(); f.err != "" {
		return nil
	}

	msg := TaskFormMsg{ID: f.id, Input: f.Input()}
	return tea.Batch(
		func() tea.Msg { return msg },
		closeCmd,
	)
}

// Error returns the current validation message
func (f *TaskForm) Error() string {
	return f.err
}

func (f *TaskForm) label(index int, text string) string {
	if f.focusIndex == index {
		return f.styles.FieldLabelActive.Render(text)
	}
	return f.styles.FieldLabel.Render(text)
}

func (f *TaskForm) toggle(index int, text string, on bool) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	style := f.styles.MenuItem
	if f.focusIndex == index {
		style = f.styles.MenuItemActive
	}
	return f.label(index, text) + "  " + style.Render(box)
}

// View renders the form
func (f *TaskForm) View() string {
	var b strings.Builder

	b.WriteString(f.label(focusTitle, "Title:") + "  " + f.title.View() + "\n\n")
	b.WriteString(f.label(focusDescription, "Description:") + "\n")
	b.WriteString(f.description.View() + "\n\n")
	b.WriteString(f.label(focusDeadline, "Deadline:") + "  " + f.deadline.View() + "\n")
	b.WriteString(f.label(focusEstimate, "Estimate:") + "  " + f.estimate.View() + "\n")
	b.WriteString(f.toggle(focusImportant, "Important:", f.important) + "   ")
	b.WriteString(f.toggle(focusUrgent, "Urgent:", f.urgent) + "\n")
	b.WriteString(f.label(focusTags, "Tags:") + "  " + f.tags.View() + "\n\n")

	lane := domain.Classify(domain.Task{Important: f.important, Urgent: f.urgent})
	b.WriteString(f.styles.Suggestion.Render("Lands in: " + lane.Title()))
	b.WriteString("\n")

	if f.err != "" {
		b.WriteString(f.styles.FieldError.Render(f.err))
		b.WriteString("\n")
	}

	submit := "[ Create Task ]"
	if f.IsEdit() {
		submit = "[ Save Changes ]"
	}
	submitStyle := f.styles.MenuItem
	if f.focusIndex == focusSubmit {
		submitStyle = f.styles.MenuItemActive
	}
	b.WriteString(f.styles.Separator.Render(strings.Repeat("─", 56)))
	b.WriteString("\n")
	b.WriteString(submitStyle.Render(submit))
	b.WriteString("\n")

	var hint string
	switch f.focusIndex {
	case focusDeadline:
		hint = "↑/↓ shift by a day • "
	case focusEstimate:
		hint = "↑/↓ presets • "
	case focusImportant, focusUrgent:
		hint = "Space toggle • "
	}
	b.WriteString(f.styles.Footer.Render(hint + "Tab next • Ctrl+S save • Esc cancel"))

	return b.String()
}

// Title returns the overlay title
func (f *TaskForm) Title() string {
	if f.IsEdit() {
		return "Edit Task"
	}
	return "New Task"
}

// Size returns the overlay dimensions
func (f *TaskForm) Size() (width, height int) {
	return 72, 26
}
