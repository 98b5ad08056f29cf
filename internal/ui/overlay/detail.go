package overlay

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/ui/styles"
)

// DetailPanel displays full task details with scrollable description
type DetailPanel struct {
	task       domain.Task
	now        func() time.Time
	scrollY    int
	viewHeight int
	styles     *Styles
	board      *styles.Styles
}

// NewDetailPanel creates a new detail panel for the given task
func NewDetailPanel(task domain.Task, now func() time.Time) *DetailPanel {
	if now == nil {
		now = time.Now
	}
	return &DetailPanel{
		task:       task,
		now:        now,
		viewHeight: 12,
		styles:     New(),
		board:      styles.New(),
	}
}

// Init initializes the detail panel
func (d *DetailPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *DetailPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch keyMsg.String() {
	case "esc", "q", "enter":
		return d, closeCmd
	case "e":
		msg := ActionMsg{Action: Action{Key: "e", Label: "Edit task", Kind: ActionEdit, Enabled: true}, TaskIDs: []string{d.task.ID}}
		return d, tea.Batch(closeCmd, func() tea.Msg { return msg })
	case "j", "down":
		if d.scrollY < d.maxScroll() {
			d.scrollY++
		}
	case "k", "up":
		if d.scrollY > 0 {
			d.scrollY--
		}
	case "g":
		d.scrollY = 0
	case "G":
		d.scrollY = d.maxScroll()
	}
	return d, nil
}

func (d *DetailPanel) descriptionLines() []string {
	if d.task.Description == "" {
		return nil
	}
	return strings.Split(d.task.Description, "\n")
}

func (d *DetailPanel) maxScroll() int {
	return max(0, len(d.descriptionLines())-d.viewHeight)
}

func (d *DetailPanel) field(label, value string) string {
	return d.styles.FieldLabel.Render(label) + "  " + value + "\n"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// View renders the detail panel
func (d *DetailPanel) View() string {
	var b strings.Builder
	now := d.now()
	task := d.task
	lane := task.Quadrant()

	b.WriteString(d.board.LaneHeader(lane, false).Render(task.Title))
	b.WriteString("\n\n")

	b.WriteString(d.field("Lane:", d.styles.MenuItem.Render(lane.Title()+" · "+lane.Description())))
	b.WriteString(d.field("State:", d.board.StateBadge(task.State).Render(task.State.Label())))
	b.WriteString(d.field("Important:", d.styles.MenuItem.Render(yesNo(task.Important))))
	b.WriteString(d.field("Urgent:", d.styles.MenuItem.Render(yesNo(task.Urgent))))

	if deadline, ok := task.DeadlineTime(); ok {
		text := domain.FormatDeadline(deadline, now) + " (" + domain.FormatDateForInput(deadline) + ")"
		style := d.board.Deadline
		if !task.IsDone() && domain.IsOverdue(deadline, now) {
			text = "Overdue: " + text
			style = d.board.Overdue
		}
		b.WriteString(d.field("Deadline:", style.Render(text)))
	} else if task.Deadline != "" {
		b.WriteString(d.field("Deadline:", d.styles.FieldError.Render(task.Deadline+" (unreadable)")))
	}

	if task.TimeEstimate != "" {
		text := task.TimeEstimate
		if est, ok := task.Estimate(); ok && domain.FormatEstimate(est) != text {
			text += " (" + domain.FormatEstimate(est) + ")"
		}
		b.WriteString(d.field("Estimate:", d.board.Estimate.Render(text)))
	}

	if task.CompletedAt != nil {
		b.WriteString(d.field("Completed:", d.board.Completed.Render(domain.FormatCompletion(*task.CompletedAt, now))))
	}

	chips := make([]string, 0, len(task.Tags))
	for _, tag := range task.Tags {
		chips = append(chips, d.board.TagChip(tag).Render(tag))
	}
	b.WriteString(d.field("Tags:", strings.Join(chips, " ")))

	lines := d.descriptionLines()
	if len(lines) > 0 {
		b.WriteString("\n")
		b.WriteString(d.styles.MenuHeader.Render("Description"))
		b.WriteString("\n")

		end := min(d.scrollY+d.viewHeight, len(lines))
		for _, line := range lines[d.scrollY:end] {
			b.WriteString(d.styles.MenuItem.Render(line))
			b.WriteString("\n")
		}

		if d.maxScroll() > 0 {
			b.WriteString(d.styles.Footer.Render("j/k scroll • g/G jump"))
			b.WriteString("\n")
		}
	}

	b.WriteString(d.styles.Footer.Render("e edit • Esc close"))
	return b.String()
}

// Title returns the overlay title
func (d *DetailPanel) Title() string {
	return "Task Details"
}

// Size returns the overlay dimensions
func (d *DetailPanel) Size() (width, height int) {
	return 70, 30
}
