package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/ui/styles"
)

// homeRow defines the keys jump labels are built from
var homeRow = []rune{'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', ';'}

// MaxJumpTargets is the number of tasks two-key labels can address
var MaxJumpTargets = len(homeRow) * len(homeRow)

// GenerateLabels returns count prefix-free labels: single home row keys when
// they suffice, home row pairs otherwise. count is capped at MaxJumpTargets.
func GenerateLabels(count int) []string {
	count = min(max(count, 0), MaxJumpTargets)
	labels := make([]string, 0, count)

	if count <= len(homeRow) {
		for _, r := range homeRow[:count] {
			labels = append(labels, string(r))
		}
		return labels
	}

	for _, first := range homeRow {
		for _, second := range homeRow {
			if len(labels) == count {
				return labels
			}
			labels = append(labels, string(first)+string(second))
		}
	}
	return labels
}

// JumpTarget is a task that can be jumped to
type JumpTarget struct {
	ID       string
	Title    string
	Quadrant domain.Quadrant
}

// JumpSelectedMsg is sent when a jump target is selected
type JumpSelectedMsg struct {
	TaskID string
}

// JumpMode is an overlay that labels visible tasks for quick navigation
type JumpMode struct {
	targets []JumpTarget
	labels  []string
	input   string
	styles  *Styles
}

// NewJumpMode creates a jump overlay over targets in board order
func NewJumpMode(targets []JumpTarget) *JumpMode {
	labels := GenerateLabels(len(targets))
	return &JumpMode{
		targets: targets[:len(labels)],
		labels:  labels,
		styles:  New(),
	}
}

// Init initializes the jump mode
func (j *JumpMode) Init() tea.Cmd {
	return nil
}

func isJumpKey(key string) bool {
	return len(key) == 1 && strings.ContainsRune(string(homeRow), rune(key[0]))
}

// Update handles messages
func (j *JumpMode) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return j, nil
	}

	key := keyMsg.String()
	switch {
	case key == "esc":
		return j, closeCmd

	case key == "backspace":
		if len(j.input) > 0 {
			j.input = j.input[:len(j.input)-1]
		}

	case isJumpKey(key):
		j.input += key
		for i, label := range j.labels {
			if label == j.input {
				id := j.targets[i].ID
				return j, tea.Batch(
					func() tea.Msg { return JumpSelectedMsg{TaskID: id} },
					closeCmd,
				)
			}
		}
		if len(j.matching()) == 0 {
			j.input = ""
		}
	}

	return j, nil
}

// matching returns the indexes of labels that start with the current input
func (j *JumpMode) matching() []int {
	var idx []int
	for i, label := range j.labels {
		if strings.HasPrefix(label, j.input) {
			idx = append(idx, i)
		}
	}
	return idx
}

// View renders the jump mode overlay
func (j *JumpMode) View() string {
	var b strings.Builder

	if j.input == "" {
		b.WriteString(j.styles.Suggestion.Render("Type a label to jump..."))
	} else {
		b.WriteString("Input: ")
		b.WriteString(RenderLabel(j.input))
	}
	b.WriteString("\n\n")

	const maxRows = 20
	matches := j.matching()
	for n, i := range matches {
		if n == maxRows {
			b.WriteString(j.styles.Footer.Render(fmt.Sprintf("... +%d more", len(matches)-maxRows)))
			b.WriteString("\n")
			break
		}
		color, ok := styles.QuadrantColors[j.targets[i].Quadrant]
		if !ok {
			color = styles.Text
		}
		title := ansi.Truncate(j.targets[i].Title, 40, "…")
		b.WriteString(RenderLabel(j.labels[i]))
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(title))
		b.WriteString("\n")
	}

	b.WriteString(j.styles.Footer.Render("Type label • Backspace: delete • Esc: cancel"))
	return b.String()
}

// Title returns the overlay title
func (j *JumpMode) Title() string {
	return "Jump"
}

// Size returns the overlay dimensions
func (j *JumpMode) Size() (width, height int) {
	return 56, min(len(j.labels), 20) + 7
}

// RenderLabel renders a jump label with styling
func RenderLabel(label string) string {
	style := lipgloss.NewStyle().
		Foreground(styles.Base).
		Background(styles.Yellow).
		Bold(true).
		Padding(0, 1)
	return style.Render(label)
}
