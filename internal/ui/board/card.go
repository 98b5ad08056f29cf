package board

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/ui/styles"
)

// renderCard renders a task card. width is the outer width of the card.
func renderCard(task domain.Task, isCursor bool, isSelected bool, width int, opts Options, s *styles.Styles) string {
	// Choose card style based on state
	cardStyle := s.Card
	if isSelected {
		cardStyle = s.CardSelected
	} else if isCursor {
		cardStyle = s.CardActive
	}

	// Border takes 2 columns, padding takes 2 more
	cardStyle = cardStyle.Width(max(width-2, 1))
	inner := max(width-4, 1)

	// Cursor indicator (▶ symbol when cursor is on this card)
	cursor := ""
	if isCursor {
		cursor = "▶ "
	}
	title := ansi.Truncate(cursor+task.Title, inner, "…")
	lines := []string{s.TaskTitle.Render(title)}

	if !opts.HideDescriptions && task.Description != "" {
		first, _, _ := strings.Cut(strings.TrimSpace(task.Description), "\n")
		lines = append(lines, s.TaskDescription.Render(ansi.Truncate(first, inner, "…")))
	}

	if meta := renderMeta(task, opts, s); meta != "" {
		lines = append(lines, ansi.Truncate(meta, inner, "…"))
	}

	if chips := renderTags(task.Tags, s); chips != "" {
		lines = append(lines, ansi.Truncate(chips, inner, "…"))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderMeta renders the state badge, deadline, estimate and completion line
func renderMeta(task domain.Task, opts Options, s *styles.Styles) string {
	parts := []string{s.StateBadge(task.State).Render(task.State.Label())}

	if task.IsDone() {
		if task.CompletedAt != nil {
			parts = append(parts, s.Completed.Render(domain.FormatCompletion(*task.CompletedAt, opts.Now)))
		}
	} else if deadline, ok := task.DeadlineTime(); ok {
		text := domain.FormatDeadline(deadline, opts.Now)
		if domain.IsOverdue(deadline, opts.Now) {
			parts = append(parts, s.Overdue.Render("! "+text))
		} else {
			parts = append(parts, s.Deadline.Render(text))
		}
	}

	if est := estimateText(task); est != "" {
		parts = append(parts, s.Estimate.Render("~"+est))
	}

	return strings.Join(parts, " ")
}

// estimateText prefers the parsed duration and falls back to the raw text
func estimateText(task domain.Task) string {
	if d, ok := task.Estimate(); ok {
		return domain.FormatEstimate(d)
	}
	return strings.TrimSpace(task.TimeEstimate)
}

func renderTags(tags []string, s *styles.Styles) string {
	chips := make([]string, 0, len(tags))
	for _, tag := range tags {
		chips = append(chips, s.TagChip(tag).Render(tag))
	}
	return strings.Join(chips, " ")
}

// RenderCard is the exported version for testing
func RenderCard(task domain.Task, isCursor bool, isSelected bool, width int, opts Options, s *styles.Styles) string {
	return renderCard(task, isCursor, isSelected, width, opts, s)
}
