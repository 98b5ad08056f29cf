// Package statusbar renders the one-line mode, hint and summary bar
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/types"
	"github.com/riordanpawley/quadrant/internal/ui/styles"
)

// Info is what the status bar reports besides the mode
type Info struct {
	Overview domain.Overview
	Visible  int // tasks left after filtering
	Selected int
	Filter   *domain.Filter
	Sort     domain.Sort
}

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	info   Info
	width  int
	styles *styles.Styles
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithInfo returns a copy of the bar reporting info
func (sb StatusBar) WithInfo(info Info) StatusBar {
	sb.info = info
	return sb
}

// FilterSummary describes the active filters, or "" when none are set
func FilterSummary(f *domain.Filter) string {
	if f == nil || !f.IsActive() {
		return ""
	}

	var parts []string
	if q := strings.TrimSpace(f.SearchQuery); q != "" {
		parts = append(parts, fmt.Sprintf("%q", q))
	}
	if tags := f.SelectedTags(); len(tags) > 0 {
		sep := "|"
		if f.TagMode == domain.TagModeAnd {
			sep = "+"
		}
		parts = append(parts, "#"+strings.Join(tags, sep))
	}
	for _, s := range f.SelectedStatuses() {
		parts = append(parts, s.Short())
	}
	if f.DatePreset != domain.DateAny {
		parts = append(parts, f.DatePreset.Label())
	}
	if f.Important != nil {
		parts = append(parts, flag("important", *f.Important))
	}
	if f.Urgent != nil {
		parts = append(parts, flag("urgent", *f.Urgent))
	}
	return strings.Join(parts, " ")
}

func flag(name string, v bool) string {
	if v {
		return name
	}
	return "not " + name
}

// summary renders the right-hand side: filter, sort and counts
func (sb StatusBar) summary() string {
	var parts []string
	o := sb.info.Overview

	if sb.info.Selected > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", sb.info.Selected))
	}
	if f := FilterSummary(sb.info.Filter); f != "" {
		parts = append(parts, fmt.Sprintf("filter %s (%d/%d)", f, sb.info.Visible, o.Total))
	}
	if sb.info.Sort.Field != domain.SortByCreated || sb.info.Sort.Order != domain.SortAsc {
		arrow := "↑"
		if sb.info.Sort.Order == domain.SortDesc {
			arrow = "↓"
		}
		parts = append(parts, "sort "+sb.info.Sort.Field.Label()+arrow)
	}

	counts := fmt.Sprintf("%d tasks · %d done", o.Total, o.Completed)
	if o.InProgress > 0 {
		counts += fmt.Sprintf(" · %d active", o.InProgress)
	}
	if o.WIP > 0 {
		counts += fmt.Sprintf(" · %d wip", o.WIP)
	}
	if o.Critical > 0 {
		counts += fmt.Sprintf(" · %d critical", o.Critical)
	}
	parts = append(parts, counts)

	return strings.Join(parts, " │ ")
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	hints := GetHints(sb.mode)
	left := modeBadge
	if hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		left = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, sb.styles.StatusHint.Render(hints))
	}

	right := sb.styles.StatusInfo.Render(sb.summary())

	// Drop the hints before the summary when space runs out
	gap := sb.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		left = modeBadge
		gap = sb.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	}

	content := left
	if gap >= 1 {
		content = left + strings.Repeat(" ", gap) + right
	}

	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
