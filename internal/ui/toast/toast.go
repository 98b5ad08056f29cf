// Package toast renders transient notifications in the corner of the board
package toast

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/quadrant/internal/types"
	"github.com/riordanpawley/quadrant/internal/ui/styles"
)

// MaxVisible is the number of newest toasts shown at once
const MaxVisible = 3

// ToastRenderer handles rendering of toast notifications
type ToastRenderer struct {
	styles *styles.Styles
}

// New creates a new ToastRenderer with the given styles
func New(styles *styles.Styles) *ToastRenderer {
	return &ToastRenderer{
		styles: styles,
	}
}

// Render stacks the unexpired toasts, newest last, right-aligned. Returns
// an empty string when nothing is visible.
func (r *ToastRenderer) Render(toasts []types.Toast, width int, now time.Time) string {
	var live []types.Toast
	for _, t := range toasts {
		if !t.Expired(now) {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return ""
	}
	if len(live) > MaxVisible {
		live = live[len(live)-MaxVisible:]
	}

	toastWidth := min(max(width/3, 20), 40)

	rendered := make([]string, 0, len(live))
	for _, t := range live {
		style := r.styleForLevel(t.Level)
		rendered = append(rendered, style.Width(toastWidth).Render(icon(t.Level)+" "+t.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func icon(level types.ToastLevel) string {
	switch level {
	case types.ToastSuccess:
		return "✓"
	case types.ToastWarning:
		return "!"
	case types.ToastError:
		return "✗"
	default:
		return "•"
	}
}

// styleForLevel returns the appropriate style for a toast level
func (r *ToastRenderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastSuccess:
		return r.styles.ToastSuccess
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	default:
		return r.styles.ToastInfo
	}
}
