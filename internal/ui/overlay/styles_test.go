package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestNewStyles(t *testing.T) {
	styles := New()
	if styles == nil {
		t.Fatal("New() returned nil")
	}

	// Verify all style fields render
	tests := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Overlay", styles.Overlay},
		{"Title", styles.Title},
		{"MenuItem", styles.MenuItem},
		{"MenuItemActive", styles.MenuItemActive},
		{"MenuItemDisabled", styles.MenuItemDisabled},
		{"MenuKey", styles.MenuKey},
		{"MenuKeyDisabled", styles.MenuKeyDisabled},
		{"Separator", styles.Separator},
		{"Footer", styles.Footer},
		{"FieldLabel", styles.FieldLabel},
		{"FieldError", styles.FieldError},
		{"Suggestion", styles.Suggestion},
		{"SuggestionActive", styles.SuggestionActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered := tt.style.Render("test")
			if rendered == "" {
				t.Errorf("%s style rendered empty string", tt.name)
			}
		})
	}
}

func TestStylesRender(t *testing.T) {
	s := New()

	framed := ansi.Strip(s.Render(mockOverlay{title: "Heading", value: "body text", width: 30}))
	assert.Contains(t, framed, "Heading")
	assert.Contains(t, framed, "body text")
	assert.True(t, strings.HasPrefix(framed, "╭"), "rounded border")
	assert.Equal(t, 32, lipgloss.Width(s.Render(mockOverlay{value: "x", width: 30})))

	untitled := ansi.Strip(s.Render(mockOverlay{value: "only body"}))
	assert.Contains(t, untitled, "only body")
}
