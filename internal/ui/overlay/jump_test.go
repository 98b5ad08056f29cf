package overlay

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jumpTargets(n int) []JumpTarget {
	targets := make([]JumpTarget, n)
	for i := range targets {
		targets[i] = JumpTarget{ID: fmt.Sprintf("t-%d", i), Title: fmt.Sprintf("Task %d", i), Quadrant: domain.QuadrantSchedule}
	}
	return targets
}

func TestGenerateLabels(t *testing.T) {
	tests := []struct {
		count int
		first string
		last  string
		n     int
	}{
		{count: -1, n: 0},
		{count: 0, n: 0},
		{count: 1, first: "a", last: "a", n: 1},
		{count: 5, first: "a", last: "g", n: 5},
		{count: 10, first: "a", last: ";", n: 10},
		{count: 11, first: "aa", last: "sa", n: 11},
		{count: 100, first: "aa", last: ";;", n: 100},
		{count: 250, first: "aa", last: ";;", n: 100},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.count), func(t *testing.T) {
			labels := GenerateLabels(tt.count)
			require.Len(t, labels, tt.n)
			if tt.n > 0 {
				assert.Equal(t, tt.first, labels[0])
				assert.Equal(t, tt.last, labels[len(labels)-1])
			}
		})
	}
}

func TestGenerateLabels_PrefixFree(t *testing.T) {
	labels := GenerateLabels(37)
	seen := make(map[string]bool)
	for _, l := range labels {
		assert.False(t, seen[l], "duplicate label %q", l)
		seen[l] = true
		assert.Len(t, l, 2)
	}
}

func TestJumpMode_SingleKey(t *testing.T) {
	jump := NewJumpMode(jumpTargets(3))

	_, cmd := jump.Update(keyRunes("s"))

	msgs := collectMsgs(cmd)
	sel, ok := findMsg[JumpSelectedMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, "t-1", sel.TaskID)
	_, closed := findMsg[CloseOverlayMsg](msgs)
	assert.True(t, closed)
}

func TestJumpMode_TwoKeys(t *testing.T) {
	jump := NewJumpMode(jumpTargets(30))

	_, cmd := jump.Update(keyRunes("s"))
	assert.Nil(t, cmd)
	assert.Equal(t, "s", jump.input)

	_, cmd = jump.Update(keyRunes("d"))
	sel, ok := findMsg[JumpSelectedMsg](collectMsgs(cmd))
	require.True(t, ok)
	assert.Equal(t, "t-12", sel.TaskID)
}

func TestJumpMode_UnknownPrefixResets(t *testing.T) {
	jump := NewJumpMode(jumpTargets(12))

	jump.Update(keyRunes("d"))
	assert.Equal(t, "", jump.input, "no label starts with d")

	jump.Update(keyRunes("x"))
	assert.Equal(t, "", jump.input, "non home row keys are ignored")
}

func TestJumpMode_Backspace(t *testing.T) {
	jump := NewJumpMode(jumpTargets(30))
	jump.Update(keyRunes("a"))
	jump.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "", jump.input)

	jump.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "", jump.input)
}

func TestJumpMode_Escape(t *testing.T) {
	jump := NewJumpMode(jumpTargets(3))
	_, cmd := jump.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, CloseOverlayMsg{}, cmd())
}

func TestJumpMode_TooManyTargets(t *testing.T) {
	jump := NewJumpMode(jumpTargets(MaxJumpTargets + 5))
	assert.Len(t, jump.targets, MaxJumpTargets)
	assert.Len(t, jump.labels, MaxJumpTargets)
}

func TestJumpMode_View(t *testing.T) {
	jump := NewJumpMode(jumpTargets(25))

	view := ansi.Strip(jump.View())
	assert.Contains(t, view, "Type a label to jump...")
	assert.Contains(t, view, "aa  Task 0")
	assert.Contains(t, view, "+5 more")

	jump.Update(keyRunes("s"))
	view = ansi.Strip(jump.View())
	assert.Contains(t, view, "Input:  s")
	assert.Contains(t, view, "sa  Task 10")
	assert.NotContains(t, view, "Task 0\n")

	assert.Equal(t, "Jump", jump.Title())
	width, height := jump.Size()
	assert.Equal(t, 56, width)
	assert.Equal(t, 27, height)
}
