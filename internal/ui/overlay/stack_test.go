package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOverlay is a simple overlay implementation for testing
type mockOverlay struct {
	title   string
	width   int
	height  int
	value   string
	updates int
}

func (m mockOverlay) Init() tea.Cmd {
	return nil
}

func (m mockOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.updates++
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			return m, func() tea.Msg {
				return SelectionMsg{Key: "test", Value: m.value}
			}
		}
		if msg.String() == "esc" {
			return m, closeCmd
		}
	}
	return m, nil
}

func (m mockOverlay) View() string {
	return m.value
}

func (m mockOverlay) Title() string {
	return m.title
}

func (m mockOverlay) Size() (width, height int) {
	return m.width, m.height
}

func TestNewStack(t *testing.T) {
	stack := NewStack()
	if stack == nil {
		t.Fatal("NewStack returned nil")
	}
	if !stack.IsEmpty() {
		t.Error("New stack should be empty")
	}
	if stack.Current() != nil {
		t.Error("Current on empty stack should be nil")
	}
	if stack.Pop() != nil {
		t.Error("Pop on empty stack should be nil")
	}
}

func TestStackPushPop(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "first"})
	stack.Push(mockOverlay{title: "second"})

	assert.Equal(t, 2, stack.Len())
	assert.Equal(t, "second", stack.Current().Title())

	popped := stack.Pop()
	require.NotNil(t, popped)
	assert.Equal(t, "second", popped.Title())
	assert.Equal(t, "first", stack.Current().Title())

	stack.Pop()
	assert.True(t, stack.IsEmpty())
	assert.Nil(t, stack.Pop())
}

func TestStackUpdateForwardsToTop(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "bottom"})
	stack.Push(mockOverlay{title: "top", value: "picked"})

	cmd := stack.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(SelectionMsg)
	require.True(t, ok)
	assert.Equal(t, "picked", msg.Value)

	top := stack.Current().(mockOverlay)
	assert.Equal(t, 1, top.updates, "updated model replaces the top entry")

	stack.Pop()
	bottom := stack.Current().(mockOverlay)
	assert.Zero(t, bottom.updates)
}

func TestStackUpdateCloseMsgPops(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "first"})
	stack.Push(mockOverlay{title: "second"})

	cmd := stack.Update(CloseOverlayMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, stack.Len())
	assert.Equal(t, "first", stack.Current().Title())
}

func TestStackUpdateEmpty(t *testing.T) {
	stack := NewStack()
	assert.Nil(t, stack.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Nil(t, stack.Update(CloseOverlayMsg{}))
}
