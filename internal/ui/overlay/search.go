package overlay

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/quadrant/internal/domain"
)

// SearchMsg carries the settled search query
type SearchMsg struct {
	Query string
}

// searchTickMsg fires when a debounce window ends. Only the tick whose seq is
// still current turns into a SearchMsg.
type searchTickMsg struct {
	seq   int
	query string
}

// SearchOverlay is the search bar with live suggestions
type SearchOverlay struct {
	input       textinput.Model
	tasks       []domain.Task
	debounce    time.Duration
	limit       int
	seq         int
	suggestions []string
	selected    int // -1 when no suggestion is highlighted
	matchCount  int
	styles      *Styles
}

// NewSearchOverlay creates a search bar seeded with the current query. tasks
// feed the suggestion list; at most limit suggestions are shown.
func NewSearchOverlay(query string, tasks []domain.Task, debounce time.Duration, limit int) *SearchOverlay {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search title and description..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50
	ti.SetValue(query)
	ti.CursorEnd()

	s := &SearchOverlay{
		input:    ti,
		tasks:    tasks,
		debounce: debounce,
		limit:    limit,
		selected: -1,
		styles:   New(),
	}
	s.refreshSuggestions()
	return s
}

// SetMatchCount updates the match count display
func (s *SearchOverlay) SetMatchCount(count int) {
	s.matchCount = count
}

// Query returns the text currently typed
func (s *SearchOverlay) Query() string {
	return s.input.Value()
}

// Suggestions returns the suggestions for the current text
func (s *SearchOverlay) Suggestions() []string {
	return s.suggestions
}

// Init implements tea.Model
func (s *SearchOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (s *SearchOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchTickMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		return s, emitSearch(msg.query)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			// Enter takes the highlighted suggestion, settles the query and
			// keeps the filter active
			if s.selected >= 0 && s.selected < len(s.suggestions) {
				s.input.SetValue(s.suggestions[s.selected])
			}
			s.seq++
			return s, tea.Batch(emitSearch(s.input.Value()), closeCmd)

		case tea.KeyEsc:
			// Esc closes and clears filter
			s.seq++
			s.input.SetValue("")
			return s, tea.Batch(emitSearch(""), closeCmd)

		case tea.KeyDown, tea.KeyCtrlN:
			if len(s.suggestions) > 0 {
				s.selected = (s.selected + 1) % len(s.suggestions)
			}
			return s, nil

		case tea.KeyUp, tea.KeyCtrlP:
			if len(s.suggestions) > 0 {
				if s.selected <= 0 {
					s.selected = len(s.suggestions) - 1
				} else {
					s.selected--
				}
			}
			return s, nil

		case tea.KeyTab:
			if s.selected < 0 || s.selected >= len(s.suggestions) {
				return s, nil
			}
			s.input.SetValue(s.suggestions[s.selected])
			s.input.CursorEnd()
			return s, s.changed()
		}
	}

	prevValue := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if s.input.Value() != prevValue {
		return s, tea.Batch(cmd, s.changed())
	}
	return s, cmd
}

// changed refreshes suggestions and starts a new debounce window, which
// supersedes any pending one
func (s *SearchOverlay) changed() tea.Cmd {
	s.refreshSuggestions()
	s.seq++
	query := s.input.Value()
	if s.debounce <= 0 {
		return emitSearch(query)
	}
	seq := s.seq
	return tea.Tick(s.debounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq, query: query}
	})
}

func (s *SearchOverlay) refreshSuggestions() {
	s.suggestions = domain.MatchingSuggestions(s.tasks, s.input.Value(), s.limit)
	s.selected = -1
}

func emitSearch(query string) tea.Cmd {
	return func() tea.Msg { return SearchMsg{Query: query} }
}

// View implements tea.Model
func (s *SearchOverlay) View() string {
	var b strings.Builder
	b.WriteString(s.input.View())

	// Add match count if there's a query
	if strings.TrimSpace(s.input.Value()) != "" {
		b.WriteString(s.styles.MenuCount.Render(fmt.Sprintf("  (%d matches)", s.matchCount)))
	}

	if len(s.suggestions) > 0 {
		b.WriteString("\n")
		parts := make([]string, len(s.suggestions))
		for i, sug := range s.suggestions {
			style := s.styles.Suggestion
			if i == s.selected {
				style = s.styles.SuggestionActive
			}
			parts[i] = style.Render(" " + sug + " ")
		}
		b.WriteString(strings.Join(parts, " "))
	}

	return b.String()
}

// Title implements Overlay interface (returns empty for search bar)
func (s *SearchOverlay) Title() string {
	return ""
}

// Size implements Overlay interface (full-width bar, plus a suggestion row)
func (s *SearchOverlay) Size() (width, height int) {
	if len(s.suggestions) > 0 {
		return 0, 2
	}
	return 0, 1
}
