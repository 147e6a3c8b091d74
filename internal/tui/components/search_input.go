package components

import (
	"net/url"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sudatra/aora/internal/tui/styles"
)

const defaultMaxSuggestions = 5

// NavAction is the navigation requested by a submitted search
type NavAction int

const (
	NavNone      NavAction = iota
	NavPush                // Open Path on top of the current route
	NavSetParams           // Replace the current search route's Params
)

// Alert is a message for the user that requires acknowledgement
type Alert struct {
	Title   string
	Message string
}

// MissingQueryAlert is shown when an empty search is submitted
var MissingQueryAlert = Alert{
	Title:   "Missing query",
	Message: "Please input something",
}

// SubmitResult describes what a submit should do. Exactly one of Alert
// or a navigation Action is set.
type SubmitResult struct {
	Alert  *Alert
	Action NavAction
	Path   string            // For NavPush
	Params map[string]string // For NavSetParams
	Query  string
}

// SearchInput is the search bar. It holds the query text and offers
// suggestions taken from recent queries.
type SearchInput struct {
	input          textinput.Model
	history        []string
	suggestions    []string
	cursor         int // Selected suggestion, -1 for none
	maxSuggestions int
	width          int
}

// NewSearchInput creates a search input holding an optional initial query
func NewSearchInput(initialQuery string) SearchInput {
	ti := textinput.New()
	ti.Placeholder = "Search for a video topic"
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.SetValue(initialQuery)

	return SearchInput{
		input:          ti,
		cursor:         -1,
		maxSuggestions: defaultMaxSuggestions,
	}
}

// SetHistory sets the recent queries used for suggestions, newest first
func (s *SearchInput) SetHistory(queries []string) {
	s.history = queries
	s.refreshSuggestions()
}

// SetMaxSuggestions limits the number of suggestions shown
func (s *SearchInput) SetMaxSuggestions(n int) {
	if n >= 0 {
		s.maxSuggestions = n
		s.refreshSuggestions()
	}
}

// SetWidth updates the component width
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	if width > 10 {
		s.input.Width = width - 6
	}
}

// Value returns the current query text
func (s SearchInput) Value() string {
	return s.input.Value()
}

// SetValue replaces the query text
func (s *SearchInput) SetValue(query string) {
	s.input.SetValue(query)
	s.input.CursorEnd()
	s.refreshSuggestions()
}

// Focus focuses the input
func (s *SearchInput) Focus() tea.Cmd {
	s.refreshSuggestions()
	return s.input.Focus()
}

// Blur removes focus from the input
func (s *SearchInput) Blur() {
	s.input.Blur()
	s.cursor = -1
}

// Focused returns true if the input has focus
func (s SearchInput) Focused() bool {
	return s.input.Focused()
}

// Suggestions returns the current suggestions, best match first
func (s SearchInput) Suggestions() []string {
	return s.suggestions
}

// Submit resolves the current query against the path of the current route.
// An empty query yields MissingQueryAlert and no navigation. On a search
// route the query replaces the route's parameter; elsewhere a search route
// is pushed.
func (s SearchInput) Submit(currentPath string) SubmitResult {
	query := strings.TrimSpace(s.input.Value())
	if s.cursor >= 0 && s.cursor < len(s.suggestions) {
		query = s.suggestions[s.cursor]
	}

	if query == "" {
		alert := MissingQueryAlert
		return SubmitResult{Alert: &alert}
	}

	if strings.HasPrefix(currentPath, "/search") {
		return SubmitResult{
			Action: NavSetParams,
			Params: map[string]string{"query": query},
			Query:  query,
		}
	}

	return SubmitResult{
		Action: NavPush,
		Path:   "/search/" + url.PathEscape(query),
		Query:  query,
	}
}

// Update handles input events
func (s SearchInput) Update(msg tea.Msg) (SearchInput, tea.Cmd) {
	if !s.input.Focused() {
		return s, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "down", "ctrl+n":
			if s.cursor < len(s.suggestions)-1 {
				s.cursor++
			}
			return s, nil
		case "up", "ctrl+p":
			if s.cursor >= 0 {
				s.cursor--
			}
			return s, nil
		case "tab":
			if len(s.suggestions) > 0 {
				i := s.cursor
				if i < 0 {
					i = 0
				}
				s.SetValue(s.suggestions[i])
			}
			return s, nil
		}
	}

	prev := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != prev {
		s.refreshSuggestions()
	}
	return s, cmd
}

// refreshSuggestions ranks history against the query. An empty query
// suggests the most recent entries.
func (s *SearchInput) refreshSuggestions() {
	s.cursor = -1
	query := strings.TrimSpace(s.input.Value())

	var matches []string
	if query == "" {
		matches = s.history
	} else {
		ranks := fuzzy.RankFindFold(query, s.history)
		sort.Stable(ranks)
		for _, r := range ranks {
			if strings.EqualFold(r.Target, query) {
				continue
			}
			matches = append(matches, r.Target)
		}
	}

	if len(matches) > s.maxSuggestions {
		matches = matches[:s.maxSuggestions]
	}
	s.suggestions = matches
}

// View renders the search bar and, when focused, the suggestion list
func (s SearchInput) View() string {
	border := styles.InactiveBorder
	if s.input.Focused() {
		border = styles.ActiveBorder
	}
	if s.width > 2 {
		border = border.Width(s.width - 2)
	}
	bar := border.Render(s.input.View())

	if !s.input.Focused() || len(s.suggestions) == 0 {
		return bar
	}

	lines := make([]string, 0, len(s.suggestions))
	for i, suggestion := range s.suggestions {
		if i == s.cursor {
			lines = append(lines, styles.SelectedItemStyle.Render(suggestion))
		} else {
			lines = append(lines, styles.NormalItemStyle.Render(suggestion))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, lipgloss.JoinVertical(lipgloss.Left, lines...))
}
