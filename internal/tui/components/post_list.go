package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/sudatra/aora/internal/domain"
	"github.com/sudatra/aora/internal/tui/styles"
)

// Rows used by the border, title and filter bar
const postListChrome = 4

// PostList is a scrollable list of posts with an in-list fuzzy filter
type PostList struct {
	title   string
	posts   []*domain.Post
	empty   string
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
	loading bool

	filterInput  textinput.Model
	filterActive bool
	filteredIdx  []int // nil when no filter query
}

// NewPostList creates an empty list
func NewPostList(title string) PostList {
	fi := textinput.New()
	fi.Prompt = "filter: "
	fi.PromptStyle = styles.FilterPromptStyle
	fi.CharLimit = 50

	return PostList{
		title:       title,
		empty:       "No videos found",
		filterInput: fi,
		width:       60,
		height:      20,
	}
}

// SetTitle sets the list title
func (l *PostList) SetTitle(title string) { l.title = title }

// Title returns the list title
func (l PostList) Title() string { return l.title }

// SetEmptyText sets the text shown when the list has no posts
func (l *PostList) SetEmptyText(text string) { l.empty = text }

// SetPosts replaces the list content and clears the filter
func (l *PostList) SetPosts(posts []*domain.Post) {
	l.posts = posts
	l.loading = false
	l.cursor = 0
	l.offset = 0
	l.clearFilter()
}

// Posts returns all posts, ignoring the filter
func (l PostList) Posts() []*domain.Post { return l.posts }

// SetLoading sets the loading state
func (l *PostList) SetLoading(loading bool) { l.loading = loading }

// IsLoading returns true while posts are being fetched
func (l PostList) IsLoading() bool { return l.loading }

// SetSize updates the component dimensions
func (l *PostList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.ensureVisible()
}

// SetFocused sets whether the list receives navigation keys
func (l *PostList) SetFocused(focused bool) { l.focused = focused }

// VisibleCount returns the number of posts passing the filter
func (l PostList) VisibleCount() int {
	if l.filteredIdx != nil {
		return len(l.filteredIdx)
	}
	return len(l.posts)
}

// Selected returns the post under the cursor, or nil
func (l PostList) Selected() *domain.Post {
	if l.VisibleCount() == 0 {
		return nil
	}
	return l.posts[l.mapIndex(l.cursor)]
}

// StartFilter activates the filter input
func (l *PostList) StartFilter() tea.Cmd {
	l.filterActive = true
	return l.filterInput.Focus()
}

// IsFilterTyping returns true while the filter input has focus
func (l PostList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// IsFiltering returns true if a filter is active
func (l PostList) IsFiltering() bool {
	return l.filterActive
}

// ClearFilter deactivates the filter and shows all posts
func (l *PostList) ClearFilter() { l.clearFilter() }

// Update handles navigation and filter input
func (l PostList) Update(msg tea.Msg) (PostList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	if l.IsFilterTyping() {
		switch keyMsg.String() {
		case "esc":
			l.clearFilter()
			return l, nil
		case "enter":
			l.filterInput.Blur()
			return l, nil
		}
		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return l, cmd
	}

	if !l.focused {
		return l, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		l.MoveDown()
	case "k", "up":
		l.MoveUp()
	case "g", "home":
		l.cursor = 0
		l.ensureVisible()
	case "G", "end":
		if n := l.VisibleCount(); n > 0 {
			l.cursor = n - 1
			l.ensureVisible()
		}
	}
	return l, nil
}

// MoveDown moves the cursor one row down
func (l *PostList) MoveDown() {
	if l.cursor < l.VisibleCount()-1 {
		l.cursor++
		l.ensureVisible()
	}
}

// MoveUp moves the cursor one row up
func (l *PostList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
		l.ensureVisible()
	}
}

func (l *PostList) maxVisible() int {
	n := l.height - postListChrome
	if n < 1 {
		n = 1
	}
	return n
}

func (l *PostList) ensureVisible() {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if max := l.maxVisible(); l.cursor >= l.offset+max {
		l.offset = l.cursor - max + 1
	}
}

func (l *PostList) clearFilter() {
	l.filterActive = false
	l.filteredIdx = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
}

func (l *PostList) applyFilter() {
	query := l.filterInput.Value()
	if query == "" {
		l.filteredIdx = nil
		return
	}

	items := make(titleSource, len(l.posts))
	for i, p := range l.posts {
		items[i] = p
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), items)

	l.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		l.filteredIdx[i] = match.Index
	}

	// Reset cursor to first match
	l.cursor = 0
	l.offset = 0
}

// titleSource matches list items by lowercased title
type titleSource []domain.ListItem

func (s titleSource) String(i int) string { return strings.ToLower(s[i].GetTitle()) }

func (s titleSource) Len() int { return len(s) }

func (l PostList) mapIndex(i int) int {
	if l.filteredIdx != nil && i < len(l.filteredIdx) {
		return l.filteredIdx[i]
	}
	return i
}

// View renders the list
func (l PostList) View() string {
	border := styles.InactiveBorder
	if l.focused {
		border = styles.ActiveBorder
	}

	innerWidth := l.width - 2
	if innerWidth < 10 {
		innerWidth = 10
	}

	lines := []string{styles.TitleStyle.Render(styles.Truncate(l.title, innerWidth))}

	switch {
	case l.loading:
		lines = append(lines, styles.DimStyle.Render("Loading..."))
	case l.VisibleCount() == 0:
		lines = append(lines, styles.DimStyle.Render(l.empty))
	default:
		end := l.offset + l.maxVisible()
		if end > l.VisibleCount() {
			end = l.VisibleCount()
		}
		for i := l.offset; i < end; i++ {
			lines = append(lines, l.renderRow(l.posts[l.mapIndex(i)], i == l.cursor && l.focused, innerWidth))
		}
	}

	if l.filterActive {
		lines = append(lines, l.filterInput.View())
	}

	return border.Width(innerWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (l PostList) renderRow(p *domain.Post, selected bool, width int) string {
	text := p.Title
	if owner := p.OwnerName(); owner != "" {
		text = fmt.Sprintf("%s  · %s", p.Title, owner)
	}
	text = styles.Truncate(text, width-2)
	if selected {
		return styles.SelectedItemStyle.Width(width).Render(text)
	}
	return styles.NormalItemStyle.Width(width).Render(text)
}
