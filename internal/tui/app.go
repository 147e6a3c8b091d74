package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sudatra/aora/internal/domain"
	"github.com/sudatra/aora/internal/tui/components"
)

// Layout
const (
	headerHeight = 1
	searchHeight = 3
	latestHeight = 5
	footerHeight = 1
)

// Options configures the Model
type Options struct {
	History     domain.HistoryStore // Optional, enables query suggestions
	Suggestions int                 // Max suggestions, 0 for the component default
	InitialPath string              // Route to open, defaults to /home
	Logger      *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	backend Backend
	history domain.HistoryStore
	logger  *slog.Logger
	keys    KeyMap

	router *Router
	search components.SearchInput
	list   components.PostList
	alert  components.AlertModal

	latest       []*domain.Post
	latestCursor int

	user *domain.Profile

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	ShowHelp    bool
}

// NewModel creates a new application model
func NewModel(backend Backend, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := NewRouter()
	if opts.InitialPath != "" && opts.InitialPath != router.Current().Path {
		if err := router.Push(opts.InitialPath); err != nil {
			logger.Warn("ignoring initial route", "path", opts.InitialPath, "error", err)
		}
	}

	search := components.NewSearchInput(router.Current().Query())
	if opts.Suggestions > 0 {
		search.SetMaxSuggestions(opts.Suggestions)
	}
	if opts.History != nil {
		search.SetHistory(opts.History.RecentQueries(0))
	}

	list := components.NewPostList("")
	list.SetFocused(true)

	m := Model{
		backend: backend,
		history: opts.History,
		logger:  logger,
		keys:    DefaultKeyMap(),
		router:  router,
		search:  search,
		list:    list,
	}
	m.resetRoute()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(LoadCurrentUserCmd(m.backend), LoadRouteCmd(m.backend, m.router.Current()))
}

// Route returns the current route
func (m Model) Route() Route {
	return m.router.Current()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case PostsLoadedMsg:
		if msg.Path != m.router.Current().Path {
			m.logger.Debug("dropping stale posts", "path", msg.Path)
			return m, nil
		}
		if msg.Feed == FeedLatest {
			m.latest = msg.Posts
			m.latestCursor = 0
			return m, nil
		}
		m.list.SetPosts(msg.Posts)
		m.list.SetTitle(m.listTitle())
		return m, nil

	case CurrentUserMsg:
		m.user = msg.Profile
		if msg.Err != nil && !errors.Is(msg.Err, domain.ErrNoSession) {
			m.logger.Warn("failed to load current user", "error", msg.Err)
		}
		m.list.SetTitle(m.listTitle())
		return m, nil

	case ErrMsg:
		if msg.Path != "" && msg.Path != m.router.Current().Path {
			m.logger.Warn("dropping stale error", "path", msg.Path, "context", msg.Context, "error", msg.Err)
			return m, nil
		}
		m.logger.Error("tui error", "context", msg.Context, "error", msg.Err)
		m.list.SetLoading(false)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd()

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.alert.IsVisible() {
		m.alert = m.alert.Update(msg)
		return m, nil
	}

	if m.search.Focused() {
		switch msg.String() {
		case "enter":
			return m.submitSearch()
		case "esc":
			m.search.Blur()
			m.list.SetFocused(true)
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	if m.list.IsFilterTyping() {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.list.SetFocused(false)
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Filter):
		cmd := m.list.StartFilter()
		return m, cmd

	case key.Matches(msg, m.keys.Back):
		if m.list.IsFiltering() {
			m.list.ClearFilter()
			return m, nil
		}
		if m.router.Back() {
			cmd := m.loadCurrentRoute()
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Profile):
		if m.user == nil {
			return m.setStatus("Sign in to see your profile", true)
		}
		return m.navigate(ProfilePath(m.user.ID))

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.loadCurrentRoute()
		return m, cmd

	case key.Matches(msg, m.keys.Enter):
		post := m.list.Selected()
		if post == nil || post.OwnerID == "" {
			return m, nil
		}
		return m.navigate(ProfilePath(post.OwnerID))

	case key.Matches(msg, m.keys.Left):
		if m.latestCursor > 0 {
			m.latestCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.latestCursor < len(m.latest)-1 {
			m.latestCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.ShowHelp = !m.ShowHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// submitSearch applies the search input's submit result
func (m Model) submitSearch() (tea.Model, tea.Cmd) {
	result := m.search.Submit(m.router.Current().Path)
	if result.Alert != nil {
		m.alert.Show(*result.Alert)
		return m, nil
	}

	switch result.Action {
	case components.NavSetParams:
		m.router.SetParams(result.Params)
	case components.NavPush:
		if err := m.router.Push(result.Path); err != nil {
			return m.setStatus(err.Error(), true)
		}
	}

	if m.history != nil {
		if err := m.history.AddQuery(result.Query); err != nil {
			m.logger.Warn("failed to save search history", "error", err)
		}
		m.search.SetHistory(m.history.RecentQueries(0))
	}

	m.search.Blur()
	m.list.SetFocused(true)
	cmd := m.loadCurrentRoute()
	return m, cmd
}

func (m Model) navigate(path string) (tea.Model, tea.Cmd) {
	if m.router.Current().Path == path {
		return m, nil
	}
	if err := m.router.Push(path); err != nil {
		return m.setStatus(err.Error(), true)
	}
	cmd := m.loadCurrentRoute()
	return m, cmd
}

func (m Model) setStatus(status string, isErr bool) (tea.Model, tea.Cmd) {
	m.StatusMsg = status
	m.StatusIsErr = isErr
	return m, ClearStatusCmd()
}

// loadCurrentRoute resets the view for the current route and fetches its posts
func (m *Model) loadCurrentRoute() tea.Cmd {
	m.resetRoute()
	return LoadRouteCmd(m.backend, m.router.Current())
}

func (m *Model) resetRoute() {
	route := m.router.Current()
	if route.Name == RouteSearch {
		m.search.SetValue(route.Query())
	}
	if route.Name != RouteHome {
		m.latest = nil
	}
	m.list.SetPosts(nil)
	m.list.SetLoading(true)
	m.list.SetTitle(m.listTitle())
	m.list.SetEmptyText(emptyText(route))
	m.resize()
}

func (m Model) listTitle() string {
	route := m.router.Current()
	switch route.Name {
	case RouteSearch:
		return fmt.Sprintf("Search results for %q", route.Query())
	case RouteProfile:
		if m.user != nil && m.user.ID == route.ID() {
			return "My videos"
		}
		for _, p := range m.list.Posts() {
			if name := p.OwnerName(); name != "" {
				return name + "'s videos"
			}
		}
		return "Videos"
	default:
		return "All videos"
	}
}

func emptyText(route Route) string {
	switch route.Name {
	case RouteSearch:
		return "No videos found for this search query"
	case RouteProfile:
		return "No videos found for this profile"
	default:
		return "Be the first one to upload a video"
	}
}

func (m *Model) resize() {
	if m.Width == 0 {
		return
	}
	m.search.SetWidth(m.Width)

	listHeight := m.Height - headerHeight - searchHeight - footerHeight
	if m.router.Current().Name == RouteHome {
		listHeight -= latestHeight
	}
	m.list.SetSize(m.Width, listHeight)
}
