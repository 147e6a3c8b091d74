package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudatra/aora/internal/domain"
)

// fakeBackend serves fixed posts and records searches
type fakeBackend struct {
	mu       sync.Mutex
	searches []string
	posts    []*domain.Post
	user     *domain.Profile
}

func (f *fakeBackend) GetCurrentUser(ctx context.Context) (*domain.Profile, error) {
	if f.user == nil {
		return nil, domain.Wrap("GetCurrentUser", domain.KindProfileLookup, domain.ErrNoSession)
	}
	return f.user, nil
}

func (f *fakeBackend) ListAllPosts(ctx context.Context) ([]*domain.Post, error) {
	return f.posts, nil
}

func (f *fakeBackend) ListLatestPosts(ctx context.Context) ([]*domain.Post, error) {
	return f.posts, nil
}

func (f *fakeBackend) SearchPosts(ctx context.Context, query string) ([]*domain.Post, error) {
	f.mu.Lock()
	f.searches = append(f.searches, query)
	f.mu.Unlock()
	return f.posts, nil
}

func (f *fakeBackend) ListPostsByOwner(ctx context.Context, profileID string) ([]*domain.Post, error) {
	return f.posts, nil
}

// memoryHistory is an in-memory domain.HistoryStore
type memoryHistory struct {
	queries []string
}

func (h *memoryHistory) RecentQueries(limit int) []string { return h.queries }

func (h *memoryHistory) AddQuery(query string) error {
	h.queries = append([]string{query}, h.queries...)
	return nil
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_EmptySubmitShowsAlert(t *testing.T) {
	m := NewModel(&fakeBackend{}, Options{})

	m, _ = update(t, m, keyRunes("/"))
	require.True(t, m.search.Focused())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, m.alert.IsVisible())
	assert.Equal(t, "Missing query", m.alert.Alert().Title)
	assert.Equal(t, "/home", m.Route().Path)
	assert.Equal(t, 1, m.router.Depth())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.alert.IsVisible())
}

func TestModel_SubmitPushesThenUpdatesParams(t *testing.T) {
	history := &memoryHistory{}
	backend := &fakeBackend{posts: []*domain.Post{{ID: "p1", Title: "Cats", OwnerID: "prof"}}}
	m := NewModel(backend, Options{History: history})

	m, _ = update(t, m, keyRunes("/"))
	m, _ = update(t, m, keyRunes("dogs"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, "/search/dogs", m.Route().Path)
	assert.Equal(t, 2, m.router.Depth())
	assert.Equal(t, []string{"dogs"}, history.queries)

	msg := cmd()
	loaded, ok := msg.(PostsLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, "/search/dogs", loaded.Path)
	assert.Equal(t, []string{"dogs"}, backend.searches)

	// Submitting again on the search route replaces its query
	m, _ = update(t, m, keyRunes("/"))
	m.search.SetValue("cats")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "/search/cats", m.Route().Path)
	assert.Equal(t, 2, m.router.Depth())

	// Results for the old query are dropped
	m, _ = update(t, m, loaded)
	assert.True(t, m.list.IsLoading())

	m, _ = update(t, m, PostsLoadedMsg{Path: "/search/cats", Posts: backend.posts})
	assert.False(t, m.list.IsLoading())
	assert.Equal(t, 1, m.list.VisibleCount())
}

func TestModel_OpenCreatorAndBack(t *testing.T) {
	backend := &fakeBackend{posts: []*domain.Post{{ID: "p1", Title: "Cats", OwnerID: "prof"}}}
	m := NewModel(backend, Options{})

	m, _ = update(t, m, PostsLoadedMsg{Path: "/home", Feed: FeedMain, Posts: backend.posts})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "/profile/prof", m.Route().Path)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "/home", m.Route().Path)
}

func TestModel_ProfileRequiresUser(t *testing.T) {
	m := NewModel(&fakeBackend{}, Options{})

	m, _ = update(t, m, CurrentUserMsg{Err: domain.ErrNoSession})
	m, _ = update(t, m, keyRunes("p"))
	assert.Equal(t, "/home", m.Route().Path)
	assert.True(t, m.StatusIsErr)

	m, _ = update(t, m, CurrentUserMsg{Profile: &domain.Profile{ID: "me", Username: "alice"}})
	m, _ = update(t, m, keyRunes("p"))
	assert.Equal(t, "/profile/me", m.Route().Path)
	assert.Equal(t, "My videos", m.list.Title())
}

func TestModel_InitialSearchRoute(t *testing.T) {
	m := NewModel(&fakeBackend{}, Options{InitialPath: "/search/owls"})
	assert.Equal(t, "owls", m.search.Value())
	assert.Equal(t, "/search/owls", m.Route().Path)
}

func TestModel_StaleErrorDropped(t *testing.T) {
	m := NewModel(&fakeBackend{}, Options{InitialPath: "/search/dogs"})
	require.True(t, m.list.IsLoading())

	m, cmd := update(t, m, ErrMsg{Err: errors.New("boom"), Context: "searching posts", Path: "/home"})
	assert.Nil(t, cmd)
	assert.True(t, m.list.IsLoading())
	assert.Empty(t, m.StatusMsg)

	m, cmd = update(t, m, ErrMsg{Err: errors.New("boom"), Context: "searching posts", Path: "/search/dogs"})
	assert.NotNil(t, cmd)
	assert.False(t, m.list.IsLoading())
	assert.True(t, m.StatusIsErr)
	assert.Equal(t, "searching posts: boom", m.StatusMsg)
}

func TestLoadRouteCmd_ErrorCarriesPath(t *testing.T) {
	backend := &failingBackend{err: errors.New("offline")}
	route, err := ParseRoute("/search/owls")
	require.NoError(t, err)

	msg := LoadRouteCmd(backend, route)()
	errMsg, ok := msg.(ErrMsg)
	require.True(t, ok)
	assert.Equal(t, "/search/owls", errMsg.Path)
}

// failingBackend fails every post listing
type failingBackend struct {
	fakeBackend
	err error
}

func (f *failingBackend) SearchPosts(ctx context.Context, query string) ([]*domain.Post, error) {
	return nil, f.err
}
