package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sudatra/aora/internal/domain"
)

const (
	requestTimeout = 30 * time.Second
	statusTimeout  = 4 * time.Second
)

// Backend is the subset of the backend operations the TUI uses
type Backend interface {
	GetCurrentUser(ctx context.Context) (*domain.Profile, error)
	ListAllPosts(ctx context.Context) ([]*domain.Post, error)
	ListLatestPosts(ctx context.Context) ([]*domain.Post, error)
	SearchPosts(ctx context.Context, query string) ([]*domain.Post, error)
	ListPostsByOwner(ctx context.Context, profileID string) ([]*domain.Post, error)
}

// Command factories for async operations

// LoadCurrentUserCmd resolves the signed-in profile
func LoadCurrentUserCmd(backend Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		profile, err := backend.GetCurrentUser(ctx)
		return CurrentUserMsg{Profile: profile, Err: err}
	}
}

// fetchPostsCmd runs fetch and tags the result with the route path
func fetchPostsCmd(path string, feed PostFeed, label string, fetch func(ctx context.Context) ([]*domain.Post, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		posts, err := fetch(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: label, Path: path}
		}
		return PostsLoadedMsg{Path: path, Feed: feed, Posts: posts}
	}
}

// LoadRouteCmd loads the posts shown by route
func LoadRouteCmd(backend Backend, route Route) tea.Cmd {
	switch route.Name {
	case RouteSearch:
		query := route.Query()
		return fetchPostsCmd(route.Path, FeedMain, "searching posts", func(ctx context.Context) ([]*domain.Post, error) {
			return backend.SearchPosts(ctx, query)
		})
	case RouteProfile:
		id := route.ID()
		return fetchPostsCmd(route.Path, FeedMain, "loading profile", func(ctx context.Context) ([]*domain.Post, error) {
			return backend.ListPostsByOwner(ctx, id)
		})
	default:
		return tea.Batch(
			fetchPostsCmd(route.Path, FeedLatest, "loading latest posts", backend.ListLatestPosts),
			fetchPostsCmd(route.Path, FeedMain, "loading posts", backend.ListAllPosts),
		)
	}
}

// ClearStatusCmd clears the status bar after a delay
func ClearStatusCmd() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
