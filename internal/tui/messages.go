package tui

import (
	"github.com/sudatra/aora/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
	Path    string // Route path of the failed load, empty if not route-bound
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PostFeed identifies which list a batch of posts belongs to
type PostFeed int

const (
	FeedMain   PostFeed = iota // Route's main list
	FeedLatest                 // Home screen's latest strip
)

// PostsLoadedMsg signals that posts for a route have been loaded
type PostsLoadedMsg struct {
	Path  string // Route path the request was made for
	Feed  PostFeed
	Posts []*domain.Post
}

// CurrentUserMsg carries the signed-in profile, or nil with Err when signed out
type CurrentUserMsg struct {
	Profile *domain.Profile
	Err     error
}

// ClearStatusMsg clears the status bar
type ClearStatusMsg struct{}
