package domain

import (
	"io"
	"time"
)

// MediaKind selects how a stored file's URL is derived
type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindImage MediaKind = "image"
)

// Valid reports whether k is one of the supported media kinds
func (k MediaKind) Valid() bool {
	return k == MediaKindVideo || k == MediaKindImage
}

// Account is the identity record owned by the authentication service
type Account struct {
	ID        string
	Email     string
	Username  string
	CreatedAt time.Time
}

// Session is an authenticated, revocable login handle
type Session struct {
	ID       string
	UserID   string
	Provider string
	Current  bool
	Expire   time.Time
}

// Profile is the application-level user document linked to an Account
type Profile struct {
	ID        string
	AccountID string
	Email     string
	Username  string
	AvatarURL string
}

// Post is a video document
type Post struct {
	ID           string
	Title        string
	ThumbnailURL string
	VideoURL     string
	Prompt       string
	OwnerID      string   // Profile document ID
	Owner        *Profile // Set when the service expands the owner relationship
	CreatedAt    time.Time
}

// GetID returns the post document ID
func (p *Post) GetID() string { return p.ID }

// GetTitle returns the display title
func (p *Post) GetTitle() string { return p.Title }

// OwnerName returns the creator's username, or "" if the owner was not expanded
func (p *Post) OwnerName() string {
	if p.Owner == nil {
		return ""
	}
	return p.Owner.Username
}

// StoredFile describes a local file submitted for upload.
// Data takes precedence over SourceURI when both are set.
type StoredFile struct {
	Name      string
	MimeType  string
	Size      int64
	SourceURI string
	Data      io.Reader
}

// VideoForm carries everything needed to publish a video post
type VideoForm struct {
	Title     string
	Prompt    string
	Thumbnail *StoredFile
	Video     *StoredFile
	OwnerID   string // Profile document ID of the creator
}
