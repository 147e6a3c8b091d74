package domain

import (
	"context"
)

// AccountRepository wraps the authentication service
type AccountRepository interface {
	// Create registers a new account under the given ID
	Create(ctx context.Context, accountID, email, password, name string) (*Account, error)

	// CreateEmailPasswordSession signs in and stores the resulting session credential
	CreateEmailPasswordSession(ctx context.Context, email, password string) (*Session, error)

	// Get returns the account of the active session
	Get(ctx context.Context) (*Account, error)

	// DeleteSession revokes a session; "current" revokes the active one
	DeleteSession(ctx context.Context, sessionID string) error
}

// ProfileRepository reads and writes documents of the users collection
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profileID string, p Profile) (*Profile, error)
	FindProfileByAccount(ctx context.Context, accountID string) (*Profile, error)
}

// PostQuery selects posts from the video collection. Zero value lists everything.
type PostQuery struct {
	OwnerID     string // Filter by owner profile ID
	Search      string // Free-text match on title
	NewestFirst bool
	Limit       int // 0 = service default
}

// PostRepository reads and writes documents of the video collection
type PostRepository interface {
	CreatePost(ctx context.Context, postID string, p Post) (*Post, error)
	ListPosts(ctx context.Context, q PostQuery) ([]*Post, error)
}

// FileRepository wraps the file storage service
type FileRepository interface {
	// CreateFile uploads the file under the given ID and returns the stored file ID
	CreateFile(ctx context.Context, fileID string, file *StoredFile) (string, error)

	// DeleteFile removes a stored file
	DeleteFile(ctx context.Context, fileID string) error

	// FileViewURL returns the direct view URL of a stored file
	FileViewURL(fileID string) string

	// FilePreviewURL returns a cropped preview URL of a stored image
	FilePreviewURL(fileID string, opts PreviewOptions) string
}

// PreviewOptions are the crop parameters of an image preview URL
type PreviewOptions struct {
	Width   int
	Height  int
	Gravity string
	Quality int
}

// AvatarRepository derives avatar image URLs without network calls
type AvatarRepository interface {
	InitialsURL(name string) string
}

// IDGenerator produces unique document, account and file IDs
type IDGenerator interface {
	NewID() string
}
