package appwrite

import (
	"context"

	"github.com/sudatra/aora/internal/domain"
)

// Attributes of the application's collections
const (
	AttrAccountID = "accountId"
	AttrTitle     = "title"
	AttrOwner     = "users"
)

// ProfileCollection implements domain.ProfileRepository over the users collection
type ProfileCollection struct {
	client       *Client
	databaseID   string
	collectionID string
}

var _ domain.ProfileRepository = (*ProfileCollection)(nil)

// NewProfileCollection binds the users collection of a database
func NewProfileCollection(client *Client, databaseID, collectionID string) *ProfileCollection {
	return &ProfileCollection{client: client, databaseID: databaseID, collectionID: collectionID}
}

// CreateProfile stores a profile document
func (p *ProfileCollection) CreateProfile(ctx context.Context, profileID string, profile domain.Profile) (*domain.Profile, error) {
	var doc ProfileDocument
	err := p.client.Databases.CreateDocument(ctx, p.databaseID, p.collectionID, profileID, profileData{
		AccountID: profile.AccountID,
		Email:     profile.Email,
		Username:  profile.Username,
		Avatar:    profile.AvatarURL,
	}, &doc)
	if err != nil {
		return nil, err
	}
	return MapProfile(&doc), nil
}

// FindProfileByAccount returns the first profile linked to accountID, or
// domain.ErrProfileNotFound
func (p *ProfileCollection) FindProfileByAccount(ctx context.Context, accountID string) (*domain.Profile, error) {
	var list DocumentList[ProfileDocument]
	err := p.client.Databases.ListDocuments(ctx, p.databaseID, p.collectionID, []string{
		Equal(AttrAccountID, accountID),
	}, &list)
	if err != nil {
		return nil, err
	}
	if len(list.Documents) == 0 {
		return nil, domain.ErrProfileNotFound
	}
	return MapProfile(&list.Documents[0]), nil
}

// PostCollection implements domain.PostRepository over the video collection
type PostCollection struct {
	client       *Client
	databaseID   string
	collectionID string
}

var _ domain.PostRepository = (*PostCollection)(nil)

// NewPostCollection binds the video collection of a database
func NewPostCollection(client *Client, databaseID, collectionID string) *PostCollection {
	return &PostCollection{client: client, databaseID: databaseID, collectionID: collectionID}
}

// CreatePost stores a post document owned by post.OwnerID
func (c *PostCollection) CreatePost(ctx context.Context, postID string, post domain.Post) (*domain.Post, error) {
	var doc PostDocument
	err := c.client.Databases.CreateDocument(ctx, c.databaseID, c.collectionID, postID, postData{
		Title:     post.Title,
		Thumbnail: post.ThumbnailURL,
		Video:     post.VideoURL,
		Prompt:    post.Prompt,
		Users:     post.OwnerID,
	}, &doc)
	if err != nil {
		return nil, err
	}
	return MapPost(&doc), nil
}

// ListPosts lists posts matching q
func (c *PostCollection) ListPosts(ctx context.Context, q domain.PostQuery) ([]*domain.Post, error) {
	var list DocumentList[PostDocument]
	if err := c.client.Databases.ListDocuments(ctx, c.databaseID, c.collectionID, PostQueries(q), &list); err != nil {
		return nil, err
	}
	return MapPosts(list.Documents), nil
}

// PostQueries translates a domain.PostQuery into document queries
func PostQueries(q domain.PostQuery) []string {
	var queries []string
	if q.OwnerID != "" {
		queries = append(queries, Equal(AttrOwner, q.OwnerID))
	}
	if q.Search != "" {
		queries = append(queries, Search(AttrTitle, q.Search))
	}
	if q.NewestFirst {
		queries = append(queries, OrderDesc(AttrCreatedAt))
	}
	if q.Limit > 0 {
		queries = append(queries, Limit(q.Limit))
	}
	return queries
}

// Bucket implements domain.FileRepository over one storage bucket
type Bucket struct {
	client   *Client
	bucketID string
}

var _ domain.FileRepository = (*Bucket)(nil)

// NewBucket binds a storage bucket
func NewBucket(client *Client, bucketID string) *Bucket {
	return &Bucket{client: client, bucketID: bucketID}
}

// CreateFile uploads file and returns the stored file ID
func (b *Bucket) CreateFile(ctx context.Context, fileID string, file *domain.StoredFile) (string, error) {
	resp, err := b.client.Storage.CreateFile(ctx, b.bucketID, fileID, file)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

// DeleteFile removes a stored file
func (b *Bucket) DeleteFile(ctx context.Context, fileID string) error {
	return b.client.Storage.DeleteFile(ctx, b.bucketID, fileID)
}

// FileViewURL returns the view URL of a stored file
func (b *Bucket) FileViewURL(fileID string) string {
	return b.client.Storage.GetFileView(b.bucketID, fileID)
}

// FilePreviewURL returns the preview URL of a stored image
func (b *Bucket) FilePreviewURL(fileID string, opts domain.PreviewOptions) string {
	return b.client.Storage.GetFilePreview(b.bucketID, fileID, opts)
}
