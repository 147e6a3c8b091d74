package appwrite

import (
	"bytes"
	"encoding/json"

	"github.com/sudatra/aora/internal/domain"
)

// MapAccount converts an account model to a domain.Account
func MapAccount(u *UserResponse) *domain.Account {
	return &domain.Account{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// MapSession converts a session model to a domain.Session
func MapSession(s *SessionResponse) *domain.Session {
	return &domain.Session{
		ID:       s.ID,
		UserID:   s.UserID,
		Provider: s.Provider,
		Current:  s.Current,
		Expire:   s.Expire,
	}
}

// MapProfile converts a users collection document to a domain.Profile
func MapProfile(d *ProfileDocument) *domain.Profile {
	return &domain.Profile{
		ID:        d.ID,
		AccountID: d.AccountID,
		Email:     d.Email,
		Username:  d.Username,
		AvatarURL: d.Avatar,
	}
}

// MapPost converts a video collection document to a domain.Post
func MapPost(d *PostDocument) *domain.Post {
	p := &domain.Post{
		ID:           d.ID,
		Title:        d.Title,
		ThumbnailURL: d.Thumbnail,
		VideoURL:     d.Video,
		Prompt:       d.Prompt,
		CreatedAt:    d.CreatedAt,
	}
	p.OwnerID, p.Owner = mapOwner(d.Users)
	return p
}

// MapPosts converts a slice of post documents
func MapPosts(docs []PostDocument) []*domain.Post {
	posts := make([]*domain.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, MapPost(&docs[i]))
	}
	return posts
}

// mapOwner decodes the owner relationship, which is either an ID string,
// an expanded profile document or null
func mapOwner(raw json.RawMessage) (string, *domain.Profile) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id, nil
	}

	var doc ProfileDocument
	if err := json.Unmarshal(raw, &doc); err != nil || doc.ID == "" {
		return "", nil
	}
	return doc.ID, MapProfile(&doc)
}
