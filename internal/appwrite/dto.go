package appwrite

import (
	"encoding/json"
	"time"
)

// UserResponse is the account model returned by /account
type UserResponse struct {
	ID        string    `json:"$id"`
	CreatedAt time.Time `json:"$createdAt"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    bool      `json:"status"`
}

// SessionResponse is the session model returned by /account/sessions
type SessionResponse struct {
	ID       string    `json:"$id"`
	UserID   string    `json:"userId"`
	Expire   time.Time `json:"expire"`
	Provider string    `json:"provider"`
	Current  bool      `json:"current"`
	Secret   string    `json:"secret"`
}

// Document holds the system attributes shared by every document
type Document struct {
	ID           string    `json:"$id"`
	CollectionID string    `json:"$collectionId,omitempty"`
	DatabaseID   string    `json:"$databaseId,omitempty"`
	CreatedAt    time.Time `json:"$createdAt"`
	UpdatedAt    time.Time `json:"$updatedAt"`
}

// DocumentList is the response of a document listing
type DocumentList[T any] struct {
	Total     int `json:"total"`
	Documents []T `json:"documents"`
}

// ProfileDocument is a document of the users collection
type ProfileDocument struct {
	Document
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
}

// PostDocument is a document of the video collection.
// Users is the owner relationship: an ID when written, usually the expanded
// profile document when read.
type PostDocument struct {
	Document
	Title     string          `json:"title"`
	Thumbnail string          `json:"thumbnail"`
	Video     string          `json:"video"`
	Prompt    string          `json:"prompt"`
	Users     json.RawMessage `json:"users,omitempty"`
}

// FileResponse is the stored file model
type FileResponse struct {
	ID             string    `json:"$id"`
	BucketID       string    `json:"bucketId"`
	CreatedAt      time.Time `json:"$createdAt"`
	Name           string    `json:"name"`
	MimeType       string    `json:"mimeType"`
	SizeOriginal   int64     `json:"sizeOriginal"`
	ChunksTotal    int       `json:"chunksTotal"`
	ChunksUploaded int       `json:"chunksUploaded"`
}

// profileData is the attribute payload used to create a profile document
type profileData struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
}

// postData is the attribute payload used to create a post document
type postData struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Video     string `json:"video"`
	Prompt    string `json:"prompt"`
	Users     string `json:"users"`
}
