// Package service implements the application's backend operations on top of
// the domain ports: registration and sessions, the post feed, and media uploads.
package service

import (
	"errors"
	"log/slog"

	"github.com/sudatra/aora/internal/domain"
)

// Repositories groups the ports the Backend depends on
type Repositories struct {
	Accounts domain.AccountRepository
	Profiles domain.ProfileRepository
	Posts    domain.PostRepository
	Files    domain.FileRepository
	Avatars  domain.AvatarRepository
	IDs      domain.IDGenerator
}

// Backend is the application's client of the backend service. Every
// operation returns either a value or a single *domain.Error.
type Backend struct {
	accounts domain.AccountRepository
	profiles domain.ProfileRepository
	posts    domain.PostRepository
	files    domain.FileRepository
	avatars  domain.AvatarRepository
	ids      domain.IDGenerator
	logger   *slog.Logger
}

// NewBackend creates a new Backend
func NewBackend(repos Repositories, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		accounts: repos.Accounts,
		profiles: repos.Profiles,
		posts:    repos.Posts,
		files:    repos.Files,
		avatars:  repos.Avatars,
		ids:      repos.IDs,
		logger:   logger,
	}
}

// wrap classifies err under op. Errors already classified keep their kind.
func wrap(op string, kind domain.ErrorKind, err error) error {
	var e *domain.Error
	if errors.As(err, &e) {
		return e
	}
	return domain.Wrap(op, kind, err)
}
