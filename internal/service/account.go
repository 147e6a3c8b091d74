package service

import (
	"context"

	"github.com/sudatra/aora/internal/domain"
)

// CreateUser registers an account, signs in and stores the user's profile.
// A failure after the account exists leaves the account in place.
func (b *Backend) CreateUser(ctx context.Context, email, password, username string) (*domain.Profile, error) {
	const op = "CreateUser"

	account, err := b.accounts.Create(ctx, b.ids.NewID(), email, password, username)
	if err != nil {
		b.logger.Error("account creation failed", "email", email, "error", err)
		return nil, wrap(op, domain.KindAccountCreation, err)
	}
	if account == nil {
		return nil, domain.Wrap(op, domain.KindAccountCreation, nil)
	}

	avatarURL := b.avatars.InitialsURL(username)

	if _, err := b.signIn(ctx, op, email, password); err != nil {
		return nil, err
	}

	profile, err := b.profiles.CreateProfile(ctx, b.ids.NewID(), domain.Profile{
		AccountID: account.ID,
		Email:     email,
		Username:  username,
		AvatarURL: avatarURL,
	})
	if err != nil {
		b.logger.Error("profile creation failed", "account", account.ID, "error", err)
		return nil, wrap(op, domain.KindDocumentCreate, err)
	}

	b.logger.Info("user created", "account", account.ID, "profile", profile.ID)
	return profile, nil
}

// SignIn opens an email/password session
func (b *Backend) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	return b.signIn(ctx, "SignIn", email, password)
}

func (b *Backend) signIn(ctx context.Context, op, email, password string) (*domain.Session, error) {
	session, err := b.accounts.CreateEmailPasswordSession(ctx, email, password)
	if err != nil {
		b.logger.Warn("sign in failed", "email", email, "error", err)
		return nil, wrap(op, domain.KindAuthentication, err)
	}
	return session, nil
}

// GetCurrentAccount returns the account of the active session.
// Without a session the error matches domain.ErrNoSession.
func (b *Backend) GetCurrentAccount(ctx context.Context) (*domain.Account, error) {
	account, err := b.accounts.Get(ctx)
	if err != nil {
		return nil, wrap("GetCurrentAccount", domain.KindService, err)
	}
	return account, nil
}

// GetCurrentUser returns the profile of the signed-in user. Errors are
// classified as profile lookup failures and also match domain.ErrNoSession
// or domain.ErrProfileNotFound when the user or the profile is absent.
func (b *Backend) GetCurrentUser(ctx context.Context) (*domain.Profile, error) {
	const op = "GetCurrentUser"

	account, err := b.accounts.Get(ctx)
	if err != nil {
		return nil, domain.Wrap(op, domain.KindProfileLookup, err)
	}

	profile, err := b.profiles.FindProfileByAccount(ctx, account.ID)
	if err != nil {
		b.logger.Warn("profile lookup failed", "account", account.ID, "error", err)
		return nil, domain.Wrap(op, domain.KindProfileLookup, err)
	}
	return profile, nil
}

// SignOut revokes the active session
func (b *Backend) SignOut(ctx context.Context) error {
	if err := b.accounts.DeleteSession(ctx, "current"); err != nil {
		return wrap("SignOut", domain.KindService, err)
	}
	b.logger.Info("signed out")
	return nil
}
