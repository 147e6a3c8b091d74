package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sudatra/aora/internal/domain"
)

const avatarURL = "https://cloud.appwrite.io/v1/avatars/initials?name=alice&project=p"

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account, session and profile", func(t *testing.T) {
		tb := newTestBackend()
		tb.accounts.On("Create", mock.Anything, "id-1", "a@x.com", "pw123456", "alice").
			Return(&domain.Account{ID: "id-1", Email: "a@x.com", Username: "alice"}, nil)
		tb.avatars.On("InitialsURL", "alice").Return(avatarURL)
		tb.accounts.On("CreateEmailPasswordSession", mock.Anything, "a@x.com", "pw123456").
			Return(&domain.Session{ID: "s1", UserID: "id-1"}, nil)

		want := domain.Profile{AccountID: "id-1", Email: "a@x.com", Username: "alice", AvatarURL: avatarURL}
		stored := want
		stored.ID = "id-2"
		tb.profiles.On("CreateProfile", mock.Anything, "id-2", want).Return(&stored, nil)

		profile, err := tb.CreateUser(ctx, "a@x.com", "pw123456", "alice")
		require.NoError(t, err)
		assert.Equal(t, &stored, profile)
		tb.assertExpectations(t)
	})

	t.Run("no account returned", func(t *testing.T) {
		tb := newTestBackend()
		tb.accounts.On("Create", mock.Anything, mock.Anything, "a@x.com", "pw123456", "alice").Return(nil, nil)

		profile, err := tb.CreateUser(ctx, "a@x.com", "pw123456", "alice")
		assert.Nil(t, profile)
		assert.ErrorIs(t, err, domain.ErrAccountCreation)
		assert.Equal(t, domain.KindAccountCreation, domain.KindOf(err))
		tb.assertExpectations(t)
	})

	t.Run("account service failure", func(t *testing.T) {
		tb := newTestBackend()
		cause := errors.New("user_already_exists")
		tb.accounts.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, cause)

		_, err := tb.CreateUser(ctx, "a@x.com", "pw123456", "alice")
		assert.ErrorIs(t, err, domain.ErrAccountCreation)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("sign in failure stops before the profile", func(t *testing.T) {
		tb := newTestBackend()
		tb.accounts.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Account{ID: "id-1"}, nil)
		tb.avatars.On("InitialsURL", "alice").Return(avatarURL)
		tb.accounts.On("CreateEmailPasswordSession", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("invalid credentials"))

		_, err := tb.CreateUser(ctx, "a@x.com", "pw123456", "alice")
		assert.ErrorIs(t, err, domain.ErrAuthentication)
		tb.profiles.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("profile document failure", func(t *testing.T) {
		tb := newTestBackend()
		tb.accounts.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Account{ID: "id-1"}, nil)
		tb.avatars.On("InitialsURL", "alice").Return(avatarURL)
		tb.accounts.On("CreateEmailPasswordSession", mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Session{ID: "s1"}, nil)
		tb.profiles.On("CreateProfile", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("document_invalid_structure"))

		_, err := tb.CreateUser(ctx, "a@x.com", "pw123456", "alice")
		assert.ErrorIs(t, err, domain.ErrDocumentCreate)
	})
}

func TestSignIn(t *testing.T) {
	tb := newTestBackend()
	tb.accounts.On("CreateEmailPasswordSession", mock.Anything, "a@x.com", "wrong").
		Return(nil, errors.New("user_invalid_credentials"))

	session, err := tb.SignIn(context.Background(), "a@x.com", "wrong")
	assert.Nil(t, session)
	assert.ErrorIs(t, err, domain.ErrAuthentication)

	var e *domain.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "SignIn", e.Op)
}

func TestGetCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the first matching profile", func(t *testing.T) {
		tb := newTestBackend()
		tb.accounts.On("Get", mock.Anything).Return(&domain.Account{ID: "acc"}, nil)
		tb.profiles.On("FindProfileByAccount", mock.Anything, "acc").
			Return(&domain.Profile{ID: "prof", AccountID: "acc"}, nil)

		profile, err := tb.GetCurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, "prof", profile.ID)
	})

	t.Run("signed out", func(t *testing.T) {
		tb := newTestBackend()
		tb.accounts.On("Get", mock.Anything).Return(nil, domain.ErrNoSession)

		_, err := tb.GetCurrentUser(ctx)
		assert.ErrorIs(t, err, domain.ErrProfileLookup)
		assert.ErrorIs(t, err, domain.ErrNoSession)
		tb.profiles.AssertNotCalled(t, "FindProfileByAccount", mock.Anything, mock.Anything)
	})

	t.Run("account without profile", func(t *testing.T) {
		tb := newTestBackend()
		tb.accounts.On("Get", mock.Anything).Return(&domain.Account{ID: "acc"}, nil)
		tb.profiles.On("FindProfileByAccount", mock.Anything, "acc").Return(nil, domain.ErrProfileNotFound)

		_, err := tb.GetCurrentUser(ctx)
		assert.ErrorIs(t, err, domain.ErrProfileLookup)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
		assert.NotErrorIs(t, err, domain.ErrNoSession)
	})
}

func TestSignOut(t *testing.T) {
	tb := newTestBackend()
	tb.accounts.On("DeleteSession", mock.Anything, "current").Return(nil)
	tb.accounts.On("Get", mock.Anything).Return(nil, domain.ErrNoSession)

	require.NoError(t, tb.SignOut(context.Background()))

	_, err := tb.GetCurrentAccount(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSession)
	tb.assertExpectations(t)
}
