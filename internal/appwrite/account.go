package appwrite

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sudatra/aora/internal/domain"
)

// CurrentSession is the session ID alias for the active session
const CurrentSession = "current"

// AccountService handles the account of the signed-in user
type AccountService struct {
	client *Client
}

var _ domain.AccountRepository = (*AccountService)(nil)

type createAccountRequest struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type createSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Create registers a new account. It does not sign in.
func (s *AccountService) Create(ctx context.Context, accountID, email, password, name string) (*domain.Account, error) {
	var resp UserResponse
	err := s.client.post(ctx, "/account", createAccountRequest{
		UserID:   accountID,
		Email:    email,
		Password: password,
		Name:     name,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, nil
	}
	return MapAccount(&resp), nil
}

// CreateEmailPasswordSession signs in with email and password. The session
// credential returned by the server is kept by the client for later calls.
func (s *AccountService) CreateEmailPasswordSession(ctx context.Context, email, password string) (*domain.Session, error) {
	var resp SessionResponse
	err := s.client.post(ctx, "/account/sessions/email", createSessionRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	// Server-side platforms get the secret in the body instead of a cookie
	if !s.client.HasSession() && resp.Secret != "" {
		s.client.setSession(fmt.Sprintf(`{"a_session_%s":%q}`, s.client.projectID, resp.Secret))
	}

	s.client.logger.Info("session created", "session", resp.ID, "user", resp.UserID)
	return MapSession(&resp), nil
}

// Get returns the account of the active session
func (s *AccountService) Get(ctx context.Context) (*domain.Account, error) {
	if !s.client.HasSession() {
		return nil, domain.ErrNoSession
	}

	var resp UserResponse
	if err := s.client.get(ctx, "/account", nil, &resp); err != nil {
		if IsUnauthorized(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrNoSession, err)
		}
		return nil, err
	}
	return MapAccount(&resp), nil
}

// DeleteSession revokes a session. Deleting CurrentSession also drops the
// client's credential, even when the server reports it already expired.
func (s *AccountService) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		sessionID = CurrentSession
	}

	err := s.client.delete(ctx, "/account/sessions/"+url.PathEscape(sessionID))
	if sessionID == CurrentSession && (err == nil || IsUnauthorized(err)) {
		s.client.setSession("")
	}
	if err != nil {
		if IsUnauthorized(err) {
			return fmt.Errorf("%w: %v", domain.ErrNoSession, err)
		}
		return err
	}
	return nil
}
