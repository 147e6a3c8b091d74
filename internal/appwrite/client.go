// Package appwrite is a client for the Appwrite REST API covering the Account,
// Databases, Storage and Avatars services used by aora.
package appwrite

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sudatra/aora/internal/domain"
)

const (
	// DefaultEndpoint is Appwrite Cloud's API endpoint
	DefaultEndpoint = "https://cloud.appwrite.io/v1"
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
	// DefaultOriginScheme is the Origin scheme of a native Android platform
	DefaultOriginScheme = "appwrite-android"

	responseFormat = "1.5.0"
	sdkName        = "aora-go"
	sdkVersion     = "1.0.0"
)

// Client is an Appwrite API client bound to one project.
//
// The project, endpoint and platform are fixed at construction. The session
// credential is the only mutable state and is safe for concurrent use.
type Client struct {
	endpoint     string
	projectID    string
	platform     string
	originScheme string
	httpClient   *http.Client
	logger       *slog.Logger
	sessions     domain.SessionStore

	mu      sync.RWMutex
	session string // X-Fallback-Cookies value

	// Services
	Account   *AccountService
	Databases *DatabasesService
	Storage   *StorageService
	Avatars   *AvatarsService
}

// Option configures the client
type Option func(*Client)

// WithPlatform sets the registered platform identifier and Origin scheme
func WithPlatform(scheme, platform string) Option {
	return func(c *Client) {
		if scheme != "" {
			c.originScheme = scheme
		}
		c.platform = platform
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSessionStore restores the session credential from store and keeps it updated
func WithSessionStore(store domain.SessionStore) Option {
	return func(c *Client) {
		c.sessions = store
	}
}

// NewClient creates a new Appwrite client for a project
func NewClient(endpoint, projectID string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:     strings.TrimRight(endpoint, "/"),
		projectID:    projectID,
		originScheme: DefaultOriginScheme,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.sessions != nil {
		if credential, ok := c.sessions.LoadSession(); ok {
			c.session = credential
		}
	}

	c.Account = &AccountService{client: c}
	c.Databases = &DatabasesService{client: c}
	c.Storage = &StorageService{client: c}
	c.Avatars = &AvatarsService{client: c}

	return c
}

// Endpoint returns the API endpoint
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ProjectID returns the project the client is bound to
func (c *Client) ProjectID() string {
	return c.projectID
}

// HasSession reports whether a session credential is held
func (c *Client) HasSession() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session != ""
}

func (c *Client) sessionCredential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// setSession replaces the session credential and persists it
func (c *Client) setSession(credential string) {
	c.mu.Lock()
	changed := c.session != credential
	c.session = credential
	c.mu.Unlock()

	if !changed || c.sessions == nil {
		return
	}

	var err error
	if credential == "" {
		err = c.sessions.ClearSession()
	} else {
		err = c.sessions.SaveSession(credential)
	}
	if err != nil {
		c.logger.Warn("failed to persist session", "error", err)
	}
}

// origin returns the Origin header identifying the registered platform
func (c *Client) origin() string {
	if c.platform == "" {
		return ""
	}
	return c.originScheme + "://" + c.platform
}
