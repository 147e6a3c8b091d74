package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/sudatra/aora/internal/domain"
)

// MockAccountRepository is a mock implementation of domain.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, accountID, email, password, name string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, email, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CreateEmailPasswordSession(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAccountRepository) Get(ctx context.Context) (*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of domain.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) CreateProfile(ctx context.Context, profileID string, p domain.Profile) (*domain.Profile, error) {
	args := m.Called(ctx, profileID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindProfileByAccount(ctx context.Context, accountID string) (*domain.Profile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// MockPostRepository is a mock implementation of domain.PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(ctx context.Context, postID string, p domain.Post) (*domain.Post, error) {
	args := m.Called(ctx, postID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) ListPosts(ctx context.Context, q domain.PostQuery) ([]*domain.Post, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Post), args.Error(1)
}

// MockFileRepository is a mock implementation of domain.FileRepository.
type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) CreateFile(ctx context.Context, fileID string, file *domain.StoredFile) (string, error) {
	args := m.Called(ctx, fileID, file)
	return args.String(0), args.Error(1)
}

func (m *MockFileRepository) DeleteFile(ctx context.Context, fileID string) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}

func (m *MockFileRepository) FileViewURL(fileID string) string {
	args := m.Called(fileID)
	return args.String(0)
}

func (m *MockFileRepository) FilePreviewURL(fileID string, opts domain.PreviewOptions) string {
	args := m.Called(fileID, opts)
	return args.String(0)
}

// MockAvatarRepository is a mock implementation of domain.AvatarRepository.
type MockAvatarRepository struct {
	mock.Mock
}

func (m *MockAvatarRepository) InitialsURL(name string) string {
	args := m.Called(name)
	return args.String(0)
}

// sequentialIDs returns id-1, id-2, ...
type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequentialIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type testBackend struct {
	*Backend
	accounts *MockAccountRepository
	profiles *MockProfileRepository
	posts    *MockPostRepository
	files    *MockFileRepository
	avatars  *MockAvatarRepository
}

func newTestBackend() *testBackend {
	tb := &testBackend{
		accounts: new(MockAccountRepository),
		profiles: new(MockProfileRepository),
		posts:    new(MockPostRepository),
		files:    new(MockFileRepository),
		avatars:  new(MockAvatarRepository),
	}
	tb.Backend = NewBackend(Repositories{
		Accounts: tb.accounts,
		Profiles: tb.profiles,
		Posts:    tb.posts,
		Files:    tb.files,
		Avatars:  tb.avatars,
		IDs:      &sequentialIDs{},
	}, nil)
	return tb
}

func (tb *testBackend) assertExpectations(t mock.TestingT) {
	tb.accounts.AssertExpectations(t)
	tb.profiles.AssertExpectations(t)
	tb.posts.AssertExpectations(t)
	tb.files.AssertExpectations(t)
	tb.avatars.AssertExpectations(t)
}
