package service

import (
	"context"

	"github.com/sudatra/aora/internal/domain"
)

// LatestPostsLimit is the size of the latest posts strip
const LatestPostsLimit = 7

// ListAllPosts lists every post, newest first
func (b *Backend) ListAllPosts(ctx context.Context) ([]*domain.Post, error) {
	return b.listPosts(ctx, "ListAllPosts", domain.PostQuery{NewestFirst: true})
}

// ListLatestPosts lists the LatestPostsLimit newest posts
func (b *Backend) ListLatestPosts(ctx context.Context) ([]*domain.Post, error) {
	return b.listPosts(ctx, "ListLatestPosts", domain.PostQuery{
		NewestFirst: true,
		Limit:       LatestPostsLimit,
	})
}

// SearchPosts lists posts whose title matches query. No match is not an error.
func (b *Backend) SearchPosts(ctx context.Context, query string) ([]*domain.Post, error) {
	return b.listPosts(ctx, "SearchPosts", domain.PostQuery{Search: query})
}

// ListPostsByOwner lists the posts of a profile, newest first
func (b *Backend) ListPostsByOwner(ctx context.Context, profileID string) ([]*domain.Post, error) {
	return b.listPosts(ctx, "ListPostsByOwner", domain.PostQuery{
		OwnerID:     profileID,
		NewestFirst: true,
	})
}

func (b *Backend) listPosts(ctx context.Context, op string, q domain.PostQuery) ([]*domain.Post, error) {
	posts, err := b.posts.ListPosts(ctx, q)
	if err != nil {
		b.logger.Error("failed to list posts", "op", op, "error", err)
		return nil, wrap(op, domain.KindService, err)
	}
	if posts == nil {
		posts = []*domain.Post{}
	}
	b.logger.Debug("listed posts", "op", op, "count", len(posts))
	return posts, nil
}
