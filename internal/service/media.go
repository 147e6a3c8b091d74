package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sudatra/aora/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ImagePreview is the crop applied to image URLs
var ImagePreview = domain.PreviewOptions{
	Width:   2000,
	Height:  2000,
	Gravity: "top",
	Quality: 100,
}

// GetFilePreviewURL derives the URL of a stored file: the view URL for a
// video, a cropped preview for an image. No network call is made.
func (b *Backend) GetFilePreviewURL(fileID string, kind domain.MediaKind) (string, error) {
	return b.fileURL("GetFilePreviewURL", fileID, kind)
}

func (b *Backend) fileURL(op, fileID string, kind domain.MediaKind) (string, error) {
	if !kind.Valid() {
		return "", domain.Wrap(op, domain.KindInvalidMediaKind, fmt.Errorf("%q", kind))
	}
	if fileID == "" {
		return "", domain.Wrap(op, domain.KindEmptyURL, nil)
	}

	var u string
	switch kind {
	case domain.MediaKindVideo:
		u = b.files.FileViewURL(fileID)
	case domain.MediaKindImage:
		u = b.files.FilePreviewURL(fileID, ImagePreview)
	}
	if u == "" {
		return "", domain.Wrap(op, domain.KindEmptyURL, nil)
	}
	return u, nil
}

// UploadFile stores file and returns its URL for kind. A nil file returns
// ("", nil) without contacting the service.
func (b *Backend) UploadFile(ctx context.Context, file *domain.StoredFile, kind domain.MediaKind) (string, error) {
	const op = "UploadFile"
	if file == nil {
		return "", nil
	}
	_, u, err := b.upload(ctx, op, file, kind)
	return u, err
}

// upload stores file and returns the stored file ID and URL. The ID is set
// whenever the file reached the service, even if the URL could not be derived.
func (b *Backend) upload(ctx context.Context, op string, file *domain.StoredFile, kind domain.MediaKind) (string, string, error) {
	if !kind.Valid() {
		return "", "", domain.Wrap(op, domain.KindInvalidMediaKind, fmt.Errorf("%q", kind))
	}

	fileID, err := b.files.CreateFile(ctx, b.ids.NewID(), file)
	if err != nil {
		b.logger.Error("upload failed", "name", file.Name, "kind", kind, "error", err)
		return "", "", wrap(op, domain.KindService, err)
	}
	b.logger.Info("file uploaded", "file", fileID, "kind", kind)

	u, err := b.fileURL(op, fileID, kind)
	if err != nil {
		return fileID, "", err
	}
	return fileID, u, nil
}

// CreateVideoPost uploads the thumbnail and the video concurrently and then
// creates the post. No post is created unless both uploads succeed; files
// uploaded by a failed call are deleted.
func (b *Backend) CreateVideoPost(ctx context.Context, form domain.VideoForm) (*domain.Post, error) {
	const op = "CreateVideoPost"

	if err := validateForm(form); err != nil {
		return nil, domain.Wrap(op, domain.KindInvalidForm, err)
	}

	var (
		mu                     sync.Mutex
		uploaded               []string
		thumbnailURL, videoURL string
	)
	record := func(fileID string) {
		if fileID == "" {
			return
		}
		mu.Lock()
		uploaded = append(uploaded, fileID)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fileID, u, err := b.upload(gctx, op, form.Thumbnail, domain.MediaKindImage)
		record(fileID)
		thumbnailURL = u
		return err
	})
	g.Go(func() error {
		fileID, u, err := b.upload(gctx, op, form.Video, domain.MediaKindVideo)
		record(fileID)
		videoURL = u
		return err
	})

	if err := g.Wait(); err != nil {
		b.removeFiles(ctx, uploaded)
		return nil, err
	}

	post, err := b.posts.CreatePost(ctx, b.ids.NewID(), domain.Post{
		Title:        form.Title,
		ThumbnailURL: thumbnailURL,
		VideoURL:     videoURL,
		Prompt:       form.Prompt,
		OwnerID:      form.OwnerID,
	})
	if err != nil {
		b.logger.Error("post creation failed", "title", form.Title, "error", err)
		b.removeFiles(ctx, uploaded)
		return nil, wrap(op, domain.KindDocumentCreate, err)
	}

	b.logger.Info("post created", "post", post.ID, "owner", form.OwnerID)
	return post, nil
}

// removeFiles deletes orphaned uploads, logging failures. It runs even when
// ctx is already cancelled.
func (b *Backend) removeFiles(ctx context.Context, fileIDs []string) {
	ctx = context.WithoutCancel(ctx)
	for _, id := range fileIDs {
		if err := b.files.DeleteFile(ctx, id); err != nil {
			b.logger.Warn("failed to delete orphaned file", "file", id, "error", err)
			continue
		}
		b.logger.Debug("deleted orphaned file", "file", id)
	}
}

// validateForm names every missing field of form
func validateForm(form domain.VideoForm) error {
	var missing []string
	if strings.TrimSpace(form.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(form.Prompt) == "" {
		missing = append(missing, "prompt")
	}
	if form.Thumbnail == nil {
		missing = append(missing, "thumbnail")
	}
	if form.Video == nil {
		missing = append(missing, "video")
	}
	if form.OwnerID == "" {
		missing = append(missing, "owner")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}
