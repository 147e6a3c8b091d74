package appwrite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sudatra/aora/internal/domain"
)

// ChunkSize is the upload chunk size. Larger files are sent in several requests.
const ChunkSize = 5 * 1024 * 1024

// StorageService handles files in storage buckets
type StorageService struct {
	client *Client
}

func filesPath(bucketID string) string {
	return fmt.Sprintf("/storage/buckets/%s/files", url.PathEscape(bucketID))
}

func filePath(bucketID, fileID string) string {
	return filesPath(bucketID) + "/" + url.PathEscape(fileID)
}

// upload is a resolved file ready to be streamed
type upload struct {
	name     string
	mimeType string
	size     int64
	body     io.Reader
	closer   io.Closer
}

// openUpload resolves the bytes, name, type and size of file
func openUpload(file *domain.StoredFile) (*upload, error) {
	u := &upload{name: file.Name, mimeType: file.MimeType, size: file.Size}

	switch {
	case file.Data != nil:
		u.body = file.Data
		if u.size <= 0 {
			if err := u.measure(file.Data); err != nil {
				return nil, err
			}
		}
	case file.SourceURI != "":
		f, err := os.Open(file.SourceURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file.SourceURI, err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to stat %s: %w", file.SourceURI, err)
		}
		u.body = f
		u.closer = f
		u.size = info.Size()
		if u.name == "" {
			u.name = filepath.Base(file.SourceURI)
		}
	default:
		return nil, fmt.Errorf("file has no data or source uri")
	}

	if u.name == "" {
		u.name = "upload"
	}
	if u.mimeType == "" {
		u.mimeType = mime.TypeByExtension(filepath.Ext(u.name))
	}
	if u.mimeType == "" {
		u.mimeType = "application/octet-stream"
	}
	return u, nil
}

// measure sizes a reader of unknown length. Streams that fit in one chunk are
// kept in memory, larger ones are spooled to a temporary file.
func (u *upload) measure(r io.Reader) error {
	head, err := io.ReadAll(io.LimitReader(r, ChunkSize+1))
	if err != nil {
		return fmt.Errorf("failed to read file data: %w", err)
	}
	if len(head) <= ChunkSize {
		u.body = bytes.NewReader(head)
		u.size = int64(len(head))
		return nil
	}

	f, err := os.CreateTemp("", "aora-upload-*")
	if err != nil {
		return fmt.Errorf("failed to create spool file: %w", err)
	}
	spool := &spoolFile{File: f}

	if _, err := f.Write(head); err != nil {
		spool.Close()
		return fmt.Errorf("failed to spool file data: %w", err)
	}
	rest, err := io.Copy(f, r)
	if err != nil {
		spool.Close()
		return fmt.Errorf("failed to spool file data: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		spool.Close()
		return fmt.Errorf("failed to rewind spool file: %w", err)
	}

	u.body = f
	u.closer = spool
	u.size = int64(len(head)) + rest
	return nil
}

// spoolFile is a temporary file removed on Close
type spoolFile struct {
	*os.File
}

func (f *spoolFile) Close() error {
	err := f.File.Close()
	os.Remove(f.Name())
	return err
}

// CreateFile uploads file into the bucket under fileID. Files above ChunkSize
// are sent in chunks; every chunk after the first carries the ID of the file
// the server created for the first one.
func (s *StorageService) CreateFile(ctx context.Context, bucketID, fileID string, file *domain.StoredFile) (*FileResponse, error) {
	if file == nil {
		return nil, fmt.Errorf("file is nil")
	}
	u, err := openUpload(file)
	if err != nil {
		return nil, err
	}
	if u.closer != nil {
		defer u.closer.Close()
	}

	if u.size <= ChunkSize {
		data, err := io.ReadAll(u.body)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		if int64(len(data)) != u.size {
			return nil, fmt.Errorf("file data is %d bytes, expected %d", len(data), u.size)
		}
		return s.sendChunk(ctx, bucketID, fileID, u, data, nil)
	}

	body := io.LimitReader(u.body, u.size)

	var (
		resp     *FileResponse
		uploadID string
		buf      = make([]byte, ChunkSize)
		offset   int64
	)
	for offset < u.size {
		n, err := io.ReadFull(body, buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return nil, fmt.Errorf("failed to read chunk at %d: %w", offset, err)
		}
		if n == 0 {
			break
		}

		end := offset + int64(n) - 1
		headers := map[string]string{
			headerContentRange: fmt.Sprintf("bytes %d-%d/%d", offset, end, u.size),
		}
		if uploadID != "" {
			headers[headerID] = uploadID
		}

		resp, err = s.sendChunk(ctx, bucketID, fileID, u, buf[:n], headers)
		if err != nil {
			return nil, err
		}
		if uploadID == "" {
			uploadID = resp.ID
		}

		s.client.logger.Debug("uploaded chunk", "file", fileID, "end", end, "size", u.size)
		offset = end + 1
	}

	if offset != u.size {
		if uploadID != "" {
			if err := s.DeleteFile(context.WithoutCancel(ctx), bucketID, uploadID); err != nil {
				s.client.logger.Warn("failed to remove partial upload", "file", uploadID, "error", err)
			}
		}
		return nil, fmt.Errorf("file data ended at %d bytes, expected %d", offset, u.size)
	}
	return resp, nil
}

// sendChunk posts one multipart request with the file part
func (s *StorageService) sendChunk(ctx context.Context, bucketID, fileID string, u *upload, data []byte, headers map[string]string) (*FileResponse, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("fileId", fileID); err != nil {
		return nil, fmt.Errorf("failed to write form: %w", err)
	}

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, u.name))
	partHeader.Set("Content-Type", u.mimeType)
	part, err := w.CreatePart(partHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to write form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to write form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.buildURL(filesPath(bucketID), nil), &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	s.client.setHeaders(req)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	var resp FileResponse
	if err := s.client.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteFile removes a file from the bucket
func (s *StorageService) DeleteFile(ctx context.Context, bucketID, fileID string) error {
	return s.client.delete(ctx, filePath(bucketID, fileID))
}

// GetFileView returns the URL serving the file as-is
func (s *StorageService) GetFileView(bucketID, fileID string) string {
	return s.client.publicURL(filePath(bucketID, fileID)+"/view", nil)
}

// GetFilePreview returns the URL of a resized image preview. Zero values are omitted.
func (s *StorageService) GetFilePreview(bucketID, fileID string, opts domain.PreviewOptions) string {
	query := url.Values{}
	if opts.Width > 0 {
		query.Set("width", strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		query.Set("height", strconv.Itoa(opts.Height))
	}
	if opts.Gravity != "" {
		query.Set("gravity", opts.Gravity)
	}
	if opts.Quality > 0 {
		query.Set("quality", strconv.Itoa(opts.Quality))
	}
	return s.client.publicURL(filePath(bucketID, fileID)+"/preview", query)
}
