package appwrite

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudatra/aora/internal/domain"
)

type recordedChunk struct {
	fileID       string
	contentRange string
	uploadID     string
	size         int
	filename     string
	partType     string
}

func chunkRecorder(t *testing.T) (*[]recordedChunk, http.HandlerFunc) {
	var (
		mu     sync.Mutex
		chunks []recordedChunk
	)
	return &chunks, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/storage/buckets/bucket/files", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		data, err := io.ReadAll(file)
		require.NoError(t, err)

		mu.Lock()
		chunks = append(chunks, recordedChunk{
			fileID:       r.FormValue("fileId"),
			contentRange: r.Header.Get("Content-Range"),
			uploadID:     r.Header.Get("X-Appwrite-ID"),
			size:         len(data),
			filename:     header.Filename,
			partType:     header.Header.Get("Content-Type"),
		})
		mu.Unlock()

		writeJSON(t, w, http.StatusCreated, map[string]interface{}{
			"$id":      r.FormValue("fileId"),
			"bucketId": "bucket",
			"name":     header.Filename,
		})
	}
}

func TestStorage_CreateFile_Single(t *testing.T) {
	chunks, handler := chunkRecorder(t)
	_, client := newTestServer(t, nil, handler)

	resp, err := client.Storage.CreateFile(context.Background(), "bucket", "f1", &domain.StoredFile{
		Name:     "thumb.png",
		MimeType: "image/png",
		Data:     strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "f1", resp.ID)

	require.Len(t, *chunks, 1)
	c := (*chunks)[0]
	assert.Equal(t, "f1", c.fileID)
	assert.Empty(t, c.contentRange)
	assert.Equal(t, len("png-bytes"), c.size)
	assert.Equal(t, "thumb.png", c.filename)
	assert.Equal(t, "image/png", c.partType)
}

func TestStorage_CreateFile_Chunked(t *testing.T) {
	chunks, handler := chunkRecorder(t)
	_, client := newTestServer(t, nil, handler)

	total := ChunkSize + 10
	data := bytes.Repeat([]byte{'x'}, total)

	resp, err := client.Storage.CreateFile(context.Background(), "bucket", "big", &domain.StoredFile{
		Name:     "clip.mp4",
		MimeType: "video/mp4",
		Size:     int64(total),
		Data:     bytes.NewReader(data),
	})
	require.NoError(t, err)
	assert.Equal(t, "big", resp.ID)

	require.Len(t, *chunks, 2)
	first, second := (*chunks)[0], (*chunks)[1]

	assert.Equal(t, "bytes 0-5242879/5242890", first.contentRange)
	assert.Empty(t, first.uploadID)
	assert.Equal(t, ChunkSize, first.size)
	assert.Equal(t, "video/mp4", first.partType)

	assert.Equal(t, "bytes 5242880-5242889/5242890", second.contentRange)
	assert.Equal(t, "big", second.uploadID)
	assert.Equal(t, 10, second.size)
}

func TestStorage_CreateFile_ShortData(t *testing.T) {
	chunks, record := chunkRecorder(t)
	var (
		mu      sync.Mutex
		deleted []string
	)
	_, client := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			mu.Lock()
			deleted = append(deleted, r.URL.Path)
			mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
			return
		}
		record(w, r)
	})

	t.Run("chunked", func(t *testing.T) {
		_, err := client.Storage.CreateFile(context.Background(), "bucket", "big", &domain.StoredFile{
			Name:     "clip.mp4",
			MimeType: "video/mp4",
			Size:     ChunkSize + 10,
			Data:     bytes.NewReader(make([]byte, 100)),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 5242890")

		require.Len(t, *chunks, 1)
		assert.Equal(t, "bytes 0-99/5242890", (*chunks)[0].contentRange)
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"/v1/storage/buckets/bucket/files/big"}, deleted)
	})

	t.Run("single", func(t *testing.T) {
		_, err := client.Storage.CreateFile(context.Background(), "bucket", "small", &domain.StoredFile{
			Name: "thumb.png",
			Size: 64,
			Data: strings.NewReader("short"),
		})
		require.Error(t, err)
		assert.Len(t, *chunks, 1, "nothing is sent for a short single upload")
	})
}

func TestStorage_CreateFile_UnknownSize(t *testing.T) {
	spoolDir := t.TempDir()
	t.Setenv("TMPDIR", spoolDir)

	chunks, handler := chunkRecorder(t)
	_, client := newTestServer(t, nil, handler)

	total := ChunkSize + 10
	resp, err := client.Storage.CreateFile(context.Background(), "bucket", "stream", &domain.StoredFile{
		Name:     "clip.mp4",
		MimeType: "video/mp4",
		Data:     io.MultiReader(bytes.NewReader(make([]byte, ChunkSize)), strings.NewReader("0123456789")),
	})
	require.NoError(t, err)
	assert.Equal(t, "stream", resp.ID)

	require.Len(t, *chunks, 2)
	assert.Equal(t, "bytes 0-5242879/5242890", (*chunks)[0].contentRange)
	assert.Equal(t, "bytes 5242880-5242889/5242890", (*chunks)[1].contentRange)
	assert.Equal(t, 10, (*chunks)[1].size)
	assert.Equal(t, total, (*chunks)[0].size+(*chunks)[1].size)

	entries, err := filepath.Glob(filepath.Join(spoolDir, "aora-upload-*"))
	require.NoError(t, err)
	assert.Empty(t, entries, "spool file is removed")
}

func TestStorage_CreateFile_FromPath(t *testing.T) {
	chunks, handler := chunkRecorder(t)
	_, client := newTestServer(t, nil, handler)

	path := filepath.Join(t.TempDir(), "poster.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0600))

	_, err := client.Storage.CreateFile(context.Background(), "bucket", "f2", &domain.StoredFile{SourceURI: path})
	require.NoError(t, err)

	require.Len(t, *chunks, 1)
	assert.Equal(t, "poster.jpg", (*chunks)[0].filename)
	assert.Equal(t, "image/jpeg", (*chunks)[0].partType)
}

func TestStorage_CreateFile_NoData(t *testing.T) {
	client := NewClient("http://127.0.0.1:1/v1", testProject)
	_, err := client.Storage.CreateFile(context.Background(), "bucket", "f", &domain.StoredFile{Name: "x"})
	assert.Error(t, err)
}

func TestStorage_URLs(t *testing.T) {
	client := NewClient("https://cloud.appwrite.io/v1/", testProject)

	view, err := url.Parse(client.Storage.GetFileView("bucket", "f1"))
	require.NoError(t, err)
	assert.Equal(t, "/v1/storage/buckets/bucket/files/f1/view", view.Path)
	assert.Equal(t, testProject, view.Query().Get("project"))

	preview, err := url.Parse(client.Storage.GetFilePreview("bucket", "f1", domain.PreviewOptions{
		Width:   2000,
		Height:  2000,
		Gravity: "top",
		Quality: 100,
	}))
	require.NoError(t, err)
	assert.Equal(t, "/v1/storage/buckets/bucket/files/f1/preview", preview.Path)
	assert.Equal(t, url.Values{
		"width":   {"2000"},
		"height":  {"2000"},
		"gravity": {"top"},
		"quality": {"100"},
		"project": {testProject},
	}, preview.Query())

	initials, err := url.Parse(client.Avatars.InitialsURL("alice"))
	require.NoError(t, err)
	assert.Equal(t, "/v1/avatars/initials", initials.Path)
	assert.Equal(t, "alice", initials.Query().Get("name"))
}

func TestBucket_DeleteFile(t *testing.T) {
	var path string
	_, client := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, NewBucket(client, "bucket").DeleteFile(context.Background(), "f1"))
	assert.Equal(t, "/v1/storage/buckets/bucket/files/f1", path)
}

func TestUniqueID(t *testing.T) {
	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 1000; i++ {
		id := UniqueID()
		require.Len(t, id, 26)
		assert.Equal(t, strings.ToLower(id), id)
		assert.False(t, seen[id])
		assert.Greater(t, id, prev)
		seen[id] = true
		prev = id
	}
}
