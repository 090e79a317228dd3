package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"school-cms-api/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	objects map[string]memObject
	putErr  error
}

type memObject struct {
	data        []byte
	contentType string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string]memObject{}}
}

func (m *memStore) Bucket() string { return "school-media" }

func (m *memStore) Put(_ context.Context, path, contentType string, r io.Reader) (int64, error) {
	if m.putErr != nil {
		return 0, m.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = memObject{data: b, contentType: contentType}
	return int64(len(b)), nil
}

func (m *memStore) List(_ context.Context, prefix string, limit int) ([]Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Object{}
	for p, o := range m.objects {
		if strings.HasPrefix(p, prefix) {
			out = append(out, Object{Path: p, Size: int64(len(o.data)), ContentType: o.contentType, UpdatedAt: time.Now()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[path]; !ok {
		return ErrObjectNotFound
	}
	delete(m.objects, path)
	return nil
}

func (m *memStore) Close() error { return nil }

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUpload_StoresUnderFolder(t *testing.T) {
	store := newMemStore()
	svc := NewMediaService(store)

	up, err := svc.Upload(context.Background(), "posts/2026", "cover.png", "image/png", int64(len(pngHeader)), bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(up.Path, "posts/2026/"))
	assert.True(t, strings.HasSuffix(up.Path, ".png"))
	assert.Equal(t, "https://storage.googleapis.com/school-media/"+up.Path, up.URL)
	assert.Equal(t, int64(len(pngHeader)), up.Size)
	assert.Equal(t, "image/png", up.ContentType)
	assert.Contains(t, store.objects, up.Path)
}

func TestUpload_SniffsMissingContentType(t *testing.T) {
	svc := NewMediaService(newMemStore())

	up, err := svc.Upload(context.Background(), "", "photo", "application/octet-stream", 0, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "image/png", up.ContentType)
	assert.True(t, strings.HasPrefix(up.Path, "uploads/"))
}

func TestUpload_ExtensionFollowsCheckedType(t *testing.T) {
	svc := NewMediaService(newMemStore())

	up, err := svc.Upload(context.Background(), "posts", "x.exe", "image/png", 0, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(up.Path, ".png"), up.Path)
	assert.NotContains(t, up.Path, ".exe")
}

func TestUpload_RejectsUnsupportedType(t *testing.T) {
	store := newMemStore()
	svc := NewMediaService(store)

	_, err := svc.Upload(context.Background(), "docs", "run.sh", "", 0, strings.NewReader("#!/bin/sh\necho hi\n"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Empty(t, store.objects)
}

func TestUpload_RejectsDeclaredSizeOverLimit(t *testing.T) {
	svc := NewMediaService(newMemStore())

	_, err := svc.Upload(context.Background(), "", "big.png", "image/png", MaxUploadSize+1, bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestUpload_RejectsStreamOverLimit(t *testing.T) {
	store := newMemStore()
	svc := NewMediaService(store)

	body := append(append([]byte{}, pngHeader...), make([]byte, MaxUploadSize)...)
	_, err := svc.Upload(context.Background(), "", "big.png", "image/png", 0, bytes.NewReader(body))
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Empty(t, store.objects)
}

func TestUpload_StoreFailure(t *testing.T) {
	store := newMemStore()
	store.putErr = errors.New("bucket down")
	svc := NewMediaService(store)

	_, err := svc.Upload(context.Background(), "", "a.pdf", "application/pdf", 3, strings.NewReader("pdf"))
	assert.EqualError(t, err, "bucket down")
}

func TestWithoutStore_Unavailable(t *testing.T) {
	svc := NewMediaService(nil)

	_, err := svc.Upload(context.Background(), "", "a.png", "image/png", 1, bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
	_, err = svc.List(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
	assert.ErrorIs(t, svc.Delete(context.Background(), "a.png"), apperr.ErrUnavailable)
}

func TestList_FiltersByFolder(t *testing.T) {
	store := newMemStore()
	svc := NewMediaService(store)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "posts", "a.png", "image/png", 0, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	_, err = svc.Upload(ctx, "staff", "b.png", "image/png", 0, bytes.NewReader(pngHeader))
	require.NoError(t, err)

	items, err := svc.List(ctx, "/posts/")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, strings.HasPrefix(items[0].Path, "posts/"))
	assert.Equal(t, "image/png", items[0].ContentType)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDelete_ByPathAndURL(t *testing.T) {
	store := newMemStore()
	svc := NewMediaService(store)
	ctx := context.Background()

	a, err := svc.Upload(ctx, "posts", "a.png", "image/png", 0, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	b, err := svc.Upload(ctx, "posts", "b.png", "image/png", 0, bytes.NewReader(pngHeader))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.Path))
	require.NoError(t, svc.Delete(ctx, b.URL))
	assert.Empty(t, store.objects)

	assert.ErrorIs(t, svc.Delete(ctx, a.Path), apperr.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ""), apperr.ErrBadRequest)
	assert.ErrorIs(t, svc.Delete(ctx, "posts/../secrets"), apperr.ErrBadRequest)
}
