package media

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"school-cms-api/internal/apperr"
	"school-cms-api/internal/util"
)

const (
	MaxUploadSize = 10 << 20
	listLimit     = 200
)

var (
	ErrUnsupportedType = errors.New("only images and PDF files can be uploaded")
	ErrTooLarge        = errors.New("file is larger than 10 MiB")
)

// Upload is what the API answers after storing a file.
type Upload struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

type MediaServiceAPI interface {
	Upload(ctx context.Context, folder, filename, contentType string, size int64, r io.Reader) (*Upload, error)
	List(ctx context.Context, folder string) ([]Upload, error)
	Delete(ctx context.Context, pathOrURL string) error
}

var _ MediaServiceAPI = (*MediaService)(nil)

type MediaService struct {
	// Store is nil when no bucket is configured.
	Store Store
}

func NewMediaService(store Store) *MediaService {
	return &MediaService{Store: store}
}

func (s *MediaService) store() (Store, error) {
	if s.Store == nil {
		return nil, fmt.Errorf("%w: media storage is not configured", apperr.ErrUnavailable)
	}
	return s.Store, nil
}

// Upload stores r under <folder>/<uuid><ext>. A missing or generic content type is sniffed
// from the first bytes.
func (s *MediaService) Upload(ctx context.Context, folder, filename, contentType string, size int64, r io.Reader) (*Upload, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	if size > MaxUploadSize {
		return nil, ErrTooLarge
	}

	br := bufio.NewReaderSize(r, 512)
	contentType = strings.TrimSpace(contentType)
	if contentType == "" || contentType == "application/octet-stream" {
		head, _ := br.Peek(512)
		contentType = http.DetectContentType(head)
	}
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if !util.IsAllowedUpload(contentType) {
		return nil, ErrUnsupportedType
	}

	path := util.MediaObjectName(folder, filename, contentType)
	n, err := store.Put(ctx, path, contentType, io.LimitReader(br, MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if n > MaxUploadSize {
		_ = store.Delete(ctx, path)
		return nil, ErrTooLarge
	}

	return &Upload{
		URL:         util.PublicGCSURL(store.Bucket(), path),
		Path:        path,
		Size:        n,
		ContentType: contentType,
	}, nil
}

func (s *MediaService) List(ctx context.Context, folder string) ([]Upload, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}

	prefix := strings.Trim(strings.TrimSpace(folder), "/")
	if prefix != "" {
		prefix += "/"
	}
	objects, err := store.List(ctx, prefix, listLimit)
	if err != nil {
		return nil, err
	}

	out := make([]Upload, 0, len(objects))
	for _, o := range objects {
		out = append(out, Upload{
			URL:         util.PublicGCSURL(store.Bucket(), o.Path),
			Path:        o.Path,
			Size:        o.Size,
			ContentType: o.ContentType,
		})
	}
	return out, nil
}

// Delete accepts an object path or any public URL of the object.
func (s *MediaService) Delete(ctx context.Context, pathOrURL string) error {
	store, err := s.store()
	if err != nil {
		return err
	}

	path := strings.TrimSpace(pathOrURL)
	if strings.Contains(path, "://") {
		if path, err = util.ExtractObjectPathFromGCSURL(store.Bucket(), path); err != nil {
			return apperr.BadRequest("invalid media url: %v", err)
		}
	}
	path = strings.TrimPrefix(path, "/")
	if path == "" || strings.Contains(path, "..") {
		return apperr.BadRequest("path is required")
	}

	if err := store.Delete(ctx, path); err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return fmt.Errorf("%w: %s", apperr.ErrNotFound, path)
		}
		return err
	}
	return nil
}
