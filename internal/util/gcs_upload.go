package util

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
)

// MediaObjectName builds "<folder>/<uuid><ext>" for an uploaded file.
func MediaObjectName(folder, filename, mime string) string {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	parts := []string{}
	for _, p := range strings.Split(folder, "/") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		parts = append(parts, SanitizePart(p))
	}
	if len(parts) == 0 {
		parts = []string{"uploads"}
	}
	return path.Join(path.Join(parts...), uuid.NewString()+ExtFromMimeOrFilename(mime, filename))
}

func PublicGCSURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}

// ExtractObjectPathFromGCSURL extracts the object path from common GCS URL formats.
// Supports:
//   - https://storage.googleapis.com/<bucket>/<object>
//   - https://<bucket>.storage.googleapis.com/<object>
//   - gs://<bucket>/<object>
//   - signed URLs (query params are ignored)
func ExtractObjectPathFromGCSURL(bucket, raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	u.RawQuery = ""
	u.Fragment = ""

	host := u.Host
	p := strings.TrimPrefix(u.Path, "/")

	if u.Scheme == "gs" {
		return p, nil
	}

	if strings.EqualFold(host, "storage.googleapis.com") {
		prefix := bucket + "/"
		if strings.HasPrefix(p, prefix) {
			return strings.TrimPrefix(p, prefix), nil
		}
		return p, nil
	}

	return p, nil
}
