package util

import (
	"path"
	"strings"
)

var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"image/svg+xml":   ".svg",
	"application/pdf": ".pdf",
}

// ExtFromMimeOrFilename picks the extension of a known mime type first, so a
// client filename cannot change how a checked upload is stored.
func ExtFromMimeOrFilename(mime, filename string) string {
	if e, ok := allowedUploadTypes[strings.ToLower(strings.TrimSpace(mime))]; ok {
		return e
	}
	if ext := strings.ToLower(path.Ext(filename)); ext != "" {
		return ext
	}
	return ".bin"
}

// IsAllowedUpload reports whether the mime type is an image or PDF the site can serve.
func IsAllowedUpload(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	_, ok := allowedUploadTypes[mime]
	return ok
}
