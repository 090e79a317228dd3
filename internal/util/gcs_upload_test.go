package util

import (
	"strings"
	"testing"
)

func TestSanitizePart(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Gallery  ", "gallery"},
		{"Staff Photos", "staff_photos"},
		{"SLIDERS", "sliders"},
		{"A-B_C", "a-b_c"},
		{"Hello!@#$%^&*()World", "helloworld"},
		{"", "unknown"},
		{"   ", "unknown"},
		{"नमस्ते", "unknown"},
	}

	for _, tt := range tests {
		got := SanitizePart(tt.in)
		if got != tt.want {
			t.Fatalf("SanitizePart(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMediaObjectName(t *testing.T) {
	got := MediaObjectName("/Staff Photos/2026/", "portrait.PNG", "image/png")
	if !strings.HasPrefix(got, "staff_photos/2026/") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	if !strings.HasSuffix(got, ".png") {
		t.Fatalf("unexpected extension: %q", got)
	}

	got = MediaObjectName("", "blob", "application/pdf")
	if !strings.HasPrefix(got, "uploads/") || !strings.HasSuffix(got, ".pdf") {
		t.Fatalf("unexpected default object: %q", got)
	}

	if MediaObjectName("a", "x.jpg", "") == MediaObjectName("a", "x.jpg", "") {
		t.Fatalf("expected unique object names")
	}
}

func TestPublicGCSURL(t *testing.T) {
	got := PublicGCSURL("my-bucket", "folder/file.jpg")
	want := "https://storage.googleapis.com/my-bucket/folder/file.jpg"
	if got != want {
		t.Fatalf("PublicGCSURL = %q, want %q", got, want)
	}
}

func TestExtractObjectPathFromGCSURL(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name:   "storage.googleapis.com format",
			bucket: "my-bucket",
			raw:    "https://storage.googleapis.com/my-bucket/folder/file.jpg",
			want:   "folder/file.jpg",
		},
		{
			name:   "storage.googleapis.com format with query",
			bucket: "my-bucket",
			raw:    "https://storage.googleapis.com/my-bucket/folder/file.jpg?X-Goog-Signature=abc#frag",
			want:   "folder/file.jpg",
		},
		{
			name:   "bucket subdomain format",
			bucket: "my-bucket",
			raw:    "https://my-bucket.storage.googleapis.com/folder/file.jpg",
			want:   "folder/file.jpg",
		},
		{
			name:   "gs scheme",
			bucket: "my-bucket",
			raw:    "gs://my-bucket/folder/file.jpg",
			want:   "folder/file.jpg",
		},
		{
			name:   "bucket not in path returns best effort",
			bucket: "my-bucket",
			raw:    "https://storage.googleapis.com/other-bucket/folder/file.jpg",
			want:   "other-bucket/folder/file.jpg",
		},
		{
			name:    "invalid url",
			bucket:  "my-bucket",
			raw:     "%%%not-a-url",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractObjectPathFromGCSURL(tt.bucket, tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil; got=%q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got=%q want=%q", got, tt.want)
			}
		})
	}
}
