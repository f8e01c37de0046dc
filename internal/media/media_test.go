package media

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func dataURL(mime string, body []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(body)
}

func TestParseDataURL(t *testing.T) {
	p, err := parseDataURL(dataURL("image/png", []byte("png-bytes")))
	if err != nil {
		t.Fatalf("parseDataURL: %v", err)
	}
	if string(p.data) != "png-bytes" {
		t.Fatalf("data = %q", p.data)
	}
	if p.ext != "png" || p.mime != "image/png" {
		t.Fatalf("ext/mime = %q/%q", p.ext, p.mime)
	}
}

func TestParseDataURLJpegExtension(t *testing.T) {
	p, err := parseDataURL(dataURL("image/jpeg", []byte("jpg")))
	if err != nil {
		t.Fatalf("parseDataURL: %v", err)
	}
	if p.ext != "jpg" {
		t.Fatalf("ext = %q, want jpg", p.ext)
	}
}

func TestParseDataURLRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "https://example.com/a.png", "data:image/png;base64", "data:image/png;base64,%%%"} {
		if _, err := parseDataURL(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestLocalStoreSaveAndDelete(t *testing.T) {
	s := &localStore{dir: t.TempDir(), publicBase: "/uploads"}
	ctx := context.Background()

	url, err := s.Save(ctx, dataURL("image/png", []byte("stored")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") {
		t.Fatalf("url = %q, want /uploads/ prefix", url)
	}

	name := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "stored" {
		t.Fatalf("stored bytes = %q", data)
	}

	if err := s.Delete(ctx, url); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.dir, name)); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err = %v", err)
	}
	// Deleting again is a no-op.
	if err := s.Delete(ctx, url); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestLocalStorePassthroughURL(t *testing.T) {
	s := &localStore{dir: t.TempDir(), publicBase: "/uploads"}
	ctx := context.Background()

	for _, raw := range []string{"https://example.com/a.jpg", "http://cdn.local/b.png", "/uploads/existing.png"} {
		url, err := s.Save(ctx, raw)
		if err != nil {
			t.Fatalf("Save(%q): %v", raw, err)
		}
		if url != raw {
			t.Fatalf("Save(%q) = %q, want passthrough", raw, url)
		}
	}
}

func TestLocalStoreDeleteIgnoresForeignURL(t *testing.T) {
	s := &localStore{dir: t.TempDir(), publicBase: "/uploads"}
	if err := s.Delete(context.Background(), "https://example.com/photo.png"); err != nil {
		t.Fatalf("Delete foreign url: %v", err)
	}
}
