package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"carwash-backend/internal/config"
)

// Store converts inline image payloads into stored URLs. Save failures are
// treated as "drop this photo" by all callers; Delete is best-effort and its
// failures are swallowed so database state stays authoritative.
type Store interface {
	Save(ctx context.Context, raw string) (string, error)
	Delete(ctx context.Context, url string) error
}

// New builds the configured backend.
func New(cfg *config.Config) (Store, error) {
	switch cfg.Media.Backend {
	case "s3":
		return newS3Store(cfg)
	case "local", "":
		return newLocalStore(cfg), nil
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.Media.Backend)
	}
}

// payload is a decoded data URL ready to be written somewhere.
type payload struct {
	data []byte
	ext  string
	mime string
}

// parseDataURL decodes "data:image/png;base64,...." payloads.
func parseDataURL(raw string) (*payload, error) {
	if !strings.HasPrefix(raw, "data:") {
		return nil, fmt.Errorf("not a data URL")
	}
	meta, b64, ok := strings.Cut(raw, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URL")
	}
	mime := "image/png"
	if rest := strings.TrimPrefix(meta, "data:"); rest != "" {
		if m, _, found := strings.Cut(rest, ";"); found {
			mime = m
		} else if rest != "" {
			mime = rest
		}
	}
	ext := "png"
	if _, sub, ok := strings.Cut(mime, "/"); ok && sub != "" {
		ext = sub
	}
	if ext == "jpeg" {
		ext = "jpg"
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	return &payload{data: data, ext: ext, mime: mime}, nil
}

// newObjectName returns a collision-free filename for a payload.
func newObjectName(ext string) string {
	return uuid.NewString() + "." + ext
}

// passthroughURL reports whether raw is already a stored or remote URL that
// should be kept as-is.
func passthroughURL(raw, publicBase string) bool {
	if publicBase != "" && strings.HasPrefix(raw, publicBase+"/") {
		return true
	}
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}
