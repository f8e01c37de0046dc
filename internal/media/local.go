package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"carwash-backend/internal/config"
)

// localStore writes images under an uploads directory served at publicBase.
type localStore struct {
	dir        string
	publicBase string
}

func newLocalStore(cfg *config.Config) *localStore {
	return &localStore{
		dir:        cfg.Media.UploadDir,
		publicBase: strings.TrimSuffix(cfg.Media.PublicBase, "/"),
	}
}

func (s *localStore) Save(ctx context.Context, raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("empty payload")
	}
	if passthroughURL(raw, s.publicBase) {
		return raw, nil
	}
	p, err := parseDataURL(raw)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := newObjectName(p.ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), p.data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return s.publicBase + "/" + name, nil
}

func (s *localStore) Delete(ctx context.Context, url string) error {
	if url == "" || !strings.HasPrefix(url, s.publicBase+"/") {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(url, s.publicBase+"/"))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
