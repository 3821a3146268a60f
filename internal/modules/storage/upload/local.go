package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// PublicPrefix is the URL path uploaded files are served from.
const PublicPrefix = "/uploads"

// LocalBackend writes uploads to a directory on disk; the server mounts
// that directory at PublicPrefix.
type LocalBackend struct {
	dir string
}

func NewLocalBackend(dir string) (*LocalBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalBackend{dir: dir}, nil
}

func (b *LocalBackend) Put(_ context.Context, name, _ string, payload []byte) (string, error) {
	if err := os.WriteFile(filepath.Join(b.dir, name), payload, 0o644); err != nil {
		return "", err
	}
	return PublicPrefix + "/" + name, nil
}

func (b *LocalBackend) Remove(_ context.Context, name string) error {
	return os.Remove(filepath.Join(b.dir, filepath.Base(name)))
}
