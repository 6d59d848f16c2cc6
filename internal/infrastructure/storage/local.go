package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cafecritique/review-api/internal/core/ports"
)

// LocalStore writes images to a directory on disk and returns the bare file name.
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, img *ports.ImageUpload) (string, error) {
	name := objectName(img.Filename)
	if err := os.WriteFile(filepath.Join(s.dir, name), img.Data, 0o644); err != nil {
		return "", fmt.Errorf("write image %s: %w", name, err)
	}
	return name, nil
}

// Delete removes a stored image. A missing file is not an error.
func (s *LocalStore) Delete(_ context.Context, ref string) error {
	// Refs are names produced by Save; anything with a path component is rejected.
	if ref == "" || filepath.Base(ref) != ref {
		return fmt.Errorf("invalid image reference %q", ref)
	}
	err := os.Remove(filepath.Join(s.dir, ref))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove image %s: %w", ref, err)
	}
	return nil
}

// Dir is the directory served under /uploads.
func (s *LocalStore) Dir() string {
	return s.dir
}
