package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FSStore serves the content tree from a local directory. Keys are
// slash-separated paths relative to root, mirroring the object-store layout.
type FSStore struct {
	root string
}

func NewFSStore(root string) *FSStore {
	return &FSStore{root: root}
}

// List returns one key per regular file directly under prefix.
func (s *FSStore) List(_ context.Context, prefix string) ([]string, error) {
	clean := strings.TrimSuffix(prefix, "/")
	entries, err := os.ReadDir(filepath.Join(s.root, filepath.FromSlash(clean)))
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		keys = append(keys, path.Join(clean, entry.Name()))
	}
	return keys, nil
}

func (s *FSStore) Get(_ context.Context, key string) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(key)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return raw, nil
}

func (s *FSStore) GetIn(ctx context.Context, prefix, name string) ([]byte, error) {
	return s.Get(ctx, path.Join(prefix, name))
}
