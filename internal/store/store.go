// Package store abstracts the content tree behind one capability surface:
// list keys under a prefix, fetch raw bytes by key. The backend is selected
// once at startup from configuration.
package store

import (
	"context"
	"fmt"

	"github.com/tizor98/albertonet-sub000/internal/config"
)

// Store is the contract every backend satisfies.
//
// Get and GetIn return nil bytes with a nil error when the object does not
// exist: absence is an expected outcome, not a failure. Transport problems
// (permissions, network) still surface as errors.
type Store interface {
	// List returns the keys under prefix. An absent or empty prefix yields
	// an empty slice, not an error. Network backends cap the keys returned
	// per call at the configured MaxItems; callers that need the complete
	// set must raise the cap.
	List(ctx context.Context, prefix string) ([]string, error)
	// Get fetches one object by exact key.
	Get(ctx context.Context, key string) ([]byte, error)
	// GetIn fetches the object named name under prefix.
	GetIn(ctx context.Context, prefix, name string) ([]byte, error)
}

// New builds the backend named by cfg.Backend.
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendFS:
		return NewFSStore(cfg.Root), nil
	case config.BackendS3:
		return NewS3Store(cfg.Bucket, cfg.MaxItems)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
