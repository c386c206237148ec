package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tizor98/albertonet-sub000/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, config.BackendS3, cfg.Storage.Backend)
	assert.Equal(t, 5, cfg.Storage.MaxItems)
	assert.Equal(t, "posts", cfg.Content.PostsPrefix)
	assert.Equal(t, "posts/top/topPosts.json", cfg.Content.TopPostsKey)
	assert.Equal(t, 3, cfg.Content.RetryCount)
	assert.Equal(t, time.Second, cfg.Content.RetryBackoff)
	assert.Equal(t, "en", cfg.Site.DefaultLocale)
	assert.Equal(t, 10*time.Second, cfg.Contact.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "fs")
	t.Setenv("CONTENT_ROOT", "/var/content")
	t.Setenv("MAX_LIST_ITEMS", "50")
	t.Setenv("STORAGE_RETRY_BACKOFF", "250ms")

	cfg := config.Load()

	assert.Equal(t, config.BackendFS, cfg.Storage.Backend)
	assert.Equal(t, "/var/content", cfg.Storage.Root)
	assert.Equal(t, 50, cfg.Storage.MaxItems)
	assert.Equal(t, 250*time.Millisecond, cfg.Content.RetryBackoff)
	assert.Equal(t, "posts/topPosts.json", cfg.Content.TopPostsKey,
		"fs layout keeps the manifest next to the post files")
}

func TestLoad_IgnoresUnparseableValues(t *testing.T) {
	t.Setenv("MAX_LIST_ITEMS", "many")
	t.Setenv("STORAGE_RETRY_BACKOFF", "soon")

	cfg := config.Load()

	assert.Equal(t, 5, cfg.Storage.MaxItems)
	assert.Equal(t, time.Second, cfg.Content.RetryBackoff)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		storage config.StorageConfig
		wantErr string
	}{
		{name: "fs with root", storage: config.StorageConfig{Backend: "fs", Root: "."}},
		{name: "fs without root", storage: config.StorageConfig{Backend: "fs"}, wantErr: "CONTENT_ROOT"},
		{name: "s3 with bucket", storage: config.StorageConfig{Backend: "s3", Bucket: "content"}},
		{name: "s3 without bucket", storage: config.StorageConfig{Backend: "s3"}, wantErr: "POSTS_BUCKET"},
		{name: "unknown backend", storage: config.StorageConfig{Backend: "ftp"}, wantErr: "unknown storage backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Storage: tt.storage}
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
