package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Backend names accepted by STORAGE_BACKEND.
const (
	BackendFS = "fs"
	BackendS3 = "s3"
)

// Config carries every runtime setting for the content core.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Content ContentConfig `mapstructure:"content"`
	Site    SiteConfig    `mapstructure:"site"`
	Contact ContactConfig `mapstructure:"contact"`
}

type StorageConfig struct {
	// Backend selects the store implementation at startup: "fs" or "s3".
	Backend string `mapstructure:"backend"`
	// Bucket is the object-store bucket holding the content tree.
	Bucket string `mapstructure:"bucket"`
	// Root is the local directory holding the content tree.
	Root string `mapstructure:"root"`
	// MaxItems caps keys returned per listing call on network backends.
	MaxItems int `mapstructure:"max_items"`
}

type ContentConfig struct {
	PostsPrefix  string        `mapstructure:"posts_prefix"`
	TopPostsKey  string        `mapstructure:"top_posts_key"`
	ProjectsKey  string        `mapstructure:"projects_key"`
	RetryCount   int           `mapstructure:"retry_count"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

type SiteConfig struct {
	Title         string `mapstructure:"title"`
	URL           string `mapstructure:"url"`
	Description   string `mapstructure:"description"`
	Author        string `mapstructure:"author"`
	DefaultLocale string `mapstructure:"default_locale"`
}

type ContactConfig struct {
	// FunctionURL is the endpoint of the external message-sending function.
	// Empty means dispatched messages are only logged.
	FunctionURL string        `mapstructure:"function_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from the environment, falling back to defaults
// suited to the deployed site.
func Load() *Config {
	backend := getEnv("STORAGE_BACKEND", BackendS3)
	return &Config{
		Storage: StorageConfig{
			Backend:  backend,
			Bucket:   getEnv("POSTS_BUCKET", ""),
			Root:     getEnv("CONTENT_ROOT", "."),
			MaxItems: getEnvInt("MAX_LIST_ITEMS", 5),
		},
		Content: ContentConfig{
			PostsPrefix:  getEnv("POSTS_PREFIX", "posts"),
			TopPostsKey:  getEnv("TOP_POSTS_KEY", defaultTopPostsKey(backend)),
			ProjectsKey:  getEnv("PROJECTS_KEY", "projects/projects.json"),
			RetryCount:   getEnvInt("STORAGE_RETRY_COUNT", 3),
			RetryBackoff: getEnvDuration("STORAGE_RETRY_BACKOFF", time.Second),
		},
		Site: SiteConfig{
			Title:         getEnv("SITE_TITLE", "albertonet"),
			URL:           getEnv("SITE_URL", "https://www.albertonet.com"),
			Description:   getEnv("SITE_DESCRIPTION", "Personal blog and portfolio"),
			Author:        getEnv("SITE_AUTHOR", "Alberto"),
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		},
		Contact: ContactConfig{
			FunctionURL: getEnv("EMAIL_FUNCTION_URL", ""),
			Timeout:     getEnvDuration("EMAIL_TIMEOUT", 10*time.Second),
		},
	}
}

// Validate checks the settings the selected backend cannot run without.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFS:
		if c.Storage.Root == "" {
			return fmt.Errorf("fs backend requires CONTENT_ROOT")
		}
	case BackendS3:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("s3 backend requires POSTS_BUCKET")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// The object-store layout keeps the manifest under posts/top/, the
// filesystem layout keeps it next to the post files.
func defaultTopPostsKey(backend string) string {
	if backend == BackendFS {
		return "posts/topPosts.json"
	}
	return "posts/top/topPosts.json"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
