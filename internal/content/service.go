// Package content assembles typed post records from the raw document store.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tizor98/albertonet-sub000/internal/config"
	"github.com/tizor98/albertonet-sub000/internal/frontmatter"
	"github.com/tizor98/albertonet-sub000/internal/model"
	"github.com/tizor98/albertonet-sub000/internal/store"
	"github.com/tizor98/albertonet-sub000/pkg/logger"
)

// PostSuffix is the extension post documents carry; anything else under the
// posts prefix is tolerated and skipped.
const PostSuffix = ".mdx"

// Service is the post catalog over a document store.
type Service struct {
	store        store.Store
	prefix       string
	topPostsKey  string
	projectsKey  string
	retryCount   int
	retryBackoff time.Duration
}

func NewService(st store.Store, cfg config.ContentConfig) *Service {
	retries := cfg.RetryCount
	if retries < 1 {
		retries = 1
	}
	return &Service{
		store:        st,
		prefix:       strings.TrimSuffix(cfg.PostsPrefix, "/"),
		topPostsKey:  cfg.TopPostsKey,
		projectsKey:  cfg.ProjectsKey,
		retryCount:   retries,
		retryBackoff: cfg.RetryBackoff,
	}
}

// ToPost parses a raw document and assembles the Post for slug.
func ToPost(slug string, raw []byte) (*model.Post, error) {
	doc, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", slug, err)
	}
	return model.NewPost(slug, doc.Metadata, doc.Content)
}

// SlugFromKey derives the post slug: final path segment minus the suffix.
func SlugFromKey(key string) string {
	return strings.TrimSuffix(path.Base(key), PostSuffix)
}

// IsPostKey reports whether key names a post document.
func IsPostKey(key string) bool {
	return strings.HasSuffix(key, PostSuffix)
}

// Posts assembles the whole catalog: list the posts prefix, fetch every
// document concurrently, drop the ones that are absent or unreadable, and
// sort by publication date, newest first. A single bad document never fails
// the batch; a failed listing does.
func (s *Service) Posts(ctx context.Context) ([]model.Post, error) {
	keys, err := withRetry(ctx, s.retryCount, s.retryBackoff, "list "+s.prefix, func() ([]string, error) {
		return s.store.List(ctx, s.prefix+"/")
	})
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		posts []model.Post
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		if !IsPostKey(key) {
			logger.Debug("skipping non-post object", "key", key)
			continue
		}
		g.Go(func() error {
			raw, err := s.fetch(gctx, key)
			switch {
			case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
				return err
			case err != nil:
				logger.Warn("dropping post from batch", "key", key, "error", err)
				return nil
			case raw == nil:
				logger.Warn("post listed but absent", "key", key)
				return nil
			}

			post, err := ToPost(SlugFromKey(key), raw)
			if err != nil {
				logger.Warn("dropping unreadable post", "key", key, "error", err)
				return nil
			}

			mu.Lock()
			posts = append(posts, *post)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PublicationDate.After(posts[j].PublicationDate)
	})

	logger.Info("assembled post catalog", "count", len(posts))
	return posts, nil
}

// Post fetches one post by slug; nil without error when it does not exist.
func (s *Service) Post(ctx context.Context, slug string) (*model.Post, error) {
	key := path.Join(s.prefix, slug+PostSuffix)
	raw, err := s.fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return ToPost(slug, raw)
}

// TopPosts returns the curated manifest rows. The manifest is plain JSON,
// never front-matter parsed; an absent manifest is an empty list.
func (s *Service) TopPosts(ctx context.Context) ([]model.TopPost, error) {
	top := []model.TopPost{}
	found, err := s.manifest(ctx, s.topPostsKey, &top)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Warn("top posts manifest absent", "key", s.topPostsKey)
	}
	return top, nil
}

// Projects returns the projects manifest rows; absent manifest is an empty
// list.
func (s *Service) Projects(ctx context.Context) ([]model.Project, error) {
	projects := []model.Project{}
	found, err := s.manifest(ctx, s.projectsKey, &projects)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Warn("projects manifest absent", "key", s.projectsKey)
	}
	return projects, nil
}

// fetch wraps store.Get with the retry policy. Absence (nil bytes) comes
// back as-is and is never retried.
func (s *Service) fetch(ctx context.Context, key string) ([]byte, error) {
	return withRetry(ctx, s.retryCount, s.retryBackoff, "get "+key, func() ([]byte, error) {
		return s.store.Get(ctx, key)
	})
}

// manifest fetches one curated JSON document by prefix and name and decodes
// it into v. Returns false when the manifest does not exist.
func (s *Service) manifest(ctx context.Context, key string, v any) (bool, error) {
	raw, err := withRetry(ctx, s.retryCount, s.retryBackoff, "get "+key, func() ([]byte, error) {
		return s.store.GetIn(ctx, path.Dir(key), path.Base(key))
	})
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode manifest %s: %w", key, err)
	}
	return true, nil
}

// withRetry runs fn up to retries times, waiting attempt*backoff between
// tries and honoring ctx while waiting. Transient transport errors are the
// target; fn deciding an object is absent returns normally and is not
// retried.
func withRetry[T any](ctx context.Context, retries int, backoff time.Duration, op string, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(time.Duration(attempt) * backoff):
			}
			logger.Warn("retrying storage call", "op", op, "attempt", attempt+1)
		}

		v, err := fn()
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return zero, fmt.Errorf("%s after %d attempts: %w", op, retries, lastErr)
}
