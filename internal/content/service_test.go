package content_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tizor98/albertonet-sub000/internal/config"
	"github.com/tizor98/albertonet-sub000/internal/content"
	"github.com/tizor98/albertonet-sub000/internal/frontmatter"
	"github.com/tizor98/albertonet-sub000/internal/model"
)

// fakeStore satisfies store.Store with per-test function fields.
type fakeStore struct {
	ListFunc  func(ctx context.Context, prefix string) ([]string, error)
	GetFunc   func(ctx context.Context, key string) ([]byte, error)
	GetInFunc func(ctx context.Context, prefix, name string) ([]byte, error)
}

func (f *fakeStore) List(ctx context.Context, prefix string) ([]string, error) {
	return f.ListFunc(ctx, prefix)
}

func (f *fakeStore) Get(ctx context.Context, key string) ([]byte, error) {
	return f.GetFunc(ctx, key)
}

func (f *fakeStore) GetIn(ctx context.Context, prefix, name string) ([]byte, error) {
	return f.GetInFunc(ctx, prefix, name)
}

func testConfig() config.ContentConfig {
	return config.ContentConfig{
		PostsPrefix:  "posts",
		TopPostsKey:  "posts/top/topPosts.json",
		ProjectsKey:  "projects/projects.json",
		RetryCount:   3,
		RetryBackoff: time.Millisecond,
	}
}

func postDoc(title, date string) []byte {
	return frontmatter.Encode(map[string]string{
		"title":           title,
		"description":     "desc",
		"categories":      "software",
		"publicationDate": date,
	}, "body")
}

func TestPosts_SortedNewestFirst(t *testing.T) {
	docs := map[string][]byte{
		"posts/older.mdx":  postDoc("Older", "2023-05-01"),
		"posts/newest.mdx": postDoc("Newest", "2024-03-01"),
		"posts/middle.mdx": postDoc("Middle", "2023-11-15"),
	}
	st := &fakeStore{
		ListFunc: func(_ context.Context, prefix string) ([]string, error) {
			assert.Equal(t, "posts/", prefix)
			return []string{"posts/older.mdx", "posts/newest.mdx", "posts/middle.mdx", "posts/topPosts.json"}, nil
		},
		GetFunc: func(_ context.Context, key string) ([]byte, error) {
			return docs[key], nil
		},
	}

	posts, err := content.NewService(st, testConfig()).Posts(context.Background())
	require.NoError(t, err)

	require.Len(t, posts, 3)
	assert.Equal(t, "newest", posts[0].Slug)
	assert.Equal(t, "middle", posts[1].Slug)
	assert.Equal(t, "older", posts[2].Slug)
}

func TestPosts_DropsAbsentAndMalformed(t *testing.T) {
	docs := map[string][]byte{
		"posts/good.mdx":      postDoc("Good", "2024-01-01"),
		"posts/malformed.mdx": []byte("no front matter here"),
		"posts/partial.mdx":   frontmatter.Encode(map[string]string{"title": "only title"}, "body"),
		// posts/gone.mdx listed but never stored
	}
	st := &fakeStore{
		ListFunc: func(_ context.Context, _ string) ([]string, error) {
			return []string{"posts/good.mdx", "posts/malformed.mdx", "posts/partial.mdx", "posts/gone.mdx"}, nil
		},
		GetFunc: func(_ context.Context, key string) ([]byte, error) {
			return docs[key], nil
		},
	}

	posts, err := content.NewService(st, testConfig()).Posts(context.Background())
	require.NoError(t, err)

	require.Len(t, posts, 1)
	assert.Equal(t, "good", posts[0].Slug)
}

func TestPosts_EmptyListing(t *testing.T) {
	st := &fakeStore{
		ListFunc: func(_ context.Context, _ string) ([]string, error) {
			return []string{}, nil
		},
	}

	posts, err := content.NewService(st, testConfig()).Posts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPosts_ListFailureFailsBatch(t *testing.T) {
	var attempts int
	st := &fakeStore{
		ListFunc: func(_ context.Context, _ string) ([]string, error) {
			attempts++
			return nil, errors.New("bucket unreachable")
		},
	}

	_, err := content.NewService(st, testConfig()).Posts(context.Background())
	assert.ErrorContains(t, err, "bucket unreachable")
	assert.ErrorContains(t, err, "after 3 attempts")
	assert.Equal(t, 3, attempts)
}

func TestPosts_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	st := &fakeStore{
		ListFunc: func(_ context.Context, _ string) ([]string, error) {
			return []string{"posts/a.mdx"}, nil
		},
		GetFunc: func(ctx context.Context, _ string) ([]byte, error) {
			cancel()
			return nil, ctx.Err()
		},
	}

	_, err := content.NewService(st, testConfig()).Posts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPost(t *testing.T) {
	st := &fakeStore{
		GetFunc: func(_ context.Context, key string) ([]byte, error) {
			assert.Equal(t, "posts/my-first-post.mdx", key)
			return postDoc("My First Post", "2024-01-01"), nil
		},
	}

	post, err := content.NewService(st, testConfig()).Post(context.Background(), "my-first-post")
	require.NoError(t, err)
	assert.Equal(t, "my-first-post", post.Slug)
	assert.Equal(t, "My First Post", post.Title)
}

func TestPost_AbsentIsNilNotError(t *testing.T) {
	var attempts int
	st := &fakeStore{
		GetFunc: func(_ context.Context, _ string) ([]byte, error) {
			attempts++
			return nil, nil
		},
	}

	post, err := content.NewService(st, testConfig()).Post(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, post)
	assert.Equal(t, 1, attempts, "absence is not retried")
}

func TestPost_RetriesTransientFailures(t *testing.T) {
	var attempts int
	st := &fakeStore{
		GetFunc: func(_ context.Context, _ string) ([]byte, error) {
			attempts++
			if attempts < 3 {
				return nil, errors.New("timeout")
			}
			return postDoc("Eventually", "2024-01-01"), nil
		},
	}

	post, err := content.NewService(st, testConfig()).Post(context.Background(), "eventually")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, "Eventually", post.Title)
}

func TestPost_MalformedDocument(t *testing.T) {
	st := &fakeStore{
		GetFunc: func(_ context.Context, _ string) ([]byte, error) {
			return []byte("not a document"), nil
		},
	}

	_, err := content.NewService(st, testConfig()).Post(context.Background(), "broken")
	assert.ErrorIs(t, err, frontmatter.ErrMalformed)
}

func TestPost_MissingFieldError(t *testing.T) {
	st := &fakeStore{
		GetFunc: func(_ context.Context, _ string) ([]byte, error) {
			return frontmatter.Encode(map[string]string{
				"title":           "No description",
				"categories":      "software",
				"publicationDate": "2024-01-01",
			}, "body"), nil
		},
	}

	_, err := content.NewService(st, testConfig()).Post(context.Background(), "incomplete")

	var missing *model.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "description", missing.Field)
}

func TestTopPosts(t *testing.T) {
	st := &fakeStore{
		GetInFunc: func(_ context.Context, prefix, name string) ([]byte, error) {
			assert.Equal(t, "posts/top", prefix)
			assert.Equal(t, "topPosts.json", name)
			return []byte(`[{"slug":"hello","title":"Hello","categories":"software;go","publicationDate":"2024-01-01"}]`), nil
		},
	}

	top, err := content.NewService(st, testConfig()).TopPosts(context.Background())
	require.NoError(t, err)

	require.Len(t, top, 1)
	assert.Equal(t, "hello", top[0].Slug)
	assert.Equal(t, "software;go", top[0].Categories, "manifest categories stay joined")
	assert.Equal(t, "2024-01-01", top[0].PublicationDate, "manifest dates stay unparsed")
}

func TestTopPosts_AbsentManifestIsEmpty(t *testing.T) {
	st := &fakeStore{
		GetInFunc: func(_ context.Context, _, _ string) ([]byte, error) {
			return nil, nil
		},
	}

	top, err := content.NewService(st, testConfig()).TopPosts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}

func TestTopPosts_MalformedManifest(t *testing.T) {
	st := &fakeStore{
		GetInFunc: func(_ context.Context, _, _ string) ([]byte, error) {
			return []byte("{not json"), nil
		},
	}

	_, err := content.NewService(st, testConfig()).TopPosts(context.Background())
	assert.ErrorContains(t, err, "decode manifest")
}

func TestProjects(t *testing.T) {
	st := &fakeStore{
		GetInFunc: func(_ context.Context, prefix, name string) ([]byte, error) {
			assert.Equal(t, "projects", prefix)
			assert.Equal(t, "projects.json", name)
			return []byte(`[{"name":"albertonet","description":"This site","technologies":["go","aws"],"featured":true}]`), nil
		},
	}

	projects, err := content.NewService(st, testConfig()).Projects(context.Background())
	require.NoError(t, err)

	require.Len(t, projects, 1)
	assert.Equal(t, "albertonet", projects[0].Name)
	assert.Equal(t, []string{"go", "aws"}, projects[0].Technologies)
	assert.True(t, projects[0].Featured)
}

func TestSlugFromKey(t *testing.T) {
	assert.Equal(t, "my-post", content.SlugFromKey("posts/my-post.mdx"))
	assert.Equal(t, "nested", content.SlugFromKey("posts/2024/nested.mdx"))
}

func TestIsPostKey(t *testing.T) {
	assert.True(t, content.IsPostKey("posts/a.mdx"))
	assert.False(t, content.IsPostKey("posts/topPosts.json"))
}
