package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/tizor98/albertonet-sub000/pkg/logger"
)

// S3Store serves the content tree from an S3 bucket.
type S3Store struct {
	client   *s3.Client
	bucket   string
	maxItems int32
}

// NewS3Store builds a store over the named bucket using the ambient AWS
// credential chain.
func NewS3Store(bucket string, maxItems int) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &S3Store{
		client:   s3.NewFromConfig(cfg),
		bucket:   bucket,
		maxItems: int32(maxItems),
	}, nil
}

// List returns at most maxItems keys per call; that cap, not pagination, is
// this backend's listing contract.
func (s *S3Store) List(ctx context.Context, prefix string) ([]string, error) {
	in := &s3.ListObjectsV2Input{
		Bucket: &s.bucket,
		Prefix: &prefix,
	}
	if s.maxItems > 0 {
		maxKeys := s.maxItems
		in.MaxKeys = &maxKeys
	}

	out, err := s.client.ListObjectsV2(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}

	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		if obj.Key == nil {
			continue
		}
		keys = append(keys, *obj.Key)
	}

	logger.Debug("listed objects", "bucket", s.bucket, "prefix", prefix, "count", len(keys))
	return keys, nil
}

func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		if isNotFound(err) {
			logger.Debug("object not found", "bucket", s.bucket, "key", key)
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return raw, nil
}

func (s *S3Store) GetIn(ctx context.Context, prefix, name string) ([]byte, error) {
	return s.Get(ctx, path.Join(prefix, name))
}

// isNotFound reports whether err is the service's missing-object error.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &noSuchKey)
}
