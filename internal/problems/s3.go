package problems

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectGetter is the subset of *s3.Client used by S3Store.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store fetches one Problem object per qkey from
// s3://<bucket>/<prefix>/<qkey>.json, falling back to <qkey>.json.zst.
type S3Store struct {
	client ObjectGetter
	bucket string
	prefix string
}

func NewS3Store(client ObjectGetter, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *S3Store) key(qkey, ext string) string {
	return path.Join(s.prefix, qkey+ext)
}

func (s *S3Store) Samples(ctx context.Context, qkey string) ([]SampleCase, error) {
	if qkey == "" || strings.ContainsAny(qkey, "/\\") || strings.Contains(qkey, "..") {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, qkey)
	}
	for _, ext := range []string{".json", ".json.zst"} {
		p, err := s.fetch(ctx, s.key(qkey, ext))
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return p.Samples, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, qkey)
}

func (s *S3Store) fetch(ctx context.Context, key string) (*Problem, error) {
	obj, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.bucket, key, err)
	}
	defer func() {
		_ = obj.Body.Close()
	}()

	compressed := strings.HasSuffix(key, ".zst") ||
		(obj.ContentType != nil && *obj.ContentType == "application/zstd")
	var p Problem
	if err := decode(obj.Body, compressed, &p); err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", s.bucket, key, err)
	}
	return &p, nil
}
