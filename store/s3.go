package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store is a Store backed by an S3-compatible bucket (S3, R2, MinIO).
// Each key maps to one object at <prefix>/<key>/data.json; the object's
// LastModified is the staleness signal.
type S3Store struct {
	client   S3API
	bucket   string
	prefix   string
	artifact string
}

// NewS3Store creates an S3Store on an existing client.
func NewS3Store(client S3API, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix, artifact: DefaultArtifact}
}

// NewS3Client builds an S3 client from ambient AWS configuration
// (environment, shared config, instance role).
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// ObjectKey returns the bucket key an entry key maps to.
func (s *S3Store) ObjectKey(key string) string {
	return path.Join(s.prefix, key, s.artifact)
}

// EnsureNamespace is a no-op; bucket keyspaces are flat.
func (s *S3Store) EnsureNamespace(context.Context, string) error { return nil }

// Exists reports whether an object is present for key.
func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.ObjectKey(key)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("store: head %q: %w", key, err)
	}
	return true, nil
}

// Age returns time elapsed since the object for key was last written.
func (s *S3Store) Age(ctx context.Context, key string) (time.Duration, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.ObjectKey(key)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return 0, fmt.Errorf("store: age of %q: %w", key, ErrNotExist)
		}
		return 0, fmt.Errorf("store: head %q: %w", key, err)
	}
	if out.LastModified == nil {
		return 0, fmt.Errorf("store: age of %q: object has no last-modified", key)
	}
	return time.Since(*out.LastModified), nil
}

// Read returns the object bytes for key.
func (s *S3Store) Read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.ObjectKey(key)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, fmt.Errorf("store: read %q: %w", key, ErrNotExist)
		}
		return nil, fmt.Errorf("store: read %q: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("store: read %q: %w", key, err)
	}
	return data, nil
}

// Write replaces the object for key. S3 puts are atomic per object, so
// readers see either the old or the new payload; concurrent writers of
// the same key race and the last put wins.
func (s *S3Store) Write(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.ObjectKey(key)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("store: write %q: %w", key, err)
	}
	return nil
}

func isS3NotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &notFound) || errors.As(err, &noSuchKey)
}

// Ensure S3Store implements Store
var _ Store = (*S3Store)(nil)
