package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/rpupo63/project-showcase-backend/errs"
)

// ObjectStore is the minimal capability set the submission repository needs
// from a blob store. Any S3-compatible service satisfies it; tests swap in an
// in-memory fake.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	List(ctx context.Context, bucket string) ([]string, error)
}

// S3Config carries the connection settings for an S3-compatible store. The
// values come from the environment; nothing here is defaulted or validated
// beyond what the SDK requires.
type S3Config struct {
	Endpoint       string
	Region         string
	AccessKeyID    string
	SecretKey      string
	ForcePathStyle bool
}

// S3Store implements ObjectStore over an S3-compatible service. It holds no
// state besides the SDK client and is safe for concurrent use.
type S3Store struct {
	client *s3.Client
}

// NewS3Store builds the shared S3 client. Construct it once at startup and
// inject it wherever storage access is needed.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// S3-compatible stores often require path-style addressing
		o.UsePathStyle = cfg.ForcePathStyle
	})

	return &S3Store{client: client}, nil
}

func (s *S3Store) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Get returns the full object body. An absent key comes back wrapped in
// errs.ErrObjectNotFound so callers never have to touch SDK error types; any
// other failure passes through unchanged.
func (s *S3Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%s/%s: %w", bucket, key, errs.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("get object %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s/%s: %w", bucket, key, err)
	}
	return body, nil
}

func (s *S3Store) List(ctx context.Context, bucket string) ([]string, error) {
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("list bucket %s: %w", bucket, err)
	}

	keys := make([]string, 0, len(out.Contents))
	for _, item := range out.Contents {
		if item.Key != nil {
			keys = append(keys, *item.Key)
		}
	}
	return keys, nil
}
