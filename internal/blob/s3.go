package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/raphaelgruber/wellkeep/internal/metrics"
)

// S3Config holds S3 connection configuration.
type S3Config struct {
	Endpoint       string // empty for AWS, set for minio/localstack
	Bucket         string
	Region         string
	AccessKey      string
	SecretKey      string
	ForcePathStyle bool // path-style URLs (minio, localstack)
}

// S3 is a Store backed by S3-compatible object storage.
type S3 struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	metrics   *metrics.Collector
}

// NewS3 creates an S3-backed store. The collector is optional; when non-nil,
// per-operation timings are recorded on it.
func NewS3(ctx context.Context, cfg S3Config, collector *metrics.Collector) (*S3, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	return &S3{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		metrics:   collector,
	}, nil
}

func (s *S3) record(op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordTiming(op, time.Since(start))
	}
}

func (s *S3) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	defer s.record(metrics.OpBlobUpload, time.Now())

	// If-None-Match: * makes the PUT conditional on the path being free
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		if isPreconditionFailed(err) {
			return fmt.Errorf("%w: %s", ErrObjectExists, path)
		}
		return fmt.Errorf("upload %s: %w", path, err)
	}
	return nil
}

func (s *S3) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	defer s.record(metrics.OpBlobSign, time.Now())

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("sign %s: %w", path, err)
	}
	return req.URL, nil
}

func (s *S3) Remove(ctx context.Context, path string) error {
	defer s.record(metrics.OpBlobRemove, time.Now())

	// S3 DeleteObject succeeds for absent keys
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func (s *S3) List(ctx context.Context, prefix string) ([]string, error) {
	var paths []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			paths = append(paths, aws.ToString(obj.Key))
		}
	}
	return paths, nil
}

func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
		return true
	}
	var httpErr interface{ HTTPStatusCode() int }
	return errors.As(err, &httpErr) && httpErr.HTTPStatusCode() == http.StatusPreconditionFailed
}
