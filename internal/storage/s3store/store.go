// Package s3store is the S3-compatible blob store backing image uploads
// (AWS S3, MinIO, or any endpoint speaking the S3 API).
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	defaultRegion = "us-east-1"

	// MaxPresignTTL is the longest expiry SigV4 allows on a presigned URL
	MaxPresignTTL = 7 * 24 * time.Hour
)

// ErrMissingBucket is returned when no bucket is configured
var ErrMissingBucket = errors.New("s3 bucket is required")

// Config configures the store
type Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string // when set, objects are served from here instead of presigned URLs
	PresignTTL    time.Duration
	UsePathStyle  bool
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

type objectWriter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type objectPresigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Store uploads objects to one bucket and hands out URLs to them
type Store struct {
	client    objectWriter
	presigner objectPresigner
	logger    *slog.Logger
	cfg       Config
}

// New builds a store from static credentials. optFns are applied to the S3 client options last.
func New(ctx context.Context, cfg Config, logger *slog.Logger, optFns ...func(*s3.Options)) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Bucket == "" {
		return nil, ErrMissingBucket
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	if cfg.PresignTTL <= 0 || cfg.PresignTTL > MaxPresignTTL {
		cfg.PresignTTL = MaxPresignTTL
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
		for _, fn := range optFns {
			fn(o)
		}
	})

	return &Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		logger:    logger,
		cfg:       cfg,
	}, nil
}

// Upload writes data under key
func (s *Store) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("s3 put object failed", "bucket", s.cfg.Bucket, "key", key, "error", err)
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}

	s.logger.Debug("s3 object stored", "bucket", s.cfg.Bucket, "key", key, "size", len(data))
	return nil
}

// PublicURL returns the public URL of key, or a presigned GET when no public base URL is configured
func (s *Store) PublicURL(ctx context.Context, key string) (string, error) {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + url.PathEscape(key), nil
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.cfg.PresignTTL))
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", key, err)
	}
	return req.URL, nil
}
