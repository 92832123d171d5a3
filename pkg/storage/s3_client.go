package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultPresignTTL is the lifetime of download URLs when S3Config.PresignTTL is zero.
const DefaultPresignTTL = time.Hour

// S3Client is the subset of *s3.Client used by S3Storage.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3ListObjectsV2Paginator walks ListObjectsV2 pages. *s3.ListObjectsV2Paginator satisfies it.
type S3ListObjectsV2Paginator interface {
	HasMorePages() bool
	NextPage(ctx context.Context, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Presigner signs GetObject requests. *s3.PresignClient satisfies it.
type S3Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type paginatorFactory func(client S3Client, params *s3.ListObjectsV2Input) S3ListObjectsV2Paginator

// S3Config describes the bucket and how to reach it.
// Static credentials are optional; without them the default AWS chain is used,
// which is the Lambda execution role in production.
type S3Config struct {
	Bucket         string
	Region         string
	AccessKeyID    string
	SecretKey      string
	SessionToken   string
	Endpoint       string
	ForcePathStyle bool
	PresignTTL     time.Duration
}

func (c S3Config) staticCredentials() aws.CredentialsProvider {
	if c.AccessKeyID == "" || c.SecretKey == "" {
		return nil
	}
	return credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretKey, c.SessionToken)
}

// S3Option customizes NewS3Storage, mostly for tests.
type S3Option func(*s3Setup)

type s3Setup struct {
	client        S3Client
	presigner     S3Presigner
	paginate      paginatorFactory
	uploadTimeout time.Duration
}

// WithS3Client replaces the SDK client, skipping AWS config loading.
func WithS3Client(client S3Client) S3Option {
	return func(s *s3Setup) { s.client = client }
}

// WithPresigner sets the signer used by URL. Needed when WithS3Client is given
// something other than *s3.Client.
func WithPresigner(p S3Presigner) S3Option {
	return func(s *s3Setup) { s.presigner = p }
}

func WithPaginatorFactory(f func(client S3Client, params *s3.ListObjectsV2Input) S3ListObjectsV2Paginator) S3Option {
	return func(s *s3Setup) { s.paginate = f }
}

// WithS3UploadTimeout bounds each Put. Zero leaves the caller's deadline alone.
func WithS3UploadTimeout(d time.Duration) S3Option {
	return func(s *s3Setup) { s.uploadTimeout = d }
}

// NewS3Storage connects to cfg.Bucket. Bucket and region are required.
func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	setup := s3Setup{paginate: sdkPaginator}
	for _, opt := range opts {
		opt(&setup)
	}

	if setup.client == nil {
		client, err := dialS3(ctx, cfg)
		if err != nil {
			return nil, err
		}
		setup.client = client
	}
	if setup.presigner == nil {
		if sdk, ok := setup.client.(*s3.Client); ok {
			setup.presigner = s3.NewPresignClient(sdk)
		}
	}

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}

	return &S3Storage{
		client:        setup.client,
		presigner:     setup.presigner,
		paginate:      setup.paginate,
		bucket:        cfg.Bucket,
		presignTTL:    ttl,
		uploadTimeout: setup.uploadTimeout,
	}, nil
}

// dialS3 loads the AWS configuration for cfg.Region and builds an SDK client.
// Endpoint and ForcePathStyle point the client at MinIO or LocalStack.
func dialS3(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if creds := cfg.staticCredentials(); creds != nil {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(creds))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	}), nil
}

func sdkPaginator(client S3Client, params *s3.ListObjectsV2Input) S3ListObjectsV2Paginator {
	return s3.NewListObjectsV2Paginator(client, params)
}
