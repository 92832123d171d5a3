package storage

import (
	"context"
	"fmt"
	"time"
)

const (
	DriverS3    = "s3"
	DriverLocal = "local"
)

// Config selects and configures a storage backend.
// The S3 bucket and region defaults match the deployed portal stack.
type Config struct {
	Driver         string        `env:"STORAGE_DRIVER" envDefault:"s3"`
	Bucket         string        `env:"S3_BUCKET" envDefault:"deck-backend-demo"`
	Region         string        `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID    string        `env:"AWS_ACCESS_KEY_ID"`
	SecretKey      string        `env:"AWS_SECRET_ACCESS_KEY"`
	SessionToken   string        `env:"AWS_SESSION_TOKEN"`
	Endpoint       string        `env:"S3_ENDPOINT"`
	ForcePathStyle bool          `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
	PresignTTL     time.Duration `env:"PRESIGN_TTL" envDefault:"1h"`
	UploadTimeout  time.Duration `env:"S3_UPLOAD_TIMEOUT" envDefault:"30s"`
	LocalDir       string        `env:"LOCAL_STORAGE_DIR" envDefault:"./data"`
	LocalBaseURL   string        `env:"LOCAL_STORAGE_URL" envDefault:"/files/"`
}

// New builds the backend named by cfg.Driver. Extra S3 options are applied to the S3 backend only.
func New(ctx context.Context, cfg Config, opts ...S3Option) (Storage, error) {
	switch cfg.Driver {
	case DriverS3, "":
		s3opts := append([]S3Option{WithS3UploadTimeout(cfg.UploadTimeout)}, opts...)
		return NewS3Storage(ctx, S3Config{
			Bucket:         cfg.Bucket,
			Region:         cfg.Region,
			AccessKeyID:    cfg.AccessKeyID,
			SecretKey:      cfg.SecretKey,
			SessionToken:   cfg.SessionToken,
			Endpoint:       cfg.Endpoint,
			ForcePathStyle: cfg.ForcePathStyle,
			PresignTTL:     cfg.PresignTTL,
		}, s3opts...)
	case DriverLocal:
		return NewLocalStorage(cfg.LocalDir, cfg.LocalBaseURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
