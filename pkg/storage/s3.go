package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Storage keeps objects in one S3 bucket. It is safe for concurrent use.
type S3Storage struct {
	client        S3Client
	presigner     S3Presigner
	paginate      paginatorFactory
	bucket        string
	presignTTL    time.Duration
	uploadTimeout time.Duration
}

var _ Storage = (*S3Storage)(nil)

func (s *S3Storage) Bucket() string { return s.bucket }

// Put uploads body in a single PutObject request.
func (s *S3Storage) Put(ctx context.Context, key string, body []byte, opts ...PutOption) (*Object, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	o := newPutOptions(opts)

	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	out, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(o.contentType),
		Metadata:      o.metadata,
	})
	if err != nil {
		return nil, classifyS3Error(err, "upload object")
	}

	return &Object{
		Key:          key,
		Size:         int64(len(body)),
		ContentType:  o.contentType,
		ETag:         aws.ToString(out.ETag),
		LastModified: time.Now().UTC(),
		Metadata:     o.metadata,
	}, nil
}

// Get reads the whole object into memory.
func (s *S3Storage) Get(ctx context.Context, key string) ([]byte, *Object, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, nil, classifyS3Error(err, "get object")
	}
	defer func() { _ = out.Body.Close() }()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, nil, classifyS3Error(err, "read object")
	}

	return body, &Object{
		Key:          key,
		Size:         int64(len(body)),
		ContentType:  aws.ToString(out.ContentType),
		ETag:         aws.ToString(out.ETag),
		LastModified: aws.ToTime(out.LastModified),
		Metadata:     out.Metadata,
	}, nil
}

// List follows continuation tokens until every key under prefix is collected.
// Folder placeholder keys ending in "/" are skipped.
func (s *S3Storage) List(ctx context.Context, prefix string) ([]Object, error) {
	prefix, err := cleanPrefix(prefix)
	if err != nil {
		return nil, err
	}

	pages := s.paginate(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if pages == nil {
		return nil, ErrPaginatorNil
	}

	var objects []Object
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, classifyS3Error(err, "list objects")
		}
		for _, item := range page.Contents {
			key := aws.ToString(item.Key)
			if key == "" || strings.HasSuffix(key, "/") {
				continue
			}
			objects = append(objects, Object{
				Key:          key,
				Size:         aws.ToInt64(item.Size),
				ETag:         aws.ToString(item.ETag),
				LastModified: aws.ToTime(item.LastModified),
			})
		}
	}
	return objects, nil
}

// Exists issues a HeadObject. Any failure, not only 404, reports false.
func (s *S3Storage) Exists(ctx context.Context, key string) bool {
	key, err := cleanKey(key)
	if err != nil {
		return false
	}
	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

// URL presigns a GET for key, valid for the configured TTL.
func (s *S3Storage) URL(ctx context.Context, key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if s.presigner == nil {
		return "", ErrPresignerNil
	}

	signed, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return "", classifyS3Error(err, "presign object")
	}
	return signed.URL, nil
}

// Location returns the s3:// URI of key.
func (s *S3Storage) Location(key string) string {
	key, _ = cleanKey(key)
	return "s3://" + s.bucket + "/" + key
}

// s3ErrorCodes maps S3 API error codes to storage sentinels.
var s3ErrorCodes = map[string]error{
	"NoSuchKey":          ErrObjectNotFound,
	"NotFound":           ErrObjectNotFound,
	"NoSuchBucket":       ErrBucketNotFound,
	"AccessDenied":       ErrAccessDenied,
	"Forbidden":          ErrAccessDenied,
	"RequestTimeout":     ErrRequestTimeout,
	"SlowDown":           ErrServiceUnavailable,
	"ServiceUnavailable": ErrServiceUnavailable,
	"InvalidObjectState": ErrInvalidObjectState,
}

// classifyS3Error wraps err with the matching sentinel so callers can use errors.Is
// without knowing the SDK's error types. The original error stays in the chain.
func classifyS3Error(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: %w", ErrOperationTimeout, op, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s: %w", ErrOperationCanceled, op, err)
	}

	var (
		noKey    *types.NoSuchKey
		notFound *types.NotFound
		noBucket *types.NoSuchBucket
	)
	switch {
	case errors.As(err, &noKey), errors.As(err, &notFound):
		return fmt.Errorf("%w: %s: %w", ErrObjectNotFound, op, err)
	case errors.As(err, &noBucket):
		return fmt.Errorf("%w: %s: %w", ErrBucketNotFound, op, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if sentinel, ok := s3ErrorCodes[apiErr.ErrorCode()]; ok {
			return fmt.Errorf("%w: %s: %w", sentinel, op, err)
		}
		return fmt.Errorf("%s failed (code %s): %w", op, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
