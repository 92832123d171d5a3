package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cardmia/ecgportal/pkg/storage"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

// MockS3ListObjectsV2Paginator is a mock implementation of the S3ListObjectsV2Paginator interface
type MockS3ListObjectsV2Paginator struct {
	mock.Mock
}

func (m *MockS3ListObjectsV2Paginator) HasMorePages() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockS3ListObjectsV2Paginator) NextPage(ctx context.Context, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

// MockPresigner is a mock implementation of the S3Presigner interface
type MockPresigner struct {
	mock.Mock
}

func (m *MockPresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*v4.PresignedHTTPRequest), args.Error(1)
}

func newTestS3(t *testing.T, client *MockS3Client, opts ...storage.S3Option) *storage.S3Storage {
	t.Helper()
	opts = append([]storage.S3Option{storage.WithS3Client(client)}, opts...)
	s, err := storage.NewS3Storage(context.Background(), storage.S3Config{
		Bucket: "test-bucket",
		Region: "us-east-1",
	}, opts...)
	require.NoError(t, err)
	return s
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		s, err := storage.NewS3Storage(context.Background(), storage.S3Config{
			Bucket:      "test-bucket",
			Region:      "us-east-1",
			AccessKeyID: "test-key",
			SecretKey:   "test-secret",
		})
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "test-bucket", s.Bucket())
	})

	t.Run("with custom endpoint", func(t *testing.T) {
		t.Parallel()
		s, err := storage.NewS3Storage(context.Background(), storage.S3Config{
			Bucket:         "test-bucket",
			Region:         "us-east-1",
			Endpoint:       "http://localhost:4566",
			ForcePathStyle: true,
		})
		require.NoError(t, err)
		require.NotNil(t, s)
	})

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()
		s, err := storage.NewS3Storage(context.Background(), storage.S3Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
		assert.Nil(t, s)
	})

	t.Run("missing region", func(t *testing.T) {
		t.Parallel()
		s, err := storage.NewS3Storage(context.Background(), storage.S3Config{Bucket: "test-bucket"})
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
		assert.Nil(t, s)
	})
}

func TestS3Storage_Put(t *testing.T) {
	t.Parallel()

	t.Run("successful put", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		content := []byte("%PDF-1.7 report")

		client.On("PutObject",
			mock.Anything,
			mock.MatchedBy(func(params *s3.PutObjectInput) bool {
				rs, ok := params.Body.(io.ReadSeeker)
				if !ok {
					return false
				}
				_, _ = rs.Seek(0, io.SeekStart)
				body, _ := io.ReadAll(rs)
				return aws.ToString(params.Bucket) == "test-bucket" &&
					aws.ToString(params.Key) == "doctor-reviewed-reports/DR-1/r.pdf" &&
					aws.ToString(params.ContentType) == "application/pdf" &&
					aws.ToInt64(params.ContentLength) == int64(len(content)) &&
					params.Metadata["doctorid"] == "DR-1" &&
					bytes.Equal(body, content)
			}),
			mock.Anything,
		).Return(&s3.PutObjectOutput{ETag: aws.String(`"abc"`)}, nil)

		s := newTestS3(t, client)
		obj, err := s.Put(context.Background(), "/doctor-reviewed-reports/DR-1/r.pdf", content,
			storage.WithContentType("application/pdf"),
			storage.WithMetadata(map[string]string{"doctorId": "DR-1"}),
		)
		require.NoError(t, err)

		assert.Equal(t, "doctor-reviewed-reports/DR-1/r.pdf", obj.Key)
		assert.Equal(t, `"abc"`, obj.ETag)
		assert.Equal(t, int64(len(content)), obj.Size)
		assert.Equal(t, "application/pdf", obj.ContentType)

		client.AssertExpectations(t)
	})

	t.Run("default content type", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject",
			mock.Anything,
			mock.MatchedBy(func(params *s3.PutObjectInput) bool {
				return aws.ToString(params.ContentType) == "application/octet-stream"
			}),
			mock.Anything,
		).Return(&s3.PutObjectOutput{}, nil)

		s := newTestS3(t, client)
		_, err := s.Put(context.Background(), "a/b", []byte("x"))
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("path traversal attempt", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		s := newTestS3(t, client)

		obj, err := s.Put(context.Background(), "doctors/../../etc/passwd", []byte("x"))
		assert.ErrorIs(t, err, storage.ErrInvalidKey)
		assert.Nil(t, obj)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()
		s := newTestS3(t, new(MockS3Client))

		_, err := s.Put(context.Background(), "/", []byte("x"))
		assert.ErrorIs(t, err, storage.ErrInvalidKey)
	})
}

func TestS3Storage_Get(t *testing.T) {
	t.Parallel()

	t.Run("successful get", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		modified := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

		client.On("GetObject",
			mock.Anything,
			mock.MatchedBy(func(params *s3.GetObjectInput) bool {
				return aws.ToString(params.Key) == "doctors/DR-1.json"
			}),
			mock.Anything,
		).Return(&s3.GetObjectOutput{
			Body:         io.NopCloser(bytes.NewReader([]byte(`{"id":"DR-1"}`))),
			ContentType:  aws.String("application/json"),
			ETag:         aws.String(`"e"`),
			LastModified: aws.Time(modified),
			Metadata:     map[string]string{"doctorid": "DR-1"},
		}, nil)

		s := newTestS3(t, client)
		body, obj, err := s.Get(context.Background(), "doctors/DR-1.json")
		require.NoError(t, err)

		assert.JSONEq(t, `{"id":"DR-1"}`, string(body))
		assert.Equal(t, "application/json", obj.ContentType)
		assert.Equal(t, modified, obj.LastModified)
		assert.Equal(t, "DR-1", obj.Metadata["doctorid"])
		client.AssertExpectations(t)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist")})

		s := newTestS3(t, client)
		_, _, err := s.Get(context.Background(), "doctors/nope.json")
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
		client.AssertExpectations(t)
	})
}

func TestS3Storage_List(t *testing.T) {
	t.Parallel()

	t.Run("all pages", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		newer := older.Add(time.Hour)

		paginator := new(MockS3ListObjectsV2Paginator)
		paginator.On("HasMorePages").Return(true).Twice()
		paginator.On("NextPage", mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{
			Contents: []types.Object{
				{Key: aws.String("doctor-reviewed-reports/DR-1/"), Size: aws.Int64(0)},
				{Key: aws.String("doctor-reviewed-reports/DR-1/a.pdf"), Size: aws.Int64(100), LastModified: aws.Time(older)},
			},
		}, nil).Once()
		paginator.On("NextPage", mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{
			Contents: []types.Object{
				{Key: aws.String("doctor-reviewed-reports/DR-1/b.pdf"), Size: aws.Int64(200), LastModified: aws.Time(newer)},
			},
		}, nil).Once()
		paginator.On("HasMorePages").Return(false).Once()

		var gotPrefix string
		factory := func(_ storage.S3Client, params *s3.ListObjectsV2Input) storage.S3ListObjectsV2Paginator {
			gotPrefix = aws.ToString(params.Prefix)
			return paginator
		}

		s := newTestS3(t, client, storage.WithPaginatorFactory(factory))
		objects, err := s.List(context.Background(), "doctor-reviewed-reports/DR-1/")
		require.NoError(t, err)

		assert.Equal(t, "doctor-reviewed-reports/DR-1/", gotPrefix)
		require.Len(t, objects, 2)
		assert.Equal(t, "doctor-reviewed-reports/DR-1/a.pdf", objects[0].Key)
		assert.Equal(t, int64(200), objects[1].Size)
		assert.Equal(t, newer, objects[1].LastModified)
		paginator.AssertExpectations(t)
	})

	t.Run("default paginator drives the client", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("ListObjectsV2",
			mock.Anything,
			mock.MatchedBy(func(params *s3.ListObjectsV2Input) bool {
				return aws.ToString(params.Bucket) == "test-bucket" &&
					aws.ToString(params.Prefix) == "doctors/"
			}),
			mock.Anything,
		).Return(&s3.ListObjectsV2Output{
			Contents:    []types.Object{{Key: aws.String("doctors/DR-1.json"), Size: aws.Int64(10)}},
			IsTruncated: aws.Bool(false),
		}, nil).Once()

		s := newTestS3(t, client)
		objects, err := s.List(context.Background(), "doctors/")
		require.NoError(t, err)
		require.Len(t, objects, 1)
		assert.Equal(t, "doctors/DR-1.json", objects[0].Key)
		client.AssertExpectations(t)
	})

	t.Run("page error", func(t *testing.T) {
		t.Parallel()
		paginator := new(MockS3ListObjectsV2Paginator)
		paginator.On("HasMorePages").Return(true)
		paginator.On("NextPage", mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"})

		s := newTestS3(t, new(MockS3Client), storage.WithPaginatorFactory(
			func(storage.S3Client, *s3.ListObjectsV2Input) storage.S3ListObjectsV2Paginator { return paginator },
		))
		_, err := s.List(context.Background(), "doctors/")
		assert.ErrorIs(t, err, storage.ErrAccessDenied)
	})

	t.Run("nil paginator", func(t *testing.T) {
		t.Parallel()
		s := newTestS3(t, new(MockS3Client), storage.WithPaginatorFactory(
			func(storage.S3Client, *s3.ListObjectsV2Input) storage.S3ListObjectsV2Paginator { return nil },
		))
		_, err := s.List(context.Background(), "doctors/")
		assert.ErrorIs(t, err, storage.ErrPaginatorNil)
	})
}

func TestS3Storage_Exists(t *testing.T) {
	t.Parallel()

	t.Run("object exists", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject",
			mock.Anything,
			mock.MatchedBy(func(params *s3.HeadObjectInput) bool {
				return aws.ToString(params.Bucket) == "test-bucket" &&
					aws.ToString(params.Key) == "doctors/DR-1.json"
			}),
			mock.Anything,
		).Return(&s3.HeadObjectOutput{}, nil)

		s := newTestS3(t, client)
		assert.True(t, s.Exists(context.Background(), "doctors/DR-1.json"))
		client.AssertExpectations(t)
	})

	t.Run("object does not exist", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NotFound{})

		s := newTestS3(t, client)
		assert.False(t, s.Exists(context.Background(), "doctors/nope.json"))
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		s := newTestS3(t, new(MockS3Client))
		assert.False(t, s.Exists(context.Background(), "../../../etc/passwd"))
	})
}

func TestS3Storage_URL(t *testing.T) {
	t.Parallel()

	t.Run("presigned with configured ttl", func(t *testing.T) {
		t.Parallel()
		presigner := new(MockPresigner)
		presigner.On("PresignGetObject",
			mock.Anything,
			mock.MatchedBy(func(params *s3.GetObjectInput) bool {
				return aws.ToString(params.Bucket) == "test-bucket" &&
					aws.ToString(params.Key) == "doctor-reviewed-reports/DR-1/r.pdf"
			}),
			mock.MatchedBy(func(optFns []func(*s3.PresignOptions)) bool {
				var o s3.PresignOptions
				for _, fn := range optFns {
					fn(&o)
				}
				return o.Expires == 15*time.Minute
			}),
		).Return(&v4.PresignedHTTPRequest{URL: "https://test-bucket.s3.amazonaws.com/r.pdf?X-Amz-Signature=x"}, nil)

		s, err := storage.NewS3Storage(context.Background(), storage.S3Config{
			Bucket:     "test-bucket",
			Region:     "us-east-1",
			PresignTTL: 15 * time.Minute,
		}, storage.WithS3Client(new(MockS3Client)), storage.WithPresigner(presigner))
		require.NoError(t, err)

		url, err := s.URL(context.Background(), "doctor-reviewed-reports/DR-1/r.pdf")
		require.NoError(t, err)
		assert.Contains(t, url, "X-Amz-Signature")
		presigner.AssertExpectations(t)
	})

	t.Run("real client gets a presign client", func(t *testing.T) {
		t.Parallel()
		s, err := storage.NewS3Storage(context.Background(), storage.S3Config{
			Bucket:      "test-bucket",
			Region:      "us-east-1",
			AccessKeyID: "AKIDEXAMPLE",
			SecretKey:   "secret",
		})
		require.NoError(t, err)

		url, err := s.URL(context.Background(), "doctors/DR-1.json")
		require.NoError(t, err)
		assert.Contains(t, url, "doctors/DR-1.json")
		assert.Contains(t, url, "X-Amz-Expires=3600")
	})

	t.Run("mock client without presigner", func(t *testing.T) {
		t.Parallel()
		s := newTestS3(t, new(MockS3Client))
		_, err := s.URL(context.Background(), "doctors/DR-1.json")
		assert.ErrorIs(t, err, storage.ErrPresignerNil)
	})
}

func TestS3Storage_Location(t *testing.T) {
	t.Parallel()
	s := newTestS3(t, new(MockS3Client))
	assert.Equal(t, "s3://test-bucket/doctor-assigned-reports/DR-1/a.pdf",
		s.Location("/doctor-assigned-reports/DR-1/a.pdf"))
}

func TestS3Storage_ErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "no such key", err: &types.NoSuchKey{}, wantErr: storage.ErrObjectNotFound},
		{name: "not found", err: &types.NotFound{}, wantErr: storage.ErrObjectNotFound},
		{name: "no such bucket", err: &types.NoSuchBucket{}, wantErr: storage.ErrBucketNotFound},
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, wantErr: storage.ErrAccessDenied},
		{name: "slow down", err: &smithy.GenericAPIError{Code: "SlowDown"}, wantErr: storage.ErrServiceUnavailable},
		{name: "request timeout", err: &smithy.GenericAPIError{Code: "RequestTimeout"}, wantErr: storage.ErrRequestTimeout},
		{name: "invalid state", err: &smithy.GenericAPIError{Code: "InvalidObjectState"}, wantErr: storage.ErrInvalidObjectState},
		{name: "deadline", err: context.DeadlineExceeded, wantErr: storage.ErrOperationTimeout},
		{name: "canceled", err: context.Canceled, wantErr: storage.ErrOperationCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := new(MockS3Client)
			client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			s := newTestS3(t, client)
			_, _, err := s.Get(context.Background(), "doctors/DR-1.json")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("unknown error keeps the cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("boom")
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, cause)

		s := newTestS3(t, client)
		_, err := s.Put(context.Background(), "a.pdf", []byte("x"))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("upload timeout", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, context.DeadlineExceeded).
			Run(func(mock.Arguments) { time.Sleep(50 * time.Millisecond) })

		s := newTestS3(t, client, storage.WithS3UploadTimeout(10*time.Millisecond))
		_, err := s.Put(context.Background(), "a.pdf", []byte("x"))
		assert.ErrorIs(t, err, storage.ErrOperationTimeout)
	})
}
