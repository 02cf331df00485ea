package fetch_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/coordkit/pkg/fetch"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func matchObject(bucket, key string) any {
	return mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return aws.ToString(in.Bucket) == bucket && aws.ToString(in.Key) == key
	})
}

func TestNewS3Fetcher(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		f, err := fetch.NewS3Fetcher(context.Background(), fetch.S3Config{
			Bucket:      "images",
			Key:         "/cats/1.png",
			Region:      "us-east-1",
			AccessKeyID: "test-key",
			SecretKey:   "test-secret",
		})
		require.NoError(t, err)
		assert.Equal(t, "s3://images/cats/1.png", f.Source())
	})

	t.Run("with custom endpoint", func(t *testing.T) {
		t.Parallel()
		f, err := fetch.NewS3Fetcher(context.Background(), fetch.S3Config{
			Bucket:         "images",
			Key:            "1.png",
			Region:         "us-east-1",
			Endpoint:       "http://localhost:9000",
			ForcePathStyle: true,
		})
		require.NoError(t, err)
		require.NotNil(t, f)
	})

	invalid := []struct {
		name string
		cfg  fetch.S3Config
	}{
		{name: "missing bucket", cfg: fetch.S3Config{Key: "1.png", Region: "us-east-1"}},
		{name: "missing key", cfg: fetch.S3Config{Bucket: "images", Region: "us-east-1"}},
		{name: "missing region", cfg: fetch.S3Config{Bucket: "images", Key: "1.png"}},
		{name: "path traversal", cfg: fetch.S3Config{Bucket: "images", Key: "../secret", Region: "us-east-1"}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := fetch.NewS3Fetcher(context.Background(), tt.cfg, fetch.WithS3Client(&MockS3Client{}))
			assert.ErrorIs(t, err, fetch.ErrInvalidConfig)
		})
	}
}

func TestS3Fetcher_Fetch(t *testing.T) {
	t.Parallel()
	cfg := fetch.S3Config{Bucket: "images", Key: "1.png", Region: "us-east-1", MaxBytes: 32}

	newFetcher := func(t *testing.T, client *MockS3Client) *fetch.S3Fetcher {
		t.Helper()
		f, err := fetch.NewS3Fetcher(context.Background(), cfg, fetch.WithS3Client(client))
		require.NoError(t, err)
		return f
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, matchObject("images", "1.png"), mock.Anything).
			Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("png-data"))}, nil)

		data, err := newFetcher(t, client).Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []byte("png-data"), data)
		client.AssertExpectations(t)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(&s3.GetObjectOutput{}, nil)

		data, err := newFetcher(t, client).Fetch(context.Background())
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(strings.Repeat("x", 33)))}, nil)

		_, err := newFetcher(t, client).Fetch(context.Background())
		assert.ErrorIs(t, err, fetch.ErrPayloadTooLarge)
	})

	errorCases := []struct {
		name   string
		err    error
		target error
	}{
		{name: "no such key", err: &types.NoSuchKey{}, target: fetch.ErrNotFound},
		{name: "no such bucket", err: &types.NoSuchBucket{}, target: fetch.ErrNotFound},
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, target: fetch.ErrAccessDenied},
		{name: "request timeout", err: &smithy.GenericAPIError{Code: "RequestTimeout"}, target: fetch.ErrTimeout},
		{name: "context deadline", err: context.DeadlineExceeded, target: fetch.ErrTimeout},
		{name: "context canceled", err: context.Canceled, target: fetch.ErrCanceled},
		{name: "unknown api error", err: &smithy.GenericAPIError{Code: "InternalError"}, target: fetch.ErrFetch},
		{name: "transport error", err: errors.New("dial tcp: refused"), target: fetch.ErrFetch},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := &MockS3Client{}
			client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			data, err := newFetcher(t, client).Fetch(context.Background())
			assert.Nil(t, data)
			assert.ErrorIs(t, err, tt.target)
			assert.ErrorIs(t, err, fetch.ErrFetch)
			assert.Contains(t, err.Error(), "s3://images/1.png")
		})
	}
}
