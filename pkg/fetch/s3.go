package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client defines the S3 operation used by S3Fetcher.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config identifies one object in S3 or an S3-compatible service.
type S3Config struct {
	Bucket         string `env:"FETCH_S3_BUCKET,required"`
	Key            string `env:"FETCH_S3_KEY,required"`
	Region         string `env:"FETCH_S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"FETCH_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"FETCH_S3_SECRET_KEY"`
	Endpoint       string `env:"FETCH_S3_ENDPOINT"`          // Optional: for S3-compatible services
	ForcePathStyle bool   `env:"FETCH_S3_FORCE_PATH_STYLE"` // For S3-compatible services like MinIO
	MaxBytes       int64  `env:"FETCH_MAX_BYTES" envDefault:"10485760"`
}

// S3Option configures an S3Fetcher.
type S3Option func(*s3Options)

type s3Options struct {
	httpClient      *http.Client
	s3Client        S3Client
	s3ConfigOptions []func(*config.LoadOptions) error
}

// WithS3Client sets a pre-configured client. Useful for testing with mocks.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.s3Client = client
	}
}

// WithS3HTTPClient sets a custom HTTP client for S3 requests.
func WithS3HTTPClient(client *http.Client) S3Option {
	return func(o *s3Options) {
		o.httpClient = client
	}
}

// WithS3ConfigOption adds a custom AWS config option.
func WithS3ConfigOption(option func(*config.LoadOptions) error) S3Option {
	return func(o *s3Options) {
		o.s3ConfigOptions = append(o.s3ConfigOptions, option)
	}
}

// S3Fetcher downloads a fixed object. It is safe for concurrent use.
type S3Fetcher struct {
	client   S3Client
	bucket   string
	key      string
	maxBytes int64
}

// NewS3Fetcher creates a fetcher for cfg.Bucket/cfg.Key.
func NewS3Fetcher(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Fetcher, error) {
	key := strings.TrimPrefix(cfg.Key, "/")
	if cfg.Bucket == "" || key == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}
	if strings.Contains(key, "..") {
		return nil, fmt.Errorf("%w: key %q", ErrInvalidConfig, cfg.Key)
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.s3Client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}
		if options.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(options.httpClient))
		}
		awsOptions = append(awsOptions, options.s3ConfigOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}

		client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	return &S3Fetcher{
		client:   client,
		bucket:   cfg.Bucket,
		key:      key,
		maxBytes: cfg.MaxBytes,
	}, nil
}

// Source returns the object location as "s3://bucket/key".
func (f *S3Fetcher) Source() string {
	return "s3://" + f.bucket + "/" + f.key
}

// Fetch downloads the object body.
func (f *S3Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key),
	})
	if err != nil {
		return nil, Wrap(f.Source(), classifyS3Error(err))
	}
	if out.Body == nil {
		return []byte{}, nil
	}
	defer func() { _ = out.Body.Close() }()

	data, err := readLimited(out.Body, f.maxBytes)
	if err != nil {
		return nil, Wrap(f.Source(), err)
	}
	return data, nil
}

// classifyS3Error converts S3 errors to package sentinels.
func classifyS3Error(err error) error {
	if classified, ok := classifyContextError(err); ok {
		return classified
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return errors.Join(ErrNotFound, err)
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return errors.Join(ErrNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return errors.Join(ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return errors.Join(ErrAccessDenied, err)
		case "RequestTimeout":
			return errors.Join(ErrTimeout, err)
		default:
			return fmt.Errorf("get object failed (code: %s): %w", apiErr.ErrorCode(), err)
		}
	}

	return fmt.Errorf("get object failed: %w", err)
}
