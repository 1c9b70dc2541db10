package assets

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
)

var _ Uploader = (*S3Store)(nil)

type s3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads images as public-read objects to a bucket.
type S3Store struct {
	client    s3PutObjectAPI
	bucket    string
	region    string
	keyPrefix string
	now       func() time.Time
}

func NewS3Store(ctx context.Context, bucket, region, keyPrefix string) (*S3Store, error) {
	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newS3Store(s3.NewFromConfig(cfg), bucket, region, keyPrefix), nil
}

func newS3Store(client s3PutObjectAPI, bucket, region, keyPrefix string) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		region:    region,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		now:       time.Now,
	}
}

func (s *S3Store) Upload(ctx context.Context, params UploadParams) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "s3Store.upload")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if params.File == nil || params.Size == 0 {
		return "", ErrEmptyFile
	}

	key := NewFileName(params.Filename, s.now())
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}
	span.SetAttributes(attribute.String("s3.key", key))

	contentType := params.ContentType
	if contentType == "" {
		contentType = ContentTypeFor(params.Filename)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        params.File,
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	}
	if params.Size > 0 {
		input.ContentLength = aws.Int64(params.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	log.Debugf("s3 store: uploaded %s to bucket %s", key, s.bucket)
	return s.publicURL(key), nil
}

func (s *S3Store) publicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
