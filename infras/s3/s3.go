package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"

	"renthubber/config"
	"renthubber/infras/otel"
	"renthubber/shared/constant"
)

// Object is a single document written to the store. An empty Bucket falls
// back to the configured default bucket.
type Object struct {
	Bucket      string
	Directory   string
	Name        string
	ContentType string
	Body        []byte
}

func (o Object) Key() string {
	return strings.TrimPrefix(path.Join(o.Directory, o.Name), "/")
}

// Location renders the s3:// URI of the object.
func Location(bucket, key string) string {
	return "s3://" + bucket + "/" + key
}

type S3 interface {
	// Put stores the object encrypted at rest and returns its s3:// location.
	Put(ctx context.Context, object Object) (location string, err error)
}

type s3Impl struct {
	client        *s3.Client
	defaultBucket string
	otel          otel.Otel
}

func (svc *s3Impl) Put(ctx context.Context, object Object) (location string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Put")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := object.Bucket
	if bucket == "" {
		bucket = svc.defaultBucket
	}

	key := object.Key()

	scope.SetAttributes(map[string]any{
		"s3.bucket": bucket,
		"s3.key":    key,
		"s3.size":   len(object.Body),
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(object.Body),
		ContentType:          aws.String(object.ContentType),
		ContentLength:        aws.Int64(int64(len(object.Body))),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("failed to put object")

		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return Location(bucket, key), nil
}

// New builds the client from the default AWS chain. Static keys and a custom
// endpoint are only used when configured, e.g. for MinIO in development.
func New(config *config.Config, otel otel.Otel) S3 {
	s3Cfg := config.External.S3

	opts := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(s3Cfg.Region),
	}

	if s3Cfg.AccessKeyID != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3Cfg.AccessKeyID, s3Cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3Cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3Cfg.Endpoint)
		}

		o.UsePathStyle = s3Cfg.UsePathStyle
	})

	return &s3Impl{
		client:        client,
		defaultBucket: s3Cfg.BucketName,
		otel:          otel,
	}
}
