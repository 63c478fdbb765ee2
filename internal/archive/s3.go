// Package archive delivers export artifacts to an S3-compatible bucket and
// issues presigned download URLs for data-portability delivery. It is an
// optional collaborator: the vault works local-only without it.
package archive

import (
	"bytes"
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/talentscout/candidatevault/internal/config"
)

const presignValidity = 15 * time.Minute

// Indirections for tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3Archiver uploads artifacts to one bucket.
type S3Archiver struct {
	bucket   string
	region   string
	endpoint string
	access   string
	secret   string
}

// NewS3Archiver returns an archiver for the configured bucket, or nil when
// archiving is not configured.
func NewS3Archiver(cfg *config.Config) *S3Archiver {
	if !cfg.ArchiveEnabled() {
		return nil
	}
	return &S3Archiver{
		bucket:   cfg.S3Bucket,
		region:   cfg.S3Region,
		endpoint: cfg.S3BaseEndpoint,
		access:   cfg.S3AccessKey,
		secret:   cfg.S3SecretKey,
	}
}

func (a *S3Archiver) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(a.region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(a.access, a.secret, "")),
	)
	if err != nil {
		return nil, err
	}
	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if a.endpoint != "" {
			o.BaseEndpoint = aws.String(a.endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Upload writes body to the bucket under key.
func (a *S3Archiver) Upload(ctx context.Context, key string, body []byte) error {
	client, err := a.client(ctx)
	if err != nil {
		return err
	}
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &a.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	return err
}

// PresignGet returns a time-limited download URL for key.
func (a *S3Archiver) PresignGet(ctx context.Context, key string) (string, error) {
	client, err := a.client(ctx)
	if err != nil {
		return "", err
	}
	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &a.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
