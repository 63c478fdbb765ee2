package archive

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentscout/candidatevault/internal/config"
)

func stubAWS(t *testing.T) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origPut := putObject
	origPresign := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		putObject = origPut
		presignGetObject = origPresign
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{Region: "us-east-1"}, nil
	}
}

func testConfig() *config.Config {
	return &config.Config{
		S3Bucket:       "talentscout-exports",
		S3Region:       "us-east-1",
		S3BaseEndpoint: "http://localhost:9000",
		S3AccessKey:    "access",
		S3SecretKey:    "secret",
	}
}

func TestNewS3Archiver_DisabledWithoutBucket(t *testing.T) {
	cfg := testConfig()
	cfg.S3Bucket = ""
	assert.Nil(t, NewS3Archiver(cfg))
}

func TestNewS3Archiver_Configured(t *testing.T) {
	a := NewS3Archiver(testConfig())
	require.NotNil(t, a)
	assert.Equal(t, "talentscout-exports", a.bucket)
	assert.Equal(t, "http://localhost:9000", a.endpoint)
}

func TestS3Archiver_Upload(t *testing.T) {
	stubAWS(t)

	var gotInput *s3.PutObjectInput
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		gotInput = in
		return &s3.PutObjectOutput{}, nil
	}

	a := NewS3Archiver(testConfig())
	require.NoError(t, a.Upload(context.Background(), "exports/export_sess-1.json", []byte(`{"ok":true}`)))

	require.NotNil(t, gotInput)
	assert.Equal(t, "talentscout-exports", aws.ToString(gotInput.Bucket))
	assert.Equal(t, "exports/export_sess-1.json", aws.ToString(gotInput.Key))
	assert.Equal(t, "application/json", aws.ToString(gotInput.ContentType))
}

func TestS3Archiver_UploadError(t *testing.T) {
	stubAWS(t)

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("bucket unavailable")
	}

	a := NewS3Archiver(testConfig())
	assert.Error(t, a.Upload(context.Background(), "k", nil))
}

func TestS3Archiver_PresignGet(t *testing.T) {
	stubAWS(t)

	var gotKey string
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotKey = aws.ToString(in.Key)
		return &v4.PresignedHTTPRequest{URL: "https://signed.example/exports/export_sess-1.json"}, nil
	}

	a := NewS3Archiver(testConfig())
	url, err := a.PresignGet(context.Background(), "exports/export_sess-1.json")
	require.NoError(t, err)
	assert.Equal(t, "exports/export_sess-1.json", gotKey)
	assert.Equal(t, "https://signed.example/exports/export_sess-1.json", url)
}

func TestS3Archiver_ClientUsesPathStyleWithEndpoint(t *testing.T) {
	stubAWS(t)

	var gotOpts s3.Options
	origNew := newS3ClientFromConfig
	t.Cleanup(func() { newS3ClientFromConfig = origNew })
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&gotOpts)
		}
		return s3.NewFromConfig(cfg, optFns...)
	}

	a := NewS3Archiver(testConfig())
	_, err := a.client(context.Background())
	require.NoError(t, err)

	assert.True(t, gotOpts.UsePathStyle)
	assert.Equal(t, "http://localhost:9000", aws.ToString(gotOpts.BaseEndpoint))
}
