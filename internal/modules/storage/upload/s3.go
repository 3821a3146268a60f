package upload

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appcfg "github.com/terravista/estate-core/internal/config"
)

const s3KeyPrefix = "uploads/"

// S3Backend stores uploads in an S3 bucket instead of local disk. The
// returned URLs are absolute, so record documents keep working without a
// local /uploads mount.
type S3Backend struct {
	client       *s3.Client
	bucket       string
	region       string
	customDomain string
	pathStyle    bool
	endpoint     string
}

func NewS3Backend(cfg appcfg.S3Config) (*S3Backend, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	region := strings.TrimSpace(cfg.Region)
	accessKey := strings.TrimSpace(cfg.AccessKeyID)
	secretKey := strings.TrimSpace(cfg.SecretAccessKey)
	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket/region/access_key_id/secret_access_key are required")
	}

	endpoint := strings.TrimSuffix(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	pathStyle := cfg.PathStyleAccess || endpoint != ""

	opts := s3.Options{
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: pathStyle,
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
	}

	return &S3Backend{
		client:       s3.New(opts),
		bucket:       bucket,
		region:       region,
		customDomain: strings.TrimRight(strings.TrimSpace(cfg.CustomDomain), "/"),
		pathStyle:    pathStyle,
		endpoint:     endpoint,
	}, nil
}

func (b *S3Backend) Put(ctx context.Context, name, contentType string, payload []byte) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := s3KeyPrefix + name
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return b.objectURL(key), nil
}

func (b *S3Backend) Remove(ctx context.Context, name string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(s3KeyPrefix + name),
	})
	return err
}

func (b *S3Backend) objectURL(key string) string {
	if b.customDomain != "" {
		return b.customDomain + "/" + key
	}
	if b.endpoint != "" {
		return b.endpoint + "/" + b.bucket + "/" + key
	}
	if b.pathStyle {
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", b.region, b.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.bucket, b.region, key)
}
