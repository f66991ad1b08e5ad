package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type R2Config struct {
	AccountID       string
	Bucket          string
	PublicURL       string
	AccessKeyID     string
	SecretAccessKey string
}

func (c R2Config) Enabled() bool {
	return c.Bucket != ""
}

// R2Archiver stores generated reports in a Cloudflare R2 bucket through
// the S3 API.
type R2Archiver struct {
	Client     *s3.Client
	Bucket     string
	PublicBase string
}

func NewR2Archiver(ctx context.Context, c R2Config) (*R2Archiver, error) {
	if c.Bucket == "" || c.AccountID == "" || c.PublicURL == "" {
		return nil, errors.New("missing required R2 configuration")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"), // Important for R2
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKeyID,
			c.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2Archiver{
		Client:     client,
		Bucket:     c.Bucket,
		PublicBase: c.PublicURL,
	}, nil
}

// Upload puts a PDF under key and returns its public URL.
func (a *R2Archiver) Upload(ctx context.Context, data []byte, key string) (string, error) {
	_, err := a.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}
	return PublicObjectURL(a.PublicBase, key), nil
}

// PublicObjectURL joins the bucket's public base URL and an object key,
// escaping each key segment.
func PublicObjectURL(base, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}
