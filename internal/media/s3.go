package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"carwash-backend/internal/config"
)

// s3Store keeps photos in any S3-compatible bucket (AWS S3, Cloudflare R2).
type s3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string // base URL objects are served from
}

func newS3Store(cfg *config.Config) (*s3Store, error) {
	if cfg.Media.Bucket == "" {
		return nil, fmt.Errorf("media.bucket is required for the s3 backend")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Media.AccessKey,
			cfg.Media.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Media.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure s3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Media.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Media.Endpoint)
		}
	})

	return &s3Store{
		client:    client,
		bucket:    cfg.Media.Bucket,
		publicURL: strings.TrimSuffix(cfg.Media.PublicURL, "/"),
	}, nil
}

func (s *s3Store) Save(ctx context.Context, raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("empty payload")
	}
	if passthroughURL(raw, "") {
		return raw, nil
	}
	p, err := parseDataURL(raw)
	if err != nil {
		return "", err
	}
	key := "carwash/" + newObjectName(p.ext)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(p.data),
		ContentType: aws.String(p.mime),
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return s.publicURL + "/" + key, nil
}

func (s *s3Store) Delete(ctx context.Context, url string) error {
	if s.publicURL == "" || !strings.HasPrefix(url, s.publicURL+"/") {
		return nil
	}
	key := strings.TrimPrefix(url, s.publicURL+"/")
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
