package storage

import (
	"bytes"
	"context"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/healthify-app/healthify-api/internal/config"
)

// S3Storage keeps photos in an object bucket under an uploads/ prefix.
type S3Storage struct {
	client *s3.Client
	bucket string
}

func NewS3(cfg config.StorageConfig) *S3Storage {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
		UsePathStyle: cfg.S3Endpoint != "",
		BaseEndpoint: endpointOrNil(cfg.S3Endpoint),
	})

	return &S3Storage{client: client, bucket: cfg.S3Bucket}
}

func endpointOrNil(endpoint string) *string {
	if endpoint == "" {
		return nil
	}
	return aws.String(endpoint)
}

func (s *S3Storage) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	data, name, err := processUpload(fh)
	if err != nil {
		return "", err
	}

	key := "uploads/" + name

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mime.TypeByExtension(filepath.Ext(name))),
	})
	if err != nil {
		return "", err
	}

	return "/" + key, nil
}

func (s *S3Storage) Remove(ctx context.Context, path string) error {
	key := strings.TrimPrefix(path, "/")
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
