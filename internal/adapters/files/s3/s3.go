package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"pet-adoption-api/internal/config"
	"pet-adoption-api/internal/ports/files"
)

// Storage guarda adjuntos en S3 o un endpoint compatible (R2).
type Storage struct {
	client *s3.Client
	bucket string
}

func New(cfg config.S3Config) *Storage {
	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Storage{client: client, bucket: cfg.Bucket}
}

func (s *Storage) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	if !files.ValidName(name) {
		return files.ErrInvalidName
	}
	if contentType == "" {
		contentType = files.ContentType(name)
	}

	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        r,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("s3 put %s: %w", name, err)
	}
	return nil
}

func (s *Storage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !files.ValidName(name) {
		return nil, files.ErrInvalidName
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, files.ErrNotFound
		}
		return nil, fmt.Errorf("s3 get %s: %w", name, err)
	}
	return out.Body, nil
}

func (s *Storage) Delete(ctx context.Context, name string) error {
	if !files.ValidName(name) {
		return files.ErrInvalidName
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", name, err)
	}
	return nil
}
