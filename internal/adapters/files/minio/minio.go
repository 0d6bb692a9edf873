package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"pet-adoption-api/internal/config"
	"pet-adoption-api/internal/ports/files"
)

// Storage guarda adjuntos como objetos en un bucket de MinIO.
type Storage struct {
	client *minio.Client
	bucket string
}

// New conecta y crea el bucket si no existe.
func New(ctx context.Context, cfg config.MinIOConfig) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &Storage{client: client, bucket: cfg.Bucket}, nil
}

func (s *Storage) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	if !files.ValidName(name) {
		return files.ErrInvalidName
	}
	if contentType == "" {
		contentType = files.ContentType(name)
	}
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("minio put %s: %w", name, err)
	}
	return nil
}

func (s *Storage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !files.ValidName(name) {
		return nil, files.ErrInvalidName
	}

	// GetObject es lazy; Stat fuerza el round-trip para distinguir "no existe".
	if _, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, files.ErrNotFound
		}
		return nil, fmt.Errorf("minio stat %s: %w", name, err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio get %s: %w", name, err)
	}
	return obj, nil
}

func (s *Storage) Delete(ctx context.Context, name string) error {
	if !files.ValidName(name) {
		return files.ErrInvalidName
	}
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio delete %s: %w", name, err)
	}
	return nil
}
