package disk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pet-adoption-api/internal/ports/files"
)

// Storage guarda adjuntos en un directorio local (UPLOAD_DIR).
type Storage struct {
	dir string
}

// New crea el directorio si no existe.
func New(dir string) (*Storage, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

func (s *Storage) Dir() string { return s.dir }

func (s *Storage) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	if !files.ValidName(name) {
		return files.ErrInvalidName
	}

	// O_EXCL: los nombres son únicos, nunca se pisa un archivo existente.
	dst, err := os.OpenFile(s.path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(s.path(name))
		return fmt.Errorf("write %s: %w", name, err)
	}
	return dst.Close()
}

func (s *Storage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !files.ValidName(name) {
		return nil, files.ErrInvalidName
	}
	f, err := os.Open(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, files.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *Storage) Delete(ctx context.Context, name string) error {
	if !files.ValidName(name) {
		return files.ErrInvalidName
	}
	if err := os.Remove(s.path(name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return files.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Storage) path(name string) string {
	return filepath.Join(s.dir, name)
}
