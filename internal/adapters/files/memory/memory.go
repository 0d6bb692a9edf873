package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"pet-adoption-api/internal/ports/files"
)

// Storage mantiene adjuntos en memoria (tests y modo dev sin disco).
type Storage struct {
	mu     sync.RWMutex
	byName map[string][]byte

	// FailPut / FailDelete permiten simular fallas de infraestructura en tests.
	FailPut    func(name string) error
	FailDelete func(name string) error
}

func New() *Storage {
	return &Storage{byName: make(map[string][]byte)}
}

func (s *Storage) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	if !files.ValidName(name) {
		return files.ErrInvalidName
	}
	if s.FailPut != nil {
		if err := s.FailPut(name); err != nil {
			return err
		}
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byName[name]; exists {
		return errors.New("file already exists")
	}
	s.byName[name] = b
	return nil
}

func (s *Storage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.byName[name]
	if !ok {
		return nil, files.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *Storage) Delete(ctx context.Context, name string) error {
	if s.FailDelete != nil {
		if err := s.FailDelete(name); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[name]; !ok {
		return files.ErrNotFound
	}
	delete(s.byName, name)
	return nil
}

// Names lista los archivos guardados, ordenados.
func (s *Storage) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.byName))
	for n := range s.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byName)
}
