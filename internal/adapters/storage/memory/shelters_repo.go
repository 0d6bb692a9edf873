package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"

	"pet-adoption-api/internal/domain/shelters"
)

type shelterRepo struct {
	mu   sync.RWMutex
	byID map[string]shelters.Shelter
}

func NewShelterRepo() shelters.Repository {
	return &shelterRepo{
		byID: make(map[string]shelters.Shelter),
	}
}

func (r *shelterRepo) Create(ctx context.Context, s shelters.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("shelter id required")
	}
	for _, other := range r.byID {
		if other.Email == s.Email {
			return shelters.ErrConflict
		}
	}
	s.DocumentosLegales = slices.Clone(s.DocumentosLegales)
	r.byID[s.ID] = s
	return nil
}

func (r *shelterRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return shelters.Shelter{}, shelters.ErrNotFound
	}
	return s, nil
}

func (r *shelterRepo) GetByEmail(ctx context.Context, email string) (shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.byID {
		if s.Email == email {
			return s, nil
		}
	}
	return shelters.Shelter{}, shelters.ErrNotFound
}

func (r *shelterRepo) List(ctx context.Context) ([]shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shelters.Shelter, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Nombre < out[j].Nombre
	})
	return out, nil
}
