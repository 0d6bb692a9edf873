package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption-api/internal/domain/animals"
)

type animalRepo struct {
	mu   sync.RWMutex
	byID map[string]animals.Animal
}

func NewAnimalRepo() animals.Repository {
	return &animalRepo{
		byID: make(map[string]animals.Animal),
	}
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	a.Fotos = slices.Clone(a.Fotos)
	r.byID[a.ID] = a
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *animalRepo) ListAvailable(ctx context.Context) ([]animals.Animal, error) {
	return r.list(func(a animals.Animal) bool { return !a.Adoptado }), nil
}

func (r *animalRepo) ListByShelter(ctx context.Context, shelterID string) ([]animals.Animal, error) {
	return r.list(func(a animals.Animal) bool { return a.IDRefugio == shelterID }), nil
}

func (r *animalRepo) SetAdopted(ctx context.Context, id string, adopted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.ErrNotFound
	}
	a.Adoptado = adopted
	a.UpdatedAt = time.Now().UTC()
	r.byID[id] = a
	return nil
}

func (r *animalRepo) list(keep func(animals.Animal) bool) []animals.Animal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, a)
		}
	}
	// más recientes primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
