package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption-api/internal/domain/adoptions"
)

type adoptionRepo struct {
	mu   sync.RWMutex
	byID map[string]adoptions.Request
}

func NewAdoptionRepo() adoptions.Repository {
	return &adoptionRepo{
		byID: make(map[string]adoptions.Request),
	}
}

func (r *adoptionRepo) Create(ctx context.Context, req adoptions.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(req.ID) == "" {
		return errors.New("request id required")
	}
	if _, exists := r.byID[req.ID]; exists {
		return errors.New("request already exists")
	}
	r.byID[req.ID] = cloneRequest(req)
	return nil
}

func (r *adoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byID[id]
	if !ok {
		return adoptions.Request{}, adoptions.ErrNotFound
	}
	return cloneRequest(req), nil
}

func (r *adoptionRepo) UpdateStatus(ctx context.Context, id string, from, to adoptions.Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.byID[id]
	if !ok {
		return adoptions.ErrNotFound
	}
	if req.Estado != from {
		return adoptions.ErrInvalidTransition
	}
	req.Estado = to
	req.UpdatedAt = at
	r.byID[id] = req
	return nil
}

func (r *adoptionRepo) ListByUser(ctx context.Context, userID string) ([]adoptions.Request, error) {
	return r.list(func(req adoptions.Request) bool { return req.IDUsuario == userID }), nil
}

func (r *adoptionRepo) ListByShelter(ctx context.Context, shelterID string, status adoptions.Status) ([]adoptions.Request, error) {
	return r.list(func(req adoptions.Request) bool {
		return req.IDRefugio == shelterID && (status == "" || req.Estado == status)
	}), nil
}

func (r *adoptionRepo) list(keep func(adoptions.Request) bool) []adoptions.Request {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Request, 0)
	for _, req := range r.byID {
		if keep(req) {
			out = append(out, cloneRequest(req))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FechaSolicitud.After(out[j].FechaSolicitud)
	})
	return out
}

func cloneRequest(req adoptions.Request) adoptions.Request {
	req.DocumentoINE = slices.Clone(req.DocumentoINE)
	req.FotosMascotasAnteriores = slices.Clone(req.FotosMascotasAnteriores)
	req.FotosEspacioMascota = slices.Clone(req.FotosEspacioMascota)
	return req
}
