package adoptions

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r Request) error
	GetByID(ctx context.Context, id string) (Request, error)

	// UpdateStatus cambia el estado solo si el guardado sigue siendo from.
	// Devuelve ErrNotFound si no existe y ErrInvalidTransition si otro
	// request ya lo movió.
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error

	// Orden: más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]Request, error)
	// status vacío = todos.
	ListByShelter(ctx context.Context, shelterID string, status Status) ([]Request, error)
}

// Lookups de otros módulos. Deben devolver ErrNotFound si el id no existe.

type UserLookup interface {
	UserSummary(ctx context.Context, id string) (UserSummary, error)
}

type AnimalLookup interface {
	AnimalSummary(ctx context.Context, id string) (AnimalSummary, error)
}

type ShelterLookup interface {
	ShelterSummary(ctx context.Context, id string) (ShelterSummary, error)
}

// AnimalAdopter es la segunda escritura al aprobar.
type AnimalAdopter interface {
	MarkAdopted(ctx context.Context, animalID string, adopted bool) error
}

// EventPublisher notifica cambios a otros servicios (notificaciones, etc).
type EventPublisher interface {
	PublishRequestCreated(ctx context.Context, r Request) error
	PublishStatusChanged(ctx context.Context, r Request, from Status) error
}

type nopPublisher struct{}

func (nopPublisher) PublishRequestCreated(context.Context, Request) error        { return nil }
func (nopPublisher) PublishStatusChanged(context.Context, Request, Status) error { return nil }
