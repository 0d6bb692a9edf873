package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	// ListAvailable devuelve solo animales con adoptado=false.
	ListAvailable(ctx context.Context) ([]Animal, error)
	ListByShelter(ctx context.Context, shelterID string) ([]Animal, error)
	SetAdopted(ctx context.Context, id string, adopted bool) error
}

// ListingCache guarda el listado público de disponibles, versionado por
// generación. Invalidate avanza la generación; las entradas viejas expiran solas.
type ListingCache interface {
	Generation(ctx context.Context) (int64, error)
	GetAvailable(ctx context.Context, gen int64) ([]Animal, bool, error)
	SetAvailable(ctx context.Context, gen int64, items []Animal) error
	Invalidate(ctx context.Context) error
}
