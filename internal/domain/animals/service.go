package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"pet-adoption-api/internal/domain/shelters"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/platform/sanitize"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrShelterNotFound = errors.New("shelter not found")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ShelterReader es lo único que animals necesita de refugios.
type ShelterReader interface {
	GetByID(ctx context.Context, id string) (shelters.Shelter, error)
}

type Service struct {
	repo     Repository
	shelters ShelterReader
	cache    ListingCache
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, sh ShelterReader) *Service {
	return &Service{
		repo:     repo,
		shelters: sh,
		log:      logger.Nop(),
		now:      time.Now,
	}
}

// WithCache activa el cache del listado de disponibles.
// Las fallas del cache solo se loguean: la fuente de verdad es el repo.
func (s *Service) WithCache(c ListingCache, log logger.Logger) *Service {
	s.cache = c
	if log != nil {
		s.log = log
	}
	return s
}

type CreateInput struct {
	IDRefugio             string `validate:"required"`
	Nombre                string `validate:"required"`
	Especie               string `validate:"required"`
	Raza                  string
	Edad                  string
	Sexo                  string `validate:"omitempty,oneof=macho hembra"`
	Tamano                string `validate:"omitempty,oneof=pequeño mediano grande"`
	Descripcion           string
	HistorialMedico       string
	NecesidadesEspeciales string
	Esterilizado          bool
	Fotos                 []string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	in.IDRefugio = strings.TrimSpace(in.IDRefugio)
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Especie = strings.TrimSpace(in.Especie)
	in.Sexo = strings.ToLower(strings.TrimSpace(in.Sexo))
	in.Tamano = strings.ToLower(strings.TrimSpace(in.Tamano))
	if err := validate.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return Animal{}, fmt.Errorf("%w: %s", ErrInvalidInput, strings.ToLower(ve[0].Field()))
		}
		return Animal{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.shelters.GetByID(ctx, in.IDRefugio); err != nil {
		if errors.Is(err, shelters.ErrNotFound) {
			return Animal{}, ErrShelterNotFound
		}
		return Animal{}, err
	}

	fotos := in.Fotos
	if fotos == nil {
		fotos = []string{}
	}

	now := s.now()
	a := Animal{
		ID:                    uuid.NewString(),
		IDRefugio:             in.IDRefugio,
		Nombre:                in.Nombre,
		Especie:               in.Especie,
		Raza:                  strings.TrimSpace(in.Raza),
		Edad:                  strings.TrimSpace(in.Edad),
		Sexo:                  in.Sexo,
		Tamano:                in.Tamano,
		Descripcion:           sanitize.Text(in.Descripcion),
		HistorialMedico:       sanitize.Text(in.HistorialMedico),
		NecesidadesEspeciales: sanitize.Text(in.NecesidadesEspeciales),
		Esterilizado:          in.Esterilizado,
		Fotos:                 fotos,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	s.invalidate(ctx)
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	if strings.TrimSpace(id) == "" {
		return Animal{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// ListAvailable es el listado público: nunca incluye adoptados.
// La generación se lee antes de consultar el repositorio; si una escritura
// invalida en medio, el listado queda guardado bajo una generación vieja.
func (s *Service) ListAvailable(ctx context.Context) ([]Animal, error) {
	gen, cached := int64(0), false
	if s.cache != nil {
		g, err := s.cache.Generation(ctx)
		if err != nil {
			s.log.Warn("animals cache generation failed", map[string]any{"err": err})
		} else {
			gen, cached = g, true
		}
	}

	if cached {
		items, ok, err := s.cache.GetAvailable(ctx, gen)
		if err != nil {
			s.log.Warn("animals cache read failed", map[string]any{"err": err})
		} else if ok {
			return items, nil
		}
	}

	items, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	if cached {
		if err := s.cache.SetAvailable(ctx, gen, items); err != nil {
			s.log.Warn("animals cache write failed", map[string]any{"err": err})
		}
	}
	return items, nil
}

func (s *Service) ListByShelter(ctx context.Context, shelterID string) ([]Animal, error) {
	return s.repo.ListByShelter(ctx, shelterID)
}

func (s *Service) SetAdopted(ctx context.Context, id string, adopted bool) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if err := s.repo.SetAdopted(ctx, id, adopted); err != nil {
		return Animal{}, err
	}
	s.invalidate(ctx)

	a.Adoptado = adopted
	a.UpdatedAt = s.now()
	return a, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("animals cache invalidate failed", map[string]any{"err": err})
	}
}
