package adoptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-api/internal/platform/logger"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAnimalNotFound    = errors.New("animal not found")
)

// Deps agrupa los colaboradores de otros módulos.
type Deps struct {
	Users    UserLookup
	Animals  AnimalLookup
	Shelters ShelterLookup
	Adopter  AnimalAdopter
	Events   EventPublisher // nil = no se publican eventos
	Log      logger.Logger
}

type Service struct {
	repo     Repository
	refs     *ReferenceChecker
	users    UserLookup
	animals  AnimalLookup
	shelters ShelterLookup
	adopter  AnimalAdopter
	events   EventPublisher
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, d Deps) *Service {
	if d.Events == nil {
		d.Events = nopPublisher{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		refs:     NewReferenceChecker(d.Users, d.Animals, d.Shelters),
		users:    d.Users,
		animals:  d.Animals,
		shelters: d.Shelters,
		adopter:  d.Adopter,
		events:   d.Events,
		log:      d.Log,
		now:      time.Now,
	}
}

// Submit valida y guarda una solicitud nueva en estado pendiente.
// No borra archivos: si devuelve error, el caller limpia lo que subió.
func (s *Service) Submit(ctx context.Context, in Submission) (Request, error) {
	in = Normalize(in)
	if err := checkRules(in); err != nil {
		return Request{}, err
	}

	res, err := s.refs.Check(ctx, in.IDUsuario, in.IDAnimal, in.IDRefugio)
	if err != nil {
		return Request{}, fmt.Errorf("check references: %w", err)
	}
	if res != RefOK {
		return Request{}, &ReferenceError{Result: res}
	}

	now := s.now()
	req := Request{
		ID:                         uuid.NewString(),
		IDUsuario:                  in.IDUsuario,
		IDAnimal:                   in.IDAnimal,
		IDRefugio:                  in.IDRefugio,
		Motivo:                     in.Motivo,
		Estado:                     StatusPending,
		DocumentoINE:               in.DocumentoINE,
		HaAdoptadoAntes:            in.HaAdoptadoAntes,
		CantidadMascotasAnteriores: in.CantidadMascotasAnteriores,
		FotosMascotasAnteriores:    orEmpty(in.FotosMascotasAnteriores),
		TipoVivienda:               in.TipoVivienda,
		PermisoMascotasRenta:       in.PermisoMascotasRenta,
		FotosEspacioMascota:        in.FotosEspacioMascota,
		FechaSolicitud:             now,
		UpdatedAt:                  now,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return Request{}, err
	}

	if err := s.events.PublishRequestCreated(ctx, req); err != nil {
		s.log.Warn("publish request created failed", map[string]any{"request_id": req.ID, "err": err})
	}
	return req, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Request, error) {
	if strings.TrimSpace(id) == "" {
		return Request{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// SetStatus mueve una solicitud pendiente a aprobada o rechazada.
// Al aprobar marca el animal como adoptado; si esa segunda escritura
// falla, la solicitud vuelve a pendiente y se devuelve el error.
func (s *Service) SetStatus(ctx context.Context, id, status string) (Request, error) {
	to, err := ParseStatus(status)
	if err != nil {
		return Request{}, err
	}

	req, err := s.GetByID(ctx, id)
	if err != nil {
		return Request{}, err
	}
	from := req.Estado
	if !CanTransition(from, to) {
		return Request{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, req.ID, from, to, now); err != nil {
		return Request{}, err
	}

	if to == StatusApproved {
		if err := s.adopter.MarkAdopted(ctx, req.IDAnimal, true); err != nil {
			if cerr := s.repo.UpdateStatus(ctx, req.ID, to, from, s.now()); cerr != nil {
				s.log.Error("status compensation failed", map[string]any{
					"request_id": req.ID,
					"animal_id":  req.IDAnimal,
					"err":        cerr,
				})
			}
			if errors.Is(err, ErrNotFound) {
				return Request{}, fmt.Errorf("mark animal adopted %s: %w", req.IDAnimal, ErrAnimalNotFound)
			}
			return Request{}, fmt.Errorf("mark animal adopted: %w", err)
		}
	}

	req.Estado = to
	req.UpdatedAt = now

	if err := s.events.PublishStatusChanged(ctx, req, from); err != nil {
		s.log.Warn("publish status changed failed", map[string]any{"request_id": req.ID, "err": err})
	}
	return req, nil
}

// ListPending devuelve las pendientes del refugio con usuario y animal.
func (s *Service) ListPending(ctx context.Context, shelterID string) ([]RequestView, error) {
	return s.ListByShelter(ctx, shelterID, string(StatusPending))
}

// ListByShelter filtra por refugio y, opcionalmente, por estado.
func (s *Service) ListByShelter(ctx context.Context, shelterID, status string) ([]RequestView, error) {
	var st Status
	if strings.TrimSpace(status) != "" {
		var err error
		if st, err = ParseStatus(status); err != nil {
			return nil, err
		}
	}

	items, err := s.repo.ListByShelter(ctx, shelterID, st)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, items, true, false)
}

// ListByUser devuelve las solicitudes del usuario con refugio y animal.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]RequestView, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, items, false, true)
}

// populate resuelve las referencias una por una (no hay joins en el store).
func (s *Service) populate(ctx context.Context, items []Request, withUser, withShelter bool) ([]RequestView, error) {
	users := map[string]*UserSummary{}
	animals := map[string]*AnimalSummary{}
	shelters := map[string]*ShelterSummary{}

	out := make([]RequestView, 0, len(items))
	for _, r := range items {
		v := RequestView{Request: r}

		a, ok := animals[r.IDAnimal]
		if !ok {
			got, err := s.animals.AnimalSummary(ctx, r.IDAnimal)
			if a, err = summaryOrNil(got, err); err != nil {
				return nil, err
			}
			animals[r.IDAnimal] = a
		}
		v.Animal = a

		if withUser {
			u, ok := users[r.IDUsuario]
			if !ok {
				got, err := s.users.UserSummary(ctx, r.IDUsuario)
				if u, err = summaryOrNil(got, err); err != nil {
					return nil, err
				}
				users[r.IDUsuario] = u
			}
			v.Usuario = u
		}

		if withShelter {
			sh, ok := shelters[r.IDRefugio]
			if !ok {
				got, err := s.shelters.ShelterSummary(ctx, r.IDRefugio)
				if sh, err = summaryOrNil(got, err); err != nil {
					return nil, err
				}
				shelters[r.IDRefugio] = sh
			}
			v.Refugio = sh
		}

		out = append(out, v)
	}
	return out, nil
}

func summaryOrNil[T any](v T, err error) (*T, error) {
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
