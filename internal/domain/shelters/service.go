package shelters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pet-adoption-api/internal/platform/sanitize"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("email already registered")
	ErrUnauthorized = errors.New("invalid credentials")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Service struct {
	repo Repository
	now  func() time.Time
	cost int
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		cost: bcrypt.DefaultCost,
	}
}

type RegisterInput struct {
	Nombre             string `validate:"required"`
	Email              string `validate:"required,email"`
	Password           string `validate:"required,min=6"`
	Telefono           string `validate:"required"`
	Direccion          string `validate:"required"`
	Descripcion        string
	Logo               string
	DocumentosLegales  []string
	FormularioAdopcion string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Shelter, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Telefono = strings.TrimSpace(in.Telefono)
	in.Direccion = strings.TrimSpace(in.Direccion)
	if err := validate.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return Shelter{}, fmt.Errorf("%w: %s", ErrInvalidInput, strings.ToLower(ve[0].Field()))
		}
		return Shelter{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return Shelter{}, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return Shelter{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return Shelter{}, err
	}

	docs := in.DocumentosLegales
	if docs == nil {
		docs = []string{}
	}

	now := s.now()
	sh := Shelter{
		ID:                 uuid.NewString(),
		Nombre:             in.Nombre,
		Email:              in.Email,
		PasswordHash:       string(hash),
		Telefono:           in.Telefono,
		Direccion:          in.Direccion,
		Descripcion:        sanitize.Text(in.Descripcion),
		Logo:               in.Logo,
		DocumentosLegales:  docs,
		FormularioAdopcion: in.FormularioAdopcion,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, sh); err != nil {
		return Shelter{}, err
	}
	return sh, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (Shelter, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Shelter{}, ErrUnauthorized
	}
	sh, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return Shelter{}, ErrUnauthorized
	}
	if err != nil {
		return Shelter{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(sh.PasswordHash), []byte(password)) != nil {
		return Shelter{}, ErrUnauthorized
	}
	return sh, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Shelter, error) {
	if strings.TrimSpace(id) == "" {
		return Shelter{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Shelter, error) {
	return s.repo.List(ctx)
}
