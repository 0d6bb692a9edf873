package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
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
	Nombre     string `validate:"required"`
	Email      string `validate:"required,email"`
	Password   string `validate:"required,min=6"`
	Telefono   string
	Direccion  string
	FotoPerfil string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Struct(in); err != nil {
		return User{}, fmt.Errorf("%w: %s", ErrInvalidInput, firstField(err))
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return User{}, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Nombre:       in.Nombre,
		Email:        in.Email,
		PasswordHash: string(hash),
		Telefono:     strings.TrimSpace(in.Telefono),
		Direccion:    strings.TrimSpace(in.Direccion),
		FotoPerfil:   in.FotoPerfil,
		Rol:          RoleNormal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login no distingue entre email inexistente y password incorrecto.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, ErrUnauthorized
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrUnauthorized
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrUnauthorized
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	if strings.TrimSpace(id) == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Nombre    *string
	Telefono  *string
	Direccion *string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateInput) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Nombre != nil {
		n := strings.TrimSpace(*in.Nombre)
		if n == "" {
			return User{}, fmt.Errorf("%w: nombre", ErrInvalidInput)
		}
		u.Nombre = n
	}
	if in.Telefono != nil {
		u.Telefono = strings.TrimSpace(*in.Telefono)
	}
	if in.Direccion != nil {
		u.Direccion = strings.TrimSpace(*in.Direccion)
	}
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Delete borra el usuario y lo devuelve para que el caller limpie su foto.
func (s *Service) Delete(ctx context.Context, id string) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return User{}, err
	}
	return u, nil
}

func firstField(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return strings.ToLower(ve[0].Field())
	}
	return err.Error()
}
