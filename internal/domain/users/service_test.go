package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testRepo struct {
	byID map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	if _, ok := r.byID[u.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) Update(ctx context.Context, u User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.cost = bcrypt.MinCost
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestRegister_HashesPasswordAndNormalizesEmail(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.Register(context.Background(), RegisterInput{
		Nombre:   " Ana ",
		Email:    " Ana@Example.COM ",
		Password: "secreto1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", u.Nombre)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, RoleNormal, u.Rol)
	assert.NotEqual(t, "secreto1", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreto1")))
	assert.Len(t, repo.byID, 1)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@b.com", Password: "secreto1"}},
		{"bad email", RegisterInput{Nombre: "Ana", Email: "no-es-email", Password: "secreto1"}},
		{"short password", RegisterInput{Nombre: "Ana", Email: "a@b.com", Password: "123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()
			_, err := svc.Register(context.Background(), tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.byID)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Nombre: "Ana", Email: "ana@example.com", Password: "secreto1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Nombre: "Otra", Email: "ANA@example.com", Password: "secreto2"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterInput{Nombre: "Ana", Email: "ana@example.com", Password: "secreto1"})
	require.NoError(t, err)

	u, err := svc.Login(ctx, "ANA@example.com", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = svc.Login(ctx, "ana@example.com", "incorrecto")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "nadie@example.com", "secreto1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Nombre: "Ana", Email: "ana@example.com", Password: "secreto1"})
	require.NoError(t, err)

	tel := " 555-1234 "
	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateInput{Telefono: &tel})
	require.NoError(t, err)
	assert.Equal(t, "555-1234", updated.Telefono)
	assert.Equal(t, "Ana", updated.Nombre)

	empty := "  "
	_, err = svc.UpdateProfile(ctx, u.ID, UpdateInput{Nombre: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateProfile(ctx, "missing", UpdateInput{Telefono: &tel})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_ReturnsDeletedUser(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{
		Nombre:     "Ana",
		Email:      "ana@example.com",
		Password:   "secreto1",
		FotoPerfil: "1700000000000-abc.jpg",
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "1700000000000-abc.jpg", deleted.FotoPerfil)
	assert.Empty(t, repo.byID)

	_, err = svc.Delete(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
