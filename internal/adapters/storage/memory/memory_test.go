package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-api/internal/domain/adoptions"
	"pet-adoption-api/internal/domain/animals"
	"pet-adoption-api/internal/domain/users"
)

func TestUserRepo_UniqueEmail(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, users.User{ID: "u1", Email: "ana@example.com"}))
	assert.ErrorIs(t, repo.Create(ctx, users.User{ID: "u2", Email: "ana@example.com"}), users.ErrConflict)

	got, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	require.NoError(t, repo.Delete(ctx, "u1"))
	_, err = repo.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestAnimalRepo_AvailableExcludesAdopted(t *testing.T) {
	repo := NewAnimalRepo()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, animals.Animal{ID: "a1", IDRefugio: "r1", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, animals.Animal{ID: "a2", IDRefugio: "r1", CreatedAt: now.Add(time.Minute)}))
	require.NoError(t, repo.SetAdopted(ctx, "a1", true))

	avail, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, avail, 1)
	assert.Equal(t, "a2", avail[0].ID)

	byShelter, err := repo.ListByShelter(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, byShelter, 2)

	assert.ErrorIs(t, repo.SetAdopted(ctx, "a9", true), animals.ErrNotFound)
}

func TestAdoptionRepo_UpdateStatusComparesCurrent(t *testing.T) {
	repo := NewAdoptionRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, adoptions.Request{
		ID:           "s1",
		IDRefugio:    "r1",
		Estado:       adoptions.StatusPending,
		DocumentoINE: []string{"a.jpg", "b.jpg"},
	}))

	require.NoError(t, repo.UpdateStatus(ctx, "s1", adoptions.StatusPending, adoptions.StatusApproved, time.Now()))
	err := repo.UpdateStatus(ctx, "s1", adoptions.StatusPending, adoptions.StatusRejected, time.Now())
	assert.ErrorIs(t, err, adoptions.ErrInvalidTransition)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "s9", adoptions.StatusPending, adoptions.StatusApproved, time.Now()), adoptions.ErrNotFound)

	pending, err := repo.ListByShelter(ctx, "r1", adoptions.StatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	got, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	got.DocumentoINE[0] = "mutated.jpg"

	again, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", again.DocumentoINE[0])
}
