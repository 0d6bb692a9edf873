package rabbitmq

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-api/internal/domain/adoptions"
)

func TestNewPublisher_DisabledWithoutURI(t *testing.T) {
	p, err := NewPublisher("", "adoptions.events", nil)
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	r := adoptions.Request{ID: "s1", Estado: adoptions.StatusPending}
	assert.NoError(t, p.PublishRequestCreated(context.Background(), r))
	assert.NoError(t, p.PublishStatusChanged(context.Background(), r, adoptions.StatusPending))
	assert.NoError(t, p.Close())
}

func TestEvent(t *testing.T) {
	p, err := NewPublisher("", "adoptions.events", nil)
	require.NoError(t, err)
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	p.now = func() time.Time { return at }

	ev := p.event(KeyRequestStatusChanged, adoptions.Request{
		ID:        "s1",
		IDUsuario: "u1",
		IDAnimal:  "a1",
		IDRefugio: "r1",
		Estado:    adoptions.StatusApproved,
	}, adoptions.StatusPending)

	assert.Equal(t, Event{
		Type:       KeyRequestStatusChanged,
		RequestID:  "s1",
		UserID:     "u1",
		AnimalID:   "a1",
		ShelterID:  "r1",
		Status:     adoptions.StatusApproved,
		FromStatus: adoptions.StatusPending,
		OccurredAt: at,
	}, ev)
}
