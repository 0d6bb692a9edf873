package adoptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusApproved, StatusRejected}
	allowed := map[[2]Status]bool{
		{StatusPending, StatusApproved}: true,
		{StatusPending, StatusRejected}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]Status{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Aprobada ")
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, s)

	_, err = ParseStatus("cancelada")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
