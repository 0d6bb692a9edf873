package jwt

import (
	"context"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-api/internal/ports/auth"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	m, err := New("s3cret", time.Hour)
	require.NoError(t, err)

	token, err := m.Issue(auth.Claims{UserID: "u1", Email: "ana@example.com", Kind: auth.KindUser, Role: auth.RoleAdmin})
	require.NoError(t, err)

	c, err := m.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, auth.KindUser, c.Kind)
	assert.True(t, c.IsAdmin())
}

func TestVerify_Rejects(t *testing.T) {
	m, err := New("s3cret", time.Hour)
	require.NoError(t, err)
	other, err := New("otro", time.Hour)
	require.NoError(t, err)

	foreign, err := other.Issue(auth.Claims{UserID: "u1"})
	require.NoError(t, err)
	_, err = m.Verify(context.Background(), foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := New("s3cret", time.Minute)
	require.NoError(t, err)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue(auth.Claims{UserID: "u1"})
	require.NoError(t, err)
	_, err = m.Verify(context.Background(), old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{"sub": "u1"}).
		SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Verify(context.Background(), none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = New("", time.Hour)
	assert.Error(t, err)
}
