package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"pet-adoption-api/internal/ports/auth"
)

var ErrInvalidToken = errors.New("invalid token")

const issuer = "pet-adoption-api"

type tokenClaims struct {
	Email string    `json:"email"`
	Kind  auth.Kind `json:"kind"`
	Role  int       `json:"rol,omitempty"`
	gojwt.RegisteredClaims
}

// Manager firma y verifica tokens HS256. Implementa auth.TokenIssuer y
// auth.AuthVerifier.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (m *Manager) Issue(c auth.Claims) (string, error) {
	now := m.now()
	claims := tokenClaims{
		Email: c.Email,
		Kind:  c.Kind,
		Role:  c.Role,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) Verify(ctx context.Context, token string) (auth.Claims, error) {
	parsed, err := gojwt.ParseWithClaims(token, &tokenClaims{}, func(t *gojwt.Token) (any, error) {
		if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		gojwt.WithIssuer(issuer),
		gojwt.WithTimeFunc(m.now),
		gojwt.WithExpirationRequired(),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	tc, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || tc.Subject == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID: tc.Subject,
		Email:  tc.Email,
		Kind:   tc.Kind,
		Role:   tc.Role,
	}, nil
}
