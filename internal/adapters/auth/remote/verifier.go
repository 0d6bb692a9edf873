package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-adoption-api/internal/platform/httpclient"
	"pet-adoption-api/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("remote auth not configured")
	ErrUnauthorized  = errors.New("remote auth unauthorized")
	ErrUpstream      = errors.New("remote auth upstream error")
)

const verifyPath = "/v1/tokens/verify"

type Config struct {
	BaseURL string
	APIKey  string

	// Vacío = "X-Api-Key".
	APIKeyHeader string
	Timeout      time.Duration
}

// Verifier implementa auth.AuthVerifier contra un servicio de identidad
// externo. No emite tokens: el login sigue siendo del servicio externo.
type Verifier struct {
	client       *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func New(cfg Config) (*Verifier, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client, err := httpclient.New(cfg.BaseURL, timeout)
	if err != nil {
		return nil, err
	}

	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	return &Verifier{
		client:       client,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

type verifyResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Kind   string `json:"kind"`
	Role   int    `json:"role"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	headers := map[string]string{
		v.apiKeyHeader:  v.apiKey,
		"Authorization": "Bearer " + token,
	}
	var out verifyResponse
	err := v.client.DoJSON(ctx, http.MethodPost, verifyPath, headers, map[string]string{"token": token}, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && (he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrUpstream)
	}

	c := auth.Claims{
		UserID: out.UserID,
		Email:  strings.TrimSpace(out.Email),
		Kind:   auth.KindUser,
		Role:   out.Role,
	}
	if auth.Kind(strings.ToLower(out.Kind)) == auth.KindShelter {
		c.Kind = auth.KindShelter
	}
	if c.Role == 0 {
		c.Role = auth.RoleNormal
	}
	return c, nil
}
