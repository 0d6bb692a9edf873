package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"pet-adoption-api/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthContext:
// - Con verifier y header Bearer => Verify() y guarda claims.
// - Sin verifier (modo dev) => X-Debug-User-ID / X-Debug-Kind / X-Debug-Role.
// - Sin claims el request sigue; cada handler decide si exige auth.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if claims, ok := debugClaims(r); ok {
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// token inválido = anónimo; el handler responde 401/403 si aplica
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func debugClaims(r *http.Request) (auth.Claims, bool) {
	uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID"))
	if uid == "" {
		return auth.Claims{}, false
	}
	c := auth.Claims{UserID: uid, Kind: auth.KindUser, Role: auth.RoleNormal}
	if strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Debug-Kind")), string(auth.KindShelter)) {
		c.Kind = auth.KindShelter
	}
	if role, err := strconv.Atoi(strings.TrimSpace(r.Header.Get("X-Debug-Role"))); err == nil {
		c.Role = role
	}
	return c, true
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
