package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	"pet-adoption-api/internal/platform/httpx"
	"pet-adoption-api/internal/platform/logger"
)

// Recover reemplaza a chimw.Recoverer para que la app reciba el mismo
// sobre JSON de error que en cualquier otro 500.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered", map[string]any{
					"panic":      fmt.Sprint(rec),
					"request_id": chimw.GetReqID(r.Context()),
					"path":       r.URL.Path,
					"stack":      string(debug.Stack()),
				})
				httpx.WriteError(w, http.StatusInternalServerError, "Error interno del servidor")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
