package router

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-adoption-api/internal/platform/httpx"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/ports/files"
)

// uploadsHandler sirve un adjunto por nombre, cualquiera sea el backend.
// @Summary Descargar archivo subido
// @Tags uploads
// @Produce octet-stream
// @Param filename path string true "Nombre del archivo"
// @Success 200 {file} file
// @Failure 400 {object} httpx.Failure
// @Failure 404 {object} httpx.Failure
// @Failure 500 {object} httpx.Failure
// @Router /uploads/{filename} [get]
func uploadsHandler(store files.Storage, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "filename")
		if !files.ValidName(name) {
			httpx.WriteError(w, http.StatusBadRequest, "Nombre de archivo inválido")
			return
		}

		rc, err := store.Open(r.Context(), name)
		if err != nil {
			if errors.Is(err, files.ErrNotFound) {
				httpx.WriteError(w, http.StatusNotFound, "Archivo no encontrado")
				return
			}
			log.Error("open upload failed", map[string]any{"file": name, "err": err})
			httpx.WriteError(w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		defer rc.Close()

		w.Header().Set("Content-Type", files.ContentType(name))
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, rc); err != nil {
			log.Warn("stream upload failed", map[string]any{"file": name, "err": err})
		}
	}
}
