package adoptions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-api/internal/platform/httpx"
	"pet-adoption-api/internal/platform/logger"
)

func patchStatus(t *testing.T, svc *Service, id, estado string) (int, httpx.Failure) {
	t.Helper()

	r := chi.NewRouter()
	r.Patch("/api/solicitudes-adopcion/{id}", setStatusHandler(svc, logger.Nop()))

	body, err := json.Marshal(map[string]string{"estado": estado})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, "/api/solicitudes-adopcion/"+id, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var out httpx.Failure
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec.Code, out
}

func TestSetStatusHandler_NotFoundMessages(t *testing.T) {
	f := newFixture()
	req, err := f.svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	code, out := patchStatus(t, f.svc, "no-existe", "aprobada")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Solicitud no encontrada", out.Message)

	// el animal desapareció entre el envío y la aprobación
	f.dir.adoptErr = ErrNotFound
	code, out = patchStatus(t, f.svc, req.ID, "aprobada")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, out.Success)
	assert.Equal(t, "Animal no encontrado", out.Message)
}
