package adoptionform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-api/internal/domain/adoptions"
	"pet-adoption-api/internal/platform/httpclient"
)

type stubSubmitter struct {
	calls int
	err   error
	got   Draft
}

func (s *stubSubmitter) Submit(_ context.Context, d Draft) (Receipt, error) {
	s.calls++
	s.got = d
	if s.err != nil {
		return Receipt{}, s.err
	}
	return Receipt{ID: "req-1", Estado: adoptions.StatusPending}, nil
}

func fillBasic(d *Draft) {
	d.Motivo = "Quiero darle un hogar"
	d.DocumentoINE = []string{"/tmp/frente.jpg", "/tmp/reverso.jpg"}
	d.HaAdoptadoAntes = "no"
	d.TipoVivienda = "propio"
}

func fillHousing(d *Draft) {
	d.FotosEspacioMascota = []string{"/tmp/patio.jpg"}
}

func readyForm(t *testing.T, s Submitter) *Form {
	t.Helper()
	f := New(s, "u1", "r1", "a1")
	require.NoError(t, f.Edit(fillBasic))
	require.NoError(t, f.Next())
	require.NoError(t, f.Edit(fillHousing))
	require.NoError(t, f.Next())
	require.NoError(t, f.Next())
	require.Equal(t, StateReady, f.State())
	return f
}

func TestForm_BasicStepRequiresBothINESides(t *testing.T) {
	f := New(&stubSubmitter{}, "u1", "r1", "a1")
	require.NoError(t, f.Edit(func(d *Draft) {
		fillBasic(d)
		d.DocumentoINE = d.DocumentoINE[:1]
	}))

	err := f.Next()
	var ve *adoptions.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, adoptions.MsgINEBothSides, ve.Message)
	assert.Equal(t, StateBasicInfo, f.State())
}

func TestForm_HousingStepRequiresPermissionWhenRenting(t *testing.T) {
	f := New(&stubSubmitter{}, "u1", "r1", "a1")
	require.NoError(t, f.Edit(func(d *Draft) {
		fillBasic(d)
		d.TipoVivienda = "renta"
	}))
	require.NoError(t, f.Next())
	require.NoError(t, f.Edit(fillHousing))

	err := f.Next()
	var ve *adoptions.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "permisoMascotasRenta", ve.Field)
	assert.Equal(t, StateHousingInfo, f.State())

	require.NoError(t, f.Edit(func(d *Draft) { d.PermisoMascotasRenta = "si" }))
	require.NoError(t, f.Next())
	assert.Equal(t, StateHistoryInfo, f.State())
}

func TestForm_HistoryStepRequiresPriorPetPhotos(t *testing.T) {
	f := New(&stubSubmitter{}, "u1", "r1", "a1")
	require.NoError(t, f.Edit(func(d *Draft) {
		fillBasic(d)
		d.HaAdoptadoAntes = "si"
	}))
	require.NoError(t, f.Next())
	require.NoError(t, f.Edit(fillHousing))
	require.NoError(t, f.Next())

	require.NoError(t, f.Edit(func(d *Draft) { d.CantidadMascotasAnteriores = 2 }))
	err := f.Next()
	var ve *adoptions.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "fotosMascotasAnteriores", ve.Field)

	require.NoError(t, f.Edit(func(d *Draft) { d.FotosMascotasAnteriores = []string{"/tmp/firulais.jpg"} }))
	require.NoError(t, f.Next())
	assert.Equal(t, StateReady, f.State())
}

func TestForm_BackKeepsData(t *testing.T) {
	f := readyForm(t, &stubSubmitter{})

	require.NoError(t, f.Back())
	require.NoError(t, f.Back())
	assert.Equal(t, StateHousingInfo, f.State())
	assert.Len(t, f.Draft().FotosEspacioMascota, 1)

	require.NoError(t, f.Back())
	assert.ErrorIs(t, f.Back(), ErrWrongState)
}

func TestForm_SubmitOnlyWhenReady(t *testing.T) {
	s := &stubSubmitter{}
	f := New(s, "u1", "r1", "a1")

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrWrongState)
	assert.Zero(t, s.calls)
}

func TestForm_SubmitSuccessClearsState(t *testing.T) {
	s := &stubSubmitter{}
	f := readyForm(t, s)

	r, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "req-1", r.ID)
	assert.Equal(t, StateSuccess, f.State())
	assert.Equal(t, Draft{}, f.Draft())
	assert.Equal(t, "u1", s.got.IDUsuario)

	got, ok := f.Receipt()
	require.True(t, ok)
	assert.Equal(t, adoptions.StatusPending, got.Estado)

	assert.ErrorIs(t, f.Edit(func(d *Draft) {}), ErrWrongState)
}

func TestForm_SubmitFailureKeepsData(t *testing.T) {
	s := &stubSubmitter{err: errors.New("network down")}
	f := readyForm(t, s)

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, f.State())
	assert.EqualError(t, f.LastError(), "network down")
	assert.Equal(t, "Quiero darle un hogar", f.Draft().Motivo)

	require.NoError(t, f.Dismiss())
	assert.Equal(t, StateReady, f.State())

	s.err = nil
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, s.calls)
}

func TestForm_AbandonDiscardsEverything(t *testing.T) {
	f := readyForm(t, &stubSubmitter{})

	f.Abandon()
	assert.Equal(t, StateBasicInfo, f.State())
	assert.Equal(t, Draft{}, f.Draft())
}

func writeTemp(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(name), 0o600))
	return p
}

func TestHTTPSubmitter_SendsSingleMultipartPost(t *testing.T) {
	var (
		hits   int
		fields = map[string]string{}
		files  = map[string][]string{}
		auth   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, submitPath, r.URL.Path)
		auth = r.Header.Get("Authorization")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		for k, fhs := range r.MultipartForm.File {
			for _, fh := range fhs {
				files[k] = append(files[k], fh.Filename)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":   true,
			"solicitud": map[string]any{"_id": "abc", "estado": "pendiente"},
		})
	}))
	defer srv.Close()

	dir := t.TempDir()
	client, err := httpclient.New(srv.URL, 0)
	require.NoError(t, err)

	f := New(NewHTTPSubmitter(client, "tok"), "u1", "r1", "a1")
	require.NoError(t, f.Edit(func(d *Draft) {
		d.Motivo = "Tengo patio"
		d.DocumentoINE = []string{writeTemp(t, dir, "frente.jpg"), writeTemp(t, dir, "reverso.jpg")}
		d.HaAdoptadoAntes = "sí"
		d.TipoVivienda = "renta"
	}))
	require.NoError(t, f.Next())
	require.NoError(t, f.Edit(func(d *Draft) {
		d.PermisoMascotasRenta = "si"
		d.FotosEspacioMascota = []string{writeTemp(t, dir, "patio.jpg")}
	}))
	require.NoError(t, f.Next())
	require.NoError(t, f.Edit(func(d *Draft) {
		d.CantidadMascotasAnteriores = 1
		d.FotosMascotasAnteriores = []string{writeTemp(t, dir, "firulais.jpg")}
	}))
	require.NoError(t, f.Next())

	r, err := f.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, Receipt{ID: "abc", Estado: adoptions.StatusPending}, r)
	assert.Equal(t, "si", fields["haAdoptadoAntes"])
	assert.Equal(t, "1", fields["cantidadMascotasAnteriores"])
	assert.Equal(t, "si", fields["permisoMascotasRenta"])
	assert.Equal(t, []string{"frente.jpg", "reverso.jpg"}, files["documentoINE"])
	assert.Equal(t, []string{"patio.jpg"}, files["fotosEspacioMascota"])
	assert.Equal(t, []string{"firulais.jpg"}, files["fotosMascotasAnteriores"])
}

func TestHTTPSubmitter_ServerErrorLeavesFormFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Animal no encontrado"}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	client, err := httpclient.New(srv.URL, 0)
	require.NoError(t, err)

	f := New(NewHTTPSubmitter(client, ""), "u1", "r1", "a1")
	require.NoError(t, f.Edit(func(d *Draft) {
		fillBasic(d)
		d.DocumentoINE = []string{writeTemp(t, dir, "a.jpg"), writeTemp(t, dir, "b.jpg")}
		d.FotosEspacioMascota = []string{writeTemp(t, dir, "c.jpg")}
	}))
	require.NoError(t, f.Next())
	require.NoError(t, f.Next())
	require.NoError(t, f.Next())

	_, err = f.Submit(context.Background())
	var he *httpclient.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.StatusCode)
	assert.Equal(t, "Animal no encontrado", he.Message)
	assert.Equal(t, StateFailed, f.State())
}
