package adoptions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() Submission {
	return Submission{
		IDUsuario:           "u1",
		IDRefugio:           "r1",
		IDAnimal:            "a1",
		Motivo:              "Quiero darle un hogar",
		HaAdoptadoAntes:     "no",
		TipoVivienda:        "propio",
		DocumentoINE:        []string{"ine-frente.jpg", "ine-reverso.jpg"},
		FotosEspacioMascota: []string{"patio.jpg"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(s *Submission)
		wantField string
		wantMsg   string
	}{
		{name: "valid", mutate: func(s *Submission) {}},
		{name: "missing user", mutate: func(s *Submission) { s.IDUsuario = " " }, wantField: "idUsuario"},
		{name: "missing shelter", mutate: func(s *Submission) { s.IDRefugio = "" }, wantField: "idRefugio"},
		{name: "missing animal", mutate: func(s *Submission) { s.IDAnimal = "" }, wantField: "idAnimal"},
		{name: "missing motive", mutate: func(s *Submission) { s.Motivo = "" }, wantField: "motivo"},
		{name: "markup-only motive", mutate: func(s *Submission) { s.Motivo = "<b></b>" }, wantField: "motivo"},
		{name: "bad prior answer", mutate: func(s *Submission) { s.HaAdoptadoAntes = "tal vez" }, wantField: "haAdoptadoAntes"},
		{name: "bad housing", mutate: func(s *Submission) { s.TipoVivienda = "prestada" }, wantField: "tipoVivienda"},
		{
			name:      "one ID side",
			mutate:    func(s *Submission) { s.DocumentoINE = s.DocumentoINE[:1] },
			wantField: "documentoINE",
			wantMsg:   MsgINEBothSides,
		},
		{name: "no living space photo", mutate: func(s *Submission) { s.FotosEspacioMascota = []string{} }, wantField: "fotosEspacioMascota"},
		{
			name: "adopted before without photos",
			mutate: func(s *Submission) {
				s.HaAdoptadoAntes = "si"
				s.CantidadMascotasAnteriores = 2
			},
			wantField: "fotosMascotasAnteriores",
		},
		{
			name: "adopted before without count",
			mutate: func(s *Submission) {
				s.HaAdoptadoAntes = "si"
				s.FotosMascotasAnteriores = []string{"firulais.jpg"}
			},
			wantField: "cantidadMascotasAnteriores",
		},
		{
			name: "adopted before complete",
			mutate: func(s *Submission) {
				s.HaAdoptadoAntes = "SI"
				s.CantidadMascotasAnteriores = 1
				s.FotosMascotasAnteriores = []string{"firulais.jpg"}
			},
		},
		{name: "rent without permission", mutate: func(s *Submission) { s.TipoVivienda = "renta" }, wantField: "permisoMascotasRenta"},
		{
			name: "rent with bad permission",
			mutate: func(s *Submission) {
				s.TipoVivienda = "renta"
				s.PermisoMascotasRenta = "quizas"
			},
			wantField: "permisoMascotasRenta",
		},
		{
			name: "rent with permission",
			mutate: func(s *Submission) {
				s.TipoVivienda = "renta"
				s.PermisoMascotasRenta = "si"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.mutate(&s)

			err := Validate(s)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.NotEmpty(t, ve.Message)
			assert.ErrorIs(t, err, ErrInvalidInput)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, ve.Message)
			}
		})
	}
}

func TestValidate_GroupOrder(t *testing.T) {
	// text fields are reported before file counts, file counts before conditionals
	s := validSubmission()
	s.Motivo = ""
	s.DocumentoINE = nil
	s.TipoVivienda = "renta"

	var ve *ValidationError
	require.ErrorAs(t, Validate(s), &ve)
	assert.Equal(t, "motivo", ve.Field)

	s.Motivo = "ok"
	require.ErrorAs(t, Validate(s), &ve)
	assert.Equal(t, "documentoINE", ve.Field)

	s.DocumentoINE = []string{"a.jpg", "b.jpg"}
	require.ErrorAs(t, Validate(s), &ve)
	assert.Equal(t, "permisoMascotasRenta", ve.Field)
}

func TestValidateFields_OnlyChecksSubset(t *testing.T) {
	s := Submission{Motivo: "Tengo jardín", DocumentoINE: []string{"a.jpg", "b.jpg"}}

	assert.NoError(t, ValidateFields(s, FieldMotivo, FieldDocumentoINE))
	assert.Error(t, ValidateFields(s, FieldTipoVivienda))

	s.TipoVivienda = "renta"
	var ve *ValidationError
	require.ErrorAs(t, ValidateFields(s, FieldTipoVivienda, FieldPermisoMascotasRenta), &ve)
	assert.Equal(t, "permisoMascotasRenta", ve.Field)
}

func TestNormalize(t *testing.T) {
	s := Normalize(Submission{
		IDUsuario:                  " u1 ",
		Motivo:                     " <i>Quiero</i> adoptar ",
		HaAdoptadoAntes:            "No",
		CantidadMascotasAnteriores: 3,
		TipoVivienda:               "Propio",
		PermisoMascotasRenta:       "si",
		FotosEspacioMascota:        []string{},
	})

	assert.Equal(t, "u1", s.IDUsuario)
	assert.Equal(t, "Quiero adoptar", s.Motivo)
	assert.Equal(t, "no", s.HaAdoptadoAntes)
	assert.Zero(t, s.CantidadMascotasAnteriores)
	assert.Equal(t, "propio", s.TipoVivienda)
	assert.Empty(t, s.PermisoMascotasRenta)
	assert.Nil(t, s.FotosEspacioMascota)
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 2, ParseCount(" 2 "))
	assert.Equal(t, 0, ParseCount(""))
	assert.Equal(t, 0, ParseCount("dos"))
}
