package adoptions

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"pet-adoption-api/internal/platform/sanitize"
)

// Submission son los datos del formulario de adopción, tal como los arma la
// app. Las reglas viven en los tags y se usan igual en el servidor y en el
// cliente del formulario.
type Submission struct {
	IDUsuario       string `form:"idUsuario" validate:"required"`
	IDRefugio       string `form:"idRefugio" validate:"required"`
	IDAnimal        string `form:"idAnimal" validate:"required"`
	Motivo          string `form:"motivo" validate:"required"`
	HaAdoptadoAntes string `form:"haAdoptadoAntes" validate:"required,oneof=si no"`
	TipoVivienda    string `form:"tipoVivienda" validate:"required,oneof=propio renta"`

	DocumentoINE        []string `form:"documentoINE" validate:"min=2"`
	FotosEspacioMascota []string `form:"fotosEspacioMascota" validate:"min=1"`

	CantidadMascotasAnteriores int      `form:"cantidadMascotasAnteriores" validate:"required_if=HaAdoptadoAntes si,omitempty,min=1"`
	FotosMascotasAnteriores    []string `form:"fotosMascotasAnteriores" validate:"required_if=HaAdoptadoAntes si"`
	PermisoMascotasRenta       string   `form:"permisoMascotasRenta" validate:"required_if=TipoVivienda renta,omitempty,oneof=si no"`
}

// Nombres de campo del struct, para validar subconjuntos.
const (
	FieldIDUsuario                  = "IDUsuario"
	FieldIDRefugio                  = "IDRefugio"
	FieldIDAnimal                   = "IDAnimal"
	FieldMotivo                     = "Motivo"
	FieldHaAdoptadoAntes            = "HaAdoptadoAntes"
	FieldTipoVivienda               = "TipoVivienda"
	FieldDocumentoINE               = "DocumentoINE"
	FieldFotosEspacioMascota        = "FotosEspacioMascota"
	FieldCantidadMascotasAnteriores = "CantidadMascotasAnteriores"
	FieldFotosMascotasAnteriores    = "FotosMascotasAnteriores"
	FieldPermisoMascotasRenta       = "PermisoMascotasRenta"
)

// Grupos en el orden en que se evalúan: se corta en el primer grupo que falla.
var ruleGroups = [][]string{
	{FieldIDUsuario, FieldIDRefugio, FieldIDAnimal, FieldMotivo, FieldHaAdoptadoAntes, FieldTipoVivienda},
	{FieldDocumentoINE, FieldFotosEspacioMascota},
	{FieldCantidadMascotasAnteriores, FieldFotosMascotasAnteriores, FieldPermisoMascotasRenta},
}

// ValidationError es un error de datos con mensaje para el usuario final.
type ValidationError struct {
	Field   string // nombre del campo del formulario
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

const MsgINEBothSides = "Se requieren ambos lados de la identificación (frente y reverso)"

var messages = map[string]string{
	FieldIDUsuario:                  "El usuario es obligatorio",
	FieldIDRefugio:                  "El refugio es obligatorio",
	FieldIDAnimal:                   "El animal es obligatorio",
	FieldMotivo:                     "Cuéntanos por qué quieres adoptar",
	FieldHaAdoptadoAntes:            "Indica si has adoptado antes (si/no)",
	FieldTipoVivienda:               "Indica el tipo de vivienda (propio/renta)",
	FieldDocumentoINE:               MsgINEBothSides,
	FieldFotosEspacioMascota:        "Se requiere al menos una foto del espacio para la mascota",
	FieldCantidadMascotasAnteriores: "Indica cuántas mascotas has tenido",
	FieldFotosMascotasAnteriores:    "Se requiere al menos una foto de tus mascotas anteriores",
	FieldPermisoMascotasRenta:       "Indica si tu contrato de renta permite mascotas (si/no)",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := f.Tag.Get("form")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Normalize recorta espacios, limpia el motivo y convierte listas vacías en
// nil. Validate y Submit lo aplican una sola vez; el cliente lo puede usar antes de pintar.
func Normalize(s Submission) Submission {
	s.IDUsuario = strings.TrimSpace(s.IDUsuario)
	s.IDRefugio = strings.TrimSpace(s.IDRefugio)
	s.IDAnimal = strings.TrimSpace(s.IDAnimal)
	s.Motivo = sanitize.Text(s.Motivo)
	s.HaAdoptadoAntes = normalizeAnswer(s.HaAdoptadoAntes)
	s.TipoVivienda = strings.ToLower(strings.TrimSpace(s.TipoVivienda))
	s.PermisoMascotasRenta = normalizeAnswer(s.PermisoMascotasRenta)

	s.DocumentoINE = nilIfEmpty(s.DocumentoINE)
	s.FotosEspacioMascota = nilIfEmpty(s.FotosEspacioMascota)
	s.FotosMascotasAnteriores = nilIfEmpty(s.FotosMascotasAnteriores)

	if s.HaAdoptadoAntes == AnswerNo {
		s.CantidadMascotasAnteriores = 0
	}
	if s.TipoVivienda == HousingOwn {
		s.PermisoMascotasRenta = ""
	}
	return s
}

// Validate aplica todas las reglas en orden y devuelve el primer error.
func Validate(s Submission) error {
	return checkRules(Normalize(s))
}

// checkRules valida un Submission ya normalizado. Normalize no es idempotente
// con el motivo ("&lt;b&gt;" pasa a "<b>" y luego a ""), así que no se repite.
func checkRules(s Submission) error {
	for _, group := range ruleGroups {
		if err := validateFields(s, group...); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFields valida solo los campos indicados (pasos del formulario).
func ValidateFields(s Submission, fields ...string) error {
	s = Normalize(s)
	for _, group := range ruleGroups {
		var sub []string
		for _, f := range group {
			if contains(fields, f) {
				sub = append(sub, f)
			}
		}
		if len(sub) == 0 {
			continue
		}
		if err := validateFields(s, sub...); err != nil {
			return err
		}
	}
	return nil
}

func validateFields(s Submission, fields ...string) error {
	err := validate.StructPartial(s, fields...)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}

	// los errores vienen en orden de struct; respetamos el orden del grupo
	for _, f := range fields {
		for _, fe := range ve {
			if fe.StructField() == f {
				return &ValidationError{Field: fe.Field(), Message: messages[f]}
			}
		}
	}
	fe := ve[0]
	return &ValidationError{Field: fe.Field(), Message: messages[fe.StructField()]}
}

// ParseCount interpreta cantidadMascotasAnteriores; vacío o inválido es 0.
func ParseCount(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

func normalizeAnswer(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "sí" {
		return AnswerYes
	}
	return v
}

func nilIfEmpty(v []string) []string {
	if len(v) == 0 {
		return nil
	}
	return v
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
