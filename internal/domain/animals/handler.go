package animals

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pet-adoption-api/internal/intake"
	"pet-adoption-api/internal/platform/httpx"
	"pet-adoption-api/internal/platform/logger"
)

const fieldFotos = "fotos"

func RegisterRoutes(r chi.Router, svc *Service, in *intake.Intake, log logger.Logger) {
	log = log.With(map[string]any{"module": "animales"})

	r.Route("/animales", func(ar chi.Router) {
		ar.Post("/", createHandler(svc, in, log))
		ar.Get("/", listAvailableHandler(svc, log))
		ar.Get("/refugio/{id}", listByShelterHandler(svc, log))
		ar.Get("/{id}", getHandler(svc, log))
		ar.Patch("/{id}/adoptado", setAdoptedHandler(svc, log))
	})
}

type animalEnvelope struct {
	Success bool   `json:"success"`
	Animal  Animal `json:"animal"`
}

type setAdoptedRequest struct {
	Adoptado *bool `json:"adoptado"`
}

// createHandler godoc
// @Summary Registrar animal
// @Description Un refugio publica un animal con sus fotos. El refugio debe existir; si no, se borran las fotos subidas.
// @Tags animales
// @Accept multipart/form-data
// @Produce json
// @Param idRefugio formData string true "ID del refugio"
// @Param nombre formData string true "Nombre"
// @Param especie formData string true "Especie"
// @Param raza formData string false "Raza"
// @Param edad formData string false "Edad (texto libre)"
// @Param sexo formData string false "macho | hembra"
// @Param tamano formData string false "pequeño | mediano | grande"
// @Param esterilizado formData string false "true | false | si | no"
// @Param fotos formData file false "Fotos (varias)"
// @Success 201 {object} animalEnvelope
// @Failure 400 {object} httpx.Failure
// @Failure 404 {object} httpx.Failure
// @Router /api/animales [post]
func createHandler(svc *Service, in *intake.Intake, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := in.Parse(w, r, fieldFotos)
		if err != nil {
			if errors.Is(err, intake.ErrMalformed) {
				httpx.WriteError(w, http.StatusBadRequest, "Formulario inválido")
				return
			}
			log.Error("upload failed", map[string]any{"err": err})
			httpx.WriteError(w, http.StatusInternalServerError, "Error al guardar los archivos")
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			IDRefugio:             form.Value("idRefugio"),
			Nombre:                form.Value("nombre"),
			Especie:               form.Value("especie"),
			Raza:                  form.Value("raza"),
			Edad:                  form.Value("edad"),
			Sexo:                  form.Value("sexo"),
			Tamano:                form.Value("tamano"),
			Descripcion:           form.Value("descripcion"),
			HistorialMedico:       form.Value("historialMedico"),
			NecesidadesEspeciales: form.Value("necesidadesEspeciales"),
			Esterilizado:          parseFlag(form.Value("esterilizado")),
			Fotos:                 form.Files(fieldFotos),
		})
		if err != nil {
			in.Cleanup(r.Context(), form.All()...)
			writeServiceError(w, err, log)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, animalEnvelope{Success: true, Animal: a})
	}
}

// listAvailableHandler godoc
// @Summary Listar animales disponibles
// @Description Solo animales con adoptado=false.
// @Tags animales
// @Produce json
// @Success 200 {array} Animal
// @Failure 500 {object} httpx.Failure
// @Router /api/animales [get]
func listAvailableHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAvailable(r.Context())
		if err != nil {
			writeServiceError(w, err, log)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, nonNil(items))
	}
}

// listByShelterHandler godoc
// @Summary Listar animales de un refugio
// @Tags animales
// @Produce json
// @Param id path string true "ID del refugio"
// @Success 200 {array} Animal
// @Router /api/animales/refugio/{id} [get]
func listByShelterHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByShelter(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err, log)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, nonNil(items))
	}
}

// getHandler godoc
// @Summary Obtener animal
// @Tags animales
// @Produce json
// @Param id path string true "ID del animal"
// @Success 200 {object} Animal
// @Failure 404 {object} httpx.Failure
// @Router /api/animales/{id} [get]
func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err, log)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, a)
	}
}

// setAdoptedHandler godoc
// @Summary Marcar animal como adoptado
// @Tags animales
// @Accept json
// @Produce json
// @Param id path string true "ID del animal"
// @Param payload body setAdoptedRequest true "Nuevo valor"
// @Success 200 {object} animalEnvelope
// @Failure 400 {object} httpx.Failure
// @Failure 404 {object} httpx.Failure
// @Router /api/animales/{id}/adoptado [patch]
func setAdoptedHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setAdoptedRequest
		if err := httpx.DecodeJSON(r, &req); err != nil || req.Adoptado == nil {
			httpx.WriteError(w, http.StatusBadRequest, "Se requiere el campo adoptado")
			return
		}

		a, err := svc.SetAdopted(r.Context(), chi.URLParam(r, "id"), *req.Adoptado)
		if err != nil {
			writeServiceError(w, err, log)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, animalEnvelope{Success: true, Animal: a})
	}
}

func writeServiceError(w http.ResponseWriter, err error, log logger.Logger) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "Datos del animal inválidos")
	case errors.Is(err, ErrShelterNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Refugio no encontrado")
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Animal no encontrado")
	default:
		log.Error("animales: internal error", map[string]any{"err": err})
		httpx.WriteError(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}

// parseFlag acepta lo que manda la app: "true", "si", "1".
func parseFlag(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "si" || v == "sí" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

func nonNil(items []Animal) []Animal {
	if items == nil {
		return []Animal{}
	}
	return items
}
