package shelters

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption-api/internal/intake"
	"pet-adoption-api/internal/platform/httpx"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/ports/auth"
)

const (
	fieldLogo               = "logo"
	fieldDocumentosLegales  = "documentosLegales"
	fieldFormularioAdopcion = "formularioAdopcion"
)

func RegisterRoutes(r chi.Router, svc *Service, in *intake.Intake, issuer auth.TokenIssuer, log logger.Logger) {
	log = log.With(map[string]any{"module": "refugios"})

	r.Route("/refugios", func(sr chi.Router) {
		sr.Post("/", registerHandler(svc, in, log))
		sr.Post("/login", loginHandler(svc, issuer, log))
		sr.Get("/", listHandler(svc, log))
		sr.Get("/{id}", getHandler(svc, log))
	})
}

type shelterResponse struct {
	ID                 string    `json:"_id"`
	Nombre             string    `json:"nombre"`
	Email              string    `json:"email"`
	Telefono           string    `json:"telefono"`
	Direccion          string    `json:"direccion"`
	Descripcion        string    `json:"descripcion"`
	Logo               string    `json:"logo,omitempty"`
	DocumentosLegales  []string  `json:"documentosLegales"`
	FormularioAdopcion string    `json:"formularioAdopcion,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type shelterEnvelope struct {
	Success bool            `json:"success"`
	Refugio shelterResponse `json:"refugio"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	Refugio shelterResponse `json:"refugio"`
}

// registerHandler godoc
// @Summary Registrar refugio
// @Description Crea un refugio con logo, documentos legales y formulario de adopción. Si algo falla se borran los archivos subidos.
// @Tags refugios
// @Accept multipart/form-data
// @Produce json
// @Param nombre formData string true "Nombre"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param telefono formData string true "Teléfono"
// @Param direccion formData string true "Dirección"
// @Param descripcion formData string false "Descripción"
// @Param logo formData file false "Logo"
// @Param documentosLegales formData file false "Documentos legales (varios)"
// @Param formularioAdopcion formData file false "Formulario de adopción (PDF)"
// @Success 201 {object} shelterEnvelope
// @Failure 400 {object} httpx.Failure
// @Failure 409 {object} httpx.Failure
// @Router /api/refugios [post]
func registerHandler(svc *Service, in *intake.Intake, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := in.Parse(w, r, fieldLogo, fieldDocumentosLegales, fieldFormularioAdopcion)
		if err != nil {
			if errors.Is(err, intake.ErrMalformed) {
				httpx.WriteError(w, http.StatusBadRequest, "Formulario inválido")
				return
			}
			log.Error("upload failed", map[string]any{"err": err})
			httpx.WriteError(w, http.StatusInternalServerError, "Error al guardar los archivos")
			return
		}

		sh, err := svc.Register(r.Context(), RegisterInput{
			Nombre:             form.Value("nombre"),
			Email:              form.Value("email"),
			Password:           form.Value("password"),
			Telefono:           form.Value("telefono"),
			Direccion:          form.Value("direccion"),
			Descripcion:        form.Value("descripcion"),
			Logo:               form.File(fieldLogo),
			DocumentosLegales:  form.Files(fieldDocumentosLegales),
			FormularioAdopcion: form.File(fieldFormularioAdopcion),
		})
		if err != nil {
			in.Cleanup(r.Context(), form.All()...)
			writeServiceError(w, err, log)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, shelterEnvelope{Success: true, Refugio: toShelterResponse(sh)})
	}
}

// loginHandler godoc
// @Summary Login de refugio
// @Tags refugios
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 401 {object} httpx.Failure
// @Router /api/refugios/login [post]
func loginHandler(svc *Service, issuer auth.TokenIssuer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		sh, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err, log)
			return
		}

		var token string
		if issuer != nil {
			token, err = issuer.Issue(auth.Claims{UserID: sh.ID, Email: sh.Email, Kind: auth.KindShelter})
			if err != nil {
				log.Error("issue token failed", map[string]any{"shelter_id": sh.ID, "err": err})
				httpx.WriteError(w, http.StatusInternalServerError, "Error interno del servidor")
				return
			}
		}

		httpx.WriteJSON(w, http.StatusOK, loginResponse{Success: true, Token: token, Refugio: toShelterResponse(sh)})
	}
}

// listHandler godoc
// @Summary Listar refugios
// @Tags refugios
// @Produce json
// @Success 200 {array} shelterResponse
// @Failure 500 {object} httpx.Failure
// @Router /api/refugios [get]
func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, err, log)
			return
		}
		out := make([]shelterResponse, 0, len(items))
		for _, sh := range items {
			out = append(out, toShelterResponse(sh))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getHandler godoc
// @Summary Obtener refugio
// @Tags refugios
// @Produce json
// @Param id path string true "ID del refugio"
// @Success 200 {object} shelterResponse
// @Failure 404 {object} httpx.Failure
// @Router /api/refugios/{id} [get]
func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sh, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err, log)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toShelterResponse(sh))
	}
}

func writeServiceError(w http.ResponseWriter, err error, log logger.Logger) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "Datos del refugio inválidos")
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Refugio no encontrado")
	case errors.Is(err, ErrConflict):
		httpx.WriteError(w, http.StatusConflict, "El email ya está registrado")
	case errors.Is(err, ErrUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, "Credenciales inválidas")
	default:
		log.Error("refugios: internal error", map[string]any{"err": err})
		httpx.WriteError(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}

func toShelterResponse(sh Shelter) shelterResponse {
	docs := sh.DocumentosLegales
	if docs == nil {
		docs = []string{}
	}
	return shelterResponse{
		ID:                 sh.ID,
		Nombre:             sh.Nombre,
		Email:              sh.Email,
		Telefono:           sh.Telefono,
		Direccion:          sh.Direccion,
		Descripcion:        sh.Descripcion,
		Logo:               sh.Logo,
		DocumentosLegales:  docs,
		FormularioAdopcion: sh.FormularioAdopcion,
		CreatedAt:          sh.CreatedAt,
		UpdatedAt:          sh.UpdatedAt,
	}
}
