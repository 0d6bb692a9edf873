package adoptions

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption-api/internal/intake"
	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/platform/httpx"
	"pet-adoption-api/internal/platform/logger"
)

// Campos de archivo del formulario.
const (
	FormDocumentoINE            = "documentoINE"
	FormFotosEspacioMascota     = "fotosEspacioMascota"
	FormFotosMascotasAnteriores = "fotosMascotasAnteriores"
)

func RegisterRoutes(r chi.Router, svc *Service, in *intake.Intake, log logger.Logger) {
	log = log.With(map[string]any{"module": "solicitudes-adopcion"})

	r.Route("/solicitudes-adopcion", func(sr chi.Router) {
		sr.Post("/", submitHandler(svc, in, log))
		sr.Get("/usuario/{id}", listByUserHandler(svc, log))
		sr.Get("/refugio/{id}", listByShelterHandler(svc, log))
		sr.Get("/refugio/{id}/pendientes", listPendingHandler(svc, log))
		sr.Get("/{id}", getHandler(svc, log))

		// Moderación (refugio)
		sr.Patch("/{id}", setStatusHandler(svc, log))
	})
}

type requestResponse struct {
	ID                         string    `json:"_id"`
	IDUsuario                  string    `json:"idUsuario"`
	IDAnimal                   string    `json:"idAnimal"`
	IDRefugio                  string    `json:"idRefugio"`
	Motivo                     string    `json:"motivo"`
	Estado                     Status    `json:"estado"`
	DocumentoINE               []string  `json:"documentoINE"`
	HaAdoptadoAntes            string    `json:"haAdoptadoAntes"`
	CantidadMascotasAnteriores int       `json:"cantidadMascotasAnteriores"`
	FotosMascotasAnteriores    []string  `json:"fotosMascotasAnteriores"`
	TipoVivienda               string    `json:"tipoVivienda"`
	PermisoMascotasRenta       string    `json:"permisoMascotasRenta,omitempty"`
	FotosEspacioMascota        []string  `json:"fotosEspacioMascota"`
	FechaSolicitud             time.Time `json:"fechaSolicitud"`
	UpdatedAt                  time.Time `json:"updatedAt"`
}

type userSummaryResponse struct {
	ID         string `json:"_id"`
	Nombre     string `json:"nombre"`
	Email      string `json:"email"`
	Telefono   string `json:"telefono"`
	FotoPerfil string `json:"fotoPerfil,omitempty"`
}

type animalSummaryResponse struct {
	ID       string   `json:"_id"`
	Nombre   string   `json:"nombre"`
	Especie  string   `json:"especie"`
	Raza     string   `json:"raza"`
	Fotos    []string `json:"fotos"`
	Adoptado bool     `json:"adoptado"`
}

type shelterSummaryResponse struct {
	ID        string `json:"_id"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Logo      string `json:"logo,omitempty"`
}

type requestViewResponse struct {
	requestResponse
	Usuario *userSummaryResponse    `json:"usuario,omitempty"`
	Animal  *animalSummaryResponse  `json:"animal,omitempty"`
	Refugio *shelterSummaryResponse `json:"refugio,omitempty"`
}

type submitResponse struct {
	Success   bool            `json:"success"`
	Solicitud requestResponse `json:"solicitud"`
}

type setStatusRequest struct {
	Estado string `json:"estado"`
}

type setStatusResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Solicitud requestResponse `json:"solicitud"`
}

// submitHandler godoc
// @Summary Enviar solicitud de adopción
// @Description Recibe el formulario multipart con los documentos. Valida campos, cantidad de archivos, condicionales y que existan usuario, animal y refugio. Ante cualquier error borra los archivos subidos y no guarda nada.
// @Tags solicitudes-adopcion
// @Accept multipart/form-data
// @Produce json
// @Param idUsuario formData string true "ID del usuario"
// @Param idRefugio formData string true "ID del refugio"
// @Param idAnimal formData string true "ID del animal"
// @Param motivo formData string true "Motivo"
// @Param haAdoptadoAntes formData string true "si | no"
// @Param cantidadMascotasAnteriores formData int false "Requerido si haAdoptadoAntes=si"
// @Param tipoVivienda formData string true "propio | renta"
// @Param permisoMascotasRenta formData string false "si | no, requerido si tipoVivienda=renta"
// @Param documentoINE formData file true "Frente y reverso de la identificación (2 archivos)"
// @Param fotosEspacioMascota formData file true "Fotos del espacio (1 o más)"
// @Param fotosMascotasAnteriores formData file false "Fotos de mascotas anteriores"
// @Success 201 {object} submitResponse
// @Failure 400 {object} httpx.Failure
// @Failure 404 {object} httpx.Failure
// @Failure 500 {object} httpx.Failure
// @Router /api/solicitudes-adopcion [post]
func submitHandler(svc *Service, in *intake.Intake, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := in.Parse(w, r, FormDocumentoINE, FormFotosEspacioMascota, FormFotosMascotasAnteriores)
		if err != nil {
			if errors.Is(err, intake.ErrMalformed) {
				httpx.WriteError(w, http.StatusBadRequest, "Formulario inválido")
				return
			}
			log.Error("upload failed", map[string]any{"err": err})
			httpx.WriteError(w, http.StatusInternalServerError, "Error al guardar los archivos")
			return
		}

		req, err := svc.Submit(r.Context(), Submission{
			IDUsuario:                  form.Value("idUsuario"),
			IDRefugio:                  form.Value("idRefugio"),
			IDAnimal:                   form.Value("idAnimal"),
			Motivo:                     form.Value("motivo"),
			HaAdoptadoAntes:            form.Value("haAdoptadoAntes"),
			CantidadMascotasAnteriores: ParseCount(form.Value("cantidadMascotasAnteriores")),
			TipoVivienda:               form.Value("tipoVivienda"),
			PermisoMascotasRenta:       form.Value("permisoMascotasRenta"),
			DocumentoINE:               form.Files(FormDocumentoINE),
			FotosEspacioMascota:        form.Files(FormFotosEspacioMascota),
			FotosMascotasAnteriores:    form.Files(FormFotosMascotasAnteriores),
		})
		if err != nil {
			in.Cleanup(r.Context(), form.All()...)
			writeServiceError(w, err, log)
			return
		}

		log.Info("adoption request created", map[string]any{
			"request_id": req.ID,
			"user_id":    req.IDUsuario,
			"animal_id":  req.IDAnimal,
			"shelter_id": req.IDRefugio,
		})
		httpx.WriteJSON(w, http.StatusCreated, submitResponse{Success: true, Solicitud: toRequestResponse(req)})
	}
}

// listByUserHandler godoc
// @Summary Solicitudes de un usuario
// @Tags solicitudes-adopcion
// @Produce json
// @Param id path string true "ID del usuario"
// @Success 200 {array} requestViewResponse
// @Failure 500 {object} httpx.Failure
// @Router /api/solicitudes-adopcion/usuario/{id} [get]
func listByUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByUser(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err, log)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toViewResponses(items))
	}
}

// listByShelterHandler godoc
// @Summary Solicitudes recibidas por un refugio
// @Tags solicitudes-adopcion
// @Produce json
// @Param id path string true "ID del refugio"
// @Param estado query string false "pendiente | aprobada | rechazada"
// @Success 200 {array} requestViewResponse
// @Failure 400 {object} httpx.Failure
// @Failure 500 {object} httpx.Failure
// @Router /api/solicitudes-adopcion/refugio/{id} [get]
func listByShelterHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByShelter(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("estado"))
		if err != nil {
			writeServiceError(w, err, log)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toViewResponses(items))
	}
}

// listPendingHandler godoc
// @Summary Solicitudes pendientes de un refugio
// @Tags solicitudes-adopcion
// @Produce json
// @Param id path string true "ID del refugio"
// @Success 200 {array} requestViewResponse
// @Failure 500 {object} httpx.Failure
// @Router /api/solicitudes-adopcion/refugio/{id}/pendientes [get]
func listPendingHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListPending(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err, log)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toViewResponses(items))
	}
}

// getHandler godoc
// @Summary Obtener solicitud
// @Tags solicitudes-adopcion
// @Produce json
// @Param id path string true "ID de la solicitud"
// @Success 200 {object} requestResponse
// @Failure 404 {object} httpx.Failure
// @Router /api/solicitudes-adopcion/{id} [get]
func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err, log)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRequestResponse(req))
	}
}

// setStatusHandler godoc
// @Summary Aprobar o rechazar una solicitud
// @Description Solo desde pendiente. Al aprobar, el animal queda marcado como adoptado. No se verifica que quien modera sea el refugio dueño de la solicitud.
// @Tags solicitudes-adopcion
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token del refugio"
// @Param id path string true "ID de la solicitud"
// @Param payload body setStatusRequest true "Nuevo estado"
// @Success 200 {object} setStatusResponse
// @Failure 400 {object} httpx.Failure
// @Failure 404 {object} httpx.Failure
// @Failure 409 {object} httpx.Failure
// @Failure 500 {object} httpx.Failure
// @Router /api/solicitudes-adopcion/{id} [patch]
func setStatusHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body setStatusRequest
		if err := httpx.DecodeJSON(r, &body); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		id := chi.URLParam(r, "id")
		req, err := svc.SetStatus(r.Context(), id, body.Estado)
		if err != nil {
			writeServiceError(w, err, log)
			return
		}

		fields := map[string]any{
			"request_id": req.ID,
			"shelter_id": req.IDRefugio,
			"estado":     req.Estado,
		}
		if claims, ok := middleware.GetClaims(r.Context()); ok {
			fields["caller_id"] = claims.UserID
			fields["caller_kind"] = claims.Kind
		}
		log.Info("adoption request moderated", fields)

		httpx.WriteJSON(w, http.StatusOK, setStatusResponse{
			Success:   true,
			Message:   "Solicitud " + string(req.Estado),
			Solicitud: toRequestResponse(req),
		})
	}
}

func writeServiceError(w http.ResponseWriter, err error, log logger.Logger) {
	var ve *ValidationError
	var re *ReferenceError
	switch {
	case errors.As(err, &ve):
		httpx.WriteError(w, http.StatusBadRequest, ve.Message)
	case errors.As(err, &re):
		if errors.Is(re, ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, re.Error())
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, re.Error())
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "Estado inválido")
	case errors.Is(err, ErrAnimalNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Animal no encontrado")
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Solicitud no encontrada")
	case errors.Is(err, ErrInvalidTransition):
		httpx.WriteError(w, http.StatusConflict, "La solicitud ya fue moderada")
	default:
		log.Error("solicitudes: internal error", map[string]any{"err": err})
		httpx.WriteError(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}

func toRequestResponse(r Request) requestResponse {
	return requestResponse{
		ID:                         r.ID,
		IDUsuario:                  r.IDUsuario,
		IDAnimal:                   r.IDAnimal,
		IDRefugio:                  r.IDRefugio,
		Motivo:                     r.Motivo,
		Estado:                     r.Estado,
		DocumentoINE:               orEmpty(r.DocumentoINE),
		HaAdoptadoAntes:            r.HaAdoptadoAntes,
		CantidadMascotasAnteriores: r.CantidadMascotasAnteriores,
		FotosMascotasAnteriores:    orEmpty(r.FotosMascotasAnteriores),
		TipoVivienda:               r.TipoVivienda,
		PermisoMascotasRenta:       r.PermisoMascotasRenta,
		FotosEspacioMascota:        orEmpty(r.FotosEspacioMascota),
		FechaSolicitud:             r.FechaSolicitud,
		UpdatedAt:                  r.UpdatedAt,
	}
}

func toViewResponses(items []RequestView) []requestViewResponse {
	out := make([]requestViewResponse, 0, len(items))
	for _, v := range items {
		resp := requestViewResponse{requestResponse: toRequestResponse(v.Request)}
		if u := v.Usuario; u != nil {
			resp.Usuario = &userSummaryResponse{
				ID:         u.ID,
				Nombre:     u.Nombre,
				Email:      u.Email,
				Telefono:   u.Telefono,
				FotoPerfil: u.FotoPerfil,
			}
		}
		if a := v.Animal; a != nil {
			resp.Animal = &animalSummaryResponse{
				ID:       a.ID,
				Nombre:   a.Nombre,
				Especie:  a.Especie,
				Raza:     a.Raza,
				Fotos:    orEmpty(a.Fotos),
				Adoptado: a.Adoptado,
			}
		}
		if s := v.Refugio; s != nil {
			resp.Refugio = &shelterSummaryResponse{
				ID:        s.ID,
				Nombre:    s.Nombre,
				Email:     s.Email,
				Telefono:  s.Telefono,
				Direccion: s.Direccion,
				Logo:      s.Logo,
			}
		}
		out = append(out, resp)
	}
	return out
}
