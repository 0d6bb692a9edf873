package users

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption-api/internal/intake"
	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/platform/httpx"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/ports/auth"
)

const fieldFotoPerfil = "fotoPerfil"

func RegisterRoutes(r chi.Router, svc *Service, in *intake.Intake, issuer auth.TokenIssuer, log logger.Logger) {
	log = log.With(map[string]any{"module": "usuarios"})

	r.Route("/usuarios", func(ur chi.Router) {
		ur.Post("/", registerHandler(svc, in, log))
		ur.Post("/login", loginHandler(svc, issuer, log))
		ur.Get("/{id}", getUserHandler(svc))
		ur.Patch("/{id}", updateUserHandler(svc))

		// Solo administradores (rol 5)
		ur.Delete("/{id}", deleteUserHandler(svc, in, log))
	})
}

type userResponse struct {
	ID         string    `json:"_id"`
	Nombre     string    `json:"nombre"`
	Email      string    `json:"email"`
	Telefono   string    `json:"telefono"`
	Direccion  string    `json:"direccion"`
	FotoPerfil string    `json:"fotoPerfil,omitempty"`
	Rol        int       `json:"rol"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type userEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Usuario userResponse `json:"usuario"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	Usuario userResponse `json:"usuario"`
}

type updateUserRequest struct {
	Nombre    *string `json:"nombre"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea un usuario a partir de un formulario multipart. La foto de perfil es opcional y se borra si el registro falla.
// @Tags usuarios
// @Accept multipart/form-data
// @Produce json
// @Param nombre formData string true "Nombre"
// @Param email formData string true "Email"
// @Param password formData string true "Password (mínimo 6 caracteres)"
// @Param telefono formData string false "Teléfono"
// @Param direccion formData string false "Dirección"
// @Param fotoPerfil formData file false "Foto de perfil"
// @Success 201 {object} userEnvelope
// @Failure 400 {object} httpx.Failure
// @Failure 409 {object} httpx.Failure
// @Router /api/usuarios [post]
func registerHandler(svc *Service, in *intake.Intake, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := in.Parse(w, r, fieldFotoPerfil)
		if err != nil {
			writeIntakeError(w, err, log)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Nombre:     form.Value("nombre"),
			Email:      form.Value("email"),
			Password:   form.Value("password"),
			Telefono:   form.Value("telefono"),
			Direccion:  form.Value("direccion"),
			FotoPerfil: form.File(fieldFotoPerfil),
		})
		if err != nil {
			in.Cleanup(r.Context(), form.All()...)
			writeServiceError(w, err, log)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, userEnvelope{Success: true, Usuario: toUserResponse(u)})
	}
}

// loginHandler godoc
// @Summary Login de usuario
// @Tags usuarios
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 401 {object} httpx.Failure
// @Router /api/usuarios/login [post]
func loginHandler(svc *Service, issuer auth.TokenIssuer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		u, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err, log)
			return
		}

		var token string
		if issuer != nil {
			token, err = issuer.Issue(auth.Claims{
				UserID: u.ID,
				Email:  u.Email,
				Kind:   auth.KindUser,
				Role:   u.Rol,
			})
			if err != nil {
				log.Error("issue token failed", map[string]any{"user_id": u.ID, "err": err})
				httpx.WriteError(w, http.StatusInternalServerError, "Error interno del servidor")
				return
			}
		}

		httpx.WriteJSON(w, http.StatusOK, loginResponse{Success: true, Token: token, Usuario: toUserResponse(u)})
	}
}

// getUserHandler godoc
// @Summary Obtener usuario
// @Tags usuarios
// @Produce json
// @Param id path string true "ID del usuario"
// @Success 200 {object} userResponse
// @Failure 404 {object} httpx.Failure
// @Router /api/usuarios/{id} [get]
func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err, nil)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// updateUserHandler godoc
// @Summary Editar perfil de usuario
// @Tags usuarios
// @Accept json
// @Produce json
// @Param id path string true "ID del usuario"
// @Param payload body updateUserRequest true "Campos a modificar"
// @Success 200 {object} userEnvelope
// @Failure 400 {object} httpx.Failure
// @Failure 404 {object} httpx.Failure
// @Router /api/usuarios/{id} [patch]
func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		u, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Nombre:    req.Nombre,
			Telefono:  req.Telefono,
			Direccion: req.Direccion,
		})
		if err != nil {
			writeServiceError(w, err, nil)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, userEnvelope{
			Success: true,
			Message: "Perfil actualizado",
			Usuario: toUserResponse(u),
		})
	}
}

// deleteUserHandler godoc
// @Summary Eliminar usuario (admin)
// @Description Borra el usuario y su foto de perfil. Requiere token de un usuario con rol 5.
// @Tags usuarios
// @Produce json
// @Param Authorization header string true "Bearer token de administrador"
// @Param id path string true "ID del usuario"
// @Success 200 {object} userEnvelope
// @Failure 403 {object} httpx.Failure
// @Failure 404 {object} httpx.Failure
// @Router /api/usuarios/{id} [delete]
func deleteUserHandler(svc *Service, in *intake.Intake, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !claims.IsAdmin() {
			httpx.WriteError(w, http.StatusForbidden, "Solo un administrador puede eliminar usuarios")
			return
		}

		u, err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err, log)
			return
		}
		in.Cleanup(r.Context(), u.FotoPerfil)

		log.Info("user deleted", map[string]any{"user_id": u.ID, "admin_id": claims.UserID})
		httpx.WriteJSON(w, http.StatusOK, userEnvelope{
			Success: true,
			Message: "Usuario eliminado",
			Usuario: toUserResponse(u),
		})
	}
}

func writeIntakeError(w http.ResponseWriter, err error, log logger.Logger) {
	if errors.Is(err, intake.ErrMalformed) {
		httpx.WriteError(w, http.StatusBadRequest, "Formulario inválido")
		return
	}
	log.Error("upload failed", map[string]any{"err": err})
	httpx.WriteError(w, http.StatusInternalServerError, "Error al guardar los archivos")
}

func writeServiceError(w http.ResponseWriter, err error, log logger.Logger) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "Datos inválidos: "+err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Usuario no encontrado")
	case errors.Is(err, ErrConflict):
		httpx.WriteError(w, http.StatusConflict, "El email ya está registrado")
	case errors.Is(err, ErrUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, "Credenciales inválidas")
	default:
		if log != nil {
			log.Error("usuarios: internal error", map[string]any{"err": err})
		}
		httpx.WriteError(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:         u.ID,
		Nombre:     u.Nombre,
		Email:      u.Email,
		Telefono:   u.Telefono,
		Direccion:  u.Direccion,
		FotoPerfil: u.FotoPerfil,
		Rol:        u.Rol,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
