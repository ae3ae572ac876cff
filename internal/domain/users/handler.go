package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vet-clinic-records/internal/middleware"
	"vet-clinic-records/internal/platform/httpx"
)

// PrincipalFrom arma el Principal desde las claims del request.
// Un rol desconocido en el token se degrada a staff.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	claims, ok := middleware.GetClaims(ctx)
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return Principal{}, false
	}
	role, ok := ParseRole(claims.Role)
	if !ok {
		role = RoleStaff
	}
	return Principal{ID: strings.TrimSpace(claims.UserID), Role: role}, true
}

// RegisterRoutes monta /users. authLimiter se aplica a register y login.
func RegisterRoutes(r chi.Router, svc *Service, authLimiter func(http.Handler) http.Handler) {
	r.Route("/users", func(ur chi.Router) {
		ur.Group(func(pub chi.Router) {
			if authLimiter != nil {
				pub.Use(authLimiter)
			}
			pub.Post("/register", registerHandler(svc))
			pub.Post("/login", loginHandler(svc))
		})

		ur.Get("/me", profileHandler(svc))
		ur.Put("/me", updateProfileHandler(svc))
		ur.Put("/{userID}/role", setRoleHandler(svc))
	})
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
	Position string `json:"position"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password"`
	Position *string `json:"position"`
	Address  *string `json:"address"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea un usuario con rol staff y devuelve un token.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos del usuario"
// @Success 201 {object} AuthResult
// @Failure 400 {object} httpx.MessageResponse
// @Failure 409 {object} httpx.MessageResponse
// @Router /users/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Message(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := httpx.Validate(req); err != nil {
			httpx.RespondError(w, err)
			return
		}

		res, err := svc.Register(r.Context(), RegisterInput{
			Name:     req.Name,
			Phone:    req.Phone,
			Email:    req.Email,
			Password: req.Password,
			Position: req.Position,
			Address:  req.Address,
		})
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, res)
	}
}

// loginHandler godoc
// @Summary Login
// @Tags users
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} AuthResult
// @Failure 401 {object} httpx.MessageResponse
// @Router /users/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Message(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := httpx.Validate(req); err != nil {
			httpx.RespondError(w, err)
			return
		}

		res, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, res)
	}
}

func profileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		rec, err := svc.Profile(r.Context(), p.ID)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, rec)
	}
}

func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req updateProfileRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Message(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := httpx.Validate(req); err != nil {
			httpx.RespondError(w, err)
			return
		}

		rec, err := svc.UpdateProfile(r.Context(), p.ID, UpdateProfileInput{
			Name:     req.Name,
			Phone:    req.Phone,
			Email:    req.Email,
			Password: req.Password,
			Position: req.Position,
			Address:  req.Address,
		})
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, rec)
	}
}

func setRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req setRoleRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Message(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := httpx.Validate(req); err != nil {
			httpx.RespondError(w, err)
			return
		}

		rec, err := svc.SetRole(r.Context(), p, chi.URLParam(r, "userID"), req.Role)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, rec)
	}
}
