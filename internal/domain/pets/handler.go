package pets

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic-records/internal/domain/authz"
	"vet-clinic-records/internal/domain/users"
	"vet-clinic-records/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *authz.AdminOnly) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))

		// Solo admin (gate). Staff recibe {message: "Only admin can delete"}.
		pr.Delete("/{petID}", deletePetHandler(gate))
	})
}

type ownerRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type createPetRequest struct {
	Name      string       `json:"name" validate:"required"`
	Species   string       `json:"species" validate:"required,oneof=dog cat"`
	Breed     string       `json:"breed"`
	Sex       string       `json:"sex" validate:"omitempty,oneof=male female unknown"`
	BirthDate string       `json:"birth_date"` // YYYY-MM-DD opcional
	Microchip string       `json:"microchip" validate:"omitempty,numeric,len=15"`
	Notes     string       `json:"notes"`
	Owner     ownerRequest `json:"owner"`
}

type ownerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type petResponse struct {
	ID        string        `json:"id"`
	Owner     ownerResponse `json:"owner"`
	Name      string        `json:"name"`
	Species   Species       `json:"species"`
	Breed     string        `json:"breed"`
	Sex       Sex           `json:"sex"`
	BirthDate *time.Time    `json:"birth_date,omitempty"`
	Microchip string        `json:"microchip,omitempty"`
	Notes     string        `json:"notes"`
	CreatedBy string        `json:"created_by"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name       *string `json:"name"`
	Species    *string `json:"species"`
	Breed      *string `json:"breed"`
	Sex        *string `json:"sex"`
	Microchip  *string `json:"microchip"`
	Notes      *string `json:"notes"`
	OwnerName  *string `json:"owner_name"`
	OwnerPhone *string `json:"owner_phone"`
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Da de alta una ficha. Si no viene owner.id, el dueño es el usuario que crea la ficha.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} httpx.MessageResponse
// @Failure 401 {object} httpx.MessageResponse
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := users.PrincipalFrom(r.Context())
		if !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Message(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := httpx.Validate(req); err != nil {
			httpx.RespondError(w, err)
			return
		}

		bd, err := parseDate(req.BirthDate)
		if err != nil {
			httpx.Message(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
			return
		}

		p, err := svc.Create(r.Context(), actor.ID, CreateInput{
			Name:       req.Name,
			Species:    req.Species,
			Breed:      req.Breed,
			Sex:        req.Sex,
			BirthDate:  bd,
			Microchip:  req.Microchip,
			Notes:      req.Notes,
			OwnerID:    req.Owner.ID,
			OwnerName:  req.Owner.Name,
			OwnerPhone: req.Owner.Phone,
		})
		if err != nil {
			httpx.RespondError(w, err)
			return
		}

		httpx.JSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	// ?owner_id=... filtra por dueño
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := users.PrincipalFrom(r.Context()); !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var (
			items []Pet
			err   error
		)
		if owner := strings.TrimSpace(r.URL.Query().Get("owner_id")); owner != "" {
			items, err = svc.ListByOwner(r.Context(), owner)
		} else {
			items, err = svc.List(r.Context())
		}
		if err != nil {
			httpx.RespondError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := users.PrincipalFrom(r.Context()); !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := users.PrincipalFrom(r.Context()); !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		// Para soportar birth_date: null, necesitamos detectar presencia del campo.
		body, err := io.ReadAll(r.Body)
		if err != nil {
			httpx.Message(w, http.StatusBadRequest, "invalid json")
			return
		}
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(body, &raw); err != nil {
			httpx.Message(w, http.StatusBadRequest, "invalid json")
			return
		}
		var req updatePetRequest
		if err := json.Unmarshal(body, &req); err != nil {
			httpx.Message(w, http.StatusBadRequest, "invalid json")
			return
		}

		bd := BirthDatePatch{}
		if v, exists := raw["birth_date"]; exists {
			bd.Present = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					httpx.Message(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD or null")
					return
				}
				t, err := parseDate(s)
				if err != nil {
					httpx.Message(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD or null")
					return
				}
				bd.Value = t
			}
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), UpdateProfileInput{
			Name:       req.Name,
			Species:    req.Species,
			Breed:      req.Breed,
			Sex:        req.Sex,
			BirthDate:  bd,
			Microchip:  req.Microchip,
			Notes:      req.Notes,
			OwnerName:  req.OwnerName,
			OwnerPhone: req.OwnerPhone,
		})
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Solo admin. Denegación y "not found" se devuelven con el mismo shape {message}.
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} httpx.MessageResponse
// @Failure 401 {object} httpx.MessageResponse
// @Router /pets/{petID} [delete]
func deletePetHandler(gate *authz.AdminOnly) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := users.PrincipalFrom(r.Context())
		if !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		res, err := gate.DeletePet(r.Context(), actor.Role, chi.URLParam(r, "petID"))
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, res)
	}
}

func parseDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID: p.ID,
		Owner: ownerResponse{
			ID:    p.Owner.ID,
			Name:  p.Owner.Name,
			Phone: p.Owner.Phone,
		},
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		Sex:       p.Sex,
		BirthDate: p.BirthDate,
		Microchip: p.Microchip,
		Notes:     p.Notes,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
