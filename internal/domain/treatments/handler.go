package treatments

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic-records/internal/domain/authz"
	"vet-clinic-records/internal/domain/users"
	"vet-clinic-records/internal/platform/httpx"
)

// RegisterRoutes cuelga las rutas bajo /pets/{petID}/treatments.
func RegisterRoutes(r chi.Router, svc *Service, gate *authz.AdminOnly) {
	r.Route("/pets/{petID}/treatments", func(tr chi.Router) {
		tr.Post("/", createTreatmentHandler(svc))
		tr.Get("/", listTreatmentsHandler(svc))
		tr.Delete("/{treatmentID}", deleteTreatmentHandler(gate))
	})
}

type createTreatmentRequest struct {
	Vet         string  `json:"vet" validate:"required"`
	Date        string  `json:"date" validate:"required"` // YYYY-MM-DD
	Description string  `json:"description"`
	Cost        float64 `json:"treatment_cost" validate:"gte=0"`
}

type treatmentResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	Vet         string    `json:"vet"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Cost        float64   `json:"treatment_cost"`
	RecordedBy  string    `json:"recorded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type listTreatmentsResponse struct {
	Treatments []treatmentResponse `json:"treatments"`
}

// createTreatmentHandler godoc
// @Summary Registrar tratamiento
// @Tags treatments
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createTreatmentRequest true "Tratamiento"
// @Success 201 {object} treatmentResponse
// @Failure 400 {object} httpx.MessageResponse
// @Failure 404 {object} httpx.MessageResponse
// @Router /pets/{petID}/treatments [post]
func createTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := users.PrincipalFrom(r.Context())
		if !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req createTreatmentRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.RespondError(w, err)
			return
		}
		if err := httpx.Validate(req); err != nil {
			httpx.RespondError(w, err)
			return
		}
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			httpx.Message(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}

		t, err := svc.Create(r.Context(), actor.ID, chi.URLParam(r, "petID"), CreateInput{
			Vet:         req.Vet,
			Date:        date,
			Description: req.Description,
			Cost:        req.Cost,
		})
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, toTreatmentResponse(t))
	}
}

func listTreatmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := users.PrincipalFrom(r.Context()); !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.RespondError(w, err)
			return
		}

		out := listTreatmentsResponse{Treatments: make([]treatmentResponse, 0, len(items))}
		for _, t := range items {
			out.Treatments = append(out.Treatments, toTreatmentResponse(t))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

// deleteTreatmentHandler godoc
// @Summary Borrar tratamiento
// @Description Solo admin.
// @Tags treatments
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param treatmentID path string true "ID del tratamiento"
// @Success 200 {object} httpx.MessageResponse
// @Router /pets/{petID}/treatments/{treatmentID} [delete]
func deleteTreatmentHandler(gate *authz.AdminOnly) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := users.PrincipalFrom(r.Context())
		if !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		res, err := gate.DeleteTreatment(r.Context(), actor.Role, chi.URLParam(r, "petID"), chi.URLParam(r, "treatmentID"))
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, res)
	}
}

func toTreatmentResponse(t Treatment) treatmentResponse {
	return treatmentResponse{
		ID:          t.ID,
		PetID:       t.PetID,
		Vet:         t.Vet,
		Date:        t.Date.Format("2006-01-02"),
		Description: t.Description,
		Cost:        t.Cost,
		RecordedBy:  t.RecordedBy,
		CreatedAt:   t.CreatedAt,
	}
}
