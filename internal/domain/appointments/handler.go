package appointments

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic-records/internal/domain/users"
	"vet-clinic-records/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, facade *Facade) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(facade))
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Patch("/{appointmentID}", updateAppointmentHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))
	})
}

// Sin reglas de validator: la fachada comprueba primero la mascota (404) y
// la fecha se valida al persistir.
type createAppointmentRequest struct {
	PetID       string    `json:"petId"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

type updateAppointmentRequest struct {
	Date        *time.Time `json:"date"`
	Description *string    `json:"description"`
}

type createAppointmentResponse struct {
	Success     bool        `json:"success"`
	Appointment Appointment `json:"appointment"`
	UserID      string      `json:"userId"`
	PetID       string      `json:"petId"`
	Owner       string      `json:"owner"`
	Message     string      `json:"message"`
}

// createAppointmentHandler godoc
// @Summary Crear cita completa
// @Description Verifica la mascota, valida el usuario, persiste la cita y notifica a los suscriptores.
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body createAppointmentRequest true "Cita"
// @Success 201 {object} createAppointmentResponse
// @Failure 400 {object} httpx.MessageResponse
// @Failure 404 {object} httpx.MessageResponse
// @Router /appointments [post]
func createAppointmentHandler(facade *Facade) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Sin principal seguimos: la fachada valida el actor y responde 400.
		actor, _ := users.PrincipalFrom(r.Context())

		var req createAppointmentRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.RespondError(w, err)
			return
		}

		res, err := facade.CreateCompleteAppointment(r.Context(), CreateInput{
			PetID:       req.PetID,
			Date:        req.Date,
			Description: req.Description,
		}, actor)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}

		httpx.JSON(w, http.StatusCreated, createAppointmentResponse{
			Success:     res.Success,
			Appointment: res.Appointment,
			UserID:      res.UserID,
			PetID:       res.PetID,
			Owner:       res.Owner,
			Message:     res.Message,
		})
	}
}

func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	// ?user_id=...&pet_id=...; sin user_id, staff ve solo sus citas.
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := users.PrincipalFrom(r.Context())
		if !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		f := ListFilter{
			UserID: strings.TrimSpace(r.URL.Query().Get("user_id")),
			PetID:  strings.TrimSpace(r.URL.Query().Get("pet_id")),
		}
		if f.UserID == "" && !actor.IsAdmin() {
			f.UserID = actor.ID
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		if items == nil {
			items = []Appointment{}
		}
		httpx.JSON(w, http.StatusOK, items)
	}
}

func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := users.PrincipalFrom(r.Context()); !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		a, err := svc.Get(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, a)
	}
}

func updateAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := users.PrincipalFrom(r.Context()); !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req updateAppointmentRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.RespondError(w, err)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "appointmentID"), UpdateInput{
			Date:        req.Date,
			Description: req.Description,
		})
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, a)
	}
}

func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := users.PrincipalFrom(r.Context()); !ok {
			httpx.Message(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		res, err := svc.Delete(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, res)
	}
}
