package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"clinical-records/internal/domain/authz"
	"clinical-records/internal/middleware"
	"clinical-records/internal/platform/validate"
	"clinical-records/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, engine *authz.Engine) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Post("/", createAppointmentHandler(svc, engine))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc, engine))
		ar.Put("/{appointmentID}", updateAppointmentHandler(svc, engine))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc, engine))
	})

	// Citas de un paciente concreto (el propio paciente o un delegado con grant).
	r.Get("/patients/{patientID}/appointments", listByPatientHandler(svc, engine))
}

type appointmentPayload struct {
	PatientID      int64  `json:"patient_id" validate:"required,gt=0"`
	DoctorID       int64  `json:"doctor_id" validate:"required,gt=0"`
	Date           string `json:"appointment_date" validate:"required"` // YYYY-MM-DD
	Time           string `json:"appointment_time" validate:"required"` // HH:MM
	ReasonForVisit string `json:"reason_for_visit" validate:"required"`
	Status         string `json:"status" validate:"omitempty,oneof=Scheduled Completed Cancelled"`
}

type appointmentResponse struct {
	ID             int64     `json:"id"`
	PatientID      int64     `json:"patient_id"`
	DoctorID       int64     `json:"doctor_id"`
	Date           string    `json:"appointment_date"`
	Time           string    `json:"appointment_time"`
	ReasonForVisit string    `json:"reason_for_visit"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireRole(w, r, auth.RoleDoctor); !ok {
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

func listByPatientHandler(svc *Service, engine *authz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, ok := idParam(w, r, "patientID")
		if !ok {
			return
		}

		if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindAppointment, PatientID: patientID}, authz.OperationRead) {
			return
		}

		items, err := svc.ListByPatient(r.Context(), patientID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

// createAppointmentHandler godoc
// @Summary Crear cita
// @Description La decisión se toma sobre el paciente referenciado en el body (kind appointment, write).
// @Tags appointments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body appointmentPayload true "Datos de la cita"
// @Success 201 {object} appointmentResponse
// @Failure 400 {string} string "payload inválido"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "paciente o doctor inexistente"
// @Router /appointments [post]
func createAppointmentHandler(svc *Service, engine *authz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, date, ok := decodePayload(w, r)
		if !ok {
			return
		}

		if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindAppointment, PatientID: req.PatientID}, authz.OperationWrite) {
			return
		}

		a, err := svc.Create(r.Context(), Input{
			PatientID:      req.PatientID,
			DoctorID:       req.DoctorID,
			Date:           date,
			Time:           req.Time,
			ReasonForVisit: req.ReasonForVisit,
			Status:         req.Status,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(a))
	}
}

func getAppointmentHandler(svc *Service, engine *authz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "appointmentID")
		if !ok {
			return
		}

		a, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindAppointment, PatientID: a.PatientID}, authz.OperationRead) {
			return
		}

		writeJSON(w, http.StatusOK, toResponse(a))
	}
}

func updateAppointmentHandler(svc *Service, engine *authz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "appointmentID")
		if !ok {
			return
		}

		existing, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindAppointment, PatientID: existing.PatientID}, authz.OperationWrite) {
			return
		}

		req, date, ok := decodePayload(w, r)
		if !ok {
			return
		}

		// Si el update mueve la cita a otro paciente, también hay que poder
		// escribir sobre el paciente destino.
		if req.PatientID != existing.PatientID {
			if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindAppointment, PatientID: req.PatientID}, authz.OperationWrite) {
				return
			}
		}

		a, err := svc.Update(r.Context(), id, Input{
			PatientID:      req.PatientID,
			DoctorID:       req.DoctorID,
			Date:           date,
			Time:           req.Time,
			ReasonForVisit: req.ReasonForVisit,
			Status:         req.Status,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(a))
	}
}

func deleteAppointmentHandler(svc *Service, engine *authz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "appointmentID")
		if !ok {
			return
		}

		a, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindAppointment, PatientID: a.PatientID}, authz.OperationWrite) {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "appointment deleted successfully"})
	}
}

func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodePayload(w http.ResponseWriter, r *http.Request) (appointmentPayload, time.Time, bool) {
	var req appointmentPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return appointmentPayload{}, time.Time{}, false
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, validate.Message(err), http.StatusBadRequest)
		return appointmentPayload{}, time.Time{}, false
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		http.Error(w, "appointment_date must be YYYY-MM-DD", http.StatusBadRequest)
		return appointmentPayload{}, time.Time{}, false
	}

	return req, date, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "invalid patient or doctor reference"})
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:             a.ID,
		PatientID:      a.PatientID,
		DoctorID:       a.DoctorID,
		Date:           a.Date.Format("2006-01-02"),
		Time:           a.Time,
		ReasonForVisit: a.ReasonForVisit,
		Status:         a.Status,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toResponses(items []Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toResponse(a))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
