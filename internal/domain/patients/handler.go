package patients

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
	r.Route("/patients", func(pr chi.Router) {
		// Listado y alta: solo staff (admin/doctor). No hay recurso concreto
		// todavía, así que se corta por rol, no por decisión del engine.
		pr.Get("/", listPatientsHandler(svc))
		pr.Post("/", createPatientHandler(svc))

		// Acceso por expediente: decide el engine (rol, auto-acceso o grant).
		pr.Get("/{patientID}", getPatientHandler(svc, engine))
		pr.Put("/{patientID}", updatePatientHandler(svc, engine))
		pr.Delete("/{patientID}", deletePatientHandler(svc, engine))
	})
}

type patientPayload struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	DOB         string `json:"dob" validate:"required"` // YYYY-MM-DD
	Gender      string `json:"gender" validate:"required,oneof=Male Female Other"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
}

type patientResponse struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DOB         string    `json:"dob"`
	Gender      Gender    `json:"gender"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// listPatientsHandler godoc
// @Summary Listar pacientes
// @Description Devuelve todos los pacientes. Solo staff (admin o doctor).
// @Tags patients
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} patientResponse
// @Failure 401 {string} string "unauthenticated"
// @Failure 403 {string} string "insufficient privileges"
// @Router /patients [get]
func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireRole(w, r, auth.RoleDoctor); !ok {
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]patientResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPatientResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireRole(w, r, auth.RoleDoctor); !ok {
			return
		}

		req, dob, ok := decodePatientPayload(w, r)
		if !ok {
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			DOB:         dob,
			Gender:      req.Gender,
			Address:     req.Address,
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

// getPatientHandler godoc
// @Summary Obtener expediente de paciente
// @Description Requiere ALLOW del engine: staff, el propio paciente, o un delegado con grant activo.
// @Tags patients
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param patientID path int true "ID del paciente"
// @Success 200 {object} patientResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID} [get]
func getPatientHandler(svc *Service, engine *authz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := patientIDParam(w, r)
		if !ok {
			return
		}

		if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindPatientRecord, PatientID: id}, authz.OperationRead) {
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "patient not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func updatePatientHandler(svc *Service, engine *authz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := patientIDParam(w, r)
		if !ok {
			return
		}

		if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindPatientRecord, PatientID: id}, authz.OperationWrite) {
			return
		}

		req, dob, ok := decodePatientPayload(w, r)
		if !ok {
			return
		}

		p, err := svc.Update(r.Context(), id, CreateInput{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			DOB:         dob,
			Gender:      req.Gender,
			Address:     req.Address,
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "patient not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func deletePatientHandler(svc *Service, engine *authz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := patientIDParam(w, r)
		if !ok {
			return
		}

		if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindPatientRecord, PatientID: id}, authz.OperationWrite) {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, ErrConflict):
				// Violación de integridad referencial: respuesta estructurada,
				// nunca un 500 genérico.
				writeJSON(w, http.StatusConflict, map[string]string{
					"error": "cannot delete patient: related records exist",
				})
			case errors.Is(err, ErrNotFound):
				http.Error(w, "patient not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "patient deleted successfully"})
	}
}

func patientIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "patientID"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodePatientPayload(w http.ResponseWriter, r *http.Request) (patientPayload, time.Time, bool) {
	var req patientPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return patientPayload{}, time.Time{}, false
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, validate.Message(err), http.StatusBadRequest)
		return patientPayload{}, time.Time{}, false
	}

	dob, err := time.Parse("2006-01-02", strings.TrimSpace(req.DOB))
	if err != nil {
		http.Error(w, "dob must be YYYY-MM-DD", http.StatusBadRequest)
		return patientPayload{}, time.Time{}, false
	}

	return req, dob, true
}

func toPatientResponse(p Patient) patientResponse {
	return patientResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DOB:         p.DOB.Format("2006-01-02"),
		Gender:      p.Gender,
		Address:     p.Address,
		PhoneNumber: p.PhoneNumber,
		Email:       p.Email,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
