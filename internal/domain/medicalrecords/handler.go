package medicalrecords

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
	r.Route("/medical-records", func(mr chi.Router) {
		mr.Get("/", listRecordsHandler(svc))
		mr.Post("/", createRecordHandler(svc, engine))
		mr.Get("/{recordID}", getRecordHandler(svc, engine))
		mr.Put("/{recordID}", updateRecordHandler(svc, engine))
		mr.Delete("/{recordID}", deleteRecordHandler(svc, engine))
	})

	r.Get("/patients/{patientID}/medical-records", listByPatientHandler(svc, engine))
}

type recordPayload struct {
	PatientID int64  `json:"patient_id" validate:"required,gt=0"`
	DoctorID  int64  `json:"doctor_id" validate:"required,gt=0"`
	VisitDate string `json:"visit_date" validate:"required"` // YYYY-MM-DD
	Diagnosis string `json:"diagnosis" validate:"required"`
	Treatment string `json:"treatment" validate:"required"`
	Notes     string `json:"notes"`
}

type recordResponse struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patient_id"`
	DoctorID  int64     `json:"doctor_id"`
	VisitDate string    `json:"visit_date"`
	Diagnosis string    `json:"diagnosis"`
	Treatment string    `json:"treatment"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func listRecordsHandler(svc *Service) http.HandlerFunc {
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

		if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindMedicalRecord, PatientID: patientID}, authz.OperationRead) {
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

func createRecordHandler(svc *Service, engine *authz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, visitDate, ok := decodePayload(w, r)
		if !ok {
			return
		}

		if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindMedicalRecord, PatientID: req.PatientID}, authz.OperationWrite) {
			return
		}

		m, err := svc.Create(r.Context(), Input{
			PatientID: req.PatientID,
			DoctorID:  req.DoctorID,
			VisitDate: visitDate,
			Diagnosis: req.Diagnosis,
			Treatment: req.Treatment,
			Notes:     req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(m))
	}
}

func getRecordHandler(svc *Service, engine *authz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "recordID")
		if !ok {
			return
		}

		m, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindMedicalRecord, PatientID: m.PatientID}, authz.OperationRead) {
			return
		}

		writeJSON(w, http.StatusOK, toResponse(m))
	}
}

func updateRecordHandler(svc *Service, engine *authz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "recordID")
		if !ok {
			return
		}

		existing, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindMedicalRecord, PatientID: existing.PatientID}, authz.OperationWrite) {
			return
		}

		req, visitDate, ok := decodePayload(w, r)
		if !ok {
			return
		}

		if req.PatientID != existing.PatientID {
			if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindMedicalRecord, PatientID: req.PatientID}, authz.OperationWrite) {
				return
			}
		}

		m, err := svc.Update(r.Context(), id, Input{
			PatientID: req.PatientID,
			DoctorID:  req.DoctorID,
			VisitDate: visitDate,
			Diagnosis: req.Diagnosis,
			Treatment: req.Treatment,
			Notes:     req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(m))
	}
}

func deleteRecordHandler(svc *Service, engine *authz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "recordID")
		if !ok {
			return
		}

		m, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if !middleware.RequireDecision(w, r, engine, authz.Resource{Kind: authz.KindMedicalRecord, PatientID: m.PatientID}, authz.OperationWrite) {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "medical record deleted successfully"})
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

func decodePayload(w http.ResponseWriter, r *http.Request) (recordPayload, time.Time, bool) {
	var req recordPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return recordPayload{}, time.Time{}, false
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, validate.Message(err), http.StatusBadRequest)
		return recordPayload{}, time.Time{}, false
	}

	visitDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.VisitDate))
	if err != nil {
		http.Error(w, "visit_date must be YYYY-MM-DD", http.StatusBadRequest)
		return recordPayload{}, time.Time{}, false
	}

	return req, visitDate, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medical record not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "invalid patient or doctor reference"})
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toResponse(m MedicalRecord) recordResponse {
	return recordResponse{
		ID:        m.ID,
		PatientID: m.PatientID,
		DoctorID:  m.DoctorID,
		VisitDate: m.VisitDate.Format("2006-01-02"),
		Diagnosis: m.Diagnosis,
		Treatment: m.Treatment,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toResponses(items []MedicalRecord) []recordResponse {
	out := make([]recordResponse, 0, len(items))
	for _, m := range items {
		out = append(out, toResponse(m))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
