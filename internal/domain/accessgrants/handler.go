package accessgrants

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"clinical-records/internal/platform/validate"
	"clinical-records/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/access-permissions", func(gr chi.Router) {
		gr.Post("/", createGrantHandler(svc))
		gr.Get("/{grantID}", getGrantHandler(svc))
		gr.Put("/{grantID}", updateGrantHandler(svc))
		gr.Delete("/{grantID}", deleteGrantHandler(svc))
	})

	// Grants sobre el expediente de un paciente (admin o el propio paciente).
	r.Get("/patients/{patientID}/access-permissions", listByPatientHandler(svc))

	// Delegado: ver los grants que recibió.
	r.Get("/me/access-permissions", listMyGrantsHandler(svc))
}

type createGrantRequest struct {
	PatientID      int64  `json:"patient_id" validate:"required,gt=0"`
	GranteeID      int64  `json:"grantee_id" validate:"required,gt=0"`
	AccessLevel    string `json:"access_level" validate:"required,oneof=read write"`
	EffectiveDate  string `json:"effective_date" validate:"required"`  // YYYY-MM-DD
	ExpirationDate string `json:"expiration_date" validate:"required"` // YYYY-MM-DD
}

type updateGrantRequest struct {
	AccessLevel    string `json:"access_level" validate:"required,oneof=read write"`
	EffectiveDate  string `json:"effective_date" validate:"required"`
	ExpirationDate string `json:"expiration_date" validate:"required"`
}

type grantResponse struct {
	ID             string    `json:"id"`
	PatientID      int64     `json:"patient_id"`
	GranteeID      int64     `json:"grantee_id"`
	AccessLevel    Level     `json:"access_level"`
	EffectiveDate  string    `json:"effective_date"`
	ExpirationDate string    `json:"expiration_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// createGrantHandler godoc
// @Summary Delegar acceso a un expediente
// @Description Crea un grant acotado en el tiempo. Solo admin o el paciente dueño del expediente pueden delegar.
// @Tags access-permissions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body createGrantRequest true "Datos del grant; fechas en YYYY-MM-DD, ambos extremos inclusivos"
// @Success 201 {object} grantResponse
// @Failure 400 {string} string "nivel o ventana inválidos"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "paciente o usuario inexistente"
// @Router /access-permissions [post]
func createGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}

		var req createGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, validate.Message(err), http.StatusBadRequest)
			return
		}

		if !canManageGrant(claims, req.PatientID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		g, err := svc.Create(r.Context(), CreateInput{
			PatientID:      req.PatientID,
			GranteeID:      req.GranteeID,
			AccessLevel:    req.AccessLevel,
			EffectiveDate:  req.EffectiveDate,
			ExpirationDate: req.ExpirationDate,
		})
		if err != nil {
			writeGrantError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toGrantResponse(g))
	}
}

func getGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}

		g, err := svc.GetByID(r.Context(), chi.URLParam(r, "grantID"))
		if err != nil {
			writeGrantError(w, err)
			return
		}

		// Lo ven el admin, el paciente dueño y el delegado.
		if !canManageGrant(claims, g.PatientID) && claims.UserID != g.GranteeID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toGrantResponse(g))
	}
}

func updateGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}

		grantID := chi.URLParam(r, "grantID")

		g, err := svc.GetByID(r.Context(), grantID)
		if err != nil {
			writeGrantError(w, err)
			return
		}
		if !canManageGrant(claims, g.PatientID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req updateGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, validate.Message(err), http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), grantID, UpdateInput{
			AccessLevel:    req.AccessLevel,
			EffectiveDate:  req.EffectiveDate,
			ExpirationDate: req.ExpirationDate,
		})
		if err != nil {
			writeGrantError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toGrantResponse(updated))
	}
}

func deleteGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}

		grantID := chi.URLParam(r, "grantID")

		g, err := svc.GetByID(r.Context(), grantID)
		if err != nil {
			writeGrantError(w, err)
			return
		}
		if !canManageGrant(claims, g.PatientID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Delete(r.Context(), grantID); err != nil {
			writeGrantError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "access permission deleted successfully"})
	}
}

func listByPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}

		patientID, err := strconv.ParseInt(chi.URLParam(r, "patientID"), 10, 64)
		if err != nil || patientID <= 0 {
			http.Error(w, "invalid patient id", http.StatusBadRequest)
			return
		}

		if !canManageGrant(claims, patientID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByPatient(r.Context(), patientID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toGrantResponses(items))
	}
}

func listMyGrantsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByGrantee(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toGrantResponses(items))
	}
}

// canManageGrant: admin, o el paciente delegando su propio expediente.
func canManageGrant(claims auth.Claims, patientID int64) bool {
	if claims.Role == auth.RoleAdmin {
		return true
	}
	return claims.Role == auth.RolePatient && claims.UserID == patientID
}

func writeGrantError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": verr.Msg,
			"field": verr.Field,
		})
	case errors.Is(err, ErrConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		http.Error(w, "access permission not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toGrantResponse(g Grant) grantResponse {
	return grantResponse{
		ID:             g.ID,
		PatientID:      g.PatientID,
		GranteeID:      g.GranteeID,
		AccessLevel:    g.Level,
		EffectiveDate:  g.EffectiveDate.Format("2006-01-02"),
		ExpirationDate: g.ExpirationDate.Format("2006-01-02"),
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

func toGrantResponses(items []Grant) []grantResponse {
	out := make([]grantResponse, 0, len(items))
	for _, g := range items {
		out = append(out, toGrantResponse(g))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
