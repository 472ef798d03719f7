package middleware

import (
	"errors"
	"net/http"

	"clinical-records/internal/domain/authz"
	"clinical-records/internal/ports/auth"
)

// RequireDecision consulta el engine para (claims, recurso, operación) y
// escribe la respuesta de rechazo si no hay ALLOW. Devuelve true solo si el
// handler puede continuar.
//
// Un deny es fallo de autorización (403), distinto de "no logueado" (401).
func RequireDecision(w http.ResponseWriter, r *http.Request, engine *authz.Engine, res authz.Resource, op authz.Operation) bool {
	claims, ok := GetClaims(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return false
	}

	d, err := engine.Decide(r.Context(), claims, res, op)
	if err != nil {
		switch {
		case errors.Is(err, authz.ErrStoreUnavailable):
			// Fail closed: ya es DENY; el transporte reporta 503.
			writeError(w, http.StatusServiceUnavailable, "authorization store unavailable")
		case errors.Is(err, authz.ErrInvalidClaim):
			writeError(w, http.StatusUnauthorized, "unauthenticated")
		default:
			writeError(w, http.StatusBadRequest, "invalid resource reference")
		}
		return false
	}

	if !d.Allowed() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden","reason":"` + string(d.Reason) + `"}`))
		return false
	}
	return true
}

// RequireRole permite el paso solo a los roles indicados (admin siempre pasa).
// Para endpoints sin recurso concreto, ej. listados globales de staff.
func RequireRole(w http.ResponseWriter, r *http.Request, roles ...auth.Role) (auth.Claims, bool) {
	claims, ok := GetClaims(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return auth.Claims{}, false
	}
	if claims.Role == auth.RoleAdmin {
		return claims, true
	}
	for _, role := range roles {
		if claims.Role == role {
			return claims, true
		}
	}
	writeError(w, http.StatusForbidden, "insufficient privileges")
	return auth.Claims{}, false
}
