package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"clinical-records/internal/ports/auth"
)

// Authenticate corta el request si no hay identidad verificable:
// - sin credencial bearer => 401 (no autenticado)
// - verificación fallida (expirado/inválido/malformado) => 403
// - OK => claims quedan en el contexto para los handlers.
//
// El gate solo autentica; la autorización por recurso la decide el engine
// desde cada handler. Con verifier nil se rechaza todo (fail closed).
func Authenticate(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			if verifier == nil {
				writeError(w, http.StatusForbidden, "token verification unavailable")
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil || claims.UserID <= 0 || !claims.Role.Valid() {
				writeError(w, http.StatusForbidden, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	return auth.GetClaims(ctx)
}

// WithClaims inyecta claims directamente; solo para tests de handlers.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return auth.WithClaims(ctx, c)
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
