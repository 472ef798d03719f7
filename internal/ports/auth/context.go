package auth

import "context"

type ctxKey string

const claimsKey ctxKey = "claims"

// GetClaims recupera los claims del contexto del request.
func GetClaims(ctx context.Context) (Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return Claims{}, false
	}
	c, ok := v.(Claims)
	return c, ok
}

// WithClaims inyecta claims en el contexto.
func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}
