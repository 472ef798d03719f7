package auth

import "context"

// Verifier verifica un token y devuelve claims o error.
// La criptografía del token vive detrás de este puerto.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
