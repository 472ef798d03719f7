package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinical-records/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrTokenInvalid  = errors.New("invalid token")
)

// Verifier implementa auth.Verifier contra tokens HS256 firmados con un
// secreto compartido (los que emite el servicio de identidad).
// Acá no se emiten tokens; solo se verifican.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(strings.TrimSpace(secret))}
}

// tokenClaims refleja el payload que firma el emisor:
// {user_id, username, role} + claims registrados (exp, iat).
type tokenClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenInvalid
	}

	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return auth.Claims{}, ErrTokenInvalid
	}

	if tc.UserID <= 0 {
		return auth.Claims{}, fmt.Errorf("%w: missing user id", ErrTokenInvalid)
	}
	role, err := auth.ParseRole(tc.Role)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	return auth.Claims{
		UserID:   tc.UserID,
		Username: strings.TrimSpace(tc.Username),
		Role:     role,
	}, nil
}
