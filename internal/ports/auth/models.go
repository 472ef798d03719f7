package auth

import (
	"errors"
	"strings"
)

// Role es el rol estático del usuario autenticado.
// Enum cerrado: nunca dejamos pasar strings libres hacia la lógica de decisión.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole normaliza y valida un rol que viene del token.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleDoctor:
		return RoleDoctor, nil
	case RolePatient:
		return RolePatient, nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleDoctor || r == RolePatient
}

// Claims representa la identidad extraída del token.
// Inmutable durante el request; no se persiste.
type Claims struct {
	UserID   int64
	Username string
	Role     Role
}
