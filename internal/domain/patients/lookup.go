package patients

import (
	"context"
	"errors"
)

// PatientExists implementa el directorio que consume accessgrants.
// Existe para evitar ciclos de imports entre módulos (patients <-> accessgrants).
func (s *Service) PatientExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
		return false, nil
	}
	return false, err
}
