package patients

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("patient not found")

	// ErrConflict: el store reportó una violación de integridad referencial
	// (ej. borrar un paciente con citas o registros asociados).
	ErrConflict = errors.New("patient has related records")
)

type Repository interface {
	// Create persiste el paciente; el store asigna el ID.
	Create(ctx context.Context, p Patient) (Patient, error)
	GetByID(ctx context.Context, id int64) (Patient, error)
	List(ctx context.Context) ([]Patient, error)
	Update(ctx context.Context, p Patient) (Patient, error)
	Delete(ctx context.Context, id int64) error
}
