package appointments

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("appointment not found")

	// ErrConflict: PatientID o DoctorID no referencian entidades existentes.
	ErrConflict = errors.New("invalid patient or doctor reference")
)

type Repository interface {
	Create(ctx context.Context, a Appointment) (Appointment, error)
	GetByID(ctx context.Context, id int64) (Appointment, error)
	List(ctx context.Context) ([]Appointment, error)
	ListByPatient(ctx context.Context, patientID int64) ([]Appointment, error)
	Update(ctx context.Context, a Appointment) (Appointment, error)
	Delete(ctx context.Context, id int64) error
}
