package medicalrecords

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("medical record not found")

	// ErrConflict: PatientID o DoctorID no referencian entidades existentes.
	ErrConflict = errors.New("invalid patient or doctor reference")
)

type Repository interface {
	Create(ctx context.Context, m MedicalRecord) (MedicalRecord, error)
	GetByID(ctx context.Context, id int64) (MedicalRecord, error)
	List(ctx context.Context) ([]MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID int64) ([]MedicalRecord, error)
	Update(ctx context.Context, m MedicalRecord) (MedicalRecord, error)
	Delete(ctx context.Context, id int64) error
}
