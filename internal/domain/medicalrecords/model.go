package medicalrecords

import "time"

// MedicalRecord es una entrada del historial clínico de un paciente.
type MedicalRecord struct {
	ID int64

	PatientID int64
	DoctorID  int64

	VisitDate time.Time
	Diagnosis string
	Treatment string
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
