package appointments

import "time"

// Status define el estado de la cita.
// @Enum Scheduled, Completed, Cancelled
type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	return s == StatusScheduled || s == StatusCompleted || s == StatusCancelled
}

// Appointment es una cita médica, siempre acotada a un paciente.
type Appointment struct {
	ID int64

	PatientID int64
	DoctorID  int64

	Date time.Time // día de la cita
	Time string    // HH:MM

	ReasonForVisit string
	Status         Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
