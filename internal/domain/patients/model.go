package patients

import "time"

// Gender define los valores aceptados en el expediente.
// @Enum Male, Female, Other
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// Patient es el expediente demográfico de un paciente.
// El ID coincide con el user id de la cuenta del paciente: el auto-acceso
// se decide comparando claims.UserID contra este ID.
type Patient struct {
	ID int64

	FirstName   string
	LastName    string
	DOB         time.Time
	Gender      Gender
	Address     string
	PhoneNumber string
	Email       string

	CreatedAt time.Time
	UpdatedAt time.Time
}
