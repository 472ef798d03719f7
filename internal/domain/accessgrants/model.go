package accessgrants

import "time"

// Level es el nivel de acceso delegado.
// @Enum read, write
type Level string

const (
	LevelRead  Level = "read"
	LevelWrite Level = "write" // write implica read
)

// Grant es una delegación de acceso acotada en el tiempo:
// el paciente PatientID comparte su expediente con el usuario GranteeID.
type Grant struct {
	ID string

	PatientID int64 // paciente cuyo expediente se comparte
	GranteeID int64 // usuario delegado

	Level Level

	// Ventana de validez con granularidad de día, ambos extremos inclusivos.
	// Invariante: EffectiveDate <= ExpirationDate.
	EffectiveDate  time.Time
	ExpirationDate time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si la ventana del grant contiene el instante de referencia.
// La comparación es por día calendario (UTC), inclusiva en ambos extremos.
func IsActive(g Grant, ref time.Time) bool {
	d := dateOnly(ref)
	return !d.Before(dateOnly(g.EffectiveDate)) && !d.After(dateOnly(g.ExpirationDate))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
