package accessgrants

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// ValidationError señala el campo concreto que viola un invariante del grant.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// PatientDirectory evita importar el paquete patients (rompe ciclos).
type PatientDirectory interface {
	PatientExists(ctx context.Context, id int64) (bool, error)
}

// UserDirectory valida existencia del delegado contra el directorio de cuentas.
// Puede ser nil (modo dev / in-memory): en ese caso se omite el check y el
// store queda como última línea (FK violation -> ErrConflict).
type UserDirectory interface {
	UserExists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo     Repository
	patients PatientDirectory
	users    UserDirectory
	now      func() time.Time
}

func NewService(repo Repository, patients PatientDirectory, users UserDirectory) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		users:    users,
		now:      time.Now,
	}
}

type CreateInput struct {
	PatientID      int64
	GranteeID      int64
	AccessLevel    string
	EffectiveDate  string // YYYY-MM-DD
	ExpirationDate string // YYYY-MM-DD
}

// Create valida, normaliza y persiste un grant nuevo.
// El ID se asigna acá, antes del insert.
func (s *Service) Create(ctx context.Context, in CreateInput) (Grant, error) {
	if in.PatientID <= 0 {
		return Grant{}, &ValidationError{Field: "patient_id", Msg: "must be a positive integer"}
	}
	if in.GranteeID <= 0 {
		return Grant{}, &ValidationError{Field: "grantee_id", Msg: "must be a positive integer"}
	}
	if in.GranteeID == in.PatientID {
		return Grant{}, &ValidationError{Field: "grantee_id", Msg: "cannot grant access to oneself"}
	}

	level, eff, exp, err := validateWindow(in.AccessLevel, in.EffectiveDate, in.ExpirationDate)
	if err != nil {
		return Grant{}, err
	}

	if err := s.checkReferences(ctx, in.PatientID, in.GranteeID); err != nil {
		return Grant{}, err
	}

	now := s.now()
	g := Grant{
		ID:             uuid.NewString(),
		PatientID:      in.PatientID,
		GranteeID:      in.GranteeID,
		Level:          level,
		EffectiveDate:  eff,
		ExpirationDate: exp,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return Grant{}, err
	}
	return g, nil
}

type UpdateInput struct {
	AccessLevel    string
	EffectiveDate  string // YYYY-MM-DD
	ExpirationDate string // YYYY-MM-DD
}

// Update reemplaza nivel y ventana de forma atómica: si la validación falla,
// el grant almacenado queda intacto. No hay update parcial.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Grant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Grant{}, ErrInvalidInput
	}

	level, eff, exp, err := validateWindow(in.AccessLevel, in.EffectiveDate, in.ExpirationDate)
	if err != nil {
		return Grant{}, err
	}

	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Grant{}, ErrNotFound
	}

	g.Level = level
	g.EffectiveDate = eff
	g.ExpirationDate = exp
	g.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, g); err != nil {
		return Grant{}, err
	}
	return g, nil
}

// Delete borra sin condiciones; no hay soft-delete ni periodo de gracia.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Grant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Grant{}, ErrInvalidInput
	}
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Grant{}, ErrNotFound
	}
	return g, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]Grant, error) {
	if patientID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByGrantee(ctx context.Context, granteeID int64) ([]Grant, error) {
	if granteeID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByGrantee(ctx, granteeID)
}

func (s *Service) checkReferences(ctx context.Context, patientID, granteeID int64) error {
	if s.patients != nil {
		ok, err := s.patients.PatientExists(ctx, patientID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: patient %d does not exist", ErrConflict, patientID)
		}
	}
	if s.users != nil {
		ok, err := s.users.UserExists(ctx, granteeID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: user %d does not exist", ErrConflict, granteeID)
		}
	}
	return nil
}

const dateLayout = "2006-01-02"

func validateWindow(level, effective, expiration string) (Level, time.Time, time.Time, error) {
	var zero time.Time

	lv := Level(strings.ToLower(strings.TrimSpace(level)))
	if lv != LevelRead && lv != LevelWrite {
		return "", zero, zero, &ValidationError{Field: "access_level", Msg: "must be read or write"}
	}

	eff, err := time.ParseInLocation(dateLayout, strings.TrimSpace(effective), time.UTC)
	if err != nil {
		return "", zero, zero, &ValidationError{Field: "effective_date", Msg: "must be a valid YYYY-MM-DD date"}
	}
	exp, err := time.ParseInLocation(dateLayout, strings.TrimSpace(expiration), time.UTC)
	if err != nil {
		return "", zero, zero, &ValidationError{Field: "expiration_date", Msg: "must be a valid YYYY-MM-DD date"}
	}
	if eff.After(exp) {
		return "", zero, zero, &ValidationError{Field: "expiration_date", Msg: "must not be before effective_date"}
	}

	return lv, eff, exp, nil
}
