package medicalrecords

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type Input struct {
	PatientID int64
	DoctorID  int64
	VisitDate time.Time
	Diagnosis string
	Treatment string
	Notes     string
}

func (s *Service) Create(ctx context.Context, in Input) (MedicalRecord, error) {
	if err := normalize(&in); err != nil {
		return MedicalRecord{}, err
	}

	now := s.now()
	m := MedicalRecord{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		VisitDate: in.VisitDate,
		Diagnosis: in.Diagnosis,
		Treatment: in.Treatment,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.repo.Create(ctx, m)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (MedicalRecord, error) {
	if id <= 0 {
		return MedicalRecord{}, ErrInvalidInput
	}
	if err := normalize(&in); err != nil {
		return MedicalRecord{}, err
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return MedicalRecord{}, err
	}

	m.PatientID = in.PatientID
	m.DoctorID = in.DoctorID
	m.VisitDate = in.VisitDate
	m.Diagnosis = in.Diagnosis
	m.Treatment = in.Treatment
	m.Notes = in.Notes
	m.UpdatedAt = s.now()

	return s.repo.Update(ctx, m)
}

func (s *Service) GetByID(ctx context.Context, id int64) (MedicalRecord, error) {
	if id <= 0 {
		return MedicalRecord{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]MedicalRecord, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]MedicalRecord, error) {
	if patientID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func normalize(in *Input) error {
	in.Diagnosis = strings.TrimSpace(in.Diagnosis)
	in.Treatment = strings.TrimSpace(in.Treatment)
	in.Notes = strings.TrimSpace(in.Notes)

	if in.PatientID <= 0 || in.DoctorID <= 0 {
		return ErrInvalidInput
	}
	if in.VisitDate.IsZero() {
		return ErrInvalidInput
	}
	if in.Diagnosis == "" || in.Treatment == "" {
		return ErrInvalidInput
	}
	return nil
}
