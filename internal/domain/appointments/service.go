package appointments

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

// HH:MM de 00:00 a 23:59; se admite hora de un solo dígito.
var timeRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

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
	PatientID      int64
	DoctorID       int64
	Date           time.Time
	Time           string
	ReasonForVisit string
	Status         string
}

func (s *Service) Create(ctx context.Context, in Input) (Appointment, error) {
	status, err := normalize(&in)
	if err != nil {
		return Appointment{}, err
	}

	now := s.now()
	a := Appointment{
		PatientID:      in.PatientID,
		DoctorID:       in.DoctorID,
		Date:           in.Date,
		Time:           in.Time,
		ReasonForVisit: in.ReasonForVisit,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return s.repo.Create(ctx, a)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Appointment, error) {
	if id <= 0 {
		return Appointment{}, ErrInvalidInput
	}
	status, err := normalize(&in)
	if err != nil {
		return Appointment{}, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	a.PatientID = in.PatientID
	a.DoctorID = in.DoctorID
	a.Date = in.Date
	a.Time = in.Time
	a.ReasonForVisit = in.ReasonForVisit
	a.Status = status
	a.UpdatedAt = s.now()

	return s.repo.Update(ctx, a)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Appointment, error) {
	if id <= 0 {
		return Appointment{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]Appointment, error) {
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

func normalize(in *Input) (Status, error) {
	in.Time = strings.TrimSpace(in.Time)
	in.ReasonForVisit = strings.TrimSpace(in.ReasonForVisit)

	if in.PatientID <= 0 || in.DoctorID <= 0 {
		return "", ErrInvalidInput
	}
	if in.Date.IsZero() {
		return "", ErrInvalidInput
	}
	if !timeRe.MatchString(in.Time) {
		return "", ErrInvalidInput
	}
	if in.ReasonForVisit == "" {
		return "", ErrInvalidInput
	}

	st := Status(strings.TrimSpace(in.Status))
	if st == "" {
		st = StatusScheduled
	}
	if !st.Valid() {
		return "", ErrInvalidInput
	}
	return st, nil
}
