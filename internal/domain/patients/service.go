package patients

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

type CreateInput struct {
	FirstName   string
	LastName    string
	DOB         time.Time
	Gender      string
	Address     string
	PhoneNumber string
	Email       string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Patient, error) {
	gender, err := normalize(&in)
	if err != nil {
		return Patient{}, err
	}

	now := s.now()
	p := Patient{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DOB:         in.DOB,
		Gender:      gender,
		Address:     in.Address,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.repo.Create(ctx, p)
}

// Update reemplaza el expediente completo (semántica PUT, sin parches parciales).
func (s *Service) Update(ctx context.Context, id int64, in CreateInput) (Patient, error) {
	if id <= 0 {
		return Patient{}, ErrInvalidInput
	}
	gender, err := normalize(&in)
	if err != nil {
		return Patient{}, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Patient{}, err
	}

	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.DOB = in.DOB
	p.Gender = gender
	p.Address = in.Address
	p.PhoneNumber = in.PhoneNumber
	p.Email = in.Email
	p.UpdatedAt = s.now()

	return s.repo.Update(ctx, p)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Patient, error) {
	if id <= 0 {
		return Patient{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func normalize(in *CreateInput) (Gender, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Address = strings.TrimSpace(in.Address)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Email = strings.TrimSpace(in.Email)

	if in.FirstName == "" || in.LastName == "" {
		return "", ErrInvalidInput
	}
	if in.DOB.IsZero() {
		return "", ErrInvalidInput
	}

	g := Gender(strings.TrimSpace(in.Gender))
	if !g.Valid() {
		return "", ErrInvalidInput
	}
	return g, nil
}
