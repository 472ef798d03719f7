package appointments

import (
	"context"
	"errors"
	"testing"
	"time"
)

type repoFake struct {
	nextID int64
	items  map[int64]Appointment
}

func newRepoFake() *repoFake {
	return &repoFake{nextID: 1, items: make(map[int64]Appointment)}
}

func (r *repoFake) Create(_ context.Context, a Appointment) (Appointment, error) {
	a.ID = r.nextID
	r.nextID++
	r.items[a.ID] = a
	return a, nil
}

func (r *repoFake) GetByID(_ context.Context, id int64) (Appointment, error) {
	a, ok := r.items[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *repoFake) List(_ context.Context) ([]Appointment, error) {
	out := make([]Appointment, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	return out, nil
}

func (r *repoFake) ListByPatient(_ context.Context, patientID int64) ([]Appointment, error) {
	out := make([]Appointment, 0)
	for _, a := range r.items {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *repoFake) Update(_ context.Context, a Appointment) (Appointment, error) {
	if _, ok := r.items[a.ID]; !ok {
		return Appointment{}, ErrNotFound
	}
	r.items[a.ID] = a
	return a, nil
}

func (r *repoFake) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func validInput() Input {
	return Input{
		PatientID:      1,
		DoctorID:       50,
		Date:           time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Time:           "10:30",
		ReasonForVisit: "control anual",
	}
}

func TestCreateDefaultsToScheduled(t *testing.T) {
	svc := NewService(newRepoFake())

	a, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Fatalf("got status %q, want Scheduled", a.Status)
	}
	if a.ID == 0 {
		t.Fatalf("expected an assigned id")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newRepoFake())

	cases := []struct {
		name   string
		mutate func(*Input)
	}{
		{"zero patient", func(in *Input) { in.PatientID = 0 }},
		{"zero doctor", func(in *Input) { in.DoctorID = 0 }},
		{"zero date", func(in *Input) { in.Date = time.Time{} }},
		{"bad time", func(in *Input) { in.Time = "25:00" }},
		{"bad time format", func(in *Input) { in.Time = "10.30" }},
		{"empty reason", func(in *Input) { in.ReasonForVisit = "   " }},
		{"bad status", func(in *Input) { in.Status = "Pending" }},
	}
	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: got err %v, want ErrInvalidInput", tc.name, err)
		}
	}
}

func TestTimeFormats(t *testing.T) {
	svc := NewService(newRepoFake())

	for _, hhmm := range []string{"0:00", "00:00", "9:05", "09:05", "23:59"} {
		in := validInput()
		in.Time = hhmm
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("time %q should be accepted: %v", hhmm, err)
		}
	}
	for _, hhmm := range []string{"24:00", "12:60", "12", "12:5", ""} {
		in := validInput()
		in.Time = hhmm
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("time %q should be rejected", hhmm)
		}
	}
}

func TestUpdateStatusTransition(t *testing.T) {
	repo := newRepoFake()
	svc := NewService(repo)

	a, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := validInput()
	in.Status = "Completed"
	updated, err := svc.Update(context.Background(), a.ID, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusCompleted {
		t.Fatalf("got status %q, want Completed", updated.Status)
	}
}

func TestUpdateMissingAppointment(t *testing.T) {
	svc := NewService(newRepoFake())
	if _, err := svc.Update(context.Background(), 999, validInput()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got err %v, want ErrNotFound", err)
	}
}
