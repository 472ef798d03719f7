package memory

import (
	"context"
	"sync"

	"clinical-records/internal/domain/appointments"
)

type AppointmentsRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]appointments.Appointment
}

func NewAppointmentsRepo() *AppointmentsRepo {
	return &AppointmentsRepo{
		nextID: 1,
		items:  make(map[int64]appointments.Appointment),
	}
}

func (r *AppointmentsRepo) Create(_ context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = r.nextID
	r.nextID++
	r.items[a.ID] = a
	return a, nil
}

func (r *AppointmentsRepo) GetByID(_ context.Context, id int64) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *AppointmentsRepo) List(_ context.Context) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0, len(r.items))
	for id := int64(1); id < r.nextID; id++ {
		if a, ok := r.items[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AppointmentsRepo) ListByPatient(_ context.Context, patientID int64) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for id := int64(1); id < r.nextID; id++ {
		if a, ok := r.items[id]; ok && a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AppointmentsRepo) Update(_ context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[a.ID]; !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	r.items[a.ID] = a
	return a, nil
}

func (r *AppointmentsRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return appointments.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
