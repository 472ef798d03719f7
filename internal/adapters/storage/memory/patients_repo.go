package memory

import (
	"context"
	"sync"

	"clinical-records/internal/domain/patients"
)

// PatientsRepo guarda pacientes en memoria. Pensado para desarrollo y tests.
type PatientsRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]patients.Patient
}

func NewPatientsRepo() *PatientsRepo {
	return &PatientsRepo{
		nextID: 1,
		items:  make(map[int64]patients.Patient),
	}
}

func (r *PatientsRepo) Create(_ context.Context, p patients.Patient) (patients.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	r.items[p.ID] = p
	return p, nil
}

func (r *PatientsRepo) GetByID(_ context.Context, id int64) (patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return patients.Patient{}, patients.ErrNotFound
	}
	return p, nil
}

func (r *PatientsRepo) List(_ context.Context) ([]patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]patients.Patient, 0, len(r.items))
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PatientsRepo) Update(_ context.Context, p patients.Patient) (patients.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[p.ID]; !ok {
		return patients.Patient{}, patients.ErrNotFound
	}
	r.items[p.ID] = p
	return p, nil
}

func (r *PatientsRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return patients.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
