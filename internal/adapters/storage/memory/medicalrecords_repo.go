package memory

import (
	"context"
	"sync"

	"clinical-records/internal/domain/medicalrecords"
)

type MedicalRecordsRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]medicalrecords.MedicalRecord
}

func NewMedicalRecordsRepo() *MedicalRecordsRepo {
	return &MedicalRecordsRepo{
		nextID: 1,
		items:  make(map[int64]medicalrecords.MedicalRecord),
	}
}

func (r *MedicalRecordsRepo) Create(_ context.Context, m medicalrecords.MedicalRecord) (medicalrecords.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = r.nextID
	r.nextID++
	r.items[m.ID] = m
	return m, nil
}

func (r *MedicalRecordsRepo) GetByID(_ context.Context, id int64) (medicalrecords.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return medicalrecords.MedicalRecord{}, medicalrecords.ErrNotFound
	}
	return m, nil
}

func (r *MedicalRecordsRepo) List(_ context.Context) ([]medicalrecords.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicalrecords.MedicalRecord, 0, len(r.items))
	for id := int64(1); id < r.nextID; id++ {
		if m, ok := r.items[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MedicalRecordsRepo) ListByPatient(_ context.Context, patientID int64) ([]medicalrecords.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicalrecords.MedicalRecord, 0)
	for id := int64(1); id < r.nextID; id++ {
		if m, ok := r.items[id]; ok && m.PatientID == patientID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MedicalRecordsRepo) Update(_ context.Context, m medicalrecords.MedicalRecord) (medicalrecords.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[m.ID]; !ok {
		return medicalrecords.MedicalRecord{}, medicalrecords.ErrNotFound
	}
	r.items[m.ID] = m
	return m, nil
}

func (r *MedicalRecordsRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return medicalrecords.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
