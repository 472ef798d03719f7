package memory

import (
	"context"
	"sort"
	"sync"

	"clinical-records/internal/domain/accessgrants"
)

type AccessGrantsRepo struct {
	mu    sync.RWMutex
	items map[string]accessgrants.Grant
}

func NewAccessGrantsRepo() *AccessGrantsRepo {
	return &AccessGrantsRepo{
		items: make(map[string]accessgrants.Grant),
	}
}

func (r *AccessGrantsRepo) Create(_ context.Context, g accessgrants.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[g.ID]; ok {
		return accessgrants.ErrConflict
	}
	r.items[g.ID] = g
	return nil
}

func (r *AccessGrantsRepo) Update(_ context.Context, g accessgrants.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[g.ID]; !ok {
		return accessgrants.ErrNotFound
	}
	r.items[g.ID] = g
	return nil
}

func (r *AccessGrantsRepo) GetByID(_ context.Context, id string) (accessgrants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[id]
	if !ok {
		return accessgrants.Grant{}, accessgrants.ErrNotFound
	}
	return g, nil
}

func (r *AccessGrantsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return accessgrants.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *AccessGrantsRepo) ListByPatient(_ context.Context, patientID int64) ([]accessgrants.Grant, error) {
	return r.filter(func(g accessgrants.Grant) bool {
		return g.PatientID == patientID
	}), nil
}

func (r *AccessGrantsRepo) ListByGrantee(_ context.Context, granteeID int64) ([]accessgrants.Grant, error) {
	return r.filter(func(g accessgrants.Grant) bool {
		return g.GranteeID == granteeID
	}), nil
}

func (r *AccessGrantsRepo) ListByPatientAndGrantee(_ context.Context, patientID, granteeID int64) ([]accessgrants.Grant, error) {
	return r.filter(func(g accessgrants.Grant) bool {
		return g.PatientID == patientID && g.GranteeID == granteeID
	}), nil
}

func (r *AccessGrantsRepo) filter(keep func(accessgrants.Grant) bool) []accessgrants.Grant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]accessgrants.Grant, 0)
	for _, g := range r.items {
		if keep(g) {
			out = append(out, g)
		}
	}
	// orden estable para que los listados no cambien entre llamadas
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
