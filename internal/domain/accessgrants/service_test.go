package accessgrants

import (
	"context"
	"errors"
	"testing"
	"time"
)

type repoFake struct {
	items map[string]Grant

	createErr error
}

func newRepoFake() *repoFake {
	return &repoFake{items: make(map[string]Grant)}
}

func (r *repoFake) Create(_ context.Context, g Grant) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.items[g.ID] = g
	return nil
}

func (r *repoFake) Update(_ context.Context, g Grant) error {
	if _, ok := r.items[g.ID]; !ok {
		return ErrNotFound
	}
	r.items[g.ID] = g
	return nil
}

func (r *repoFake) GetByID(_ context.Context, id string) (Grant, error) {
	g, ok := r.items[id]
	if !ok {
		return Grant{}, ErrNotFound
	}
	return g, nil
}

func (r *repoFake) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *repoFake) ListByPatient(_ context.Context, patientID int64) ([]Grant, error) {
	out := make([]Grant, 0)
	for _, g := range r.items {
		if g.PatientID == patientID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *repoFake) ListByGrantee(_ context.Context, granteeID int64) ([]Grant, error) {
	out := make([]Grant, 0)
	for _, g := range r.items {
		if g.GranteeID == granteeID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *repoFake) ListByPatientAndGrantee(_ context.Context, patientID, granteeID int64) ([]Grant, error) {
	out := make([]Grant, 0)
	for _, g := range r.items {
		if g.PatientID == patientID && g.GranteeID == granteeID {
			out = append(out, g)
		}
	}
	return out, nil
}

func validCreateInput() CreateInput {
	return CreateInput{
		PatientID:      7,
		GranteeID:      12,
		AccessLevel:    "read",
		EffectiveDate:  "2024-03-01",
		ExpirationDate: "2024-03-31",
	}
}

func TestCreateAssignsIDAndNormalizes(t *testing.T) {
	repo := newRepoFake()
	svc := NewService(repo, nil, nil)

	in := validCreateInput()
	in.AccessLevel = "  WRITE " // se normaliza a minúsculas

	g, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.ID == "" {
		t.Fatalf("expected a generated id")
	}
	if g.Level != LevelWrite {
		t.Fatalf("got level %q, want write", g.Level)
	}
	if got := g.EffectiveDate.Format("2006-01-02"); got != "2024-03-01" {
		t.Fatalf("got effective date %s, want 2024-03-01", got)
	}
	if g.EffectiveDate.Location() != time.UTC {
		t.Fatalf("dates must be UTC")
	}
	if _, ok := repo.items[g.ID]; !ok {
		t.Fatalf("grant not persisted")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newRepoFake(), nil, nil)

	cases := []struct {
		name      string
		mutate    func(*CreateInput)
		wantField string
	}{
		{"zero patient", func(in *CreateInput) { in.PatientID = 0 }, "patient_id"},
		{"zero grantee", func(in *CreateInput) { in.GranteeID = 0 }, "grantee_id"},
		{"self grant", func(in *CreateInput) { in.GranteeID = in.PatientID }, "grantee_id"},
		{"bad level", func(in *CreateInput) { in.AccessLevel = "admin" }, "access_level"},
		{"bad effective date", func(in *CreateInput) { in.EffectiveDate = "01/03/2024" }, "effective_date"},
		{"bad expiration date", func(in *CreateInput) { in.ExpirationDate = "soon" }, "expiration_date"},
		{"inverted window", func(in *CreateInput) {
			in.EffectiveDate = "2024-03-31"
			in.ExpirationDate = "2024-03-01"
		}, "expiration_date"},
	}

	for _, tc := range cases {
		in := validCreateInput()
		tc.mutate(&in)

		_, err := svc.Create(context.Background(), in)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: got err %v, want ValidationError", tc.name, err)
		}
		if verr.Field != tc.wantField {
			t.Fatalf("%s: got field %q, want %q", tc.name, verr.Field, tc.wantField)
		}
	}
}

func TestSingleDayWindowIsValid(t *testing.T) {
	svc := NewService(newRepoFake(), nil, nil)

	in := validCreateInput()
	in.EffectiveDate = "2024-03-15"
	in.ExpirationDate = "2024-03-15"

	g, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsActive(g, time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("single-day grant must be active on its day")
	}
}

type patientDirStub struct{ exists bool }

func (s patientDirStub) PatientExists(context.Context, int64) (bool, error) {
	return s.exists, nil
}

type userDirStub struct{ exists bool }

func (s userDirStub) UserExists(context.Context, int64) (bool, error) {
	return s.exists, nil
}

func TestCreateChecksReferences(t *testing.T) {
	svc := NewService(newRepoFake(), patientDirStub{exists: false}, userDirStub{exists: true})
	if _, err := svc.Create(context.Background(), validCreateInput()); !errors.Is(err, ErrConflict) {
		t.Fatalf("missing patient: got err %v, want ErrConflict", err)
	}

	svc = NewService(newRepoFake(), patientDirStub{exists: true}, userDirStub{exists: false})
	if _, err := svc.Create(context.Background(), validCreateInput()); !errors.Is(err, ErrConflict) {
		t.Fatalf("missing grantee: got err %v, want ErrConflict", err)
	}

	svc = NewService(newRepoFake(), patientDirStub{exists: true}, userDirStub{exists: true})
	if _, err := svc.Create(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("both exist: unexpected error: %v", err)
	}
}

func TestUpdateReplacesLevelAndWindow(t *testing.T) {
	repo := newRepoFake()
	svc := NewService(repo, nil, nil)

	g, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Update(context.Background(), g.ID, UpdateInput{
		AccessLevel:    "write",
		EffectiveDate:  "2024-04-01",
		ExpirationDate: "2024-04-30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Level != LevelWrite {
		t.Fatalf("got level %q, want write", updated.Level)
	}
	if got := updated.EffectiveDate.Format("2006-01-02"); got != "2024-04-01" {
		t.Fatalf("got effective date %s, want 2024-04-01", got)
	}
	if updated.PatientID != g.PatientID || updated.GranteeID != g.GranteeID {
		t.Fatalf("update must not change the (patient, grantee) pair")
	}
}

func TestUpdateRejectionLeavesGrantIntact(t *testing.T) {
	repo := newRepoFake()
	svc := NewService(repo, nil, nil)

	g, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Update(context.Background(), g.ID, UpdateInput{
		AccessLevel:    "write",
		EffectiveDate:  "2024-04-30",
		ExpirationDate: "2024-04-01", // ventana invertida
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got err %v, want ValidationError", err)
	}

	stored := repo.items[g.ID]
	if stored.Level != g.Level || !stored.EffectiveDate.Equal(g.EffectiveDate) || !stored.ExpirationDate.Equal(g.ExpirationDate) {
		t.Fatalf("rejected update must not touch the stored grant: %+v vs %+v", stored, g)
	}
}

func TestUpdateMissingGrant(t *testing.T) {
	svc := NewService(newRepoFake(), nil, nil)
	_, err := svc.Update(context.Background(), "nope", UpdateInput{
		AccessLevel:    "read",
		EffectiveDate:  "2024-03-01",
		ExpirationDate: "2024-03-31",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got err %v, want ErrNotFound", err)
	}
}

func TestDeleteIsUnconditional(t *testing.T) {
	repo := newRepoFake()
	svc := NewService(repo, nil, nil)

	// Un grant todavía vigente se puede revocar sin más.
	g, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), g.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.items[g.ID]; ok {
		t.Fatalf("grant still present after delete")
	}

	if err := svc.Delete(context.Background(), g.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got err %v, want ErrNotFound", err)
	}
}

func TestIsActiveBoundaries(t *testing.T) {
	g := Grant{
		EffectiveDate:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		ExpirationDate: time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	}

	cases := []struct {
		ref  time.Time
		want bool
	}{
		{time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC), false},
		{time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC), true},
		{time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC), true},
		{time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		if got := IsActive(g, tc.ref); got != tc.want {
			t.Fatalf("ref %s: got %v, want %v", tc.ref, got, tc.want)
		}
	}
}
