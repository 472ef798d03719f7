package postgres

import (
	"context"
	"database/sql"
	"errors"

	"clinical-records/internal/domain/accessgrants"
)

type AccessGrantsRepo struct {
	db *sql.DB
}

func NewAccessGrantsRepo(db *sql.DB) *AccessGrantsRepo {
	return &AccessGrantsRepo{db: db}
}

const grantColumns = `
	permission_id, patient_id, grantee_id, access_level,
	effective_date, expiration_date, created_at, updated_at`

func (r *AccessGrantsRepo) Create(ctx context.Context, g accessgrants.Grant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO access_permissions (
			permission_id, patient_id, grantee_id, access_level,
			effective_date, expiration_date, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		g.ID,
		g.PatientID,
		g.GranteeID,
		string(g.Level),
		g.EffectiveDate,
		g.ExpirationDate,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return accessgrants.ErrConflict
		}
		return err
	}
	return nil
}

func (r *AccessGrantsRepo) Update(ctx context.Context, g accessgrants.Grant) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE access_permissions
		SET
			access_level = $2,
			effective_date = $3,
			expiration_date = $4,
			updated_at = $5
		WHERE permission_id = $1
	`,
		g.ID,
		string(g.Level),
		g.EffectiveDate,
		g.ExpirationDate,
		g.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return accessgrants.ErrNotFound
	}
	return nil
}

func (r *AccessGrantsRepo) GetByID(ctx context.Context, id string) (accessgrants.Grant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+grantColumns+`
		FROM access_permissions
		WHERE permission_id = $1
	`, id)

	g, err := scanGrant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accessgrants.Grant{}, accessgrants.ErrNotFound
		}
		return accessgrants.Grant{}, err
	}
	return g, nil
}

func (r *AccessGrantsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM access_permissions WHERE permission_id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return accessgrants.ErrNotFound
	}
	return nil
}

func (r *AccessGrantsRepo) ListByPatient(ctx context.Context, patientID int64) ([]accessgrants.Grant, error) {
	return r.list(ctx, `
		SELECT `+grantColumns+`
		FROM access_permissions
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`, patientID)
}

func (r *AccessGrantsRepo) ListByGrantee(ctx context.Context, granteeID int64) ([]accessgrants.Grant, error) {
	return r.list(ctx, `
		SELECT `+grantColumns+`
		FROM access_permissions
		WHERE grantee_id = $1
		ORDER BY created_at DESC
	`, granteeID)
}

func (r *AccessGrantsRepo) ListByPatientAndGrantee(ctx context.Context, patientID, granteeID int64) ([]accessgrants.Grant, error) {
	return r.list(ctx, `
		SELECT `+grantColumns+`
		FROM access_permissions
		WHERE patient_id = $1 AND grantee_id = $2
		ORDER BY created_at DESC
	`, patientID, granteeID)
}

func (r *AccessGrantsRepo) list(ctx context.Context, query string, args ...any) ([]accessgrants.Grant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]accessgrants.Grant, 0)
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func scanGrant(row rowScanner) (accessgrants.Grant, error) {
	var g accessgrants.Grant
	var level string
	if err := row.Scan(
		&g.ID,
		&g.PatientID,
		&g.GranteeID,
		&level,
		&g.EffectiveDate,
		&g.ExpirationDate,
		&g.CreatedAt,
		&g.UpdatedAt,
	); err != nil {
		return accessgrants.Grant{}, err
	}
	g.Level = accessgrants.Level(level)
	return g, nil
}
