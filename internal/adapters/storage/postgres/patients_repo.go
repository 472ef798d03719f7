package postgres

import (
	"context"
	"database/sql"
	"errors"

	"clinical-records/internal/domain/patients"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

const patientColumns = `
	patient_id, first_name, last_name, dob, gender,
	address, phone_number, email, created_at, updated_at`

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) (patients.Patient, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO patients (
			first_name, last_name, dob, gender,
			address, phone_number, email,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING patient_id
	`,
		p.FirstName,
		p.LastName,
		p.DOB,
		string(p.Gender),
		p.Address,
		p.PhoneNumber,
		p.Email,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return patients.Patient{}, err
	}
	return p, nil
}

func (r *PatientsRepo) GetByID(ctx context.Context, id int64) (patients.Patient, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE patient_id = $1
	`, id)

	p, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return patients.Patient{}, patients.ErrNotFound
		}
		return patients.Patient{}, err
	}
	return p, nil
}

func (r *PatientsRepo) List(ctx context.Context) ([]patients.Patient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		ORDER BY patient_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PatientsRepo) Update(ctx context.Context, p patients.Patient) (patients.Patient, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE patients
		SET
			first_name = $2,
			last_name = $3,
			dob = $4,
			gender = $5,
			address = $6,
			phone_number = $7,
			email = $8,
			updated_at = $9
		WHERE patient_id = $1
	`,
		p.ID,
		p.FirstName,
		p.LastName,
		p.DOB,
		string(p.Gender),
		p.Address,
		p.PhoneNumber,
		p.Email,
		p.UpdatedAt,
	)
	if err != nil {
		return patients.Patient{}, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.Patient{}, patients.ErrNotFound
	}
	return p, nil
}

func (r *PatientsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM patients WHERE patient_id = $1
	`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return patients.ErrConflict
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (patients.Patient, error) {
	var p patients.Patient
	var gender string
	if err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.DOB,
		&gender,
		&p.Address,
		&p.PhoneNumber,
		&p.Email,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return patients.Patient{}, err
	}
	p.Gender = patients.Gender(gender)
	return p, nil
}
