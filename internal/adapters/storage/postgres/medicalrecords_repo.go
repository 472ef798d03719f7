package postgres

import (
	"context"
	"database/sql"
	"errors"

	"clinical-records/internal/domain/medicalrecords"
)

type MedicalRecordsRepo struct {
	db *sql.DB
}

func NewMedicalRecordsRepo(db *sql.DB) *MedicalRecordsRepo {
	return &MedicalRecordsRepo{db: db}
}

const medicalRecordColumns = `
	record_id, patient_id, doctor_id,
	visit_date, diagnosis, treatment, notes,
	created_at, updated_at`

func (r *MedicalRecordsRepo) Create(ctx context.Context, m medicalrecords.MedicalRecord) (medicalrecords.MedicalRecord, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO medical_records (
			patient_id, doctor_id,
			visit_date, diagnosis, treatment, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING record_id
	`,
		m.PatientID,
		m.DoctorID,
		m.VisitDate,
		m.Diagnosis,
		m.Treatment,
		m.Notes,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return medicalrecords.MedicalRecord{}, medicalrecords.ErrConflict
		}
		return medicalrecords.MedicalRecord{}, err
	}
	return m, nil
}

func (r *MedicalRecordsRepo) GetByID(ctx context.Context, id int64) (medicalrecords.MedicalRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+medicalRecordColumns+`
		FROM medical_records
		WHERE record_id = $1
	`, id)

	m, err := scanMedicalRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return medicalrecords.MedicalRecord{}, medicalrecords.ErrNotFound
		}
		return medicalrecords.MedicalRecord{}, err
	}
	return m, nil
}

func (r *MedicalRecordsRepo) List(ctx context.Context) ([]medicalrecords.MedicalRecord, error) {
	return r.list(ctx, `
		SELECT `+medicalRecordColumns+`
		FROM medical_records
		ORDER BY visit_date DESC, record_id DESC
	`)
}

func (r *MedicalRecordsRepo) ListByPatient(ctx context.Context, patientID int64) ([]medicalrecords.MedicalRecord, error) {
	return r.list(ctx, `
		SELECT `+medicalRecordColumns+`
		FROM medical_records
		WHERE patient_id = $1
		ORDER BY visit_date DESC, record_id DESC
	`, patientID)
}

func (r *MedicalRecordsRepo) Update(ctx context.Context, m medicalrecords.MedicalRecord) (medicalrecords.MedicalRecord, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medical_records
		SET
			patient_id = $2,
			doctor_id = $3,
			visit_date = $4,
			diagnosis = $5,
			treatment = $6,
			notes = $7,
			updated_at = $8
		WHERE record_id = $1
	`,
		m.ID,
		m.PatientID,
		m.DoctorID,
		m.VisitDate,
		m.Diagnosis,
		m.Treatment,
		m.Notes,
		m.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return medicalrecords.MedicalRecord{}, medicalrecords.ErrConflict
		}
		return medicalrecords.MedicalRecord{}, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medicalrecords.MedicalRecord{}, medicalrecords.ErrNotFound
	}
	return m, nil
}

func (r *MedicalRecordsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM medical_records WHERE record_id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medicalrecords.ErrNotFound
	}
	return nil
}

func (r *MedicalRecordsRepo) list(ctx context.Context, query string, args ...any) ([]medicalrecords.MedicalRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicalrecords.MedicalRecord, 0)
	for rows.Next() {
		m, err := scanMedicalRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMedicalRecord(row rowScanner) (medicalrecords.MedicalRecord, error) {
	var m medicalrecords.MedicalRecord
	if err := row.Scan(
		&m.ID,
		&m.PatientID,
		&m.DoctorID,
		&m.VisitDate,
		&m.Diagnosis,
		&m.Treatment,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return medicalrecords.MedicalRecord{}, err
	}
	return m, nil
}
