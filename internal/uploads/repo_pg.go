package uploads

import (
	"context"
	"database/sql"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const uploadColumns = `id, file_type, url, uploaded_by, company_id, job_id, created_at`

func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const stmt = `
INSERT INTO file_uploads (id, file_type, url, uploaded_by, company_id, job_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx, stmt,
		rec.ID,
		string(rec.FileType),
		rec.URL,
		rec.UploadedBy,
		nullableID(rec.CompanyID),
		nullableID(rec.JobID),
		rec.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByCompany(ctx context.Context, companyID string) ([]Record, error) {
	const stmt = `SELECT ` + uploadColumns + ` FROM file_uploads WHERE company_id = $1 ORDER BY created_at`
	return r.list(ctx, stmt, companyID)
}

func (r *PGRepo) ListByJob(ctx context.Context, jobID string) ([]Record, error) {
	const stmt = `SELECT ` + uploadColumns + ` FROM file_uploads WHERE job_id = $1 ORDER BY created_at`
	return r.list(ctx, stmt, jobID)
}

func (r *PGRepo) DeleteByCompany(ctx context.Context, companyID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM file_uploads WHERE company_id = $1`, companyID)
	return err
}

func (r *PGRepo) DeleteByJob(ctx context.Context, jobID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM file_uploads WHERE job_id = $1`, jobID)
	return err
}

func (r *PGRepo) list(ctx context.Context, stmt string, arg any) ([]Record, error) {
	rows, err := r.DB.QueryContext(ctx, stmt, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var fileType string
		var companyID, jobID sql.NullString
		if err := rows.Scan(&rec.ID, &fileType, &rec.URL, &rec.UploadedBy, &companyID, &jobID, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.FileType = FileType(fileType)
		rec.CompanyID = companyID.String
		rec.JobID = jobID.String
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullableID(id string) sql.NullString {
	if id == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: id, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
