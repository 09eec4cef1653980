package companies

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/azim128/jobify/internal/shared/query"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const companyColumns = `id, name, description, location, industry, logo, created_by, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, company Company) error {
	const stmt = `
INSERT INTO companies (id, name, description, location, industry, logo, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now().UTC()
	if company.CreatedAt.IsZero() {
		company.CreatedAt = now
	}
	_, err := r.DB.ExecContext(ctx, stmt,
		company.ID,
		company.Name,
		company.Description,
		company.Location,
		company.Industry,
		company.Logo,
		company.CreatedBy,
		company.CreatedAt,
		now,
	)
	return mapNameViolation(err)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Company, error) {
	const stmt = `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, stmt, id))
}

func (r *PGRepo) GetByName(ctx context.Context, name string) (Company, error) {
	const stmt = `SELECT ` + companyColumns + ` FROM companies WHERE lower(name) = lower($1)`
	return r.scanOne(r.DB.QueryRowContext(ctx, stmt, name))
}

func (r *PGRepo) List(ctx context.Context, p query.Page) ([]Company, int, error) {
	orderBy := p.OrderBy(map[string]string{
		"createdAt": "created_at",
		"name":      "name",
	}, "created_at")

	stmt := `SELECT ` + companyColumns + ` FROM companies ORDER BY ` + orderBy + ` LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, stmt, p.Limit, p.Skip())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		company, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, company)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM companies`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PGRepo) Update(ctx context.Context, company Company) error {
	const stmt = `
UPDATE companies
SET name = $2, description = $3, location = $4, industry = $5, logo = $6, updated_at = $7
WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, stmt,
		company.ID,
		company.Name,
		company.Description,
		company.Location,
		company.Industry,
		company.Logo,
		time.Now().UTC(),
	)
	if err != nil {
		return mapNameViolation(err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanOne(row rowScanner) (Company, error) {
	company, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Company{}, ErrNotFound
		}
		return Company{}, err
	}
	return company, nil
}

func (r *PGRepo) scanRow(row rowScanner) (Company, error) {
	var company Company
	if err := row.Scan(
		&company.ID,
		&company.Name,
		&company.Description,
		&company.Location,
		&company.Industry,
		&company.Logo,
		&company.CreatedBy,
		&company.CreatedAt,
		&company.UpdatedAt,
	); err != nil {
		return Company{}, err
	}
	return company, nil
}

func mapNameViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrNameTaken
	}
	return err
}

var _ Repo = (*PGRepo)(nil)
