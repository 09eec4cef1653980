package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/azim128/jobify/internal/shared/query"
)

// PGRepo implements Repo using Postgres. Requirements and responsibilities
// are stored as JSONB arrays.
type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `id, title, description, requirements, responsibilities, salary_min, salary_max, location, type, level, company_id, created_by, description_file, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const stmt = `
INSERT INTO jobs (id, title, description, requirements, responsibilities, salary_min, salary_max, location, type, level, company_id, created_by, description_file, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	reqs, resps, err := marshalLists(job)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	_, err = r.DB.ExecContext(ctx, stmt,
		job.ID,
		job.Title,
		job.Description,
		reqs,
		resps,
		job.SalaryRange.Min,
		job.SalaryRange.Max,
		job.Location,
		job.Type,
		job.Level,
		job.CompanyID,
		job.CreatedBy,
		job.DescriptionFile,
		job.CreatedAt,
		now,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Job, error) {
	const stmt = `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, stmt, id))
}

func (r *PGRepo) List(ctx context.Context, f Filter, p query.Page) ([]Job, int, error) {
	where, args := buildFilter(f)
	orderBy := p.OrderBy(map[string]string{
		"createdAt": "created_at",
		"title":     "title",
	}, "created_at")

	stmt := `SELECT ` + jobColumns + ` FROM jobs` + where +
		` ORDER BY ` + orderBy +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)

	rows, err := r.DB.QueryContext(ctx, stmt, append(args, p.Limit, p.Skip())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM jobs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// buildFilter assembles the WHERE clause with positional args.
func buildFilter(f Filter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Search != "" {
		args = append(args, f.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')`, n, n))
	}
	if f.CompanyID != "" {
		add(`company_id = $%d`, f.CompanyID)
	}
	if f.Type != "" {
		add(`type = $%d`, f.Type)
	}
	if f.Level != "" {
		add(`level = $%d`, f.Level)
	}
	if f.Location != "" {
		add(`location ILIKE '%%' || $%d || '%%'`, f.Location)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PGRepo) Update(ctx context.Context, job Job) error {
	const stmt = `
UPDATE jobs
SET title = $2, description = $3, requirements = $4, responsibilities = $5, salary_min = $6, salary_max = $7, location = $8, type = $9, level = $10, description_file = $11, updated_at = $12
WHERE id = $1`

	reqs, resps, err := marshalLists(job)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, stmt,
		job.ID,
		job.Title,
		job.Description,
		reqs,
		resps,
		job.SalaryRange.Min,
		job.SalaryRange.Max,
		job.Location,
		job.Type,
		job.Level,
		job.DescriptionFile,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
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

func (r *PGRepo) scanOne(row rowScanner) (Job, error) {
	job, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

func (r *PGRepo) scanRow(row rowScanner) (Job, error) {
	var job Job
	var reqs, resps []byte
	if err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&reqs,
		&resps,
		&job.SalaryRange.Min,
		&job.SalaryRange.Max,
		&job.Location,
		&job.Type,
		&job.Level,
		&job.CompanyID,
		&job.CreatedBy,
		&job.DescriptionFile,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return Job{}, err
	}
	if err := json.Unmarshal(reqs, &job.Requirements); err != nil {
		return Job{}, fmt.Errorf("unmarshal requirements: %w", err)
	}
	if err := json.Unmarshal(resps, &job.Responsibilities); err != nil {
		return Job{}, fmt.Errorf("unmarshal responsibilities: %w", err)
	}
	return job, nil
}

func marshalLists(job Job) ([]byte, []byte, error) {
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if job.Responsibilities == nil {
		job.Responsibilities = []string{}
	}
	reqs, err := json.Marshal(job.Requirements)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal requirements: %w", err)
	}
	resps, err := json.Marshal(job.Responsibilities)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal responsibilities: %w", err)
	}
	return reqs, resps, nil
}

var _ Repo = (*PGRepo)(nil)
