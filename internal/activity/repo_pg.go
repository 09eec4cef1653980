package activity

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/azim128/jobify/internal/shared/query"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const logColumns = `id, action, resource, resource_id, user_id, details, created_at`

func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const stmt = `
INSERT INTO activity_logs (id, action, resource, resource_id, user_id, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx, stmt,
		rec.ID,
		string(rec.Action),
		rec.Resource,
		rec.ResourceID,
		rec.UserID,
		rec.Details,
		rec.CreatedAt,
	)
	return err
}

func (r *PGRepo) List(ctx context.Context, f Filter, p query.Page) ([]Record, int, error) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Resource != "" {
		add(`resource = $%d`, f.Resource)
	}
	if f.Action != "" {
		add(`action = $%d`, string(f.Action))
	}
	if !f.Start.IsZero() {
		add(`created_at >= $%d`, f.Start)
	}
	if !f.End.IsZero() {
		add(`created_at <= $%d`, f.End)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	return r.listWhere(ctx, where, args, p)
}

func (r *PGRepo) ListByResource(ctx context.Context, resourceID string, p query.Page) ([]Record, int, error) {
	return r.listWhere(ctx, " WHERE resource_id = $1", []any{resourceID}, p)
}

func (r *PGRepo) listWhere(ctx context.Context, where string, args []any, p query.Page) ([]Record, int, error) {
	direction := "DESC"
	if !p.Descending() {
		direction = "ASC"
	}
	stmt := `SELECT ` + logColumns + ` FROM activity_logs` + where +
		` ORDER BY created_at ` + direction +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)

	rows, err := r.DB.QueryContext(ctx, stmt, append(args, p.Limit, p.Skip())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var action string
		if err := rows.Scan(&rec.ID, &action, &rec.Resource, &rec.ResourceID, &rec.UserID, &rec.Details, &rec.CreatedAt); err != nil {
			return nil, 0, err
		}
		rec.Action = Action(action)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM activity_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

var _ Repo = (*PGRepo)(nil)
