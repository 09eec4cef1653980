package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/azim128/jobify/internal/shared/query"
)

const pgUniqueViolation = "23505"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, name, email, password_hash, role, permissions, is_active, password_reset_token, password_reset_expires, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const stmt = `
INSERT INTO users (id, name, email, password_hash, role, permissions, is_active, password_reset_token, password_reset_expires, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	perms, err := json.Marshal(user.Permissions)
	if err != nil {
		return fmt.Errorf("marshal permissions: %w", err)
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}

	_, err = r.DB.ExecContext(ctx, stmt,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		perms,
		user.IsActive,
		nullString(user.PasswordResetToken),
		nullTime(user.PasswordResetExpires),
		user.CreatedAt,
		now,
	)
	return mapUniqueViolation(err)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (User, error) {
	const stmt = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, stmt, id))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const stmt = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.scanOne(r.DB.QueryRowContext(ctx, stmt, email))
}

func (r *PGRepo) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (User, error) {
	const stmt = `SELECT ` + userColumns + ` FROM users WHERE password_reset_token = $1 AND password_reset_expires > $2`
	return r.scanOne(r.DB.QueryRowContext(ctx, stmt, tokenHash, now))
}

func (r *PGRepo) ListAdmins(ctx context.Context, p query.Page) ([]User, int, error) {
	orderBy := p.OrderBy(map[string]string{
		"createdAt": "created_at",
		"name":      "name",
		"email":     "email",
	}, "created_at")

	stmt := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY ` + orderBy + ` LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, stmt, string(RoleAdmin), p.Limit, p.Skip())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		user, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM users WHERE role = $1`, string(RoleAdmin)).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PGRepo) Update(ctx context.Context, user User) error {
	const stmt = `
UPDATE users
SET name = $2, email = $3, password_hash = $4, permissions = $5, is_active = $6, password_reset_token = $7, password_reset_expires = $8, updated_at = $9
WHERE id = $1`

	perms, err := json.Marshal(user.Permissions)
	if err != nil {
		return fmt.Errorf("marshal permissions: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, stmt,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		perms,
		user.IsActive,
		nullString(user.PasswordResetToken),
		nullTime(user.PasswordResetExpires),
		time.Now().UTC(),
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanOne(row rowScanner) (User, error) {
	user, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PGRepo) scanRow(row rowScanner) (User, error) {
	var user User
	var role string
	var perms []byte
	var resetToken sql.NullString
	var resetExpires sql.NullTime
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&role,
		&perms,
		&user.IsActive,
		&resetToken,
		&resetExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return User{}, err
	}
	user.Role = Role(role)
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &user.Permissions); err != nil {
			return User{}, fmt.Errorf("unmarshal permissions: %w", err)
		}
	}
	if resetToken.Valid {
		user.PasswordResetToken = resetToken.String
	}
	if resetExpires.Valid {
		t := resetExpires.Time
		user.PasswordResetExpires = &t
	}
	return user, nil
}

func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "super_admin") {
			return ErrSuperAdminExists
		}
		return ErrEmailTaken
	}
	return err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
