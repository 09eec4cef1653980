package users

import (
	"context"
	"errors"
	"time"

	"github.com/azim128/jobify/internal/shared/query"
)

var (
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken reports a uniqueness violation on email.
	ErrEmailTaken = errors.New("email already exists")
	// ErrSuperAdminExists reports a violation of the single-super-admin
	// storage backstop.
	ErrSuperAdminExists = errors.New("super admin already exists")
)

// Repo persists users.
type Repo interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// GetByResetToken returns the user holding an unexpired reset token hash.
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (User, error)
	ListAdmins(ctx context.Context, p query.Page) ([]User, int, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
