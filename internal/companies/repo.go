package companies

import (
	"context"
	"errors"

	"github.com/azim128/jobify/internal/shared/query"
)

var (
	ErrNotFound = errors.New("company not found")
	// ErrNameTaken reports a uniqueness violation on the company name.
	ErrNameTaken = errors.New("company name already exists")
)

// Repo persists companies.
type Repo interface {
	Create(ctx context.Context, company Company) error
	GetByID(ctx context.Context, id string) (Company, error)
	GetByName(ctx context.Context, name string) (Company, error)
	List(ctx context.Context, p query.Page) ([]Company, int, error)
	Update(ctx context.Context, company Company) error
	Delete(ctx context.Context, id string) error
}
