package jobs

import (
	"context"
	"errors"

	"github.com/azim128/jobify/internal/shared/query"
)

var ErrNotFound = errors.New("job not found")

// Filter narrows job listings. Search matches title or description,
// Location matches as a case-insensitive substring, the rest are exact.
type Filter struct {
	Search    string
	CompanyID string
	Type      string
	Level     string
	Location  string
}

// Repo persists jobs.
type Repo interface {
	Create(ctx context.Context, job Job) error
	GetByID(ctx context.Context, id string) (Job, error)
	List(ctx context.Context, f Filter, p query.Page) ([]Job, int, error)
	Update(ctx context.Context, job Job) error
	Delete(ctx context.Context, id string) error
}
