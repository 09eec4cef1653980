package uploads

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("file upload not found")

// Repo persists file-upload records.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	ListByCompany(ctx context.Context, companyID string) ([]Record, error)
	ListByJob(ctx context.Context, jobID string) ([]Record, error)
	DeleteByCompany(ctx context.Context, companyID string) error
	DeleteByJob(ctx context.Context, jobID string) error
}
