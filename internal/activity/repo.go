package activity

import (
	"context"
	"time"

	"github.com/azim128/jobify/internal/shared/query"
)

// Filter narrows audit-log listings. Zero time bounds are open-ended.
type Filter struct {
	Resource string
	Action   Action
	Start    time.Time
	End      time.Time
}

// Repo persists audit records. There is no update or delete: the log is
// append-only.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	List(ctx context.Context, f Filter, p query.Page) ([]Record, int, error)
	ListByResource(ctx context.Context, resourceID string, p query.Page) ([]Record, int, error)
}
