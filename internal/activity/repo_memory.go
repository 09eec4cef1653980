package activity

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/azim128/jobify/internal/shared/query"
)

// MemoryRepo implements Repo in memory for dev and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	records []Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, f Filter, p query.Page) ([]Record, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Record
	for _, rec := range r.records {
		if matches(rec, f) {
			out = append(out, rec)
		}
	}
	return page(out, p)
}

func (r *MemoryRepo) ListByResource(ctx context.Context, resourceID string, p query.Page) ([]Record, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Record
	for _, rec := range r.records {
		if rec.ResourceID == resourceID {
			out = append(out, rec)
		}
	}
	return page(out, p)
}

func matches(rec Record, f Filter) bool {
	if f.Resource != "" && rec.Resource != f.Resource {
		return false
	}
	if f.Action != "" && rec.Action != f.Action {
		return false
	}
	if !f.Start.IsZero() && rec.CreatedAt.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && rec.CreatedAt.After(f.End) {
		return false
	}
	return true
}

func page(records []Record, p query.Page) ([]Record, int, error) {
	sort.SliceStable(records, func(i, j int) bool {
		if p.Descending() {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	total := len(records)
	start := p.Skip()
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return records[start:end], total, nil
}

var _ Repo = (*MemoryRepo)(nil)
