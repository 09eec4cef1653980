package uploads

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo implements Repo in memory for dev and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: make(map[string]Record)}
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
	r.records[rec.ID] = rec
	return nil
}

func (r *MemoryRepo) ListByCompany(ctx context.Context, companyID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Record
	for _, rec := range r.records {
		if rec.CompanyID == companyID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Record
	for _, rec := range r.records {
		if rec.JobID == jobID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *MemoryRepo) DeleteByCompany(ctx context.Context, companyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.records {
		if rec.CompanyID == companyID {
			delete(r.records, id)
		}
	}
	return nil
}

func (r *MemoryRepo) DeleteByJob(ctx context.Context, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.records {
		if rec.JobID == jobID {
			delete(r.records, id)
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
