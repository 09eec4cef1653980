package jobs

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/azim128/jobify/internal/shared/query"
)

// MemoryRepo implements Repo in memory for dev and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{jobs: make(map[string]Job)}
}

func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	r.jobs[job.ID] = job
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (r *MemoryRepo) List(ctx context.Context, f Filter, p query.Page) ([]Job, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Job
	for _, job := range r.jobs {
		if matches(job, f) {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if p.SortKey() == "title" {
			if p.Descending() {
				return out[i].Title > out[j].Title
			}
			return out[i].Title < out[j].Title
		}
		if p.Descending() {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	total := len(out)
	start := p.Skip()
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func matches(job Job, f Filter) bool {
	if f.Search != "" {
		s := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(job.Title), s) &&
			!strings.Contains(strings.ToLower(job.Description), s) {
			return false
		}
	}
	if f.CompanyID != "" && job.CompanyID != f.CompanyID {
		return false
	}
	if f.Type != "" && job.Type != f.Type {
		return false
	}
	if f.Level != "" && job.Level != f.Level {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(job.Location), strings.ToLower(f.Location)) {
		return false
	}
	return true
}

func (r *MemoryRepo) Update(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[job.ID]
	if !ok {
		return ErrNotFound
	}
	job.CreatedAt = existing.CreatedAt
	job.UpdatedAt = time.Now().UTC()
	r.jobs[job.ID] = job
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
