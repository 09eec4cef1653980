package companies

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
	mu        sync.RWMutex
	companies map[string]Company
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{companies: make(map[string]Company)}
}

func (r *MemoryRepo) Create(ctx context.Context, company Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.companies {
		if strings.EqualFold(existing.Name, company.Name) {
			return ErrNameTaken
		}
	}
	now := time.Now().UTC()
	if company.CreatedAt.IsZero() {
		company.CreatedAt = now
	}
	company.UpdatedAt = now
	r.companies[company.ID] = company
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Company, error) {
	if err := ctx.Err(); err != nil {
		return Company{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	company, ok := r.companies[id]
	if !ok {
		return Company{}, ErrNotFound
	}
	return company, nil
}

func (r *MemoryRepo) GetByName(ctx context.Context, name string) (Company, error) {
	if err := ctx.Err(); err != nil {
		return Company{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, company := range r.companies {
		if strings.EqualFold(company.Name, name) {
			return company, nil
		}
	}
	return Company{}, ErrNotFound
}

func (r *MemoryRepo) List(ctx context.Context, p query.Page) ([]Company, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Company, 0, len(r.companies))
	for _, company := range r.companies {
		out = append(out, company)
	}
	sort.Slice(out, func(i, j int) bool {
		if p.SortKey() == "name" {
			if p.Descending() {
				return out[i].Name > out[j].Name
			}
			return out[i].Name < out[j].Name
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

func (r *MemoryRepo) Update(ctx context.Context, company Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.companies[company.ID]
	if !ok {
		return ErrNotFound
	}
	for id, other := range r.companies {
		if id != company.ID && strings.EqualFold(other.Name, company.Name) {
			return ErrNameTaken
		}
	}
	company.CreatedAt = existing.CreatedAt
	company.UpdatedAt = time.Now().UTC()
	r.companies[company.ID] = company
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return ErrNotFound
	}
	delete(r.companies, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
