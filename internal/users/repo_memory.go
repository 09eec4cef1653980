package users

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/azim128/jobify/internal/shared/query"
)

// MemoryRepo implements Repo in memory for dev and tests. The mutex also
// serializes the bootstrap check-then-create sequence, standing in for the
// storage uniqueness backstop.
type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User)}
}

func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrEmailTaken
		}
		if user.Role == RoleSuperAdmin && existing.Role == RoleSuperAdmin {
			return ErrSuperAdminExists
		}
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.users[user.ID] = user
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.PasswordResetToken == tokenHash &&
			user.PasswordResetExpires != nil &&
			user.PasswordResetExpires.After(now) {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) ListAdmins(ctx context.Context, p query.Page) ([]User, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var admins []User
	for _, user := range r.users {
		if user.Role == RoleAdmin {
			admins = append(admins, user)
		}
	}
	sort.Slice(admins, func(i, j int) bool {
		if p.SortKey() == "name" {
			if p.Descending() {
				return admins[i].Name > admins[j].Name
			}
			return admins[i].Name < admins[j].Name
		}
		if p.Descending() {
			return admins[i].CreatedAt.After(admins[j].CreatedAt)
		}
		return admins[i].CreatedAt.Before(admins[j].CreatedAt)
	})

	total := len(admins)
	start := p.Skip()
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return admins[start:end], total, nil
}

func (r *MemoryRepo) Update(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	for id, other := range r.users {
		if id != user.ID && strings.EqualFold(other.Email, user.Email) {
			return ErrEmailTaken
		}
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = user
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

var _ Repo = (*MemoryRepo)(nil)
