package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/azim128/jobify/internal/shared/query"
	"github.com/azim128/jobify/internal/shared/telemetry"
	"github.com/azim128/jobify/internal/users"
)

// Service writes and reads the audit log. Writes are best-effort: a failed
// write never fails the request that triggered it.
type Service struct {
	Repo  Repo
	Users users.Repo
}

// View is a record with the acting user resolved.
type View struct {
	Record
	User users.Ref `json:"user"`
}

// Record appends an audit entry. Failures are logged and swallowed.
func (s *Service) Record(ctx context.Context, rec Record) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		telemetry.Warn("activity.record_failed", map[string]any{
			"action":      string(rec.Action),
			"resource":    rec.Resource,
			"resource_id": rec.ResourceID,
			"error":       err.Error(),
		})
	}
}

// RecordAuthEvent logs a login or logout. It satisfies the auth service's
// event hook.
func (s *Service) RecordAuthEvent(ctx context.Context, user users.User, action string) {
	s.Record(ctx, Record{
		Action:     Action(action),
		Resource:   "User",
		ResourceID: user.ID,
		UserID:     user.ID,
		Details:    fmt.Sprintf("User %s: %s", action, user.Email),
	})
}

// List returns audit entries matching the filter.
func (s *Service) List(ctx context.Context, f Filter, p query.Page) ([]View, int, error) {
	records, total, err := s.Repo.List(ctx, f, p)
	if err != nil {
		return nil, 0, err
	}
	return s.views(ctx, records), total, nil
}

// ListByResource returns the audit trail of one resource.
func (s *Service) ListByResource(ctx context.Context, resourceID string, p query.Page) ([]View, int, error) {
	records, total, err := s.Repo.ListByResource(ctx, resourceID, p)
	if err != nil {
		return nil, 0, err
	}
	return s.views(ctx, records), total, nil
}

func (s *Service) views(ctx context.Context, records []Record) []View {
	refs := make(map[string]users.Ref)
	out := make([]View, 0, len(records))
	for _, rec := range records {
		ref, ok := refs[rec.UserID]
		if !ok {
			if user, err := s.Users.GetByID(ctx, rec.UserID); err == nil {
				ref = users.RefOf(user)
			} else {
				ref = users.Ref{ID: rec.UserID}
			}
			refs[rec.UserID] = ref
		}
		out = append(out, View{Record: rec, User: ref})
	}
	return out
}

var _ users.AuthEventRecorder = (*Service)(nil)
