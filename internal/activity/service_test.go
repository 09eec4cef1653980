package activity

import (
	"context"
	"testing"
	"time"

	"github.com/azim128/jobify/internal/shared/query"
	"github.com/azim128/jobify/internal/users"
)

func TestRecordAuthEvent(t *testing.T) {
	userRepo := users.NewMemoryRepo()
	actor := users.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: users.RoleAdmin, IsActive: true}
	if err := userRepo.Create(context.Background(), actor); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := &Service{Repo: NewMemoryRepo(), Users: userRepo}

	svc.RecordAuthEvent(context.Background(), actor, "login")
	svc.RecordAuthEvent(context.Background(), actor, "logout")

	views, total, err := svc.List(context.Background(), Filter{Action: ActionLogin}, query.Page{Page: 1, Limit: 10}.Clamp())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(views) != 1 {
		t.Fatalf("login records = %d/%d", len(views), total)
	}
	v := views[0]
	if v.Resource != "User" || v.Details != "User login: alice@example.com" {
		t.Fatalf("record = %+v", v.Record)
	}
	if v.User.Name != "Alice" {
		t.Fatalf("user ref = %+v", v.User)
	}
}

func TestListDateRangeFilter(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Users: users.NewMemoryRepo()}

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := repo.Create(context.Background(), Record{
			ID:         string(rune('a' + i)),
			Action:     ActionCreate,
			Resource:   "Company",
			ResourceID: "c1",
			UserID:     "u1",
			CreatedAt:  base.AddDate(0, 0, i),
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	_, total, err := svc.List(context.Background(), Filter{
		Start: base.AddDate(0, 0, 1),
		End:   base.AddDate(0, 0, 1),
	}, query.Page{Page: 1, Limit: 10}.Clamp())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
}

func TestListByResource(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Users: users.NewMemoryRepo()}

	for _, id := range []string{"c1", "c1", "c2"} {
		if err := repo.Create(context.Background(), Record{
			Action: ActionUpdate, Resource: "Company", ResourceID: id, UserID: "u1",
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	_, total, err := svc.ListByResource(context.Background(), "c1", query.Page{Page: 1, Limit: 10}.Clamp())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
}
