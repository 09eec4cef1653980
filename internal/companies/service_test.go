package companies

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/query"
	"github.com/azim128/jobify/internal/uploads"
	"github.com/azim128/jobify/internal/users"
)

type stubStore struct {
	url string
	err error
}

func (s *stubStore) Save(_ context.Context, folder, fileName string, _ io.Reader) (string, int64, string, error) {
	if s.err != nil {
		return "", 0, "", s.err
	}
	return s.url + "/" + folder + "/" + fileName, 4, "image/png", nil
}

func newTestService(t *testing.T, store *stubStore) (*Service, uploads.Repo, users.User) {
	t.Helper()
	if store == nil {
		store = &stubStore{url: "https://files.test"}
	}
	userRepo := users.NewMemoryRepo()
	actor := users.User{
		ID:       "admin-1",
		Name:     "Admin",
		Email:    "admin@example.com",
		Role:     users.RoleAdmin,
		IsActive: true,
	}
	if err := userRepo.Create(context.Background(), actor); err != nil {
		t.Fatalf("seed actor: %v", err)
	}

	fileRepo := uploads.NewMemoryRepo()
	svc := &Service{
		Repo:        NewMemoryRepo(),
		Users:       userRepo,
		Files:       &uploads.Service{Repo: fileRepo, Store: store},
		FileRecords: fileRepo,
	}
	return svc, fileRepo, actor
}

func TestCreateCompany(t *testing.T) {
	svc, fileRepo, actor := newTestService(t, nil)

	view, err := svc.Create(context.Background(), CreateInput{
		Name:     "Acme",
		Location: "Berlin",
		Industry: "Software",
		Logo: &Attachment{
			FileName:  "logo.png",
			SizeBytes: 4,
			Body:      strings.NewReader("data"),
		},
	}, actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Logo == "" {
		t.Fatal("logo url not set")
	}
	if view.CreatedBy.Email != "admin@example.com" {
		t.Fatalf("createdBy = %+v", view.CreatedBy)
	}

	recs, err := fileRepo.ListByCompany(context.Background(), view.ID)
	if err != nil {
		t.Fatalf("list files: %v", err)
	}
	if len(recs) != 1 || recs[0].FileType != uploads.TypeLogo {
		t.Fatalf("file records = %+v", recs)
	}
}

func TestCreateCompanyRequiredFields(t *testing.T) {
	svc, _, actor := newTestService(t, nil)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Acme"}, actor)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if got := apperr.Message(err); got != "Please provide all required fields" {
		t.Fatalf("message = %q", got)
	}
}

func TestCreateCompanyDuplicateName(t *testing.T) {
	svc, _, actor := newTestService(t, nil)

	in := CreateInput{Name: "Acme", Location: "Berlin", Industry: "Software"}
	if _, err := svc.Create(context.Background(), in, actor); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(context.Background(), in, actor)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
	if got := apperr.Message(err); got != "Company name already exists" {
		t.Fatalf("message = %q", got)
	}
}

func TestCreateCompanySucceedsWhenLogoUploadFails(t *testing.T) {
	svc, fileRepo, actor := newTestService(t, &stubStore{err: errors.New("bucket down")})

	view, err := svc.Create(context.Background(), CreateInput{
		Name:     "Acme",
		Location: "Berlin",
		Industry: "Software",
		Logo: &Attachment{
			FileName:  "logo.png",
			SizeBytes: 4,
			Body:      strings.NewReader("data"),
		},
	}, actor)
	if err != nil {
		t.Fatalf("create should survive a failed upload, got %v", err)
	}
	if view.Logo != "" {
		t.Fatalf("logo = %q, want empty after failed upload", view.Logo)
	}

	recs, _ := fileRepo.ListByCompany(context.Background(), view.ID)
	if len(recs) != 0 {
		t.Fatalf("file records = %+v, want none", recs)
	}
}

func TestUpdateCompanyNameConflict(t *testing.T) {
	svc, _, actor := newTestService(t, nil)

	if _, err := svc.Create(context.Background(), CreateInput{Name: "Acme", Location: "Berlin", Industry: "Software"}, actor); err != nil {
		t.Fatalf("create: %v", err)
	}
	other, err := svc.Create(context.Background(), CreateInput{Name: "Globex", Location: "Bonn", Industry: "Retail"}, actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	taken := "Acme"
	_, err = svc.Update(context.Background(), other.ID, UpdateInput{Name: &taken}, actor)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestGetCompanyNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.GetByID(context.Background(), "missing")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if got := apperr.Message(err); got != "Company not found" {
		t.Fatalf("message = %q", got)
	}
}

func TestDeleteCompanyCascadesFileRecords(t *testing.T) {
	svc, fileRepo, actor := newTestService(t, nil)

	view, err := svc.Create(context.Background(), CreateInput{
		Name:     "Acme",
		Location: "Berlin",
		Industry: "Software",
		Logo: &Attachment{
			FileName:  "logo.png",
			SizeBytes: 4,
			Body:      strings.NewReader("data"),
		},
	}, actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), view.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	recs, _ := fileRepo.ListByCompany(context.Background(), view.ID)
	if len(recs) != 0 {
		t.Fatalf("file records survived delete: %+v", recs)
	}
	if _, err := svc.GetByID(context.Background(), view.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestListCompaniesPagination(t *testing.T) {
	svc, _, actor := newTestService(t, nil)

	for _, name := range []string{"Acme", "Globex", "Initech"} {
		if _, err := svc.Create(context.Background(), CreateInput{Name: name, Location: "X", Industry: "Y"}, actor); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	p := query.Page{Page: 2, Limit: 2, Sort: "name"}.Clamp()
	views, total, err := svc.List(context.Background(), p)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d", total)
	}
	if len(views) != 1 || views[0].Name != "Initech" {
		t.Fatalf("page 2 = %+v", views)
	}
}
