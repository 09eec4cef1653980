package jobs

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/azim128/jobify/internal/shared/query"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestBuildFilter(t *testing.T) {
	cases := []struct {
		name      string
		filter    Filter
		wantWhere string
		wantArgs  []any
	}{
		{"empty", Filter{}, "", nil},
		{
			"company only",
			Filter{CompanyID: "c1"},
			" WHERE company_id = $1",
			[]any{"c1"},
		},
		{
			"search and location",
			Filter{Search: "go", Location: "berlin"},
			" WHERE (title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%') AND location ILIKE '%' || $2 || '%'",
			[]any{"go", "berlin"},
		},
		{
			"all exact filters",
			Filter{CompanyID: "c1", Type: "Full-time", Level: "Senior"},
			" WHERE company_id = $1 AND type = $2 AND level = $3",
			[]any{"c1", "Full-time", "Senior"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			where, args := buildFilter(tc.filter)
			if where != tc.wantWhere {
				t.Fatalf("where = %q, want %q", where, tc.wantWhere)
			}
			if !reflect.DeepEqual(args, tc.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tc.wantArgs)
			}
		})
	}
}

func TestPGRepoGetByIDScansLists(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "requirements", "responsibilities",
		"salary_min", "salary_max", "location", "type", "level",
		"company_id", "created_by", "description_file", "created_at", "updated_at",
	}).AddRow("j1", "Engineer", "Build", []byte(`["Go","SQL"]`), []byte(`[]`),
		int64(50000), int64(90000), "Berlin", "Full-time", "Senior",
		"c1", "u1", "", now, now)

	mock.ExpectQuery("SELECT (.+) FROM jobs WHERE id").
		WithArgs("j1").
		WillReturnRows(rows)

	job, err := repo.GetByID(context.Background(), "j1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !reflect.DeepEqual(job.Requirements, []string{"Go", "SQL"}) {
		t.Fatalf("requirements = %v", job.Requirements)
	}
	if len(job.Responsibilities) != 0 {
		t.Fatalf("responsibilities = %v", job.Responsibilities)
	}
	if job.SalaryRange != (SalaryRange{Min: 50000, Max: 90000}) {
		t.Fatalf("salary = %+v", job.SalaryRange)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM jobs WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoListAppendsPagination(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE company_id = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("c1", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "requirements", "responsibilities",
			"salary_min", "salary_max", "location", "type", "level",
			"company_id", "created_by", "description_file", "created_at", "updated_at",
		}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM jobs WHERE company_id = \$1`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	p := query.Page{Page: 2, Limit: 10, Sort: "-createdAt"}.Clamp()
	_, total, err := repo.List(context.Background(), Filter{CompanyID: "c1"}, p)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 11 {
		t.Fatalf("total = %d", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
