package uploads

import (
	"context"
	"strings"
	"testing"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/storage/object/local"
)

func TestValidateAttachment(t *testing.T) {
	cases := []struct {
		name     string
		fileType FileType
		fileName string
		size     int64
		wantErr  string
	}{
		{"logo png", TypeLogo, "logo.png", 1024, ""},
		{"logo jpeg", TypeLogo, "photo.JPEG", 1024, ""},
		{"logo pdf rejected", TypeLogo, "logo.pdf", 1024, "Only image files are allowed for logo!"},
		{"description pdf", TypeJobDescription, "jd.pdf", 1024, ""},
		{"description png rejected", TypeJobDescription, "jd.png", 1024, "Only PDF files are allowed for job descriptions!"},
		{"too large", TypeLogo, "logo.png", MaxFileSize + 1, "File too large. Maximum size is 5MB"},
		{"unknown type", FileType("resume"), "cv.pdf", 1024, "Invalid field name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAttachment(tc.fileType, tc.fileName, tc.size)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("err = %v, want nil", err)
				}
				return
			}
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Fatalf("err = %v, want validation", err)
			}
			if got := apperr.Message(err); got != tc.wantErr {
				t.Fatalf("message = %q, want %q", got, tc.wantErr)
			}
		})
	}
}

func TestAttachStoresFileAndRecord(t *testing.T) {
	store := local.New(t.TempDir())
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Store: store}

	rec, err := svc.Attach(context.Background(), AttachInput{
		FileType:   TypeLogo,
		FileName:   "acme logo.png",
		SizeBytes:  4,
		Body:       strings.NewReader("data"),
		UploadedBy: "user-1",
		CompanyID:  "company-1",
	})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if rec.URL == "" {
		t.Fatal("empty url")
	}
	if rec.CompanyID != "company-1" || rec.FileType != TypeLogo {
		t.Fatalf("record = %+v", rec)
	}

	got, err := repo.ListByCompany(context.Background(), "company-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != rec.ID {
		t.Fatalf("records = %+v", got)
	}
}

func TestAttachRejectsInvalidFileBeforeStore(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Store: nil}

	_, err := svc.Attach(context.Background(), AttachInput{
		FileType: TypeLogo,
		FileName: "notes.txt",
		Body:     strings.NewReader("x"),
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}
