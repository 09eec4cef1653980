package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/storage/object"
	"github.com/azim128/jobify/internal/shared/util"
)

// MaxFileSize is the upload size cap.
const MaxFileSize = 5 << 20

var logoExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// Folder returns the object-store folder for a file type.
func Folder(t FileType) string {
	if t == TypeJobDescription {
		return "job-descriptions"
	}
	return "company-logos"
}

// ValidateAttachment checks the file name and declared size against the
// per-type rules before any bytes are read.
func ValidateAttachment(t FileType, fileName string, sizeBytes int64) error {
	if sizeBytes > MaxFileSize {
		return apperr.Validation("File too large. Maximum size is 5MB")
	}
	ext := strings.ToLower(path.Ext(fileName))
	switch t {
	case TypeLogo:
		if !logoExtensions[ext] {
			return apperr.Validation("Only image files are allowed for logo!")
		}
	case TypeJobDescription:
		if ext != ".pdf" {
			return apperr.Validation("Only PDF files are allowed for job descriptions!")
		}
	default:
		return apperr.Validation("Invalid field name")
	}
	return nil
}

// AttachInput describes a file being attached to a company or job, or
// uploaded standalone.
type AttachInput struct {
	FileType   FileType
	FileName   string
	SizeBytes  int64
	Body       io.Reader
	UploadedBy string
	CompanyID  string
	JobID      string
}

// Service stores upload payloads and their records.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// Attach validates and stores the payload, then persists the upload record.
func (s *Service) Attach(ctx context.Context, in AttachInput) (Record, error) {
	if err := ValidateAttachment(in.FileType, in.FileName, in.SizeBytes); err != nil {
		return Record{}, err
	}

	name, err := util.SanitizeFileName(in.FileName)
	if err != nil {
		return Record{}, apperr.Validation("Invalid file name")
	}
	name = fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name)

	url, _, _, err := s.Store.Save(ctx, Folder(in.FileType), name, in.Body)
	if err != nil {
		return Record{}, apperr.Wrap(apperr.KindUpstream, "File upload failed", err)
	}

	rec := Record{
		ID:         uuid.NewString(),
		FileType:   in.FileType,
		URL:        url,
		UploadedBy: in.UploadedBy,
		CompanyID:  in.CompanyID,
		JobID:      in.JobID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("create file record: %w", err)
	}
	return rec, nil
}
