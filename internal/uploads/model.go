package uploads

import "time"

// FileType classifies an upload: a company logo or a job description PDF.
type FileType string

const (
	TypeLogo           FileType = "logo"
	TypeJobDescription FileType = "jobDescription"
)

// Record is a stored file-upload entry tying an object-store URL to the
// uploading user and, optionally, the owning company or job.
type Record struct {
	ID         string    `json:"id"`
	FileType   FileType  `json:"fileType"`
	URL        string    `json:"url"`
	UploadedBy string    `json:"uploadedBy"`
	CompanyID  string    `json:"companyId,omitempty"`
	JobID      string    `json:"jobId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
