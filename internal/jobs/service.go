package jobs

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/azim128/jobify/internal/companies"
	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/query"
	"github.com/azim128/jobify/internal/shared/telemetry"
	"github.com/azim128/jobify/internal/uploads"
	"github.com/azim128/jobify/internal/users"
)

// Service contains job business logic.
type Service struct {
	Repo        Repo
	Companies   companies.Repo
	Users       users.Repo
	Files       *uploads.Service
	FileRecords uploads.Repo
}

// Attachment is an optional job-description PDF sent with a create or update.
type Attachment struct {
	FileName  string
	SizeBytes int64
	Body      io.Reader
}

// CreateInput creates a job. Salary and list fields arrive already parsed
// from their dual JSON encodings.
type CreateInput struct {
	Title            string
	Description      string
	Requirements     []string
	Responsibilities []string
	Salary           *SalaryRange
	Location         string
	Type             string
	Level            string
	CompanyID        string
	DescriptionFile  *Attachment
}

// Create creates the job, then attaches the description file best-effort: a
// failed upload is logged and the create still succeeds.
func (s *Service) Create(ctx context.Context, in CreateInput, actor users.User) (View, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.CompanyID) == "" || in.Salary == nil {
		return View{}, apperr.Validation("Please provide all required fields")
	}
	if err := ValidateSalaryRange(in.Salary); err != nil {
		return View{}, err
	}

	company, err := s.Companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		if errors.Is(err, companies.ErrNotFound) {
			return View{}, apperr.NotFound("Company not found")
		}
		return View{}, err
	}

	job := Job{
		ID:               uuid.NewString(),
		Title:            strings.TrimSpace(in.Title),
		Description:      in.Description,
		Requirements:     emptyIfNil(in.Requirements),
		Responsibilities: emptyIfNil(in.Responsibilities),
		SalaryRange:      *in.Salary,
		Location:         in.Location,
		Type:             in.Type,
		Level:            in.Level,
		CompanyID:        company.ID,
		CreatedBy:        actor.ID,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return View{}, err
	}

	if in.DescriptionFile != nil {
		if url, ok := s.attachFile(ctx, job.ID, *in.DescriptionFile, actor.ID); ok {
			job.DescriptionFile = url
			if err := s.Repo.Update(ctx, job); err != nil {
				telemetry.Warn("job.description_file_url_update_failed", map[string]any{
					"job_id": job.ID,
					"error":  err.Error(),
				})
				job.DescriptionFile = ""
			}
		}
	}
	return s.view(ctx, job), nil
}

// List returns jobs matching the filter, newest first by default.
func (s *Service) List(ctx context.Context, f Filter, p query.Page) ([]View, int, error) {
	list, total, err := s.Repo.List(ctx, f, p)
	if err != nil {
		return nil, 0, err
	}
	views := make([]View, 0, len(list))
	for _, job := range list {
		views = append(views, s.view(ctx, job))
	}
	return views, total, nil
}

// GetByID returns a single job with company and creator resolved.
func (s *Service) GetByID(ctx context.Context, id string) (View, error) {
	job, err := s.get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(ctx, job), nil
}

// UpdateInput is a partial update; nil fields keep their value. The owning
// company is immutable.
type UpdateInput struct {
	Title            *string
	Description      *string
	Requirements     []string
	Responsibilities []string
	Salary           *SalaryRange
	Location         *string
	Type             *string
	Level            *string
	DescriptionFile  *Attachment
}

// Update applies a partial update. A new description file is attached
// best-effort like on create.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput, actor users.User) (View, error) {
	job, err := s.get(ctx, id)
	if err != nil {
		return View{}, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return View{}, apperr.Validation("Please provide all required fields")
		}
		job.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.Requirements != nil {
		job.Requirements = in.Requirements
	}
	if in.Responsibilities != nil {
		job.Responsibilities = in.Responsibilities
	}
	if in.Salary != nil {
		if err := ValidateSalaryRange(in.Salary); err != nil {
			return View{}, err
		}
		job.SalaryRange = *in.Salary
	}
	if in.Location != nil {
		job.Location = *in.Location
	}
	if in.Type != nil {
		job.Type = *in.Type
	}
	if in.Level != nil {
		job.Level = *in.Level
	}
	if in.DescriptionFile != nil {
		if url, ok := s.attachFile(ctx, job.ID, *in.DescriptionFile, actor.ID); ok {
			job.DescriptionFile = url
		}
	}

	if err := s.Repo.Update(ctx, job); err != nil {
		if errors.Is(err, ErrNotFound) {
			return View{}, apperr.NotFound("Job not found")
		}
		return View{}, err
	}
	return s.view(ctx, job), nil
}

// Delete removes the job together with its file-upload records.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.FileRecords.DeleteByJob(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Job not found")
		}
		return err
	}
	return nil
}

func (s *Service) get(ctx context.Context, id string) (Job, error) {
	job, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Job{}, apperr.NotFound("Job not found")
		}
		return Job{}, err
	}
	return job, nil
}

func (s *Service) attachFile(ctx context.Context, jobID string, file Attachment, actorID string) (string, bool) {
	rec, err := s.Files.Attach(ctx, uploads.AttachInput{
		FileType:   uploads.TypeJobDescription,
		FileName:   file.FileName,
		SizeBytes:  file.SizeBytes,
		Body:       file.Body,
		UploadedBy: actorID,
		JobID:      jobID,
	})
	if err != nil {
		telemetry.Warn("job.description_file_upload_failed", map[string]any{
			"job_id": jobID,
			"error":  err.Error(),
		})
		return "", false
	}
	return rec.URL, true
}

func (s *Service) view(ctx context.Context, job Job) View {
	v := View{Job: job}
	if company, err := s.Companies.GetByID(ctx, job.CompanyID); err == nil {
		v.Company = companies.RefOf(company)
	} else {
		v.Company = companies.Ref{ID: job.CompanyID}
	}
	if creator, err := s.Users.GetByID(ctx, job.CreatedBy); err == nil {
		v.CreatedBy = users.RefOf(creator)
	} else {
		v.CreatedBy = users.Ref{ID: job.CreatedBy}
	}
	return v
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
