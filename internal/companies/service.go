package companies

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/query"
	"github.com/azim128/jobify/internal/shared/telemetry"
	"github.com/azim128/jobify/internal/uploads"
	"github.com/azim128/jobify/internal/users"
)

// Service contains company business logic.
type Service struct {
	Repo        Repo
	Users       users.Repo
	Files       *uploads.Service
	FileRecords uploads.Repo
}

// Attachment is an optional file sent along with a create or update.
type Attachment struct {
	FileName  string
	SizeBytes int64
	Body      io.Reader
}

// CreateInput creates a company.
type CreateInput struct {
	Name        string
	Description string
	Location    string
	Industry    string
	Logo        *Attachment
}

// Create creates the company, then attaches the logo best-effort: a failed
// logo upload is logged and the create still succeeds without a logo. The
// standalone upload endpoint can attach it later.
func (s *Service) Create(ctx context.Context, in CreateInput, actor users.User) (View, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Location) == "" || strings.TrimSpace(in.Industry) == "" {
		return View{}, apperr.Validation("Please provide all required fields")
	}

	name := strings.TrimSpace(in.Name)
	if _, err := s.Repo.GetByName(ctx, name); err == nil {
		return View{}, apperr.Conflict("Company name already exists")
	} else if !errors.Is(err, ErrNotFound) {
		return View{}, err
	}

	company := Company{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		Location:    in.Location,
		Industry:    in.Industry,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, company); err != nil {
		if errors.Is(err, ErrNameTaken) {
			return View{}, apperr.Conflict("Company name already exists")
		}
		return View{}, err
	}

	if in.Logo != nil {
		if url, ok := s.attachLogo(ctx, company.ID, *in.Logo, actor.ID); ok {
			company.Logo = url
			if err := s.Repo.Update(ctx, company); err != nil {
				telemetry.Warn("company.logo_url_update_failed", map[string]any{
					"company_id": company.ID,
					"error":      err.Error(),
				})
				company.Logo = ""
			}
		}
	}
	return s.view(ctx, company, actor), nil
}

// List returns companies, newest first by default.
func (s *Service) List(ctx context.Context, p query.Page) ([]View, int, error) {
	list, total, err := s.Repo.List(ctx, p)
	if err != nil {
		return nil, 0, err
	}
	views := make([]View, 0, len(list))
	for _, company := range list {
		views = append(views, s.view(ctx, company, users.User{}))
	}
	return views, total, nil
}

// GetByID returns a single company with its creator resolved.
func (s *Service) GetByID(ctx context.Context, id string) (View, error) {
	company, err := s.get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(ctx, company, users.User{}), nil
}

// UpdateInput is a partial update; nil fields keep their value.
type UpdateInput struct {
	Name        *string
	Description *string
	Location    *string
	Industry    *string
	Logo        *Attachment
}

// Update applies a partial update. A new logo is attached best-effort like on
// create.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput, actor users.User) (View, error) {
	company, err := s.get(ctx, id)
	if err != nil {
		return View{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return View{}, apperr.Validation("Please provide all required fields")
		}
		if !strings.EqualFold(name, company.Name) {
			if _, err := s.Repo.GetByName(ctx, name); err == nil {
				return View{}, apperr.Conflict("Company name already exists")
			} else if !errors.Is(err, ErrNotFound) {
				return View{}, err
			}
		}
		company.Name = name
	}
	if in.Description != nil {
		company.Description = *in.Description
	}
	if in.Location != nil {
		company.Location = *in.Location
	}
	if in.Industry != nil {
		company.Industry = *in.Industry
	}
	if in.Logo != nil {
		if url, ok := s.attachLogo(ctx, company.ID, *in.Logo, actor.ID); ok {
			company.Logo = url
		}
	}

	if err := s.Repo.Update(ctx, company); err != nil {
		if errors.Is(err, ErrNameTaken) {
			return View{}, apperr.Conflict("Company name already exists")
		}
		return View{}, err
	}
	return s.view(ctx, company, users.User{}), nil
}

// Delete removes the company together with its file-upload records.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.FileRecords.DeleteByCompany(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Company not found")
		}
		return err
	}
	return nil
}

func (s *Service) get(ctx context.Context, id string) (Company, error) {
	company, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Company{}, apperr.NotFound("Company not found")
		}
		return Company{}, err
	}
	return company, nil
}

// attachLogo stores the logo and returns its URL. Failures are logged and
// reported as ok=false; the caller proceeds without a logo.
func (s *Service) attachLogo(ctx context.Context, companyID string, logo Attachment, actorID string) (string, bool) {
	rec, err := s.Files.Attach(ctx, uploads.AttachInput{
		FileType:   uploads.TypeLogo,
		FileName:   logo.FileName,
		SizeBytes:  logo.SizeBytes,
		Body:       logo.Body,
		UploadedBy: actorID,
		CompanyID:  companyID,
	})
	if err != nil {
		telemetry.Warn("company.logo_upload_failed", map[string]any{
			"company_id": companyID,
			"error":      err.Error(),
		})
		return "", false
	}
	return rec.URL, true
}

// view resolves the creator reference. The actor is used as a lookup
// shortcut when it is the creator.
func (s *Service) view(ctx context.Context, company Company, actor users.User) View {
	v := View{Company: company}
	if actor.ID == company.CreatedBy {
		v.CreatedBy = users.RefOf(actor)
		return v
	}
	if creator, err := s.Users.GetByID(ctx, company.CreatedBy); err == nil {
		v.CreatedBy = users.RefOf(creator)
	} else {
		v.CreatedBy = users.Ref{ID: company.CreatedBy}
	}
	return v
}
