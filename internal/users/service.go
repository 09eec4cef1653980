package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/auth"
	"github.com/azim128/jobify/internal/shared/query"
)

// Service contains business logic for account management.
type Service struct {
	Repo   Repo
	Tokens *auth.TokenIssuer
}

// BootstrapInput creates the first super-admin.
type BootstrapInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// BootstrapSuperAdmin creates the one-time super-admin account. It fails
// with a conflict once any user exists; the repo's uniqueness backstop
// covers the window between the check and the insert.
func (s *Service) BootstrapSuperAdmin(ctx context.Context, in BootstrapInput) (User, string, error) {
	if err := requireFields(
		field{"name", in.Name},
		field{"email", in.Email},
		field{"password", in.Password},
	); err != nil {
		return User{}, "", err
	}

	count, err := s.Repo.Count(ctx)
	if err != nil {
		return User{}, "", err
	}
	if count > 0 {
		return User{}, "", apperr.Conflict("Super admin can only be created when no users exist")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, "", err
	}

	user := User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Role:         RoleSuperAdmin,
		Permissions:  AllPermissions(),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrSuperAdminExists) || errors.Is(err, ErrEmailTaken) {
			return User{}, "", apperr.Conflict("Super admin can only be created when no users exist")
		}
		return User{}, "", err
	}

	token, err := s.Tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// CreateAdminInput creates a subordinate admin account.
type CreateAdminInput struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	Permissions Permissions `json:"permissions"`
}

// CreateAdmin creates an admin. The manageAdmins flag is forced to false
// regardless of the requested value.
func (s *Service) CreateAdmin(ctx context.Context, in CreateAdminInput) (User, error) {
	if err := requireFields(
		field{"name", in.Name},
		field{"email", in.Email},
		field{"password", in.Password},
	); err != nil {
		return User{}, err
	}

	email := normalizeEmail(in.Email)
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return User{}, apperr.Conflict("Email already exists")
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}

	perms := in.Permissions
	perms.ManageAdmins = false

	user := User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         RoleAdmin,
		Permissions:  perms,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return User{}, apperr.Conflict("Email already exists")
		}
		return User{}, err
	}
	return user, nil
}

// ListAdmins returns admin accounts, newest first by default.
func (s *Service) ListAdmins(ctx context.Context, p query.Page) ([]User, int, error) {
	return s.Repo.ListAdmins(ctx, p)
}

// GetAdmin returns an admin by id. Super-admin accounts are invisible to
// the admin-management path.
func (s *Service) GetAdmin(ctx context.Context, id string) (User, error) {
	return s.getAdmin(ctx, id)
}

// UpdateAdminInput is a partial update; nil fields keep their value. Role is
// immutable post-creation and has no input field.
type UpdateAdminInput struct {
	Name        *string      `json:"name"`
	Email       *string      `json:"email"`
	Password    *string      `json:"password"`
	Permissions *Permissions `json:"permissions"`
	IsActive    *bool        `json:"isActive"`
}

// UpdateAdmin applies a partial update to an admin account.
func (s *Service) UpdateAdmin(ctx context.Context, id string, in UpdateAdminInput) (User, error) {
	user, err := s.getAdmin(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return User{}, apperr.Validation("Please provide name")
		}
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return User{}, apperr.Validation("Please provide email")
		}
		if email != user.Email {
			if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
				return User{}, apperr.Conflict("Email already exists")
			} else if !errors.Is(err, ErrNotFound) {
				return User{}, err
			}
			user.Email = email
		}
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return User{}, err
		}
		user.PasswordHash = hash
	}
	if in.Permissions != nil {
		perms := *in.Permissions
		perms.ManageAdmins = false
		user.Permissions = perms
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return User{}, apperr.Conflict("Email already exists")
		}
		return User{}, err
	}
	return user, nil
}

// DeleteAdmin removes an admin account. Super-admins cannot be deleted
// through this path.
func (s *Service) DeleteAdmin(ctx context.Context, id string) error {
	if _, err := s.getAdmin(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Admin not found")
		}
		return err
	}
	return nil
}

func (s *Service) getAdmin(ctx context.Context, id string) (User, error) {
	user, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, apperr.NotFound("Admin not found")
		}
		return User{}, err
	}
	if user.Role != RoleAdmin {
		return User{}, apperr.NotFound("Admin not found")
	}
	return user, nil
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return apperr.Validationf("Please provide %s", f.name)
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
