package users

import "time"

// Role is the account role. Super-admins hold every capability implicitly.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// Capability is a named permission flag on an admin account. The set is
// closed: authorization checkpoints handle every variant exhaustively and
// unknown names never pass a check.
type Capability string

const (
	CapManageAdmins    Capability = "manageAdmins"
	CapManageCompanies Capability = "manageCompanies"
	CapManageJobs      Capability = "manageJobs"
	CapUploadFiles     Capability = "uploadFiles"
	CapUseAI           Capability = "useAI"
)

// Permissions is the per-admin capability set. Unknown keys in request
// bodies are dropped by JSON unmarshaling into this closed struct.
type Permissions struct {
	ManageAdmins    bool `json:"manageAdmins"`
	ManageCompanies bool `json:"manageCompanies"`
	ManageJobs      bool `json:"manageJobs"`
	UploadFiles     bool `json:"uploadFiles"`
	UseAI           bool `json:"useAI"`
}

// AllPermissions returns the full capability set granted to super-admins.
func AllPermissions() Permissions {
	return Permissions{
		ManageAdmins:    true,
		ManageCompanies: true,
		ManageJobs:      true,
		UploadFiles:     true,
		UseAI:           true,
	}
}

// Has reports whether the capability flag is set.
func (p Permissions) Has(cap Capability) bool {
	switch cap {
	case CapManageAdmins:
		return p.ManageAdmins
	case CapManageCompanies:
		return p.ManageCompanies
	case CapManageJobs:
		return p.ManageJobs
	case CapUploadFiles:
		return p.UploadFiles
	case CapUseAI:
		return p.UseAI
	default:
		return false
	}
}

// User is an administrative account. The password hash and reset fields are
// never serialized to clients.
type User struct {
	ID                   string      `json:"id"`
	Name                 string      `json:"name"`
	Email                string      `json:"email"`
	PasswordHash         string      `json:"-"`
	Role                 Role        `json:"role"`
	Permissions          Permissions `json:"permissions"`
	IsActive             bool        `json:"isActive"`
	PasswordResetToken   string      `json:"-"`
	PasswordResetExpires *time.Time  `json:"-"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

// HasCapability reports whether the user may exercise the capability.
// Super-admins bypass the flag check entirely.
func (u User) HasCapability(cap Capability) bool {
	if u.Role == RoleSuperAdmin {
		return true
	}
	return u.Permissions.Has(cap)
}

// Ref is the read projection of a user embedded in other resources.
type Ref struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RefOf builds the read projection for a user.
func RefOf(u User) Ref {
	return Ref{ID: u.ID, Name: u.Name, Email: u.Email}
}
