package companies

import (
	"time"

	"github.com/azim128/jobify/internal/users"
)

// Company is an employer profile. Logo is attached best-effort after
// creation and may be empty.
type Company struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location"`
	Industry    string    `json:"industry"`
	Logo        string    `json:"logo,omitempty"`
	CreatedBy   string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// View is the read projection with the creator resolved.
type View struct {
	Company
	CreatedBy users.Ref `json:"createdBy"`
}

// Ref is the company projection embedded in job reads.
type Ref struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Logo     string `json:"logo,omitempty"`
}

// RefOf builds the embedded projection.
func RefOf(c Company) Ref {
	return Ref{ID: c.ID, Name: c.Name, Location: c.Location, Logo: c.Logo}
}
