package jobs

import (
	"time"

	"github.com/azim128/jobify/internal/companies"
	"github.com/azim128/jobify/internal/users"
)

// SalaryRange is an inclusive min/max pair in whole currency units.
type SalaryRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Job is a posting owned by a company.
type Job struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Requirements     []string    `json:"requirements"`
	Responsibilities []string    `json:"responsibilities"`
	SalaryRange      SalaryRange `json:"salaryRange"`
	Location         string      `json:"location,omitempty"`
	Type             string      `json:"type,omitempty"`
	Level            string      `json:"level,omitempty"`
	CompanyID        string      `json:"-"`
	CreatedBy        string      `json:"-"`
	DescriptionFile  string      `json:"descriptionFile,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// View is the read projection with company and creator resolved.
type View struct {
	Job
	Company   companies.Ref `json:"company"`
	CreatedBy users.Ref     `json:"createdBy"`
}
