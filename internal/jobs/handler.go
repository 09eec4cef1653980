package jobs

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/query"
	"github.com/azim128/jobify/internal/shared/server/middleware"
	"github.com/azim128/jobify/internal/shared/server/respond"
	"github.com/azim128/jobify/internal/uploads"
	"github.com/azim128/jobify/internal/users"
)

// Handler exposes job CRUD. Create and update accept either a JSON body or
// multipart form data with an optional "descriptionFile" PDF; in the form
// encoding salaryRange and the list fields arrive as JSON strings.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts job routes. The group must already be authenticated;
// mutations additionally require manageJobs.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := users.RequireCapability(users.CapManageJobs)

	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.POST("", manage, h.create)
	rg.PATCH("/:id", manage, h.update)
	rg.DELETE("/:id", manage, h.remove)
}

// jobForm is the wire shape shared by create and update. Dual-typed fields
// stay raw until parsed.
type jobForm struct {
	Title            *string         `json:"title"`
	Description      *string         `json:"description"`
	Requirements     json.RawMessage `json:"requirements"`
	Responsibilities json.RawMessage `json:"responsibilities"`
	SalaryRange      json.RawMessage `json:"salaryRange"`
	Location         *string         `json:"location"`
	Type             *string         `json:"type"`
	Level            *string         `json:"level"`
	CompanyID        *string         `json:"companyId"`
}

func (h *Handler) create(c *gin.Context) {
	actor, ok := users.FromContext(c)
	if !ok {
		respond.FromError(c, apperr.Authentication("Authentication invalid"))
		return
	}

	form, file, closeFile, err := readJobForm(c)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	if closeFile != nil {
		defer closeFile()
	}

	salary, err := ParseSalaryRange(form.SalaryRange)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	reqs, err := ParseStringList(form.Requirements, "requirements")
	if err != nil {
		respond.FromError(c, err)
		return
	}
	resps, err := ParseStringList(form.Responsibilities, "responsibilities")
	if err != nil {
		respond.FromError(c, err)
		return
	}

	in := CreateInput{
		Requirements:     reqs,
		Responsibilities: resps,
		Salary:           salary,
		DescriptionFile:  file,
	}
	if form.Title != nil {
		in.Title = *form.Title
	}
	if form.Description != nil {
		in.Description = *form.Description
	}
	if form.Location != nil {
		in.Location = *form.Location
	}
	if form.Type != nil {
		in.Type = *form.Type
	}
	if form.Level != nil {
		in.Level = *form.Level
	}
	if form.CompanyID != nil {
		in.CompanyID = *form.CompanyID
	}

	view, err := h.Svc.Create(c.Request.Context(), in, actor)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	middleware.SetAuditResource(c, view.ID, view.Title)
	respond.Success(c, http.StatusCreated, "Job created successfully", gin.H{"job": view})
}

func (h *Handler) list(c *gin.Context) {
	p := query.Parse(c, "-createdAt", "createdAt", "title")
	f := Filter{
		Search:    c.Query("search"),
		CompanyID: c.Query("company"),
		Type:      c.Query("type"),
		Level:     c.Query("level"),
		Location:  c.Query("location"),
	}

	views, total, err := h.Svc.List(c.Request.Context(), f, p)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "Jobs retrieved successfully", query.NewResult(views, p, total))
}

func (h *Handler) get(c *gin.Context) {
	view, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "Job retrieved successfully", gin.H{"job": view})
}

func (h *Handler) update(c *gin.Context) {
	actor, ok := users.FromContext(c)
	if !ok {
		respond.FromError(c, apperr.Authentication("Authentication invalid"))
		return
	}

	form, file, closeFile, err := readJobForm(c)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	if closeFile != nil {
		defer closeFile()
	}

	in := UpdateInput{
		Title:           form.Title,
		Description:     form.Description,
		Location:        form.Location,
		Type:            form.Type,
		Level:           form.Level,
		DescriptionFile: file,
	}
	if form.SalaryRange != nil {
		salary, err := ParseSalaryRange(form.SalaryRange)
		if err != nil {
			respond.FromError(c, err)
			return
		}
		in.Salary = salary
	}
	if form.Requirements != nil {
		reqs, err := ParseStringList(form.Requirements, "requirements")
		if err != nil {
			respond.FromError(c, err)
			return
		}
		in.Requirements = reqs
	}
	if form.Responsibilities != nil {
		resps, err := ParseStringList(form.Responsibilities, "responsibilities")
		if err != nil {
			respond.FromError(c, err)
			return
		}
		in.Responsibilities = resps
	}

	view, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in, actor)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	middleware.SetAuditResource(c, view.ID, view.Title)
	respond.Success(c, http.StatusOK, "Job updated successfully", gin.H{"job": view})
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "Job deleted successfully", nil)
}

// readJobForm decodes the request in either encoding. A provided
// descriptionFile is validated up front so a bad file fails the request
// before any resource is created.
func readJobForm(c *gin.Context) (jobForm, *Attachment, func(), error) {
	var form jobForm

	if strings.HasPrefix(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(&form); err != nil {
			return form, nil, nil, apperr.Validation("Invalid request body")
		}
		return form, nil, nil, nil
	}

	setString := func(dst **string, field string) {
		if v, ok := c.GetPostForm(field); ok {
			value := v
			*dst = &value
		}
	}
	setString(&form.Title, "title")
	setString(&form.Description, "description")
	setString(&form.Location, "location")
	setString(&form.Type, "type")
	setString(&form.Level, "level")
	setString(&form.CompanyID, "companyId")
	if v, ok := c.GetPostForm("salaryRange"); ok {
		form.SalaryRange = json.RawMessage(v)
	}
	if v, ok := c.GetPostForm("requirements"); ok {
		form.Requirements = json.RawMessage(v)
	}
	if v, ok := c.GetPostForm("responsibilities"); ok {
		form.Responsibilities = json.RawMessage(v)
	}

	header, err := c.FormFile("descriptionFile")
	if err != nil {
		return form, nil, nil, nil // no file sent
	}
	if err := uploads.ValidateAttachment(uploads.TypeJobDescription, header.Filename, header.Size); err != nil {
		return form, nil, nil, err
	}
	f, err := header.Open()
	if err != nil {
		return form, nil, nil, err
	}
	att := &Attachment{FileName: header.Filename, SizeBytes: header.Size, Body: f}
	return form, att, func() { _ = f.Close() }, nil
}
