package companies

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/query"
	"github.com/azim128/jobify/internal/shared/server/middleware"
	"github.com/azim128/jobify/internal/shared/server/respond"
	"github.com/azim128/jobify/internal/uploads"
	"github.com/azim128/jobify/internal/users"
)

// Handler exposes company CRUD. Create and update accept multipart form data
// with an optional "logo" file.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts company routes. The group must already be
// authenticated; mutations additionally require manageCompanies.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := users.RequireCapability(users.CapManageCompanies)

	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.POST("", manage, h.create)
	rg.PATCH("/:id", manage, h.update)
	rg.DELETE("/:id", manage, h.remove)
}

func (h *Handler) create(c *gin.Context) {
	actor, ok := users.FromContext(c)
	if !ok {
		respond.FromError(c, apperr.Authentication("Authentication invalid"))
		return
	}

	in := CreateInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Location:    c.PostForm("location"),
		Industry:    c.PostForm("industry"),
	}

	logo, closeLogo, err := formAttachment(c, "logo")
	if err != nil {
		respond.FromError(c, err)
		return
	}
	if closeLogo != nil {
		defer closeLogo()
	}
	in.Logo = logo

	view, err := h.Svc.Create(c.Request.Context(), in, actor)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	middleware.SetAuditResource(c, view.ID, view.Name)
	respond.Success(c, http.StatusCreated, "Company created successfully", gin.H{"company": view})
}

func (h *Handler) list(c *gin.Context) {
	p := query.Parse(c, "-createdAt", "createdAt", "name")

	views, total, err := h.Svc.List(c.Request.Context(), p)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "Companies retrieved successfully", query.NewResult(views, p, total))
}

func (h *Handler) get(c *gin.Context) {
	view, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "Company retrieved successfully", gin.H{"company": view})
}

func (h *Handler) update(c *gin.Context) {
	actor, ok := users.FromContext(c)
	if !ok {
		respond.FromError(c, apperr.Authentication("Authentication invalid"))
		return
	}

	var in UpdateInput
	if v, ok := c.GetPostForm("name"); ok {
		in.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		in.Description = &v
	}
	if v, ok := c.GetPostForm("location"); ok {
		in.Location = &v
	}
	if v, ok := c.GetPostForm("industry"); ok {
		in.Industry = &v
	}

	logo, closeLogo, err := formAttachment(c, "logo")
	if err != nil {
		respond.FromError(c, err)
		return
	}
	if closeLogo != nil {
		defer closeLogo()
	}
	in.Logo = logo

	view, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in, actor)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	middleware.SetAuditResource(c, view.ID, view.Name)
	respond.Success(c, http.StatusOK, "Company updated successfully", gin.H{"company": view})
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "Company deleted successfully", nil)
}

// formAttachment pulls an optional file out of the multipart form and
// validates it up front, so an invalid file fails the request before any
// resource is created.
func formAttachment(c *gin.Context, field string) (*Attachment, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, nil // no file sent
	}
	fileType := uploads.TypeLogo
	if field == "descriptionFile" {
		fileType = uploads.TypeJobDescription
	}
	if err := uploads.ValidateAttachment(fileType, header.Filename, header.Size); err != nil {
		return nil, nil, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &Attachment{
		FileName:  header.Filename,
		SizeBytes: header.Size,
		Body:      f,
	}, func() { _ = f.Close() }, nil
}
