package uploads

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/server/respond"
	"github.com/azim128/jobify/internal/users"
)

// Handler exposes the standalone upload endpoint, used to attach files to an
// existing company or job after the fact.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	user, ok := users.FromContext(c)
	if !ok {
		respond.FromError(c, apperr.Authentication("Authentication invalid"))
		return
	}

	fileType := FileType(c.PostForm("fileType"))
	if fileType != TypeLogo && fileType != TypeJobDescription {
		respond.FromError(c, apperr.Validation("Invalid field name"))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		respond.FromError(c, apperr.Validation("Please provide file"))
		return
	}

	f, err := header.Open()
	if err != nil {
		respond.FromError(c, err)
		return
	}
	defer f.Close()

	rec, err := h.Svc.Attach(c.Request.Context(), AttachInput{
		FileType:   fileType,
		FileName:   header.Filename,
		SizeBytes:  header.Size,
		Body:       f,
		UploadedBy: user.ID,
		CompanyID:  c.PostForm("companyId"),
		JobID:      c.PostForm("jobId"),
	})
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusCreated, "File uploaded successfully", gin.H{"file": rec})
}
