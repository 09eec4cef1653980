package ai

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/server/respond"
)

// Handler exposes job description generation.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts generation endpoints. The caller gates the group
// with Authenticate and RequireCapability(CapUseAI).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/generate", h.generateJobDescription)
}

func (h *Handler) generateJobDescription(c *gin.Context) {
	var in GenerateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.FromError(c, apperr.Validation("Invalid request body"))
		return
	}

	result, err := h.Svc.Generate(c.Request.Context(), in)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "Job description generated successfully", result)
}
