package activity

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/query"
	"github.com/azim128/jobify/internal/shared/server/respond"
)

// Handler exposes the audit-log read endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts the read endpoints. The caller gates the group with
// Authenticate and RequireRole(RoleSuperAdmin).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:resourceId", h.listByResource)
}

func (h *Handler) list(c *gin.Context) {
	p := query.Parse(c, "-createdAt", "createdAt")

	f := Filter{
		Resource: c.Query("resource"),
		Action:   Action(c.Query("action")),
	}
	var err error
	if f.Start, err = parseDate(c.Query("startDate"), false); err != nil {
		respond.FromError(c, apperr.Validation("Invalid startDate"))
		return
	}
	if f.End, err = parseDate(c.Query("endDate"), true); err != nil {
		respond.FromError(c, apperr.Validation("Invalid endDate"))
		return
	}

	views, total, err := h.Svc.List(c.Request.Context(), f, p)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "Activity logs retrieved successfully", query.NewResult(views, p, total))
}

func (h *Handler) listByResource(c *gin.Context) {
	p := query.Parse(c, "-createdAt", "createdAt")

	views, total, err := h.Svc.ListByResource(c.Request.Context(), c.Param("resourceId"), p)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "Resource activity logs retrieved successfully", query.NewResult(views, p, total))
}

// parseDate accepts RFC 3339 timestamps or bare dates. A bare end date is
// pushed to the end of that day so the range is inclusive.
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
