package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/query"
	"github.com/azim128/jobify/internal/shared/server/middleware"
	"github.com/azim128/jobify/internal/shared/server/respond"
)

// Handler exposes super-admin bootstrap and admin management.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterSetupRoutes mounts the unauthenticated bootstrap endpoint. It only
// succeeds once, while no users exist.
func (h *Handler) RegisterSetupRoutes(rg *gin.RouterGroup) {
	rg.POST("/create-first-super-admin", h.bootstrapSuperAdmin)
}

// RegisterRoutes mounts admin management. The caller gates the group with
// Authenticate and RequireRole(RoleSuperAdmin).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/create-admin", h.createAdmin)
	rg.GET("/admins", h.listAdmins)
	rg.GET("/admins/:id", h.getAdmin)
	rg.PATCH("/admins/:id", h.updateAdmin)
	rg.DELETE("/admins/:id", h.deleteAdmin)
}

func (h *Handler) bootstrapSuperAdmin(c *gin.Context) {
	var in BootstrapInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.FromError(c, apperr.Validation("Invalid request body"))
		return
	}

	user, token, err := h.Svc.BootstrapSuperAdmin(c.Request.Context(), in)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	middleware.SetAuditResource(c, user.ID, user.Name)
	respond.Success(c, http.StatusCreated, "Super admin created successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *Handler) createAdmin(c *gin.Context) {
	var in CreateAdminInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.FromError(c, apperr.Validation("Invalid request body"))
		return
	}

	user, err := h.Svc.CreateAdmin(c.Request.Context(), in)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	middleware.SetAuditResource(c, user.ID, user.Name)
	respond.Success(c, http.StatusCreated, "Admin created successfully", gin.H{"admin": user})
}

func (h *Handler) listAdmins(c *gin.Context) {
	p := query.Parse(c, "-createdAt", "createdAt", "name", "email")

	admins, total, err := h.Svc.ListAdmins(c.Request.Context(), p)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "Admins retrieved successfully", query.NewResult(admins, p, total))
}

func (h *Handler) getAdmin(c *gin.Context) {
	user, err := h.Svc.GetAdmin(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "Admin retrieved successfully", gin.H{"admin": user})
}

func (h *Handler) updateAdmin(c *gin.Context) {
	var in UpdateAdminInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.FromError(c, apperr.Validation("Invalid request body"))
		return
	}

	user, err := h.Svc.UpdateAdmin(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	middleware.SetAuditResource(c, user.ID, user.Name)
	respond.Success(c, http.StatusOK, "Admin updated successfully", gin.H{"admin": user})
}

func (h *Handler) deleteAdmin(c *gin.Context) {
	if err := h.Svc.DeleteAdmin(c.Request.Context(), c.Param("id")); err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "Admin deleted successfully", nil)
}
