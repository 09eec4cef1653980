package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/server/respond"
)

// AuthHandler exposes credential endpoints.
type AuthHandler struct {
	Svc *AuthService
}

func NewAuthHandler(svc *AuthService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

// RegisterPublicRoutes mounts the unauthenticated credential endpoints.
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/forgot-password", h.forgotPassword)
	rg.POST("/auth/reset-password/:token", h.resetPassword)
}

// RegisterAuthedRoutes mounts endpoints that require a valid session.
func (h *AuthHandler) RegisterAuthedRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", h.logout)
	rg.GET("/auth/me", h.me)
}

func (h *AuthHandler) login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.FromError(c, apperr.Validation("Invalid request body"))
		return
	}

	user, token, err := h.Svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) logout(c *gin.Context) {
	if user, ok := FromContext(c); ok {
		h.Svc.Logout(c.Request.Context(), user)
	}
	respond.Success(c, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) me(c *gin.Context) {
	user, ok := FromContext(c)
	if !ok {
		respond.FromError(c, apperr.Authentication("Authentication invalid"))
		return
	}
	respond.Success(c, http.StatusOK, "Profile retrieved successfully", gin.H{"user": user})
}

func (h *AuthHandler) forgotPassword(c *gin.Context) {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.FromError(c, apperr.Validation("Invalid request body"))
		return
	}

	if err := h.Svc.ForgotPassword(c.Request.Context(), in.Email); err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "If the email exists, a reset link has been sent", nil)
}

func (h *AuthHandler) resetPassword(c *gin.Context) {
	var in struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.FromError(c, apperr.Validation("Invalid request body"))
		return
	}

	user, token, err := h.Svc.ResetPassword(c.Request.Context(), c.Param("token"), in.Password)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, "Password reset successful", gin.H{
		"user":  user,
		"token": token,
	})
}
