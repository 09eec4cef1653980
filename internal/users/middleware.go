package users

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/auth"
	"github.com/azim128/jobify/internal/shared/server/respond"
)

const ctxUserKey = "currentUser"

// Authenticate validates the Bearer token and loads the account behind it.
// Deactivated accounts are rejected even when their token is still valid.
func Authenticate(repo Repo, tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respond.FromError(c, apperr.Authentication("Authentication invalid"))
			return
		}
		session, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respond.FromError(c, err)
			return
		}

		user, err := repo.GetByID(c.Request.Context(), session.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				respond.FromError(c, apperr.Authentication("Authentication invalid"))
			} else {
				respond.FromError(c, err)
			}
			return
		}
		if !user.IsActive {
			respond.FromError(c, apperr.Authentication("Your account has been deactivated"))
			return
		}

		c.Set(ctxUserKey, user)
		c.Set("userId", user.ID)
		c.Next()
	}
}

// RequireRole restricts a route to the given role.
func RequireRole(role Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := FromContext(c)
		if !ok || user.Role != role {
			respond.FromError(c, apperr.Forbidden("You do not have permission to perform this action"))
			return
		}
		c.Next()
	}
}

// RequireCapability restricts a route to accounts holding the capability.
// Super-admins pass unconditionally.
func RequireCapability(cap Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := FromContext(c)
		if !ok || !user.HasCapability(cap) {
			respond.FromError(c, apperr.Forbidden("You do not have permission to perform this action"))
			return
		}
		c.Next()
	}
}

// FromContext returns the authenticated user set by Authenticate.
func FromContext(c *gin.Context) (User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return User{}, false
	}
	user, ok := v.(User)
	return user, ok
}
