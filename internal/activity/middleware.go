package activity

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/azim128/jobify/internal/shared/server/middleware"
	"github.com/azim128/jobify/internal/users"
)

// Middleware returns an audit stage for a resource group. It runs after the
// handler and records successful mutations; reads and failed requests are
// not logged. Logging failures never affect the response.
func Middleware(svc *Service, resource string) gin.HandlerFunc {
	display := capitalize(resource)
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		var action Action
		switch c.Request.Method {
		case http.MethodPost:
			action = ActionCreate
		case http.MethodPatch, http.MethodPut:
			action = ActionUpdate
		case http.MethodDelete:
			action = ActionDelete
		default:
			return
		}

		actor, ok := users.FromContext(c)
		if !ok {
			return
		}

		resourceID, name := middleware.AuditResourceFrom(c)
		if name == "" {
			name = resourceID
		}

		var details string
		switch action {
		case ActionCreate:
			details = fmt.Sprintf("Created new %s: %s", resource, name)
		case ActionUpdate:
			details = fmt.Sprintf("Updated %s: %s", resource, name)
		case ActionDelete:
			details = fmt.Sprintf("Deleted %s: %s", resource, resourceID)
		}

		svc.Record(c.Request.Context(), Record{
			Action:     action,
			Resource:   display,
			ResourceID: resourceID,
			UserID:     actor.ID,
			Details:    details,
		})
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
