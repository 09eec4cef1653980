package middleware

import "github.com/gin-gonic/gin"

const (
	auditResourceIDKey   = "auditResourceId"
	auditResourceNameKey = "auditResourceName"
)

// SetAuditResource tags the request with the resource a handler acted on so
// the activity-log stage can attribute the mutation. Handlers call this for
// creates, where the id is not in the URL.
func SetAuditResource(c *gin.Context, id, name string) {
	c.Set(auditResourceIDKey, id)
	if name != "" {
		c.Set(auditResourceNameKey, name)
	}
}

// AuditResourceFrom returns the tagged resource id and name, falling back to
// the :id route parameter.
func AuditResourceFrom(c *gin.Context) (id, name string) {
	id = c.GetString(auditResourceIDKey)
	if id == "" {
		id = c.Param("id")
	}
	return id, c.GetString(auditResourceNameKey)
}
