// Package respond writes the standard response envelope:
// {status:"success",message,data} on success, {status:"error",message} on
// failure.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/telemetry"
)

// Envelope is the wire shape of every response.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success writes a success envelope with the given status code.
func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Status: "success", Message: message, Data: data})
}

// Error writes an error envelope and aborts the request.
func Error(c *gin.Context, status int, message string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, Envelope{Status: "error", Message: message})
}

// FromError maps a service error onto the envelope using the apperr taxonomy.
// Unclassified errors become a generic 500; their detail is logged, never
// sent to the caller.
func FromError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError && apperr.KindOf(err) == 0 {
		telemetry.Error("http.unclassified_error", map[string]any{
			"error":      err.Error(),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("requestId"),
		})
	}
	Error(c, status, apperr.Message(err))
}
