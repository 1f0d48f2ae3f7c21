// Package httputil provides shared HTTP response helpers.
package httputil

import "github.com/gin-gonic/gin"

// RespondError writes the shared JSON error envelope and aborts the
// request. The request ID, when the middleware has set one, is echoed so
// clients can quote it when reporting a failed save.
func RespondError(c *gin.Context, status int, code, message string) {
	resp := map[string]string{
		"code":    code,
		"message": message,
	}

	if rid, exists := c.Get("request_id"); exists {
		if s, ok := rid.(string); ok && s != "" {
			resp["request_id"] = s
		}
	}

	c.AbortWithStatusJSON(status, resp)
}
