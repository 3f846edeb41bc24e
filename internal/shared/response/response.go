package response

import (
	"github.com/gin-gonic/gin"
)

// Success writes data as the raw response body. Dashboards consume plain
// arrays and objects, so no envelope is added.
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Message writes {"message": msg} merged with extra fields.
func Message(c *gin.Context, status int, msg string, extra gin.H) {
	body := gin.H{"message": msg}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error writes {"error": message, "code": code} merged with details.
func Error(c *gin.Context, status int, errorCode string, message string, details map[string]any) {
	body := gin.H{
		"error": message,
		"code":  errorCode,
	}
	for k, v := range details {
		body[k] = v
	}
	c.JSON(status, body)
}

// Abort is Error followed by c.Abort, for middleware.
func Abort(c *gin.Context, status int, errorCode string, message string, details map[string]any) {
	Error(c, status, errorCode, message, details)
	c.Abort()
}
