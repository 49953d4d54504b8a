package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response. Successful calls carry
// message, failed calls carry error.
type Response struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Message:   message,
		RequestID: c.GetString("RequestID"),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Error:     message,
		RequestID: c.GetString("RequestID"),
	})
}
