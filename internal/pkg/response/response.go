package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"doorsteps/internal/upstream"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromUpstream maps a typed upstream failure onto the gateway's own
// envelope, preserving the error kind as the code.
func FromUpstream(c *gin.Context, err error) {
	var status int
	switch upstream.KindOf(err) {
	case upstream.KindUnauthorized:
		status = http.StatusUnauthorized
	case upstream.KindNotFound:
		status = http.StatusNotFound
	case upstream.KindValidation:
		status = http.StatusBadRequest
	case upstream.KindNetwork:
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}
	Error(c, status, upstream.KindOf(err).String(), err.Error())
}
