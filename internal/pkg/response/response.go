package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"publicsquare/internal/pkg/apperror"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	if statusCode == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
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

// FromError writes err using its apperror kind. Unknown errors become a 500
// and are attached to the context for the error logger.
func FromError(c *gin.Context, err error) {
	if appErr, ok := apperror.As(err); ok {
		Error(c, appErr.Status(), appErr.Code, appErr.Message)
		return
	}
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

// AbortWithError writes err like FromError and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	FromError(c, err)
	c.Abort()
}
