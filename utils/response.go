package utils

import "github.com/gin-gonic/gin"

// RespondWithError aborts the request with {success:false, error}.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// RespondWithDetails is RespondWithError plus a details payload. A nil
// details value is omitted.
func RespondWithDetails(c *gin.Context, status int, message string, details interface{}) {
	body := gin.H{
		"success": false,
		"error":   message,
	}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, body)
}

// RespondWithValidationErrors reports field-level problems.
func RespondWithValidationErrors(c *gin.Context, status int, message string, fields map[string]string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":          false,
		"error":            message,
		"validationErrors": fields,
	})
}
