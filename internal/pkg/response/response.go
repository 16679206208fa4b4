package response

import "github.com/gin-gonic/gin"

// Success writes the {success, data} envelope used by every handler.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes the {success:false, error:{code,message}} envelope. Codes
// are stable strings clients switch on (CONFLICT, FORBIDDEN, ...).
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
