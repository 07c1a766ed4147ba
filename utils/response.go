package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONErrorCode returns the structured error shape the dashboards expect:
// a stable machine code plus a human-readable message, with optional extra
// detail fields (e.g. conflicting dates, outstanding shortfall).
func JSONErrorCode(c *gin.Context, httpStatus int, code, message string, details gin.H) {
	body := gin.H{"code": code, "message": message}
	for k, v := range details {
		body[k] = v
	}
	c.JSON(httpStatus, gin.H{"error": body})
}
