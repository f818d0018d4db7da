package web

import "github.com/gin-gonic/gin"

// Fail writes the uniform failure envelope. Handlers never leak internal
// error detail through this; msg is always a user-facing message.
func Fail(c *gin.Context, status int, code, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   msg,
		"code":    code,
	})
}
