package api

import (
	"github.com/gin-gonic/gin"
)

// JSONError writes the flat error shape the original frontend expects.
func JSONError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
