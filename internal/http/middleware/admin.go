package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminKeyHeader carries the shared key guarding the batch-processing routes.
const AdminKeyHeader = "X-Admin-Key"

// AdminKey rejects requests whose admin key header does not match the
// configured key. An empty configured key disables the check, which is how
// local runs without an .env work.
func AdminKey(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if required == "" {
			c.Next()
			return
		}
		if c.GetHeader(AdminKeyHeader) != required {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "invalid admin key",
				},
			})
			return
		}
		c.Next()
	}
}
