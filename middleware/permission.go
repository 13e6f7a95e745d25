package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const staffRole = "staff"

// CheckStaffPermissionMiddleware aborts requests from accounts without the
// staff role. Handlers behind it never re-check authorization.
func CheckStaffPermissionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("Role")
		if !exists {
			log.Println("missing Role in request context")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "internal error",
			})
			c.Abort()
			return
		}
		if role != staffRole {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "staff permission required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
