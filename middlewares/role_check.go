package middlewares

import (
	"fmt"
	"net/http"

	"github.com/bramasto/tablepos/utils"
	"github.com/gin-gonic/gin"
)

// RequireAdmin limits a route to admin users. Staff accounts can hit every
// other protected route.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		if userRole != "admin" {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("admin access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
