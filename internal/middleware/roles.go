package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/gameplanhq/artwork-workflow-api/internal/database"
	apierrors "github.com/gameplanhq/artwork-workflow-api/internal/errors"
	"github.com/gameplanhq/artwork-workflow-api/internal/models"
)

// RequireRole restricts a route to users holding one of the given roles.
// Admins always pass.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if user.Role == models.RoleAdmin {
			c.Set("current_user", user)
			c.Next()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Set("current_user", user)
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "Your role does not permit this action")
		c.Abort()
	}
}
