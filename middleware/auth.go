package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"gadget-store/models"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware validates the bearer token and stores the resolved user in
// the request context.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(401, models.ErrorResponse{
				Success: false,
				Message: "Authorization token is required",
			})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			appErr, ok := err.(*models.AppError)
			if !ok {
				c.AbortWithStatusJSON(500, models.ErrorResponse{
					Success: false,
					Message: "Server error while authenticating",
				})
				return
			}
			c.AbortWithStatusJSON(appErr.Status(), models.ErrorResponse{
				Success: false,
				Message: appErr.Message,
			})
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("token", token)
		c.Next()
	}
}

// RequireRoles rejects authenticated users whose role is not in the list.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user")
		user, ok := value.(*models.User)
		if !exists || !ok {
			c.AbortWithStatusJSON(401, models.ErrorResponse{
				Success: false,
				Message: "Authorization token is required",
			})
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(403, models.ErrorResponse{
			Success: false,
			Message: "You do not have permission to perform this action",
		})
	}
}
