package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teamtask/teamtask-server/internal/auth"
	"github.com/teamtask/teamtask-server/internal/constants"
	apierrors "github.com/teamtask/teamtask-server/internal/errors"
	"github.com/teamtask/teamtask-server/internal/models"
	"github.com/teamtask/teamtask-server/internal/repository"
)

const bearerPrefix = "Bearer "

// RequireAuth validates the bearer token from the Authorization header,
// resolves the subject to a user, and stores the user in the context. Every
// failure mode is a uniform 401.
func RequireAuth(tokens *auth.TokenManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		username, err := tokens.Decode(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := users.FindByUsername(username)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from the context
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
