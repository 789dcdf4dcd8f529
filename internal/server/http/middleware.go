package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskify-app/taskify/internal/common"
	"github.com/taskify-app/taskify/internal/server/auth"
	"github.com/taskify-app/taskify/internal/server/models"
)

// currentUserKey is the gin context key under which the resolved identity is
// stored. A typed constant keeps it from colliding with other middleware.
const currentUserKey = "taskify_current_user"

// authRequired resolves the bearer credential on the request to a user
// record before any task operation runs. It either attaches the full
// identity to the request context or aborts with 401; it never leaves a
// partially resolved identity behind.
func (s *HTTPServer) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c, "invalid authorization header")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		user, err := s.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			// a vanished subject is an authentication failure; anything
			// else is a storage problem, not a bad credential
			if errors.Is(err, common.ErrorNotFound) {
				abortUnauthorized(c, "invalid or expired token")
				return
			}
			s.logger.Error(c.Request.Context(), "identity lookup failed", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
}

// currentUser returns the identity attached by authRequired. It must only be
// called from handlers behind that middleware.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
