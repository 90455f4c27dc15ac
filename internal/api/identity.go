package api

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"net/http"
	"slices"
	"strconv"
)

const (
	UserIDHeader   = "X-User-ID"
	UserRoleHeader = "X-User-Role"

	callerKey = "caller"
)

// Caller is the authenticated user as forwarded by the auth gateway in front of the service.
type Caller struct {
	UserID int64
	Role   entities.Role
}

func identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.GetHeader(UserIDHeader), 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}

		role, err := entities.ToRole(c.GetHeader(UserRoleHeader))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}

		c.Set(callerKey, Caller{UserID: userID, Role: role})
		c.Next()
	}
}

func requireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(roles, caller(c).Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}

func caller(c *gin.Context) Caller {
	return c.MustGet(callerKey).(Caller)
}
