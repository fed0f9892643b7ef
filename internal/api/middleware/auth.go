package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/pkg/response"
	"github.com/d60-Lab/microblog/pkg/token"
)

const userIDKey = "auth.userID"

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's user id in the request context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bearerUserID(c, secret)
		if !ok {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

// OptionalAuth resolves the caller's identity when a valid token is present
// and lets anonymous requests through. Read endpoints use it so visibility
// decisions can still see who is asking.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := bearerUserID(c, secret); ok {
			c.Set(userIDKey, id)
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's id, or 0 for anonymous.
func CurrentUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func bearerUserID(c *gin.Context, secret string) (int64, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return 0, false
	}
	id, err := token.Parse([]byte(secret), strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		return 0, false
	}
	return id, true
}
