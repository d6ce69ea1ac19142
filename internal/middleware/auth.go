package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todo-list-api/internal/auth"
	"todo-list-api/internal/cache"
	"todo-list-api/internal/response"
	"todo-list-api/internal/store"
)

// Context keys set for downstream handlers.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// userCacheTTL bounds how long a deleted user's token keeps working.
const userCacheTTL = 5 * time.Minute

// Auth validates the bearer token and resolves it to an existing user. Users
// are immutable after signup, so a short-TTL cache stands in for the
// per-request user lookup.
type Auth struct {
	tokens *auth.TokenManager
	users  *store.UserStore
	known  *cache.TTLCache[uint, struct{}]
}

func NewAuth(tokens *auth.TokenManager, users *store.UserStore) *Auth {
	return &Auth{
		tokens: tokens,
		users:  users,
		known:  cache.NewTTLCache[uint, struct{}](),
	}
}

// Handler returns the gin middleware enforcing authentication.
func (a *Auth) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := ""
		if authHeader != "" {
			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		// Fallback for WebSocket/browser where custom headers cannot be set
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			response.Error(c, http.StatusForbidden, "No token provided!")
			c.Abort()
			return
		}

		claims, err := a.tokens.Validate(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Unauthorized!")
			c.Abort()
			return
		}

		// A valid token for a since-deleted user is still rejected.
		if _, ok := a.known.Get(claims.UserID); !ok {
			if _, err := a.users.FindByID(c.Request.Context(), claims.UserID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					response.Error(c, http.StatusUnauthorized, "User not found!")
				} else {
					response.Error(c, http.StatusInternalServerError, "Internal Server Error")
				}
				c.Abort()
				return
			}
			a.known.Set(claims.UserID, struct{}{}, userCacheTTL)
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)

		c.Next()
	}
}
