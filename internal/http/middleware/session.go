package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/models"
	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/utils"
)

const sessionContextKey = "session"

// SessionResolver resolves a session token to a live session, or nil.
type SessionResolver interface {
	Session(token string) *models.Session
}

// SessionAuth guards routes behind a valid session cookie.
func SessionAuth(cookieName string, resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "missing session", nil))
			c.Abort()
			return
		}

		session := resolver.Session(token)
		if session == nil {
			utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "session expired or invalid", nil))
			c.Abort()
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// SessionFromContext returns the session stored by SessionAuth, or nil.
func SessionFromContext(c *gin.Context) *models.Session {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, _ := value.(*models.Session)
	return session
}
