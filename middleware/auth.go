package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stayadmin/api"
	"stayadmin/utils"
)

const sessionContextKey = "session"

// SessionAuth verifies the console token, loads the stored session, and
// threads the remote bearer credential into the request context so the api
// client can attach it downstream.
func SessionAuth(store utils.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": api.DeniedMessage})
			return
		}
		sessionID, err := utils.ParseSessionToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": api.DeniedMessage})
			return
		}
		session, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": api.DeniedMessage})
			return
		}

		c.Set(sessionContextKey, session)
		c.Request = c.Request.WithContext(api.WithToken(c.Request.Context(), session.Token))
		c.Next()
	}
}

// SessionFromContext returns the session loaded by SessionAuth, or nil on
// unauthenticated routes.
func SessionFromContext(c *gin.Context) *utils.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, _ := v.(*utils.Session)
	return session
}
