package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const userKey = "UserID"

// AuthRequired aborts with 401 unless the session carries a logged-in user.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get(userKey) == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.Next()
}

// SetSessionUserID stores the user id in the session; Save must follow.
func SetSessionUserID(c *gin.Context, userID string) error {
	session := sessions.Default(c)
	session.Set(userKey, userID)
	return session.Save()
}

// SessionUserID returns the logged-in user id bound to the request session.
func SessionUserID(c *gin.Context) (string, bool) {
	session := sessions.Default(c)
	userID, ok := session.Get(userKey).(string)
	return userID, ok && userID != ""
}

// ClearSession drops the login from the session.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(userKey)
	return session.Save()
}
