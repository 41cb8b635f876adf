package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys shared by the auth handlers and the middleware.
const (
	SessionUserKey     = "user_id"
	SessionUsernameKey = "username"
)

// RequireLogin guards the "/user/*" endpoints. It copies the session user
// id into the request context for the handlers.
func RequireLogin(c *gin.Context) {
	session := sessions.Default(c)
	v := session.Get(SessionUserKey)
	userID, ok := v.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Please log in to access this page."})
		c.Abort()
		return
	}
	c.Set("user_id", userID)
	c.Next()
}

// SessionUserID reports the logged-in user of the current session, for
// endpoints that serve both guests and users.
func SessionUserID(c *gin.Context) (uint, bool) {
	session := sessions.Default(c)
	v := session.Get(SessionUserKey)
	userID, ok := v.(uint)
	return userID, ok
}
