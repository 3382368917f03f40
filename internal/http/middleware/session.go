package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/albinolog/contracts/internal/session"
)

const (
	SessionCookie = "albino_session"
	profileKey    = "profileID"
)

// Session makes sure every request carries a profile id, issuing a fresh
// cookie when the browser has none or presents an invalid one.
func Session(manager *session.Manager, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookie); err == nil {
			if profileID, err := manager.Parse(token); err == nil {
				c.Set(profileKey, profileID)
				c.Next()
				return
			}
		}

		profileID, token, err := manager.Issue()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, token, int(manager.TTL().Seconds()), "/", "", secure, true)
		c.Set(profileKey, profileID)
		c.Next()
	}
}

func MustProfile(c *gin.Context) (string, bool) {
	value, ok := c.Get(profileKey)
	if !ok {
		return "", false
	}
	profileID, ok := value.(string)
	return profileID, ok && profileID != ""
}
