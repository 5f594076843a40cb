package mw

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"silant-servicebook-web/internal/session"
)

const (
	credentialsKey = "servicebook.credentials"
	sessionIDKey   = "servicebook.session_id"
)

// LoadSession resolves the session cookie into credentials for the rest of the chain.
// Unknown or expired sessions are treated as anonymous.
func LoadSession(store session.Store, cookieName string, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		creds, err := store.Get(c.Request.Context(), id)
		switch {
		case err == nil:
			c.Set(credentialsKey, creds)
			c.Set(sessionIDKey, id)
		case errors.Is(err, session.ErrNotFound):
		default:
			log.WithError(err).Warn("failed to load session")
		}
		c.Next()
	}
}

// Credentials returns the snapshot loaded by LoadSession, or anonymous credentials.
func Credentials(c *gin.Context) session.Credentials {
	if v, ok := c.Get(credentialsKey); ok {
		if creds, ok := v.(session.Credentials); ok {
			return creds
		}
	}
	return session.Credentials{}
}

// SessionID returns the id of the loaded session, or "".
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// RequireAuth redirects anonymous requests to loginPath.
func RequireAuth(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Credentials(c).Authenticated() {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
