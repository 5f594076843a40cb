package web

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"silant-servicebook-web/config"
	"silant-servicebook-web/internal/client"
	"silant-servicebook-web/internal/mw"
	"silant-servicebook-web/internal/session"
)

// Handler holds shared dependencies for page handlers.
type Handler struct {
	api      *client.Client
	sessions session.Store
	cookie   config.SessionConfig
	log      logrus.FieldLogger
}

// NewHandler creates a new page handler.
func NewHandler(api *client.Client, sessions session.Store, cookie config.SessionConfig, log logrus.FieldLogger) *Handler {
	return &Handler{
		api:      api,
		sessions: sessions,
		cookie:   cookie,
		log:      log,
	}
}

// apiFor returns an API client bound to the requesting user's credentials.
func (h *Handler) apiFor(c *gin.Context) *client.Client {
	return h.api.WithCredentials(mw.Credentials(c))
}

// logFor returns a logger annotated with the request.
func (h *Handler) logFor(c *gin.Context) logrus.FieldLogger {
	return h.log.WithFields(logrus.Fields{
		"path": c.Request.URL.Path,
		"user": mw.Credentials(c).Username,
	})
}
