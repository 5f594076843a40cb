package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"silant-servicebook-web/config"
	"silant-servicebook-web/internal/mw"
)

// RouterOptions are the optional pieces of the router.
type RouterOptions struct {
	// Registry receives inbound request metrics and is served on MetricsPath when set.
	Registry    *prometheus.Registry
	MetricsPath string
}

// NewRouter creates and configures the gin engine serving the pages.
func NewRouter(h *Handler, server config.ServerConfig, opts RouterOptions) (*gin.Engine, error) {
	tmpl, err := Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), mw.Logger(h.log))
	if opts.Registry != nil {
		r.Use(mw.Metrics(opts.Registry))
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}

	r.GET("/healthz", h.Health)

	loginLimiter := mw.RateLimiter(rate.Limit(server.LoginRateLimitPerSec), server.LoginRateBurst)
	searchLimiter := mw.RateLimiter(rate.Limit(server.SearchRateLimitPerSec), server.SearchRateBurst)

	pages := r.Group("/")
	pages.Use(mw.NoStore(), mw.LoadSession(h.sessions, h.cookie.CookieName, h.log))
	{
		pages.GET("/", h.Home)
		pages.GET("/search", searchLimiter, h.Search)
		pages.GET("/login", h.LoginPage)
		pages.POST("/login", loginLimiter, h.Login)
		pages.POST("/logout", h.Logout)

		private := pages.Group("/")
		private.Use(mw.RequireAuth("/login"))
		{
			private.GET("/dashboard", h.Dashboard)
			private.GET("/machines/:id", h.Machine)
			private.POST("/machines/:id/maintenances", h.CreateMaintenance)
			private.POST("/machines/:id/complaints", h.CreateComplaint)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.html", errorPage{
			layout: layout{Title: "Страница не найдена"},
			Error:  "Страница не найдена",
		})
	})

	return r, nil
}
