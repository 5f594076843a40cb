package mw

import (
	"github.com/gin-gonic/gin"
)

// NoStore marks responses as uncacheable so every page view reaches the API again.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
