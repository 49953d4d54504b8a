package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig lists the origins allowed to post the contact form
type CORSConfig struct {
	// Always allowed
	AllowedOrigins []string
	// Allowed only outside production
	DevOrigins []string
	Production bool
}

// DefaultCORSConfig allows the public site plus the configured frontend URL
func DefaultCORSConfig(frontendURL string, production bool) CORSConfig {
	origins := []string{
		"https://corvusbpo.com",
		"https://www.corvusbpo.com",
	}
	if frontendURL != "" {
		origins = append(origins, strings.TrimRight(frontendURL, "/"))
	}
	return CORSConfig{
		AllowedOrigins: origins,
		DevOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		},
		Production: production,
	}
}

// CORSMiddleware adds CORS headers for cross-origin requests from the site
func CORSMiddleware(cfg CORSConfig) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = true
	}
	dev := make(map[string]bool, len(cfg.DevOrigins))
	for _, o := range cfg.DevOrigins {
		dev[o] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Empty origin means a same-origin or non-browser request
		isAllowed := origin == "" || allowed[origin] || (!cfg.Production && dev[origin])

		if isAllowed && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
		}
		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			if isAllowed {
				c.AbortWithStatus(http.StatusNoContent)
			} else {
				c.AbortWithStatus(http.StatusForbidden)
			}
			return
		}

		c.Next()
	}
}
