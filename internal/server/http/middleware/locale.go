package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/solterra/storefront/internal/i18n"
)

// LocaleContextKey is a gin context key for the resolved storefront locale.
const LocaleContextKey = "locale"

// WithLocale stores the locale of the route group in the request context.
func WithLocale(locale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(LocaleContextKey, locale)
		c.Next()
	}
}

// CurrentLocale extracts the resolved locale from context.
func CurrentLocale(c *gin.Context) string {
	val, ok := c.Get(LocaleContextKey)
	if !ok {
		return ""
	}
	locale, _ := val.(string)
	return locale
}

// LocaleRedirect handles unrouted requests: storefront paths without a locale
// prefix are redirected to the default locale with the original path
// preserved, everything else is a plain 404.
func LocaleRedirect(defaultLocale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") || path == "/api" {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		segments := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)
		if len(segments) > 0 && i18n.Supported(segments[0]) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		target := "/" + defaultLocale + path
		if raw := c.Request.URL.RawQuery; raw != "" {
			target += "?" + raw
		}
		c.Redirect(http.StatusTemporaryRedirect, target)
	}
}
