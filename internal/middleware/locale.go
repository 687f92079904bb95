package middleware

import (
	"github.com/gin-gonic/gin"

	"doorsteps/internal/pkg/l10n"
)

const CookieLocale = "locale"

// Locale resolves the request language: ?lang= wins, then the locale
// cookie, then the configured default.
func Locale(def l10n.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := def
		if v, err := c.Cookie(CookieLocale); err == nil && v != "" {
			loc = l10n.Parse(v)
		}
		if v := c.Query("lang"); v != "" {
			loc = l10n.Parse(v)
		}
		c.Set("locale", loc)
		c.Next()
	}
}

// LocaleFrom reads the resolved locale out of the request context.
func LocaleFrom(c *gin.Context) l10n.Locale {
	if v, ok := c.Get("locale"); ok {
		if loc, ok := v.(l10n.Locale); ok {
			return loc
		}
	}
	return l10n.Default
}
