package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Juan-Devgo/Clothes/internal/models"
	"github.com/Juan-Devgo/Clothes/internal/paths"
)

// Routes a logged-in user has no business visiting.
var authPages = []string{paths.Login, paths.Register, paths.ResetPassword}

func isAuthPage(path string) bool {
	for _, p := range authPages {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// RouteGuard only checks cookie presence; the token is validated against
// the CMS when a call actually needs it.
//
// Protected prefix without a session: browsers get a redirect to login
// (carrying the origin in ?from=), API clients get a 401 form state.
// Auth pages with a session redirect to the control panel.
func RouteGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		token := SessionToken(c)

		if strings.HasPrefix(path, paths.ControlPanel) && token == "" {
			if wantsHTML(c) {
				loginURL := paths.Login + "?from=" + url.QueryEscape(path)
				c.Redirect(http.StatusFound, loginURL)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.CmsFailed(
				"No hay sesión activa.",
				&models.CmsError{Status: http.StatusUnauthorized},
			))
			return
		}

		if isAuthPage(path) && token != "" {
			c.Redirect(http.StatusFound, paths.ControlPanel)
			c.Abort()
			return
		}

		c.Next()
	}
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
