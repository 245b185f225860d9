package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Juan-Devgo/Clothes/internal/paths"
	"github.com/Juan-Devgo/Clothes/internal/services"
)

// CookieWriter applies service-level Effects to the response cookies with
// the app-wide attributes (HTTP-only, domain from the app URL, secure on
// https).
type CookieWriter struct {
	Domain string
	Secure bool
	MaxAge time.Duration
}

func (w CookieWriter) Apply(c *gin.Context, e services.Effects) {
	if e.SetSession != "" {
		ttl := e.SessionTTL
		if ttl <= 0 {
			ttl = w.MaxAge
		}
		w.set(c, paths.SessionCookie, e.SetSession, int(ttl.Seconds()))
	}
	if e.ClearSession {
		w.set(c, paths.SessionCookie, "", -1)
	}
	if e.SetPending != "" {
		w.set(c, paths.PendingCookie, e.SetPending, int(w.MaxAge.Seconds()))
	}
	if e.ClearPending {
		w.set(c, paths.PendingCookie, "", -1)
	}
}

func (w CookieWriter) set(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   w.Domain,
		MaxAge:   maxAge,
		Secure:   w.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionToken reads the session cookie; empty when absent.
func SessionToken(c *gin.Context) string {
	v, err := c.Cookie(paths.SessionCookie)
	if err != nil {
		return ""
	}
	return v
}

// PendingToken reads the pending-verification cookie; empty when absent.
func PendingToken(c *gin.Context) string {
	v, err := c.Cookie(paths.PendingCookie)
	if err != nil {
		return ""
	}
	return v
}
