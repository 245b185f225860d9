package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Juan-Devgo/Clothes/internal/paths"
	"github.com/Juan-Devgo/Clothes/internal/services"
)

func guardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RouteGuard())
	handler := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET(paths.Login, handler)
	r.GET(paths.Register, handler)
	r.GET(paths.ControlPanel, handler)
	r.GET(paths.ControlPanel+"/customers", handler)
	return r
}

func doGet(r *gin.Engine, path, cookie, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: paths.SessionCookie, Value: cookie})
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouteGuardRedirectsBrowsersToLogin(t *testing.T) {
	r := guardedRouter()
	w := doGet(r, paths.ControlPanel+"/customers", "", "text/html,application/xhtml+xml")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, paths.Login+"?from=%2Fcontrol-panel%2Fcustomers", w.Header().Get("Location"))
}

func TestRouteGuardReturns401ToAPIClients(t *testing.T) {
	r := guardedRouter()
	w := doGet(r, paths.ControlPanel, "", "application/json")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No hay sesión activa.")
}

func TestRouteGuardAllowsSessionThrough(t *testing.T) {
	r := guardedRouter()
	w := doGet(r, paths.ControlPanel, "some-jwt", "application/json")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouteGuardBouncesLoggedInOffAuthPages(t *testing.T) {
	r := guardedRouter()
	for _, page := range []string{paths.Login, paths.Register} {
		w := doGet(r, page, "some-jwt", "text/html")
		assert.Equal(t, http.StatusFound, w.Code, page)
		assert.Equal(t, paths.ControlPanel, w.Header().Get("Location"), page)
	}
}

func TestRouteGuardLeavesAnonymousAuthPagesAlone(t *testing.T) {
	r := guardedRouter()
	w := doGet(r, paths.Login, "", "text/html")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCookieWriterSetsSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	writer := CookieWriter{Domain: "", Secure: false, MaxAge: 14 * time.Hour}
	writer.Apply(c, services.Effects{SetSession: "jwt-value", SessionTTL: 2 * time.Hour})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, paths.SessionCookie, cookie.Name)
	assert.Equal(t, "jwt-value", cookie.Value)
	assert.Equal(t, int((2 * time.Hour).Seconds()), cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
}

func TestCookieWriterDefaultsTTL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	writer := CookieWriter{MaxAge: 14 * time.Hour}
	writer.Apply(c, services.Effects{SetSession: "jwt-value"})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, int((14 * time.Hour).Seconds()), cookies[0].MaxAge)
}

func TestCookieWriterClears(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	writer := CookieWriter{MaxAge: 14 * time.Hour}
	writer.Apply(c, services.Effects{ClearSession: true, ClearPending: true})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, cookie := range cookies {
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	}
}

func TestPendingTokenReadsCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: paths.PendingCookie, Value: "abc123"})

	assert.Equal(t, "abc123", PendingToken(c))
	assert.Empty(t, SessionToken(c))
}
