package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Juan-Devgo/Clothes/internal/middleware"
	"github.com/Juan-Devgo/Clothes/internal/models"
	"github.com/Juan-Devgo/Clothes/internal/services"
)

// respondForm writes a form action outcome. Transport failures are the one
// errored path: they are caught here and converted into the generic
// connection-error result instead of leaking upstream.
//
// Form endpoints always answer 200 with a FormState; the UI reads the
// success flag and cmsErrors, not the HTTP status.
func respondForm(c *gin.Context, cookies middleware.CookieWriter, state *models.FormState, effects services.Effects, err error) {
	if err != nil {
		log.Printf("[http] %s %s: connection failure: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusOK, models.ConnectionError())
		return
	}
	cookies.Apply(c, effects)
	c.JSON(http.StatusOK, state)
}

// bindJSON decodes the request body; malformed JSON comes back as a
// validation-shaped failure rather than a bare 400.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusOK, models.ValidationFailed(map[string][]string{
			"_": {"Solicitud inválida"},
		}, nil))
		return false
	}
	return true
}
