package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Juan-Devgo/Clothes/internal/middleware"
	"github.com/Juan-Devgo/Clothes/internal/models"
	"github.com/Juan-Devgo/Clothes/internal/paths"
	"github.com/Juan-Devgo/Clothes/internal/services"
)

type AuthHandler struct {
	Auth    *services.AuthService
	Cookies middleware.CookieWriter
}

func NewAuthHandler(auth *services.AuthService, cookies middleware.CookieWriter) *AuthHandler {
	return &AuthHandler{Auth: auth, Cookies: cookies}
}

// @Summary      Inicio de sesión
// @Description  Autentica contra el CMS y guarda el token de sesión en una cookie
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credenciales"
// @Success      200    {object}  models.FormState
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	state, effects, err := h.Auth.Login(c.Request.Context(), req, c.Query("from"))
	respondForm(c, h.Cookies, state, effects, err)
}

// @Summary      Cierre de sesión
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  models.FormState
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Apply(c, services.Effects{ClearSession: true})
	c.JSON(http.StatusOK, &models.FormState{Success: true, Redirect: paths.Home})
}

// @Summary      Registro (paso 1)
// @Description  Valida los datos, verifica que el correo no exista y envía el código de verificación
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Datos de registro"
// @Success      200       {object}  models.FormState
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	state, effects, err := h.Auth.Register(c.Request.Context(), req)
	respondForm(c, h.Cookies, state, effects, err)
}

// @Summary      Registro (paso 2): verificación del código
// @Description  Verifica el código de 4 dígitos y crea la cuenta en el CMS
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        code  body      models.VerifyCodeRequest  true  "Código"
// @Success      200   {object}  models.FormState
// @Router       /auth/register/verify [post]
func (h *AuthHandler) VerifyRegistration(c *gin.Context) {
	var req models.VerifyCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	state, effects, err := h.Auth.VerifyRegistration(c.Request.Context(), middleware.PendingToken(c), req)
	respondForm(c, h.Cookies, state, effects, err)
}

// @Summary      Restablecer contraseña (paso 1)
// @Description  Envía un código de restablecimiento al correo registrado
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        reset  body      models.ResetPasswordRequest  true  "Correo"
// @Success      200    {object}  models.FormState
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	state, effects, err := h.Auth.ResetPassword(c.Request.Context(), req)
	respondForm(c, h.Cookies, state, effects, err)
}

// @Summary      Restablecer contraseña (paso 2): verificación del código
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        code  body      models.VerifyCodeRequest  true  "Código"
// @Success      200   {object}  models.FormState
// @Router       /auth/reset-password/verify-code [post]
func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req models.VerifyCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	state, effects, err := h.Auth.VerifyResetCode(c.Request.Context(), middleware.PendingToken(c), req)
	respondForm(c, h.Cookies, state, effects, err)
}

// @Summary      Restablecer contraseña (paso 3): nueva contraseña
// @Description  El CMS valida el código confirmado y cambia la contraseña atómicamente
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        password  body      models.ChangePasswordRequest  true  "Nueva contraseña"
// @Success      200       {object}  models.FormState
// @Router       /auth/reset-password/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	state, effects, err := h.Auth.ChangePassword(c.Request.Context(), middleware.PendingToken(c), req)
	respondForm(c, h.Cookies, state, effects, err)
}

// @Summary      Cambio de contraseña autenticado
// @Description  Requiere sesión activa; el CMS verifica la contraseña actual
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        password  body      models.ChangePasswordAuthenticatedRequest  true  "Contraseñas"
// @Success      200       {object}  models.FormState
// @Router       /control-panel/change-password [post]
func (h *AuthHandler) ChangePasswordAuthenticated(c *gin.Context) {
	var req models.ChangePasswordAuthenticatedRequest
	if !bindJSON(c, &req) {
		return
	}
	state, effects, err := h.Auth.ChangePasswordAuthenticated(c.Request.Context(), middleware.SessionToken(c), req)
	respondForm(c, h.Cookies, state, effects, err)
}

// @Summary      Usuario actual
// @Description  Valida el token de sesión contra el CMS; un token rechazado elimina la cookie
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  models.CmsError
// @Router       /control-panel/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, cmsErr, effects, err := h.Auth.CurrentUser(c.Request.Context(), middleware.SessionToken(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ConnectionError())
		return
	}
	h.Cookies.Apply(c, effects)
	if cmsErr != nil {
		c.JSON(cmsErr.Status, gin.H{"error": cmsErr.Message})
		return
	}
	c.JSON(http.StatusOK, user)
}
