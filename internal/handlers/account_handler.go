package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Juan-Devgo/Clothes/internal/middleware"
	"github.com/Juan-Devgo/Clothes/internal/models"
	"github.com/Juan-Devgo/Clothes/internal/services"
)

type AccountHandler struct {
	Service *services.AccountService
	Emails  services.EmailService
}

func NewAccountHandler(service *services.AccountService, emails services.EmailService) *AccountHandler {
	return &AccountHandler{Service: service, Emails: emails}
}

// @Summary      Detalle de cuenta
// @Description  Cuenta con cliente, pagos, estado y productos poblados
// @Tags         Accounts
// @Produce      json
// @Param        documentId  path      string  true  "ID de la cuenta"
// @Success      200         {object}  models.Account
// @Failure      404         {object}  models.CmsError
// @Router       /control-panel/accounts/{documentId} [get]
func (h *AccountHandler) GetByID(c *gin.Context) {
	account, cmsErr, err := h.Service.GetByID(c.Request.Context(), middleware.SessionToken(c), c.Param("documentId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ConnectionError())
		return
	}
	if cmsErr != nil {
		c.JSON(cmsErr.Status, gin.H{"error": cmsErr.Message})
		return
	}
	c.JSON(http.StatusOK, account)
}

// @Summary      Actualizar cuenta
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Param        documentId  path      string                  true  "ID de la cuenta"
// @Param        account     body      map[string]interface{}  true  "Campos a actualizar"
// @Success      200         {object}  models.Account
// @Router       /control-panel/accounts/{documentId} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida"})
		return
	}
	account, cmsErr, err := h.Service.Update(c.Request.Context(), middleware.SessionToken(c), c.Param("documentId"), data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ConnectionError())
		return
	}
	if cmsErr != nil {
		c.JSON(cmsErr.Status, gin.H{"error": cmsErr.Message})
		return
	}
	c.JSON(http.StatusOK, account)
}

// @Summary      Correo de prueba
// @Description  Verifica que el proveedor de email esté correctamente configurado
// @Tags         Email
// @Accept       json
// @Produce      json
// @Param        email  body      object{to=string}  true  "Destinatario"
// @Success      200    {object}  models.FormState
// @Router       /control-panel/email/test [post]
func (h *AccountHandler) SendTestEmail(c *gin.Context) {
	var req struct {
		To string `json:"to" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, models.ValidationFailed(map[string][]string{
			"to": {"Ingrese un correo electrónico válido"},
		}, nil))
		return
	}
	if err := h.Emails.SendTest(c.Request.Context(), req.To); err != nil {
		var de *services.DispatchError
		if errors.As(err, &de) {
			c.JSON(http.StatusOK, models.CmsFailed("Error al enviar correo de prueba.",
				&models.CmsError{Status: de.Status, Message: de.Message}))
			return
		}
		c.JSON(http.StatusOK, models.ConnectionError())
		return
	}
	c.JSON(http.StatusOK, &models.FormState{Success: true, Message: "Correo de prueba enviado exitosamente."})
}
