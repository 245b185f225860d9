package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Juan-Devgo/Clothes/internal/middleware"
	"github.com/Juan-Devgo/Clothes/internal/models"
	"github.com/Juan-Devgo/Clothes/internal/services"
)

type CustomerHandler struct {
	Service *services.CustomerService
	Cookies middleware.CookieWriter
}

func NewCustomerHandler(service *services.CustomerService, cookies middleware.CookieWriter) *CustomerHandler {
	return &CustomerHandler{Service: service, Cookies: cookies}
}

// @Summary      Lista de clientes
// @Tags         Customers
// @Produce      json
// @Success      200  {array}   models.Customer
// @Failure      401  {object}  models.CmsError
// @Router       /control-panel/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	customers, cmsErr, err := h.Service.List(c.Request.Context(), middleware.SessionToken(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ConnectionError())
		return
	}
	if cmsErr != nil {
		c.JSON(cmsErr.Status, gin.H{"error": cmsErr.Message})
		return
	}
	c.JSON(http.StatusOK, customers)
}

// @Summary      Crear cliente
// @Description  Crea el cliente y, como mejor esfuerzo, su cuenta asociada en estado FREE
// @Tags         Customers
// @Accept       json
// @Produce      json
// @Param        customer  body      models.CreateCustomerRequest  true  "Datos del cliente"
// @Success      200       {object}  models.FormState
// @Router       /control-panel/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req models.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := h.Service.Create(c.Request.Context(), middleware.SessionToken(c), req)
	respondForm(c, h.Cookies, state, services.Effects{}, err)
}

// @Summary      Actualizar cliente
// @Tags         Customers
// @Accept       json
// @Produce      json
// @Param        documentId  path      string                        true  "ID del cliente"
// @Param        customer    body      models.UpdateCustomerRequest  true  "Campos a actualizar"
// @Success      200         {object}  models.FormState
// @Router       /control-panel/customers/{documentId} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	var req models.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := h.Service.Update(c.Request.Context(), middleware.SessionToken(c), c.Param("documentId"), req)
	respondForm(c, h.Cookies, state, services.Effects{}, err)
}

// @Summary      Eliminar cliente
// @Description  Elimina primero la cuenta asociada (no fatal si falla) y luego el cliente
// @Tags         Customers
// @Produce      json
// @Param        documentId  path      string  true  "ID del cliente"
// @Success      200         {object}  models.FormState
// @Router       /control-panel/customers/{documentId} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	state, err := h.Service.Delete(c.Request.Context(), middleware.SessionToken(c), c.Param("documentId"))
	respondForm(c, h.Cookies, state, services.Effects{}, err)
}
