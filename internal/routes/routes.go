package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Juan-Devgo/Clothes/internal/handlers"
	"github.com/Juan-Devgo/Clothes/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	customerHandler *handlers.CustomerHandler,
	accountHandler *handlers.AccountHandler,
) *gin.Engine {

	r.Use(middleware.RouteGuard())

	// ---- public auth flows
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/register", authHandler.Register)
		auth.POST("/register/verify", authHandler.VerifyRegistration)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.POST("/reset-password/verify-code", authHandler.VerifyResetCode)
		auth.POST("/reset-password/change-password", authHandler.ChangePassword)
	}

	// ---- protected (session cookie required by the route guard)
	panel := r.Group("/control-panel")
	{
		panel.GET("/me", authHandler.Me)
		panel.POST("/change-password", authHandler.ChangePasswordAuthenticated)

		panel.GET("/customers", customerHandler.List)
		panel.POST("/customers", customerHandler.Create)
		panel.PUT("/customers/:documentId", customerHandler.Update)
		panel.DELETE("/customers/:documentId", customerHandler.Delete)

		panel.GET("/accounts/:documentId", accountHandler.GetByID)
		panel.PUT("/accounts/:documentId", accountHandler.Update)

		panel.POST("/email/test", accountHandler.SendTestEmail)
	}

	return r
}
