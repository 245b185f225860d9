package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/Juan-Devgo/Clothes/internal/cms"
	"github.com/Juan-Devgo/Clothes/internal/config"
	"github.com/Juan-Devgo/Clothes/internal/handlers"
	"github.com/Juan-Devgo/Clothes/internal/middleware"
	"github.com/Juan-Devgo/Clothes/internal/repositories"
	"github.com/Juan-Devgo/Clothes/internal/routes"
	"github.com/Juan-Devgo/Clothes/internal/services"
	"github.com/Juan-Devgo/Clothes/internal/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Juan-Devgo/Clothes/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB (pending-verification records) ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// === CMS gateway ===
	cmsClient := cms.NewClient(cfg.CMS.URL, cfg.CMS.APIKey)

	// === Repos ===
	pendingRepo := repositories.NewVerificationRepository(db)

	// === Services ===
	var emailService services.EmailService
	if cfg.Email.Provider == "smtp" {
		emailService = services.NewSMTPEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	} else {
		emailService = services.NewCMSEmailService(cmsClient)
	}

	cipher, err := utils.NewCipher(cfg.EncryptionSecret)
	if err != nil {
		log.Fatal("Invalid encryption secret: ", err)
	}

	authService := services.NewAuthService(cmsClient, emailService, pendingRepo, cipher, cfg.CookieMaxAge())
	accountService := services.NewAccountService(cmsClient)
	customerService := services.NewCustomerService(cmsClient, accountService)

	// === Handlers ===
	cookies := middleware.CookieWriter{
		Domain: cfg.CookieDomain(),
		Secure: cfg.CookieSecure(),
		MaxAge: cfg.CookieMaxAge(),
	}
	authHandler := handlers.NewAuthHandler(authService, cookies)
	customerHandler := handlers.NewCustomerHandler(customerService, cookies)
	accountHandler := handlers.NewAccountHandler(accountService, emailService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, customerHandler, accountHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
