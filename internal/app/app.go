package app

import (
	"database/sql"
	"fmt"
	"log"

	"bookingapp/internal/config"
	"bookingapp/internal/handlers"
	"bookingapp/internal/middleware"
	"bookingapp/internal/pdf"
	"bookingapp/internal/repositories"
	"bookingapp/internal/routes"
	"bookingapp/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "bookingapp/docs"
)

func Run() {
	cfg := config.LoadConfig()

	middleware.SetJWTKey(cfg.JWT.Secret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	userService := services.NewUserService(userRepo, authService)
	otpService := services.NewOTPService(userRepo, emailService)
	eventService := services.NewEventService(eventRepo)

	var telegramService *services.TelegramService
	if cfg.Telegram.BotToken != "" {
		telegramService = services.NewTelegramService(cfg.Telegram.BotToken)
	}
	ticketGen := pdf.NewTicketGenerator(cfg.Files.TicketsDir)
	bookingService := services.NewBookingService(
		bookingRepo,
		eventRepo,
		userRepo,
		ticketGen,
		telegramService,
		cfg.Telegram.OpsChatID,
	)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService, otpService)
	verifyHandler := handlers.NewVerifyHandler(otpService)
	userHandler := handlers.NewUserHandler(userService, authService)
	eventHandler := handlers.NewEventHandler(eventService)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		userService,
		authHandler,
		verifyHandler,
		userHandler,
		eventHandler,
		bookingHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
