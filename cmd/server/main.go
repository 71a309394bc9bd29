package main

import (
	"log"
	"net/http"
	"os"

	_ "schoolbook/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"schoolbook/internal/auth"
	"schoolbook/internal/cache"
	"schoolbook/internal/config"
	"schoolbook/internal/db"
	"schoolbook/internal/handler"
	"schoolbook/internal/identity"
	"schoolbook/internal/live"
	"schoolbook/internal/model"
	"schoolbook/internal/repository"
	"schoolbook/internal/router"
	"schoolbook/internal/service"
)

// @title School Appointment Booking API
// @version 1.0
// @description Role-gated school appointment booking with teacher approval, student messaging, and live SSE feeds.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Message{},
			&model.Appointment{},
			&model.Account{},
			&identity.Credential{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&identity.Credential{},
		&model.Account{},
		&model.Appointment{},
		&model.Message{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(gormDB)
	appointmentRepo := repository.NewAppointmentRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)

	// Initialize auth components
	idp := identity.NewProvider(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Live subscription fan-out
	hub := live.NewHub(live.NewRedisBroker(cacheClient))

	// Initialize services
	authService := service.NewAuthService(accountRepo, idp, jwtService, sessionStore)
	appointmentService := service.NewAppointmentService(appointmentRepo, accountRepo, hub)
	adminService := service.NewAdminService(accountRepo, idp)
	messageService := service.NewMessageService(messageRepo, accountRepo, hub)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	adminHandler := handler.NewAdminHandler(adminService)
	messageHandler := handler.NewMessageHandler(messageService)
	streamHandler := handler.NewStreamHandler(hub, appointmentService, messageService)
	seedHandler := handler.NewSeedHandler(adminService, service.DefaultSeedAccounts())

	// Register routes
	router.Register(
		e,
		cfg,
		authService,
		authHandler,
		appointmentHandler,
		adminHandler,
		messageHandler,
		streamHandler,
		seedHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
