package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"accountd/internal/config"
	"accountd/internal/handlers"
	"accountd/internal/middleware"
	"accountd/internal/repositories"
	"accountd/internal/routes"
	"accountd/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "accountd/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	if cfg.Database.DSN == "" {
		log.Fatal("DATABASE_URL не задан")
	}
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()
	// пул ограничен конфигом; соединение берётся на время запроса
	// и отдаётся безусловно
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("БД недоступна: ", err)
	}
	if err := ensureSchema(db); err != nil {
		log.Fatal("Ошибка инициализации схемы: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	pendingRepo := repositories.NewPendingRegistrationRepository(db)
	recordRepo := repositories.NewRecordRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	// письма уходят вне жизни запроса, со своими воркерами и без его соединения
	dispatcher := services.NewMailDispatcher(emailService, cfg.Mail.Workers, cfg.Mail.BufferSize)

	registrationService := services.NewRegistrationService(db, userRepo, pendingRepo, authService, dispatcher)
	userService := services.NewUserService(userRepo, authService)

	// === Handlers ===
	registerHandler := handlers.NewRegisterHandler(registrationService)
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(cfg)

	var devHandler *handlers.DevHandler
	if !cfg.IsProduction() {
		devHandler = handlers.NewDevHandler(recordRepo)
	}

	// === Gin ===
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		registerHandler,
		authHandler,
		userHandler,
		healthHandler,
		devHandler,
	)

	// === Run ===
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Сервер запущен на %s (env=%s)", srv.Addr, cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Останавливаемся...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Ошибка остановки сервера: %v", err)
	}

	// сперва перестаём принимать запросы, потом досылаем очередь писем
	dispatcher.Close()
	if n := dispatcher.Dropped(); n > 0 {
		log.Printf("[mail][dispatch] dropped total: %d", n)
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
