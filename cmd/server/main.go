package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/kefoundation/backend/internal/config"
	"github.com/kefoundation/backend/internal/handlers"
	"github.com/kefoundation/backend/internal/logger"
	"github.com/kefoundation/backend/internal/middlewares"
	"github.com/kefoundation/backend/internal/models"
	"github.com/kefoundation/backend/internal/repositories"
	"github.com/kefoundation/backend/internal/services"
	"github.com/kefoundation/backend/internal/sessions"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting KE Foundation backend")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to redis (session store)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		logger.Logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	cancelPing()

	sessionStore := sessions.NewRedisStore(rdb, cfg.Session.TTL)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	programRepo := repositories.NewProgramRepository(db, logger.Logger)
	eventRepo := repositories.NewEventRepository(db, logger.Logger)
	resourceRepo := repositories.NewResourceRepository(db, logger.Logger)
	membershipRepo := repositories.NewMembershipRepository(db, logger.Logger)
	messageRepo := repositories.NewContactMessageRepository(db, logger.Logger)
	requestRepo := repositories.NewSupportRequestRepository(db, logger.Logger)
	planRepo := repositories.NewMembershipPlanRepository(db, logger.Logger)

	// Initialize services
	bootstrap := models.NewAdminBootstrap(cfg.Bootstrap.AdminThreshold)
	authService := services.NewAuthService(userRepo, sessionStore, bootstrap, logger.Logger)
	adminService := services.NewAdminService(userRepo, services.StatsSources{
		Programs:    programRepo,
		Events:      eventRepo,
		Resources:   resourceRepo,
		Memberships: membershipRepo,
		Messages:    messageRepo,
	}, logger.Logger)
	contentService := services.NewContentService(
		programRepo, eventRepo, resourceRepo, membershipRepo,
		messageRepo, requestRepo, planRepo, logger.Logger,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Session, cfg.OAuth, logger.Logger)
	adminHandler := handlers.NewAdminHandler(adminService, logger.Logger)
	contentHandler := handlers.NewContentHandler(contentService, logger.Logger)

	// Initialize session middleware
	sessionAuth := middlewares.NewSessionAuth(sessionStore, userRepo, cfg.Session.CookieName, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestID)
	r.Use(middlewares.Logging(logger.Logger))
	r.Use(middlewares.Recovery(logger.Logger))
	r.Use(middlewares.CORS(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimit(1 * 1024 * 1024)) // 1MB

	// Scope router to /api
	r.Route("/api", func(r chi.Router) {
		// Public routes
		authHandler.RegisterRoutes(r)
		contentHandler.RegisterPublicRoutes(r)

		// Session-gated routes
		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.RequireAuth)
			authHandler.RegisterProtectedRoutes(r)
		})

		// Admin-gated routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(sessionAuth.RequireAdmin)
			adminHandler.RegisterAdminRoutes(r)
			contentHandler.RegisterAdminRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
