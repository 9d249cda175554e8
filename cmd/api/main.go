package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"go-portfolio-backend/config"
	"go-portfolio-backend/internal/content"
	v1 "go-portfolio-backend/internal/delivery/http/v1"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/form"
	"go-portfolio-backend/internal/repository/memory"
	"go-portfolio-backend/internal/repository/postgres"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/audit"
	"go-portfolio-backend/pkg/database"
	"go-portfolio-backend/pkg/email"
	"go-portfolio-backend/pkg/geoip"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/redis"
	"go-portfolio-backend/pkg/validation"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port)

	auditLog := audit.NewLogger("portfolio-backend")
	defer auditLog.Sync()

	// 3. Setup Article Storage
	// Without a database the content directory alone backs the article API;
	// admin writes then live only until restart.
	var articleRepo domain.ArticleRepository
	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		articleRepo = postgres.NewArticleRepository(dbPool)
	} else {
		articleRepo = memory.NewArticleRepository()
	}

	// 4. Sync markdown content into the repository
	syncCtx, syncCancel := context.WithTimeout(context.Background(), 30*time.Second)
	count, err := usecase.SyncContent(syncCtx, cfg.ContentDir, articleRepo)
	syncCancel()
	if err != nil {
		logger.Log.Warn("Content sync incomplete", "error", err, "synced", count)
	} else {
		logger.Log.Info("Content synced", "articles", count)
	}

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable")
	}

	// 6. Setup Validators
	validate := validator.New()
	validation.RegisterValidators(validate)
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(engine)
	}

	// 7. Setup UseCases
	contactUC := usecase.NewContactUsecase(emailService, auditLog)
	processor := content.NewProcessor(logger.Log)
	articleUC := usecase.NewArticleUsecase(articleRepo, processor, validate)

	// 8. Setup Form Sessions
	sessions := form.NewStore(
		time.Duration(cfg.FormSessionTTLMinutes)*time.Minute,
		func() *form.Controller {
			return form.NewController(form.SubmitterFunc(contactUC.SendContactMessage), form.Config{})
		},
	)

	// 9. Setup Geolocation Client
	geoClient := geoip.NewClient(cfg.GeoIPBaseURL, cfg.GeoIPTimeout)

	// 10. Setup Redis (rate limiting); in-memory fallback on failure
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}

	// 11. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		ArticleUC: articleUC,
		Sessions:  sessions,
		Geo:       geoClient,
		Audit:     auditLog,
		Config:    cfg,
	})

	// 12. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exited")
}
