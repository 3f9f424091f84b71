package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"commenthub/database"
	"commenthub/internal/config"
	"commenthub/internal/microservices/http-api/handler"
	"commenthub/internal/microservices/http-api/middleware"
	"commenthub/internal/microservices/http-api/repository"
	"commenthub/internal/microservices/http-api/service"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	// 2. Connect to the database
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("could not get database instance: %v", err)
	}
	defer sqlDB.Close()

	// 3. Block cache
	blockCache, err := service.NewRedisBlockCache(cfg.RedisURL, time.Duration(cfg.CacheTTL)*time.Second)
	if err != nil {
		log.Fatalf("could not connect to redis: %v", err)
	}

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	nodeRepo := repository.NewNodeRepository(db)
	regionRepo := repository.NewRegionRepository(db)
	blockRepo := repository.NewBlockRepository(db)

	// 5. Comment policies: which node types accept comments, and how.
	// Registered statically here rather than discovered at runtime.
	policies := service.NewPolicyRegistry()
	policies.Register("blog", service.CommentPolicy{
		Commentable:       true,
		AutoApprove:       false,
		SpamProtection:    cfg.AkismetKey != "",
		CaptchaProtection: cfg.RecaptchaSecret != "",
	})
	policies.Register("page", service.CommentPolicy{
		Commentable:       true,
		AutoApprove:       true,
		SpamProtection:    cfg.AkismetKey != "",
		CaptchaProtection: false,
	})

	// 6. Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	mailer := service.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPUsername, cfg.SMTPPassword)
	notifier := service.NewNotificationService(mailer, logger, cfg.SiteTitle, cfg.SiteEmail, cfg.SMTPFrom)
	commentService := service.NewCommentService(
		commentRepo,
		nodeRepo,
		policies,
		service.NewAkismetClient(cfg.AkismetKey, cfg.AkismetSiteURL),
		service.NewRecaptchaClient(cfg.RecaptchaSecret),
		notifier,
		cfg.CommentMaxLevel,
		cfg.CommentFeedLimit,
		cfg.CommentEmailNotification,
	)
	blockService := service.NewBlockService(blockRepo, regionRepo, blockCache, logger)

	// 7. Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "API is alive and database connected",
		})
	})

	submitLimiter := middleware.NewRateLimiter(cfg.CommentRateLimit, cfg.CommentRateBurst)

	api := r.Group("/api")
	admin := api.Group("/admin", middleware.AuthMiddleware(authService), middleware.RequireRole("admin"))

	handler.NewAuthHandler(authService).RegisterRoutes(api)
	handler.NewCommentHandler(commentService).RegisterRoutes(
		api,
		middleware.OptionalAuthMiddleware(authService),
		middleware.AuthMiddleware(authService),
		submitLimiter.Middleware(),
	)
	handler.NewBlockHandler(blockService).RegisterRoutes(api, admin)

	httpServer := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server starting", "addr", httpServer)
	if err := r.Run(httpServer); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
