package main

import (
	"fmt"
	"os"

	"eduground/database"
	"eduground/internal/cache"
	"eduground/internal/config"
	"eduground/internal/httpapi/handler"
	"eduground/internal/httpapi/middleware"
	"eduground/internal/httpapi/repository"
	"eduground/internal/httpapi/service"
	"eduground/internal/mail"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// The API works without Redis; responses are just never cached.
	store, err := cache.NewStore(cfg.RedisURL, cfg.RedisPassword, cfg.CacheTTL, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, response caching disabled")
		store = nil
	}

	sender := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, logger)

	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	courseService := service.NewCourseService(courseRepo, userRepo, cfg.PageSize)
	lessonService := service.NewLessonService(lessonRepo, courseRepo, cfg.PageSize)
	commentService := service.NewCommentService(commentRepo, lessonRepo, cfg.PageSize)
	ratingService := service.NewRatingService(ratingRepo, lessonRepo, cfg.PageSize)
	notificationService := service.NewNotificationService(userRepo, sender, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	authMW := middleware.AuthMiddleware(authService)

	api := router.Group("/api")

	authGroup := api.Group("/auth", middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	handler.NewAuthHandler(authService).RegisterRoutes(authGroup, authMW)

	protected := api.Group("", authMW)
	handler.NewCourseHandler(courseService, store).RegisterRoutes(protected)
	handler.NewLessonHandler(lessonService, store, cfg.MediaRoot).RegisterRoutes(protected)
	handler.NewCommentHandler(commentService, store).RegisterRoutes(protected)
	handler.NewRatingHandler(ratingService, store).RegisterRoutes(protected)
	handler.NewNotificationHandler(notificationService).RegisterRoutes(protected)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info().Str("addr", addr).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
