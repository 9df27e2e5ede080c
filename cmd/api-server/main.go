package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mediarate/database"
	"mediarate/internal/config"
	"mediarate/internal/handler"
	"mediarate/internal/middleware"
	"mediarate/internal/repository"
	"mediarate/internal/service"
	"mediarate/internal/session"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("database instance unavailable", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	store, cleanup, err := newSessionStore(cfg, logger)
	if err != nil {
		logger.Error("session store setup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	txRunner := repository.NewTxRunner(db)

	// Services
	tokenService := service.NewTokenService(store, cfg.TokenSecret)
	statsService := service.NewStatsService(profileRepo, ratingRepo, mediaRepo)
	userService := service.NewUserService(userRepo, profileRepo, txRunner, tokenService)
	mediaService := service.NewMediaService(mediaRepo, profileRepo, txRunner, statsService)
	ratingService := service.NewRatingService(ratingRepo, mediaRepo, profileRepo, statsService)

	// Handlers
	authHandler := handler.NewAuthHandler(userService, tokenService)
	profileHandler := handler.NewProfileHandler(userService, statsService)
	mediaHandler := handler.NewMediaHandler(mediaService)
	ratingHandler := handler.NewRatingHandler(ratingService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		if err := sqlDB.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	users := api.Group("/users")
	users.Use(middleware.RateLimit(cfg.AuthRatePerSecond, cfg.AuthRateBurst))
	authHandler.RegisterPublicRoutes(users)

	usersAuth := api.Group("/users")
	usersAuth.Use(middleware.AuthMiddleware(tokenService))
	authHandler.RegisterProtectedRoutes(usersAuth)

	media := api.Group("/media")
	mediaHandler.RegisterPublicRoutes(media)
	ratingHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokenService))
	mediaHandler.RegisterProtectedRoutes(protected.Group("/media"))
	ratingHandler.RegisterProtectedRoutes(protected)
	profileHandler.RegisterRoutes(protected.Group("/profiles"))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", "port", cfg.HTTPPort, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	logger.Info("server stopped")
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

// newSessionStore picks the configured session backend. The returned cleanup
// closes the backing connection when there is one.
func newSessionStore(cfg *config.Config, logger *slog.Logger) (session.Store, func(), error) {
	switch cfg.SessionBackend {
	case "redis":
		store, err := session.NewRedisStore(cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis session store")
		return store, func() { store.Close() }, nil
	default:
		logger.Info("using in-memory session store")
		return session.NewMemoryStore(), func() {}, nil
	}
}
