package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"bookhub/database"
	"bookhub/internal/api/cache"
	"bookhub/internal/api/handler"
	"bookhub/internal/api/middleware"
	"bookhub/internal/api/repository"
	"bookhub/internal/api/service"
	"bookhub/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load config:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.SeedData {
		if err := database.SeedIfEmpty(db, logger); err != nil {
			logger.Error("could not seed starter data", "error", err)
			os.Exit(1)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		logger.Info("Book cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}
	bookCache := cache.NewBookCache(redisClient, cfg.CacheTTL)

	bookRepo := repository.NewBookRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	rentalRepo := repository.NewRentalRepo(db)
	userRepo := repository.NewUserRepository(db)

	bookService := service.NewBookService(bookRepo, categoryRepo, bookCache)
	categoryService := service.NewCategoryService(categoryRepo)
	rentalService := service.NewRentalService(rentalRepo, bookRepo, time.Now)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTokenTTL)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	r.Use(limiter.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.AuthMiddleware(authService)
	admin := middleware.RequireAdmin()

	api := r.Group("/api")
	handler.NewAuthHandler(authService).RegisterRoutes(api.Group("/auth"))
	handler.NewBookHandler(bookService).RegisterRoutes(api.Group("/books"), auth, admin)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(api.Group("/categories"), auth, admin)
	handler.NewRentalHandler(rentalService).RegisterRoutes(api.Group("/rentals"), auth)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server starting", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
