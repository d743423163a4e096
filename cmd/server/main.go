package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/quadgen/dss-templater/config"
	"github.com/quadgen/dss-templater/internal/handlers"
	"github.com/quadgen/dss-templater/internal/middleware"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)
	zlog.Logger = *logger

	logger.Info().Msg("Starting dss-templater service")

	if cfg.Logging.Level == "info" || cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	fillOpts := handlers.FillOptions{
		UploadDir:      cfg.Storage.UploadDir,
		MaxUploadBytes: cfg.Processing.MaxUploadBytes,
		WarningPreview: cfg.Processing.WarningPreview,
	}
	rateLimit := middleware.RateLimit(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.Processing.RateLimitPerSecond,
		BurstSize:         cfg.Processing.RateLimitBurst,
	})

	fill := router.Group("/fill")
	fill.Use(rateLimit)
	{
		fill.POST("", handlers.Fill(fillOpts))
		fill.POST("/download", handlers.FillDownload(fillOpts))
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsedLevel, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsedLevel
		}
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	logger = logger.Level(level).With().Timestamp().Logger()
	return &logger
}
