package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/amexan-storefront/api"
	"github.com/Kariqs/amexan-storefront/configs"
	"github.com/Kariqs/amexan-storefront/initializers"
	"github.com/Kariqs/amexan-storefront/logging"
	"github.com/Kariqs/amexan-storefront/media"
	"github.com/Kariqs/amexan-storefront/middlewares"
	"github.com/Kariqs/amexan-storefront/routes"
	"github.com/Kariqs/amexan-storefront/stores"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	initializers.LoadEnv()

	cfg, err := configs.Load(envOr("STOREFRONT_CONFIG_DIR", "configs"), os.Getenv("STOREFRONT_ENV"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state, closeState, err := initializers.ConnectToStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open state storage", "error", err)
		os.Exit(1)
	}
	defer closeState()

	var uploader stores.AvatarUploader
	if cfg.Media.S3Bucket != "" {
		s3Uploader, err := media.NewS3Uploader(ctx, cfg.Media.S3Bucket, cfg.Media.PublicBaseURL)
		if err != nil {
			logger.Error("avatar uploads disabled", "error", err)
		} else {
			uploader = s3Uploader
		}
	}

	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithTokenStorage(state),
	)
	sf := stores.NewStorefront(stores.Deps{Client: client, Storage: state, Uploader: uploader})
	if err := sf.Initialize(logging.WithCtx(ctx, logger)); err != nil {
		logger.Error("failed to restore storefront state", "error", err)
	}

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	server := gin.New()
	server.Use(gin.Recovery(), middlewares.RequestLogger(logger), middlewares.Metrics())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middlewares.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.Register(server, sf)

	srv := &http.Server{Addr: cfg.App.HTTPAddr, Handler: server}
	go func() {
		logger.Info("storefront listening", "addr", cfg.App.HTTPAddr, "backend", cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
