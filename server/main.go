package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phambaophuc/resize-studio/internal/config"
	"github.com/phambaophuc/resize-studio/internal/http/handlers"
	"github.com/phambaophuc/resize-studio/internal/http/routes"
	"github.com/phambaophuc/resize-studio/internal/services/processor"
	"github.com/phambaophuc/resize-studio/internal/services/storage"
	"github.com/phambaophuc/resize-studio/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize services
	imageProcessor := processor.NewImageProcessorWithLimits(processor.Limits{
		MaxDimension: cfg.Resize.MaxDimension,
		MaxPixels:    cfg.Resize.MaxPixels,
	})

	store, err := storage.NewStore(cfg, utils.UUIDGenerator{})
	if err != nil {
		logger.Fatal("Failed to initialize storage service",
			zap.String("backend", cfg.Storage.Backend),
			zap.Error(err))
	}

	imageHandler := handlers.NewImageHandler(imageProcessor, store, logger, cfg)

	// Only the local backend is served by this process.
	files, _ := store.(routes.FileServer)
	router := routes.NewRouter(imageHandler, files, logger, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server",
			zap.String("addr", server.Addr),
			zap.String("storage", cfg.Storage.Backend),
			zap.String("allowed_origin", cfg.Server.AllowedOrigin))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
