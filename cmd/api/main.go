// Command api runs the places gateway HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "places_gateway_backend/internal/http"
	"places_gateway_backend/internal/http/router"
	"places_gateway_backend/internal/places"
	"places_gateway_backend/platform/config"
	"places_gateway_backend/platform/httpkit"
	"places_gateway_backend/platform/logger"
	"places_gateway_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("production").Error("config load failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	val := validator.New()

	placesModule, err := places.NewModule(cfg, val, log)
	if err != nil {
		log.Error("places module init failed", "error", err)
		os.Exit(1)
	}
	log.Info("places provider selected", "provider", placesModule.ProviderName())

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Burst:   httpkit.NewIPRateLimiter(rate.Limit(cfg.BurstPerSecond), cfg.Burst, log),
		Modules: []apphttp.Module{placesModule},
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
