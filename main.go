package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-delivery/app"
	"food-delivery/config"
	_ "food-delivery/docs"

	log "github.com/sirupsen/logrus"
)

// @title Food Delivery API
// @version 1.0
// @description Restaurants, carts, orders and realtime order notifications.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to start application")
	}
	defer application.Close()

	go func() {
		if err := application.Run(ctx); err != nil {
			log.WithError(err).Error("Notification relay stopped")
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{
			"port":    cfg.Port,
			"env":     cfg.AppEnv,
			"swagger": "http://localhost:" + cfg.Port + "/swagger/index.html",
		}).Info("Server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
}
