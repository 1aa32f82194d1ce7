package api

import (
	"context"
	"net/http"
	"sync"

	"food-delivery/app"
	"food-delivery/config"
	"food-delivery/models"

	log "github.com/sirupsen/logrus"
)

var (
	application *app.App
	initErr     error
	once        sync.Once
)

func initApp() {
	once.Do(func() {
		cfg := config.LoadConfig()

		application, initErr = app.New(context.Background(), cfg)
		if initErr != nil {
			log.WithError(initErr).Error("Failed to initialize application")
			return
		}

		go func() {
			if err := application.Run(context.Background()); err != nil {
				log.WithError(err).Error("Notification relay stopped")
			}
		}()
	})
}

// Handler is the serverless entry point. The application is built once per
// instance and reused across invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"success":false,"message":"Service unavailable","error":"` + models.CodeInternal + `"}`))
		return
	}
	application.Router.ServeHTTP(w, r)
}
