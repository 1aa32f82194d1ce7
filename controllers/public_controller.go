package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PublicController struct {
	db      Pinger
	version string
	env     string
}

func NewPublicController(db Pinger, version, env string) *PublicController {
	return &PublicController{db: db, version: version, env: env}
}

// Health godoc
// @Summary Health check
// @Tags Public
// @Produce json
// @Success 200 {object} models.Response
// @Failure 503 {object} models.Response
// @Router /public/health [get]
func (ctrl *PublicController) Health(c *gin.Context) {
	status := http.StatusOK
	database := "up"

	if ctrl.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := ctrl.db.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			database = "down"
		}
	}

	c.JSON(status, gin.H{
		"success": status == http.StatusOK,
		"message": "Food Delivery API",
		"data": gin.H{
			"status":   http.StatusText(status),
			"database": database,
			"time":     time.Now().UTC(),
		},
	})
}

// Info godoc
// @Summary API information
// @Tags Public
// @Produce json
// @Success 200 {object} models.Response
// @Router /public/info [get]
func (ctrl *PublicController) Info(c *gin.Context) {
	respondOK(c, http.StatusOK, "Food Delivery API", gin.H{
		"name":        "Food Delivery API",
		"version":     ctrl.version,
		"environment": ctrl.env,
		"docs":        "/swagger/index.html",
		"realtime":    "/ws",
	})
}
