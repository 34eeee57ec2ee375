package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mgrady/pitchplan/pkg/database"
)

type HealthHandler struct {
	db    *database.DB
	redis *redis.Client
}

func NewHealthHandler(db *database.DB, redis *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redis,
	}
}

// GetHealth returns basic health status - always returns 200 if server is running
// This is used for basic liveness probes
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "pitchplan",
		"time":    time.Now().UTC(),
	})
}

// GetReady checks the database and Redis before reporting ready.
// This is used for readiness probes in container orchestration
func (h *HealthHandler) GetReady(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	sqlDB, err := h.db.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		checks["database"] = err.Error()
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	if healthy {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
	} else {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": checks})
	}
}
