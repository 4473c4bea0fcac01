package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Prince-singh-1619/ticket-booking/pkg/database"
	pkgredis "github.com/Prince-singh-1619/ticket-booking/pkg/redis"
)

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	db    *database.PostgresDB
	redis *pkgredis.Client
}

// NewHealthHandler creates a new health handler. redis may be nil when
// caching is disabled.
func NewHealthHandler(db *database.PostgresDB, redis *pkgredis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles GET /ready. The service is ready when its backing stores
// answer; a degraded cache does not fail readiness.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()

	checks := gin.H{"database": "ok"}
	status := http.StatusOK

	if err := h.db.HealthCheck(ctx); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	if h.redis != nil {
		checks["redis"] = "ok"
		if err := h.redis.Ping(ctx); err != nil {
			checks["redis"] = err.Error()
		}
	}

	c.JSON(status, gin.H{"status": httpStatusText(status), "checks": checks})
}

func httpStatusText(status int) string {
	if status == http.StatusOK {
		return "ready"
	}
	return "not ready"
}
