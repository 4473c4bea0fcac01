package handler

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Prince-singh-1619/ticket-booking/internal/dto"
	"github.com/Prince-singh-1619/ticket-booking/internal/worker"
	"github.com/Prince-singh-1619/ticket-booking/pkg/response"
	"github.com/Prince-singh-1619/ticket-booking/pkg/telemetry"
)

// AdminHandler handles admin HTTP requests
type AdminHandler struct {
	expiryWorker *worker.ExpiryWorker
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(expiryWorker *worker.ExpiryWorker) *AdminHandler {
	return &AdminHandler{expiryWorker: expiryWorker}
}

// ExpireBookings handles POST /api/admin/expire-bookings
// Runs one sweep through the worker's shared expiry path, so a manual
// trigger behaves exactly like a scheduled tick.
func (h *AdminHandler) ExpireBookings(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.admin.expire_bookings")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	count, err := h.expiryWorker.ExpireOnce(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}

	span.SetAttributes(attribute.Int64("expired_count", count))
	span.SetStatus(codes.Ok, "")
	response.Success(c, &dto.ExpireResponse{ExpiredCount: count})
}

// WorkerStats handles GET /api/admin/worker-stats
func (h *AdminHandler) WorkerStats(c *gin.Context) {
	response.Success(c, h.expiryWorker.GetStats())
}
