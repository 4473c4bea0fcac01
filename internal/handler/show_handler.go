package handler

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Prince-singh-1619/ticket-booking/internal/dto"
	"github.com/Prince-singh-1619/ticket-booking/internal/service"
	"github.com/Prince-singh-1619/ticket-booking/pkg/response"
	"github.com/Prince-singh-1619/ticket-booking/pkg/telemetry"
)

// ShowHandler handles show catalog HTTP requests
type ShowHandler struct {
	showService service.ShowService
}

// NewShowHandler creates a new show handler
func NewShowHandler(showService service.ShowService) *ShowHandler {
	return &ShowHandler{showService: showService}
}

// CreateShow handles POST /api/shows
func (h *ShowHandler) CreateShow(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.show.create")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.CreateShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	span.SetAttributes(
		attribute.String("show_name", req.Name),
		attribute.Int("total_seats", req.TotalSeats),
	)

	result, err := h.showService.CreateShow(ctx, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.String("show_id", result.ID))
	span.SetStatus(codes.Ok, "")
	response.Created(c, result)
}

// ListShows handles GET /api/shows
func (h *ShowHandler) ListShows(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.show.list")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	result, err := h.showService.ListShows(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("count", len(result)))
	span.SetStatus(codes.Ok, "")
	response.Success(c, result)
}

// GetShowDetail handles GET /api/shows/:id
func (h *ShowHandler) GetShowDetail(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.show.detail")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	showID := c.Param("id")
	span.SetAttributes(attribute.String("show_id", showID))

	result, err := h.showService.GetShowDetail(ctx, showID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Success(c, result)
}
