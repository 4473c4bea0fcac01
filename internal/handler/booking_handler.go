package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Prince-singh-1619/ticket-booking/internal/dto"
	"github.com/Prince-singh-1619/ticket-booking/internal/service"
	"github.com/Prince-singh-1619/ticket-booking/pkg/response"
	"github.com/Prince-singh-1619/ticket-booking/pkg/telemetry"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookSeats handles POST /api/book
// Each requested seat is booked independently; the HTTP status reflects
// the aggregate outcome: 201 when every seat succeeds, 207 when some do,
// 400 when none do. Per-seat results are always in the body.
func (h *BookingHandler) BookSeats(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.book_seats")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.BookSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	span.SetAttributes(
		attribute.String("show_id", req.ShowID),
		attribute.String("user_name", req.UserName),
		attribute.Int("seat_count", len(req.SeatNumbers)),
	)

	result, err := h.bookingService.BookSeats(ctx, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.String("outcome", result.Outcome))
	span.SetStatus(codes.Ok, "")

	switch result.Outcome {
	case dto.OutcomeAllSuccess:
		response.Created(c, result)
	case dto.OutcomePartial:
		response.MultiStatus(c, result)
	default:
		response.Failure(c, http.StatusBadRequest, result)
	}
}

// CancelBooking handles DELETE /api/bookings/:bookingId
// Ownership is asserted by user_name in the request body; a mismatch is
// indistinguishable from a missing booking.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.cancel")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	bookingID := c.Param("bookingId")
	span.SetAttributes(attribute.String("booking_id", bookingID))

	var req dto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.bookingService.CancelBooking(ctx, bookingID, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Success(c, result)
}

// GetUserBookings handles GET /api/bookings/user/:userName
func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.list_user")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userName := c.Param("userName")
	span.SetAttributes(attribute.String("user_name", userName))

	result, err := h.bookingService.GetUserBookings(ctx, userName)
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
