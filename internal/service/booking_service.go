package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Prince-singh-1619/ticket-booking/internal/domain"
	"github.com/Prince-singh-1619/ticket-booking/internal/dto"
	"github.com/Prince-singh-1619/ticket-booking/internal/repository"
	"github.com/Prince-singh-1619/ticket-booking/pkg/telemetry"
)

// BookingService defines the interface for booking business logic
type BookingService interface {
	// BookSeats attempts to book each requested seat independently and
	// reports the aggregate outcome
	BookSeats(ctx context.Context, req *dto.BookSeatsRequest) (*dto.BookSeatsResponse, error)

	// CancelBooking cancels a confirmed booking owned by the requesting user
	CancelBooking(ctx context.Context, bookingID string, req *dto.CancelBookingRequest) (*dto.BookingResponse, error)

	// GetUserBookings retrieves all bookings for a user, newest first
	GetUserBookings(ctx context.Context, userName string) ([]*dto.UserBookingResponse, error)
}

// bookingService implements BookingService
type bookingService struct {
	bookingRepo    repository.BookingRepository
	cache          repository.AvailabilityCache
	eventPublisher EventPublisher
	maxSeats       int
}

// BookingServiceConfig contains configuration for booking service
type BookingServiceConfig struct {
	MaxSeatsPerRequest int
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repository.BookingRepository,
	cache repository.AvailabilityCache,
	eventPublisher EventPublisher,
	cfg *BookingServiceConfig,
) BookingService {
	maxSeats := 10
	if cfg != nil && cfg.MaxSeatsPerRequest > 0 {
		maxSeats = cfg.MaxSeatsPerRequest
	}
	// Use NoOpEventPublisher if none provided
	if eventPublisher == nil {
		eventPublisher = NewNoOpEventPublisher()
	}
	return &bookingService{
		bookingRepo:    bookingRepo,
		cache:          cache,
		eventPublisher: eventPublisher,
		maxSeats:       maxSeats,
	}
}

// BookSeats attempts to book each requested seat independently and reports
// the aggregate outcome. Seats are reserved one at a time; an earlier
// failure never aborts the remaining seats.
func (s *bookingService) BookSeats(ctx context.Context, req *dto.BookSeatsRequest) (*dto.BookSeatsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.book_seats")
	defer span.End()

	// Validate request before touching the database
	if req == nil {
		span.SetStatus(codes.Error, "invalid seat count")
		return nil, domain.ErrInvalidSeatCount
	}
	if _, err := uuid.Parse(req.ShowID); err != nil {
		span.SetStatus(codes.Error, "invalid show_id")
		return nil, domain.ErrInvalidShowID
	}
	if !validUserName(req.UserName) {
		span.SetStatus(codes.Error, "invalid user_name")
		return nil, domain.ErrInvalidUserName
	}
	if len(req.SeatNumbers) < 1 || len(req.SeatNumbers) > s.maxSeats {
		span.SetStatus(codes.Error, "invalid seat count")
		return nil, domain.ErrInvalidSeatCount
	}

	span.SetAttributes(
		attribute.String("show_id", req.ShowID),
		attribute.String("user_name", req.UserName),
		attribute.Int("seat_count", len(req.SeatNumbers)),
	)

	resp := &dto.BookSeatsResponse{
		Bookings: make([]*dto.BookingResponse, 0, len(req.SeatNumbers)),
		Details:  make([]dto.SeatResult, 0, len(req.SeatNumbers)),
	}

	succeeded := 0
	for _, seatNumber := range req.SeatNumbers {
		booking, err := s.bookingRepo.ReserveSeat(ctx, req.ShowID, req.UserName, seatNumber)
		if err != nil {
			span.RecordError(err)
			resp.Details = append(resp.Details, dto.SeatResult{
				SeatNumber: seatNumber,
				Success:    false,
				Error:      err.Error(),
			})
			continue
		}

		succeeded++
		resp.Bookings = append(resp.Bookings, dto.BookingFromDomain(booking))
		resp.Details = append(resp.Details, dto.SeatResult{
			SeatNumber: seatNumber,
			Success:    true,
			BookingID:  booking.ID,
		})

		// Publish booking confirmed event (best-effort, never fails the request)
		_ = s.eventPublisher.PublishBookingConfirmed(ctx, booking)
	}

	switch {
	case succeeded == len(req.SeatNumbers):
		resp.Outcome = dto.OutcomeAllSuccess
		resp.Message = "all seats booked"
	case succeeded > 0:
		resp.Outcome = dto.OutcomePartial
		resp.Message = "some seats could not be booked"
	default:
		resp.Outcome = dto.OutcomeAllFailure
		resp.Message = "no seats could be booked"
	}

	if succeeded > 0 && s.cache != nil {
		// Availability changed; drop the cached listing (best-effort)
		_ = s.cache.Invalidate(ctx)
	}

	span.AddEvent("seats_booked", trace.WithAttributes(
		attribute.Int("succeeded", succeeded),
		attribute.Int("requested", len(req.SeatNumbers)),
		attribute.String("outcome", resp.Outcome),
	))
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

// CancelBooking cancels a confirmed booking owned by the requesting user.
// The booking row is deleted, which frees the seat for immediate re-booking.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, req *dto.CancelBookingRequest) (*dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.cancel")
	defer span.End()

	span.SetAttributes(attribute.String("booking_id", bookingID))

	// Validate inputs
	if _, err := uuid.Parse(bookingID); err != nil {
		span.SetStatus(codes.Error, "booking not found")
		return nil, domain.ErrBookingNotFoundOrUnauthorized
	}
	if req == nil || !validUserName(req.UserName) {
		span.SetStatus(codes.Error, "invalid user_name")
		return nil, domain.ErrInvalidUserName
	}

	booking, err := s.bookingRepo.Cancel(ctx, bookingID, req.UserName)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Publish booking cancelled event (best-effort, never fails the request)
	_ = s.eventPublisher.PublishBookingCancelled(ctx, booking)

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}

	span.AddEvent("booking_cancelled", trace.WithAttributes(
		attribute.String("booking_id", booking.ID),
		attribute.String("show_id", booking.ShowID),
		attribute.Int("seat_number", booking.SeatNumber),
	))
	span.SetStatus(codes.Ok, "")
	return dto.BookingFromDomain(booking), nil
}

// GetUserBookings retrieves all bookings for a user, newest first
func (s *bookingService) GetUserBookings(ctx context.Context, userName string) ([]*dto.UserBookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.list_user")
	defer span.End()

	if !validUserName(userName) {
		span.SetStatus(codes.Error, "invalid user_name")
		return nil, domain.ErrInvalidUserName
	}

	span.SetAttributes(attribute.String("user_name", userName))

	bookings, err := s.bookingRepo.GetByUser(ctx, userName)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	responses := make([]*dto.UserBookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = dto.UserBookingFromDomain(b)
	}

	span.SetAttributes(attribute.Int("count", len(responses)))
	span.SetStatus(codes.Ok, "")
	return responses, nil
}

// validUserName reports whether a user name is non-blank and at most 255
// characters. user_name is a display identifier, not an authenticated
// principal.
func validUserName(name string) bool {
	return strings.TrimSpace(name) != "" && len(name) <= 255
}
