package dto

import (
	"time"

	"github.com/Prince-singh-1619/ticket-booking/internal/domain"
)

// Aggregate outcomes for a multi-seat booking request
const (
	OutcomeAllSuccess = "ALL_SUCCESS"
	OutcomePartial    = "PARTIAL"
	OutcomeAllFailure = "ALL_FAILURE"
)

// BookSeatsRequest represents a request to book seats on a show
type BookSeatsRequest struct {
	ShowID      string `json:"show_id" binding:"required"`
	UserName    string `json:"user_name" binding:"required,max=255"`
	SeatNumbers []int  `json:"seat_numbers" binding:"required,min=1,max=10"`
}

// SeatResult is the per-seat outcome of a booking request
type SeatResult struct {
	SeatNumber int    `json:"seat_number"`
	Success    bool   `json:"success"`
	BookingID  string `json:"booking_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BookSeatsResponse aggregates per-seat outcomes of a booking request
type BookSeatsResponse struct {
	Outcome  string             `json:"outcome"` // ALL_SUCCESS, PARTIAL, ALL_FAILURE
	Message  string             `json:"message"`
	Bookings []*BookingResponse `json:"bookings"`
	Details  []SeatResult       `json:"details"`
}

// CancelBookingRequest carries the user_name ownership proof for cancellation
type CancelBookingRequest struct {
	UserName string `json:"user_name" binding:"required,max=255"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID         string    `json:"id"`
	ShowID     string    `json:"show_id"`
	UserName   string    `json:"user_name"`
	SeatNumber int       `json:"seat_number"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserBookingResponse is a booking with its show's display fields,
// as returned by the user bookings listing
type UserBookingResponse struct {
	BookingResponse
	ShowName      string    `json:"show_name"`
	ShowStartTime time.Time `json:"show_start_time"`
}

// ExpireResponse reports the result of a manual expiry sweep
type ExpireResponse struct {
	ExpiredCount int64 `json:"expired_count"`
}

// BookingFromDomain converts a domain Booking to a BookingResponse
func BookingFromDomain(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:         b.ID,
		ShowID:     b.ShowID,
		UserName:   b.UserName,
		SeatNumber: b.SeatNumber,
		Status:     b.Status.String(),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// UserBookingFromDomain converts a domain BookingWithShow to a UserBookingResponse
func UserBookingFromDomain(b *domain.BookingWithShow) *UserBookingResponse {
	return &UserBookingResponse{
		BookingResponse: *BookingFromDomain(&b.Booking),
		ShowName:        b.ShowName,
		ShowStartTime:   b.ShowStartTime,
	}
}
