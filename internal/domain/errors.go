package domain

import "errors"

// Domain errors
var (
	// Show errors
	ErrShowNotFound      = errors.New("show not found")
	ErrInvalidShowID     = errors.New("invalid show id")
	ErrInvalidShowName   = errors.New("show name must be 1-255 characters")
	ErrInvalidStartTime  = errors.New("start time must be in the future")
	ErrInvalidTotalSeats = errors.New("total seats must be between 1 and 10000")

	// Booking errors
	ErrSeatAlreadyBooked             = errors.New("seat is already booked")
	ErrInvalidSeatNumber             = errors.New("seat number is outside the show's seat range")
	ErrBookingNotFoundOrUnauthorized = errors.New("booking not found or unauthorized")
	ErrBookingNotCancellable         = errors.New("booking cannot be cancelled")
	ErrBookingFailed                 = errors.New("failed to create booking")

	// Validation errors
	ErrInvalidUserName  = errors.New("user name must be 1-255 characters")
	ErrInvalidSeatCount = errors.New("must request between 1 and 10 seats")
)

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidShowID) ||
		errors.Is(err, ErrInvalidShowName) ||
		errors.Is(err, ErrInvalidStartTime) ||
		errors.Is(err, ErrInvalidTotalSeats) ||
		errors.Is(err, ErrInvalidSeatNumber) ||
		errors.Is(err, ErrInvalidUserName) ||
		errors.Is(err, ErrInvalidSeatCount)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrShowNotFound) ||
		errors.Is(err, ErrBookingNotFoundOrUnauthorized)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrSeatAlreadyBooked) ||
		errors.Is(err, ErrBookingNotCancellable)
}
