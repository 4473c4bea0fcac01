package domain

import "time"

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusFailed    BookingStatus = "FAILED"
)

// String returns the status as a string
func (s BookingStatus) String() string {
	return string(s)
}

// Booking represents a claim on one seat of one show by a named party.
// user_name is not an identity: multiple bookings may share it, and it is
// only checked as an ownership proxy on cancellation.
type Booking struct {
	ID         string        `json:"id"`
	ShowID     string        `json:"show_id"`
	UserName   string        `json:"user_name"`
	SeatNumber int           `json:"seat_number"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// IsCancellable reports whether user cancellation is allowed for this booking
func (b *Booking) IsCancellable() bool {
	return b.Status == BookingStatusConfirmed
}

// BookingWithShow is a booking joined with its show's display fields
type BookingWithShow struct {
	Booking
	ShowName      string    `json:"show_name"`
	ShowStartTime time.Time `json:"show_start_time"`
}
