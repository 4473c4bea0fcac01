package domain

import (
	"strings"
	"time"
)

// Seat capacity bounds for a show
const (
	MinTotalSeats = 1
	MaxTotalSeats = 10000
)

// Show represents a schedulable event with a fixed seat capacity.
// total_seats is immutable after creation.
type Show struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	TotalSeats int       `json:"total_seats"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate checks show fields at creation time
func (s *Show) Validate(now time.Time) error {
	if strings.TrimSpace(s.Name) == "" || len(s.Name) > 255 {
		return ErrInvalidShowName
	}
	if !s.StartTime.After(now) {
		return ErrInvalidStartTime
	}
	if s.TotalSeats < MinTotalSeats || s.TotalSeats > MaxTotalSeats {
		return ErrInvalidTotalSeats
	}
	return nil
}

// ShowAvailability is a show with its computed booking counts
type ShowAvailability struct {
	Show
	BookedSeats    int `json:"booked_seats"`
	AvailableSeats int `json:"available_seats"`
}

// ShowDetail is a show with all of its bookings, ordered by seat number
type ShowDetail struct {
	Show
	Bookings []*Booking `json:"bookings"`
}
