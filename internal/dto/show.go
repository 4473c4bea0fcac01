package dto

import (
	"time"

	"github.com/Prince-singh-1619/ticket-booking/internal/domain"
)

// CreateShowRequest represents a request to create a show
type CreateShowRequest struct {
	Name       string    `json:"name" binding:"required,max=255"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	TotalSeats int       `json:"total_seats" binding:"required"`
}

// ShowResponse represents a show in API responses
type ShowResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	TotalSeats int       `json:"total_seats"`
	CreatedAt  time.Time `json:"created_at"`
}

// ShowAvailabilityResponse is a show with its computed seat counts
type ShowAvailabilityResponse struct {
	ShowResponse
	BookedSeats    int `json:"booked_seats"`
	AvailableSeats int `json:"available_seats"`
}

// ShowDetailResponse is a show with all of its bookings
type ShowDetailResponse struct {
	ShowResponse
	Bookings []*BookingResponse `json:"bookings"`
}

// ShowFromDomain converts a domain Show to a ShowResponse
func ShowFromDomain(s *domain.Show) *ShowResponse {
	return &ShowResponse{
		ID:         s.ID,
		Name:       s.Name,
		StartTime:  s.StartTime,
		TotalSeats: s.TotalSeats,
		CreatedAt:  s.CreatedAt,
	}
}

// ShowAvailabilityFromDomain converts a domain ShowAvailability
func ShowAvailabilityFromDomain(s *domain.ShowAvailability) *ShowAvailabilityResponse {
	return &ShowAvailabilityResponse{
		ShowResponse:   *ShowFromDomain(&s.Show),
		BookedSeats:    s.BookedSeats,
		AvailableSeats: s.AvailableSeats,
	}
}

// ShowDetailFromDomain converts a domain ShowDetail
func ShowDetailFromDomain(s *domain.ShowDetail) *ShowDetailResponse {
	resp := &ShowDetailResponse{
		ShowResponse: *ShowFromDomain(&s.Show),
		Bookings:     make([]*BookingResponse, 0, len(s.Bookings)),
	}
	for _, b := range s.Bookings {
		resp.Bookings = append(resp.Bookings, BookingFromDomain(b))
	}
	return resp
}
