package domain

import "time"

// BookingEventType identifies a booking lifecycle event
type BookingEventType string

const (
	BookingEventConfirmed BookingEventType = "booking.confirmed"
	BookingEventCancelled BookingEventType = "booking.cancelled"
	BookingEventsExpired  BookingEventType = "bookings.expired"
)

// BookingEvent is the payload published on booking lifecycle changes
type BookingEvent struct {
	EventID      string           `json:"event_id"`
	EventType    BookingEventType `json:"event_type"`
	OccurredAt   time.Time        `json:"occurred_at"`
	Booking      *Booking         `json:"booking,omitempty"`
	ExpiredCount int64            `json:"expired_count,omitempty"`
}

// Key returns the partition key for the event: bookings for the same show
// stay ordered relative to each other.
func (e *BookingEvent) Key() string {
	if e.Booking != nil {
		return e.Booking.ShowID
	}
	return string(e.EventType)
}

// NewBookingEvent creates a booking lifecycle event
func NewBookingEvent(eventType BookingEventType, booking *Booking, eventID string) *BookingEvent {
	return &BookingEvent{
		EventID:    eventID,
		EventType:  eventType,
		OccurredAt: time.Now(),
		Booking:    booking,
	}
}
