package repository

import (
	"context"
	"time"

	"github.com/Prince-singh-1619/ticket-booking/internal/domain"
)

// ShowRepository defines data access for the show catalog
type ShowRepository interface {
	// Create persists a new show
	Create(ctx context.Context, show *domain.Show) error

	// GetByID retrieves a show by its ID
	GetByID(ctx context.Context, id string) (*domain.Show, error)

	// ListWithAvailability returns all shows with confirmed/available seat
	// counts, ordered by start time. Lock-free; the view may be stale.
	ListWithAvailability(ctx context.Context) ([]*domain.ShowAvailability, error)

	// GetWithBookings returns a show and all its bookings ordered by seat number
	GetWithBookings(ctx context.Context, id string) (*domain.ShowDetail, error)

	// Count returns the number of shows in the catalog
	Count(ctx context.Context) (int64, error)
}

// BookingRepository defines data access for the booking ledger
type BookingRepository interface {
	// ReserveSeat atomically reserves one seat on a show. The whole
	// check-then-insert sequence runs in a single serializable transaction
	// holding a row lock on the show.
	ReserveSeat(ctx context.Context, showID, userName string, seatNumber int) (*domain.Booking, error)

	// Cancel deletes a confirmed booking owned by userName and returns it.
	// Deletion frees the seat immediately for re-booking.
	Cancel(ctx context.Context, bookingID, userName string) (*domain.Booking, error)

	// GetByUser returns a user's bookings, newest first, with show fields embedded
	GetByUser(ctx context.Context, userName string) ([]*domain.BookingWithShow, error)

	// ExpirePending transitions PENDING bookings created before cutoff to
	// FAILED and returns how many rows changed. Zero is a normal outcome.
	ExpirePending(ctx context.Context, cutoff time.Time) (int64, error)
}

// AvailabilityCache is a short-TTL read cache over the show listing.
// The authoritative availability check always happens at reservation time,
// so cached reads may be stale.
type AvailabilityCache interface {
	Get(ctx context.Context) ([]*domain.ShowAvailability, error)
	Set(ctx context.Context, shows []*domain.ShowAvailability) error
	Invalidate(ctx context.Context) error
}
