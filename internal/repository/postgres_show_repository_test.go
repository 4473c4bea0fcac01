package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Prince-singh-1619/ticket-booking/internal/domain"
)

func TestPostgresShowRepository_ListWithAvailability(t *testing.T) {
	pool := getPostgresPool(t)
	defer pool.Close()

	showRepo := NewPostgresShowRepository(pool)
	bookingRepo := NewPostgresBookingRepository(pool)
	ctx := context.Background()

	showID := createTestShow(t, pool, 50)
	emptyID := createTestShow(t, pool, 20)

	for _, seat := range []int{1, 2, 3} {
		if _, err := bookingRepo.ReserveSeat(ctx, showID, "alice", seat); err != nil {
			t.Fatalf("ReserveSeat(%d) unexpected error = %v", seat, err)
		}
	}

	shows, err := showRepo.ListWithAvailability(ctx)
	if err != nil {
		t.Fatalf("ListWithAvailability() unexpected error = %v", err)
	}
	if len(shows) != 2 {
		t.Fatalf("ListWithAvailability() returned %d shows, want 2", len(shows))
	}

	byID := make(map[string]*domain.ShowAvailability, len(shows))
	for _, s := range shows {
		byID[s.ID] = s
	}

	booked := byID[showID]
	if booked == nil {
		t.Fatal("ListWithAvailability() missing the booked show")
	}
	if booked.BookedSeats != 3 || booked.AvailableSeats != 47 {
		t.Errorf("booked show counts = %d/%d, want 3/47", booked.BookedSeats, booked.AvailableSeats)
	}

	empty := byID[emptyID]
	if empty == nil {
		t.Fatal("ListWithAvailability() missing the empty show")
	}
	if empty.BookedSeats != 0 || empty.AvailableSeats != 20 {
		t.Errorf("empty show counts = %d/%d, want 0/20", empty.BookedSeats, empty.AvailableSeats)
	}
}

func TestPostgresShowRepository_GetWithBookings(t *testing.T) {
	pool := getPostgresPool(t)
	defer pool.Close()

	showRepo := NewPostgresShowRepository(pool)
	bookingRepo := NewPostgresBookingRepository(pool)
	ctx := context.Background()

	showID := createTestShow(t, pool, 50)

	// Reserve out of order; listing must come back sorted by seat
	for _, seat := range []int{9, 2, 5} {
		if _, err := bookingRepo.ReserveSeat(ctx, showID, "alice", seat); err != nil {
			t.Fatalf("ReserveSeat(%d) unexpected error = %v", seat, err)
		}
	}

	detail, err := showRepo.GetWithBookings(ctx, showID)
	if err != nil {
		t.Fatalf("GetWithBookings() unexpected error = %v", err)
	}
	if detail.Name != "Integration Show" {
		t.Errorf("GetWithBookings() name = %s, want Integration Show", detail.Name)
	}

	wantSeats := []int{2, 5, 9}
	if len(detail.Bookings) != len(wantSeats) {
		t.Fatalf("GetWithBookings() returned %d bookings, want %d", len(detail.Bookings), len(wantSeats))
	}
	for i, seat := range wantSeats {
		if detail.Bookings[i].SeatNumber != seat {
			t.Errorf("booking[%d] seat = %d, want %d", i, detail.Bookings[i].SeatNumber, seat)
		}
	}

	if _, err := showRepo.GetWithBookings(ctx, uuid.New().String()); !errors.Is(err, domain.ErrShowNotFound) {
		t.Errorf("GetWithBookings() unknown show error = %v, want %v", err, domain.ErrShowNotFound)
	}
}

func TestPostgresShowRepository_CreateAndGet(t *testing.T) {
	pool := getPostgresPool(t)
	defer pool.Close()

	showRepo := NewPostgresShowRepository(pool)
	ctx := context.Background()

	now := time.Now()
	show := &domain.Show{
		ID:         uuid.New().String(),
		Name:       "Macbeth",
		StartTime:  now.Add(48 * time.Hour),
		TotalSeats: 75,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := showRepo.Create(ctx, show); err != nil {
		t.Fatalf("Create() unexpected error = %v", err)
	}

	got, err := showRepo.GetByID(ctx, show.ID)
	if err != nil {
		t.Fatalf("GetByID() unexpected error = %v", err)
	}
	if got.Name != show.Name || got.TotalSeats != show.TotalSeats {
		t.Errorf("GetByID() = %+v, want name=%s seats=%d", got, show.Name, show.TotalSeats)
	}

	if _, err := showRepo.GetByID(ctx, uuid.New().String()); !errors.Is(err, domain.ErrShowNotFound) {
		t.Errorf("GetByID() unknown show error = %v, want %v", err, domain.ErrShowNotFound)
	}

	count, err := showRepo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() unexpected error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}
