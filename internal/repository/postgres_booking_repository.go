package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Prince-singh-1619/ticket-booking/internal/domain"
	"github.com/Prince-singh-1619/ticket-booking/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const uniqueViolationCode = "23505"

// PostgresBookingRepository implements BookingRepository using PostgreSQL with pgxpool
type PostgresBookingRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBookingRepository creates a new PostgresBookingRepository
func NewPostgresBookingRepository(pool *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{pool: pool}
}

// ReserveSeat reserves a single seat inside one serializable transaction.
// Check order: show exists (row-locked), seat not taken, seat in range.
// The unique index on (show_id, seat_number) is the last-resort guard if
// isolation is weaker than expected; a violation reports as ErrSeatAlreadyBooked.
func (r *PostgresBookingRepository) ReserveSeat(ctx context.Context, showID, userName string, seatNumber int) (*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.reserve_seat")
	defer span.End()

	span.SetAttributes(
		attribute.String("show_id", showID),
		attribute.Int("seat_number", seatNumber),
	)

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: begin: %v", domain.ErrBookingFailed, err)
	}
	defer tx.Rollback(ctx)

	// Lock the show row for the duration of the check-then-insert sequence
	var totalSeats int
	err = tx.QueryRow(ctx,
		`SELECT total_seats FROM shows WHERE id = $1 FOR UPDATE`,
		showID,
	).Scan(&totalSeats)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "show not found")
			return nil, domain.ErrShowNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: lock show: %v", domain.ErrBookingFailed, err)
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE show_id = $1 AND seat_number = $2)`,
		showID, seatNumber,
	).Scan(&exists)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: check seat: %v", domain.ErrBookingFailed, err)
	}
	if exists {
		span.SetStatus(codes.Error, "seat already booked")
		return nil, domain.ErrSeatAlreadyBooked
	}

	if seatNumber < 1 || seatNumber > totalSeats {
		span.SetStatus(codes.Error, "invalid seat number")
		return nil, domain.ErrInvalidSeatNumber
	}

	now := time.Now()
	booking := &domain.Booking{
		ID:         uuid.New().String(),
		ShowID:     showID,
		UserName:   userName,
		SeatNumber: seatNumber,
		Status:     domain.BookingStatusConfirmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (id, show_id, user_name, seat_number, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		booking.ID, booking.ShowID, booking.UserName, booking.SeatNumber,
		booking.Status.String(), booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			span.SetStatus(codes.Error, "seat already booked")
			return nil, domain.ErrSeatAlreadyBooked
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: insert: %v", domain.ErrBookingFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			span.SetStatus(codes.Error, "seat already booked")
			return nil, domain.ErrSeatAlreadyBooked
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: commit: %v", domain.ErrBookingFailed, err)
	}

	span.SetAttributes(attribute.String("booking_id", booking.ID))
	span.SetStatus(codes.Ok, "")
	return booking, nil
}

// Cancel deletes a confirmed booking after verifying ownership by user_name
func (r *PostgresBookingRepository) Cancel(ctx context.Context, bookingID, userName string) (*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.cancel")
	defer span.End()

	span.SetAttributes(attribute.String("booking_id", bookingID))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to begin cancel transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	booking := &domain.Booking{}
	var status string
	err = tx.QueryRow(ctx,
		`SELECT id, show_id, user_name, seat_number, status, created_at, updated_at
		 FROM bookings
		 WHERE id = $1 AND user_name = $2
		 FOR UPDATE`,
		bookingID, userName,
	).Scan(
		&booking.ID, &booking.ShowID, &booking.UserName, &booking.SeatNumber,
		&status, &booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found or unauthorized")
			return nil, domain.ErrBookingNotFoundOrUnauthorized
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	booking.Status = domain.BookingStatus(status)

	if !booking.IsCancellable() {
		span.SetStatus(codes.Error, "not cancellable")
		return nil, domain.ErrBookingNotCancellable
	}

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to delete booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to commit cancel: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return booking, nil
}

// GetByUser returns a user's bookings newest first, with show name and start time
func (r *PostgresBookingRepository) GetByUser(ctx context.Context, userName string) ([]*domain.BookingWithShow, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.get_by_user")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.show_id, b.user_name, b.seat_number, b.status,
		        b.created_at, b.updated_at, s.name, s.start_time
		 FROM bookings b
		 JOIN shows s ON s.id = b.show_id
		 WHERE b.user_name = $1
		 ORDER BY b.created_at DESC`,
		userName,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get bookings by user: %w", err)
	}
	defer rows.Close()

	var bookings []*domain.BookingWithShow
	for rows.Next() {
		b := &domain.BookingWithShow{}
		var status string
		if err := rows.Scan(
			&b.ID, &b.ShowID, &b.UserName, &b.SeatNumber, &status,
			&b.CreatedAt, &b.UpdatedAt, &b.ShowName, &b.ShowStartTime,
		); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		b.Status = domain.BookingStatus(status)
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(bookings)))
	span.SetStatus(codes.Ok, "")
	return bookings, nil
}

// ExpirePending bulk-transitions stale PENDING bookings to FAILED.
// A single UPDATE keeps the sweep atomic; already-FAILED rows no longer
// match the filter, so re-running is a no-op.
func (r *PostgresBookingRepository) ExpirePending(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.expire_pending")
	defer span.End()

	tag, err := r.pool.Exec(ctx,
		`UPDATE bookings SET status = $1, updated_at = $2
		 WHERE status = $3 AND created_at < $4`,
		domain.BookingStatusFailed.String(), time.Now(),
		domain.BookingStatusPending.String(), cutoff,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, fmt.Errorf("failed to expire pending bookings: %w", err)
	}

	span.SetAttributes(attribute.Int64("expired", tag.RowsAffected()))
	span.SetStatus(codes.Ok, "")
	return tag.RowsAffected(), nil
}

// Ensure PostgresBookingRepository implements BookingRepository
var _ BookingRepository = (*PostgresBookingRepository)(nil)
