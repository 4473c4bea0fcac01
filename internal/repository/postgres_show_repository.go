package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Prince-singh-1619/ticket-booking/internal/domain"
	"github.com/Prince-singh-1619/ticket-booking/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PostgresShowRepository implements ShowRepository using PostgreSQL with pgxpool
type PostgresShowRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresShowRepository creates a new PostgresShowRepository
func NewPostgresShowRepository(pool *pgxpool.Pool) *PostgresShowRepository {
	return &PostgresShowRepository{pool: pool}
}

// Create persists a new show
func (r *PostgresShowRepository) Create(ctx context.Context, show *domain.Show) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.show.create")
	defer span.End()

	span.SetAttributes(attribute.String("show_id", show.ID))

	_, err := r.pool.Exec(ctx,
		`INSERT INTO shows (id, name, start_time, total_seats, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		show.ID, show.Name, show.StartTime, show.TotalSeats, show.CreatedAt, show.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create show: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetByID retrieves a show by its ID
func (r *PostgresShowRepository) GetByID(ctx context.Context, id string) (*domain.Show, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.show.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("show_id", id))

	show := &domain.Show{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, start_time, total_seats, created_at, updated_at
		 FROM shows WHERE id = $1`,
		id,
	).Scan(&show.ID, &show.Name, &show.StartTime, &show.TotalSeats, &show.CreatedAt, &show.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrShowNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get show: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return show, nil
}

// ListWithAvailability returns all shows with confirmed and available seat
// counts, ordered by start time. No locks are taken; the counts may lag
// concurrent reservations, which is fine for a listing view.
func (r *PostgresShowRepository) ListWithAvailability(ctx context.Context) ([]*domain.ShowAvailability, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.show.list_with_availability")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, s.start_time, s.total_seats, s.created_at, s.updated_at,
		        COUNT(b.id) FILTER (WHERE b.status = 'CONFIRMED') AS booked_seats
		 FROM shows s
		 LEFT JOIN bookings b ON b.show_id = s.id
		 GROUP BY s.id
		 ORDER BY s.start_time ASC`,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}
	defer rows.Close()

	var shows []*domain.ShowAvailability
	for rows.Next() {
		s := &domain.ShowAvailability{}
		if err := rows.Scan(
			&s.ID, &s.Name, &s.StartTime, &s.TotalSeats,
			&s.CreatedAt, &s.UpdatedAt, &s.BookedSeats,
		); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan show: %w", err)
		}
		s.AvailableSeats = s.TotalSeats - s.BookedSeats
		shows = append(shows, s)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating shows: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(shows)))
	span.SetStatus(codes.Ok, "")
	return shows, nil
}

// GetWithBookings returns a show and all its bookings ordered by seat number
func (r *PostgresShowRepository) GetWithBookings(ctx context.Context, id string) (*domain.ShowDetail, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.show.get_with_bookings")
	defer span.End()

	span.SetAttributes(attribute.String("show_id", id))

	show, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, show_id, user_name, seat_number, status, created_at, updated_at
		 FROM bookings
		 WHERE show_id = $1
		 ORDER BY seat_number ASC`,
		id,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get show bookings: %w", err)
	}
	defer rows.Close()

	detail := &domain.ShowDetail{Show: *show}
	for rows.Next() {
		b := &domain.Booking{}
		var status string
		if err := rows.Scan(
			&b.ID, &b.ShowID, &b.UserName, &b.SeatNumber,
			&status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		b.Status = domain.BookingStatus(status)
		detail.Bookings = append(detail.Bookings, b)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	span.SetAttributes(attribute.Int("bookings", len(detail.Bookings)))
	span.SetStatus(codes.Ok, "")
	return detail, nil
}

// Count returns the number of shows in the catalog
func (r *PostgresShowRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.show.count")
	defer span.End()

	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM shows`).Scan(&count); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, fmt.Errorf("failed to count shows: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return count, nil
}

// Ensure PostgresShowRepository implements ShowRepository
var _ ShowRepository = (*PostgresShowRepository)(nil)
