package migrations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedShows populates the catalog with sample shows when it is empty.
// Gated behind a config flag; meant for development environments.
func SeedShows(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	var count int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM shows`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count shows: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now()
	samples := []struct {
		name       string
		startsIn   time.Duration
		totalSeats int
	}{
		{"Avengers: Endgame", 24 * time.Hour, 100},
		{"The Lion King", 48 * time.Hour, 80},
		{"Spider-Man: No Way Home", 72 * time.Hour, 120},
		{"Black Panther: Wakanda Forever", 96 * time.Hour, 90},
		{"Top Gun: Maverick", 120 * time.Hour, 110},
	}

	for _, s := range samples {
		_, err := pool.Exec(ctx,
			`INSERT INTO shows (id, name, start_time, total_seats, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New().String(), s.name, now.Add(s.startsIn), s.totalSeats, now, now,
		)
		if err != nil {
			return 0, fmt.Errorf("seed show %q: %w", s.name, err)
		}
	}

	return len(samples), nil
}
