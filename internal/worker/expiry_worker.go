package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Prince-singh-1619/ticket-booking/internal/repository"
	"github.com/Prince-singh-1619/ticket-booking/pkg/logger"
)

// ExpiryWorkerConfig contains configuration for the expiry worker
type ExpiryWorkerConfig struct {
	// SweepInterval is the interval between sweeps for stale bookings
	SweepInterval time.Duration
	// GraceWindow is how long a PENDING booking may live before a sweep
	// marks it FAILED
	GraceWindow time.Duration
}

// DefaultExpiryWorkerConfig returns default configuration
func DefaultExpiryWorkerConfig() *ExpiryWorkerConfig {
	return &ExpiryWorkerConfig{
		SweepInterval: time.Minute,
		GraceWindow:   2 * time.Minute,
	}
}

// ExpiryWorker periodically marks stale PENDING bookings as FAILED
type ExpiryWorker struct {
	bookingRepo repository.BookingRepository
	publisher   ExpiryPublisher
	config      *ExpiryWorkerConfig
	log         *logger.Logger
	stopCh      chan struct{}
	wg          sync.WaitGroup
	mu          sync.Mutex
	running     bool

	// Stats
	totalExpired  int64
	lastSweepTime time.Time
	lastSweepSize int64
}

// ExpiryPublisher receives sweep outcomes; a nil publisher is allowed
type ExpiryPublisher interface {
	PublishBookingsExpired(ctx context.Context, count int64) error
}

// NewExpiryWorker creates a new expiry worker
func NewExpiryWorker(
	bookingRepo repository.BookingRepository,
	publisher ExpiryPublisher,
	config *ExpiryWorkerConfig,
) *ExpiryWorker {
	if config == nil {
		config = DefaultExpiryWorkerConfig()
	}

	return &ExpiryWorker{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		config:      config,
		log:         logger.Get(),
		stopCh:      make(chan struct{}),
	}
}

// Start starts the expiry worker. Calling Start on a running worker is a
// logged no-op.
func (w *ExpiryWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		w.log.Warn("Expiry worker already running, ignoring start")
		return
	}
	w.running = true
	w.mu.Unlock()

	w.log.Info(fmt.Sprintf("Starting expiry worker (interval: %s, grace: %s)",
		w.config.SweepInterval, w.config.GraceWindow))

	w.wg.Add(1)
	go w.run(ctx)
}

// Stop stops the expiry worker and waits for an in-flight sweep to finish.
// Calling Stop on a stopped worker is a no-op.
func (w *ExpiryWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	w.log.Info("Stopping expiry worker")
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("Expiry worker stopped")
}

// run sweeps once immediately, then on every tick
func (w *ExpiryWorker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.SweepInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep runs one expiry pass; errors are logged and the loop keeps going
func (w *ExpiryWorker) sweep(ctx context.Context) {
	count, err := w.ExpireOnce(ctx)
	if err != nil {
		w.log.Error(fmt.Sprintf("Expiry sweep failed: %v", err))
		return
	}
	if count > 0 {
		w.log.Info(fmt.Sprintf("Expired %d stale bookings", count))
	}
}

// ExpireOnce marks all PENDING bookings older than the grace window as
// FAILED and returns how many rows changed. The periodic loop and the
// manual admin trigger share this path, so both behave identically.
func (w *ExpiryWorker) ExpireOnce(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-w.config.GraceWindow)

	count, err := w.bookingRepo.ExpirePending(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("expire pending bookings: %w", err)
	}

	w.mu.Lock()
	w.totalExpired += count
	w.lastSweepTime = time.Now()
	w.lastSweepSize = count
	w.mu.Unlock()

	if count > 0 && w.publisher != nil {
		// Best-effort event; the sweep already committed
		if pubErr := w.publisher.PublishBookingsExpired(ctx, count); pubErr != nil {
			w.log.Warn(fmt.Sprintf("Failed to publish expiry event: %v", pubErr))
		}
	}

	return count, nil
}

// GetStats returns worker statistics
func (w *ExpiryWorker) GetStats() *ExpiryWorkerStats {
	w.mu.Lock()
	defer w.mu.Unlock()

	return &ExpiryWorkerStats{
		IsRunning:     w.running,
		TotalExpired:  w.totalExpired,
		LastSweepTime: w.lastSweepTime,
		LastSweepSize: w.lastSweepSize,
	}
}

// ExpiryWorkerStats contains worker statistics
type ExpiryWorkerStats struct {
	IsRunning     bool      `json:"is_running"`
	TotalExpired  int64     `json:"total_expired"`
	LastSweepTime time.Time `json:"last_sweep_time"`
	LastSweepSize int64     `json:"last_sweep_size"`
}
