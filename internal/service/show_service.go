package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Prince-singh-1619/ticket-booking/internal/domain"
	"github.com/Prince-singh-1619/ticket-booking/internal/dto"
	"github.com/Prince-singh-1619/ticket-booking/internal/repository"
	"github.com/Prince-singh-1619/ticket-booking/pkg/telemetry"
)

// ShowService defines the interface for show catalog business logic
type ShowService interface {
	// CreateShow creates a new show in the catalog
	CreateShow(ctx context.Context, req *dto.CreateShowRequest) (*dto.ShowResponse, error)

	// ListShows returns all shows with current seat availability
	ListShows(ctx context.Context) ([]*dto.ShowAvailabilityResponse, error)

	// GetShowDetail returns a show together with all of its bookings
	GetShowDetail(ctx context.Context, showID string) (*dto.ShowDetailResponse, error)
}

// showService implements ShowService
type showService struct {
	showRepo repository.ShowRepository
	cache    repository.AvailabilityCache
	now      func() time.Time
}

// NewShowService creates a new show service. cache may be nil, in which
// case every listing hits the database.
func NewShowService(showRepo repository.ShowRepository, cache repository.AvailabilityCache) ShowService {
	return &showService{
		showRepo: showRepo,
		cache:    cache,
		now:      time.Now,
	}
}

// CreateShow creates a new show in the catalog
func (s *showService) CreateShow(ctx context.Context, req *dto.CreateShowRequest) (*dto.ShowResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.show.create")
	defer span.End()

	if req == nil {
		span.SetStatus(codes.Error, "invalid show name")
		return nil, domain.ErrInvalidShowName
	}

	span.SetAttributes(
		attribute.String("show_name", req.Name),
		attribute.Int("total_seats", req.TotalSeats),
	)

	now := s.now()
	show := &domain.Show{
		ID:         uuid.New().String(),
		Name:       req.Name,
		StartTime:  req.StartTime,
		TotalSeats: req.TotalSeats,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := show.Validate(now); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.showRepo.Create(ctx, show); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if s.cache != nil {
		// New show must appear in the next listing
		_ = s.cache.Invalidate(ctx)
	}

	span.SetAttributes(attribute.String("show_id", show.ID))
	span.SetStatus(codes.Ok, "")
	return dto.ShowFromDomain(show), nil
}

// ListShows returns all shows with current seat availability. Counts are
// served from a short-lived cache when one is configured, so the numbers
// may trail the ledger by a few seconds; the booking path re-checks
// availability authoritatively.
func (s *showService) ListShows(ctx context.Context) ([]*dto.ShowAvailabilityResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.show.list")
	defer span.End()

	shows, err := s.listWithCache(ctx, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	responses := make([]*dto.ShowAvailabilityResponse, len(shows))
	for i, show := range shows {
		responses[i] = dto.ShowAvailabilityFromDomain(show)
	}

	span.SetAttributes(attribute.Int("count", len(responses)))
	span.SetStatus(codes.Ok, "")
	return responses, nil
}

func (s *showService) listWithCache(ctx context.Context, span trace.Span) ([]*domain.ShowAvailability, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err == nil {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return cached, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			// Degraded cache falls through to the database
			span.RecordError(err)
		}
		span.SetAttributes(attribute.Bool("cache_hit", false))
	}

	shows, err := s.showRepo.ListWithAvailability(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, shows)
	}
	return shows, nil
}

// GetShowDetail returns a show together with all of its bookings
func (s *showService) GetShowDetail(ctx context.Context, showID string) (*dto.ShowDetailResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.show.detail")
	defer span.End()

	if _, err := uuid.Parse(showID); err != nil {
		span.SetStatus(codes.Error, "invalid show_id")
		return nil, domain.ErrInvalidShowID
	}

	span.SetAttributes(attribute.String("show_id", showID))

	detail, err := s.showRepo.GetWithBookings(ctx, showID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("booking_count", len(detail.Bookings)))
	span.SetStatus(codes.Ok, "")
	return dto.ShowDetailFromDomain(detail), nil
}
