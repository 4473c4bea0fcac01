package service

import (
	"context"
	"testing"

	"github.com/Prince-singh-1619/ticket-booking/internal/domain"
)

func TestNewKafkaEventPublisher_ConfigValidation(t *testing.T) {
	ctx := context.Background()

	if _, err := NewKafkaEventPublisher(ctx, nil); err == nil {
		t.Error("NewKafkaEventPublisher(nil) expected an error")
	}

	if _, err := NewKafkaEventPublisher(ctx, &EventPublisherConfig{}); err == nil {
		t.Error("NewKafkaEventPublisher() with no brokers expected an error")
	}
}

func TestNoOpEventPublisher(t *testing.T) {
	pub := NewNoOpEventPublisher()
	ctx := context.Background()
	booking := &domain.Booking{ID: testBookingID, ShowID: testShowID}

	if err := pub.PublishBookingConfirmed(ctx, booking); err != nil {
		t.Errorf("PublishBookingConfirmed() error = %v, want nil", err)
	}
	if err := pub.PublishBookingCancelled(ctx, booking); err != nil {
		t.Errorf("PublishBookingCancelled() error = %v, want nil", err)
	}
	if err := pub.PublishBookingsExpired(ctx, 3); err != nil {
		t.Errorf("PublishBookingsExpired() error = %v, want nil", err)
	}
	if err := pub.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}
