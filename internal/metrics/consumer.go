package metrics

import (
	"context"

	"motofix/internal/domain"
)

// Consumer feeds lifecycle events into the counters, keeping the
// services free of instrumentation calls for everything except the
// conflict counter.
type Consumer struct {
	m *Metrics
}

func NewConsumer(m *Metrics) *Consumer {
	return &Consumer{m: m}
}

func (c *Consumer) HandleEvent(_ context.Context, ev domain.Event) error {
	switch ev.(type) {
	case domain.BookingCreated:
		c.m.BookingsCreated.Inc()
		c.m.BookingsByStatus.WithLabelValues(string(domain.BookingPending)).Inc()
	case domain.OfferAcceptedEvent:
		c.m.BookingsByStatus.WithLabelValues(string(domain.BookingConfirmed)).Inc()
	case domain.WorkStarted:
		c.m.BookingsByStatus.WithLabelValues(string(domain.BookingInProgress)).Inc()
	case domain.WorkCompleted:
		c.m.BookingsByStatus.WithLabelValues(string(domain.BookingCompleted)).Inc()
	case domain.BookingCancelledEvent:
		c.m.BookingsByStatus.WithLabelValues(string(domain.BookingCancelled)).Inc()
	}
	return nil
}
