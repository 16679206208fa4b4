package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts dispatch and lifecycle outcomes. The lost-race counter is
// the one worth alerting on: a spike means many mechanics are chasing few
// jobs.
type Metrics struct {
	BookingsCreated  prometheus.Counter
	OffersCreated    prometheus.Counter
	OffersAccepted   prometheus.Counter
	OffersRejected   prometheus.Counter
	AcceptConflicts  prometheus.Counter
	BookingsByStatus *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "motofix_bookings_created_total",
			Help: "Bookings created.",
		}),
		OffersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "motofix_offers_created_total",
			Help: "Work offers fanned out to mechanics.",
		}),
		OffersAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "motofix_offers_accepted_total",
			Help: "Offers won by a mechanic.",
		}),
		OffersRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "motofix_offers_rejected_total",
			Help: "Offers explicitly rejected by a mechanic.",
		}),
		AcceptConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "motofix_accept_conflicts_total",
			Help: "Accept attempts that lost the race or hit a terminal offer.",
		}),
		BookingsByStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "motofix_booking_transitions_total",
			Help: "Booking status transitions by target status.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.BookingsCreated,
		m.OffersCreated,
		m.OffersAccepted,
		m.OffersRejected,
		m.AcceptConflicts,
		m.BookingsByStatus,
	)
	return m
}
