package events

import (
	"context"

	"motofix/internal/domain"

	"github.com/rs/zerolog"
)

// Consumer receives domain events after the emitting transaction has
// committed. Errors are logged and swallowed: a failed side effect must
// not fail the operation that produced the event.
type Consumer interface {
	HandleEvent(ctx context.Context, ev domain.Event) error
}

// Bus dispatches events synchronously to every registered consumer.
// Registration happens during wiring in main; Publish is safe for
// concurrent use afterwards.
type Bus struct {
	consumers []Consumer
	log       zerolog.Logger
}

func NewBus(log zerolog.Logger) *Bus {
	return &Bus{log: log}
}

func (b *Bus) Subscribe(c Consumer) {
	b.consumers = append(b.consumers, c)
}

func (b *Bus) Publish(ctx context.Context, evs ...domain.Event) {
	for _, ev := range evs {
		for _, c := range b.consumers {
			if err := c.HandleEvent(ctx, ev); err != nil {
				b.log.Error().
					Err(err).
					Str("event", ev.EventName()).
					Msg("event consumer failed")
			}
		}
	}
}
