package room

import (
	"context"
	"log/slog"

	"github.com/secretnick/secretnick/internal/domain/event"
)

// options holds the optional collaborators shared by the use cases in this
// package.
type options struct {
	bus    event.Bus
	logger *slog.Logger
}

// Option configures a use case.
type Option func(*options)

// WithEventBus enables publishing of domain events after successful persistence.
func WithEventBus(bus event.Bus) Option {
	return func(o *options) {
		o.bus = bus
	}
}

// WithLogger sets the logger used for non-fatal reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// publish sends an event on the bus if one is configured. Publishing is best
// effort: the state change has already been persisted, so a failure here is
// logged and never surfaced to the caller.
func (o options) publish(ctx context.Context, evt event.DomainEvent) {
	if o.bus == nil {
		return
	}
	if err := o.bus.Publish(ctx, evt); err != nil {
		o.logger.WarnContext(ctx, "failed to publish event",
			slog.String("event_type", evt.EventType()),
			slog.String("aggregate_id", evt.AggregateID()),
			slog.String("error", err.Error()),
		)
	}
}
