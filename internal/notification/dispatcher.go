package notification

import (
	"context"

	"github.com/gabapcia/bcmonitor/internal/pkg/logger"
	"github.com/gabapcia/bcmonitor/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Storage persists notifications.
type Storage interface {
	StoreNotification(ctx context.Context, n Notification) error
}

// Broker publishes notifications to live subscribers. Send is fire-and-forget:
// delivery failures are handled by the implementation.
type Broker interface {
	Send(ctx context.Context, n Notification)
}

// nopBroker discards every notification.
type nopBroker struct{}

func (nopBroker) Send(context.Context, Notification) {}

const (
	outcomeDispatched = "dispatched"
	outcomeDropped    = "dropped"
)

// Dispatcher stores and broadcasts notifications.
type Dispatcher struct {
	storage Storage
	broker  Broker

	dispatched metric.Int64Counter
}

type config struct {
	broker Broker
}

// Option configures a Dispatcher.
type Option func(*config)

// WithBroker sets the broker used for fan-out. Without it notifications are
// only persisted.
func WithBroker(b Broker) Option {
	return func(c *config) {
		c.broker = b
	}
}

// NewDispatcher creates a Dispatcher persisting through storage.
func NewDispatcher(storage Storage, opts ...Option) *Dispatcher {
	cfg := config{broker: nopBroker{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	counter, _ := telemetry.Meter("notification").Int64Counter(
		"bcmonitor.notifications.dispatched",
		metric.WithDescription("Notifications handled by the dispatcher, by type and outcome."),
	)

	return &Dispatcher{
		storage:    storage,
		broker:     cfg.broker,
		dispatched: counter,
	}
}

// Dispatch persists n and then sends it to the broker. When persistence
// fails the notification is dropped: the error is logged and returned, and n
// is not broadcast.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) error {
	if err := d.storage.StoreNotification(ctx, n); err != nil {
		logger.Error(ctx, "could not store notification",
			"notification.id", n.ID,
			"notification.type", n.Type,
			"wallet.id", n.WalletID,
			"error", err,
		)
		d.count(ctx, n.Type, outcomeDropped)
		return err
	}

	d.broker.Send(ctx, n)
	d.count(ctx, n.Type, outcomeDispatched)
	return nil
}

func (d *Dispatcher) count(ctx context.Context, typ Type, outcome string) {
	if d.dispatched == nil {
		return
	}
	d.dispatched.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", string(typ)),
		attribute.String("outcome", outcome),
	))
}
