// Package gateway holds the real-time channel transports
package gateway

import (
	"context"
	"fmt"

	"github.com/piresc/tukang/internal/pkg/circuitbreaker"
	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/internal/pkg/newrelic"
	"github.com/piresc/tukang/services/booking"
)

// JSONPublisher is satisfied by *nats.Client
type JSONPublisher interface {
	PublishJSON(subject string, v interface{}) error
}

// NATSChannelGW publishes channel events on the shared subject so every
// instance's socket hub receives them. Publishing goes through a circuit
// breaker; an open breaker drops the event.
type NATSChannelGW struct {
	client  JSONPublisher
	breaker *circuitbreaker.Breaker
	subject string
}

// NewNATSChannelGW wraps client with a breaker named after the subject
func NewNATSChannelGW(client JSONPublisher, l *logger.ZapLogger) *NATSChannelGW {
	return &NATSChannelGW{
		client:  client,
		breaker: circuitbreaker.New(circuitbreaker.Defaults(constants.SubjectBookingChannel), l),
		subject: constants.SubjectBookingChannel,
	}
}

// Publish sends event to the channel subject
func (g *NATSChannelGW) Publish(ctx context.Context, event models.ChannelEvent) error {
	return newrelic.WithSegment(ctx, "nats.publish."+event.Event, func() error {
		err := g.breaker.Execute(ctx, func(context.Context) error {
			return g.client.PublishJSON(g.subject, event)
		})
		if err != nil {
			return fmt.Errorf("failed to publish %s: %w", event.Event, err)
		}
		return nil
	})
}

// Deliverer is satisfied by *websocket.Hub
type Deliverer interface {
	Deliver(event models.ChannelEvent) int
}

// LocalChannelGW delivers straight to the in-process hub. Used when a single
// instance serves every socket.
type LocalChannelGW struct {
	hub Deliverer
}

func NewLocalChannelGW(hub Deliverer) *LocalChannelGW {
	return &LocalChannelGW{hub: hub}
}

func (g *LocalChannelGW) Publish(ctx context.Context, event models.ChannelEvent) error {
	n := g.hub.Deliver(event)
	logger.DebugCtx(ctx, "Channel event delivered",
		logger.String("event", event.Event),
		logger.Strings("groups", event.Groups),
		logger.Int("clients", n))
	return nil
}

var (
	_ booking.ChannelGW = (*NATSChannelGW)(nil)
	_ booking.ChannelGW = (*LocalChannelGW)(nil)
)
