package nats

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
	natspkg "github.com/piresc/tukang/internal/pkg/nats"
	"github.com/piresc/tukang/services/booking/gateway"
)

// Subscriber registers a handler for a subject
type Subscriber interface {
	Subscribe(subject string, handler natspkg.MessageHandler) (*nats.Subscription, error)
}

// BookingHandler consumes the subjects every instance listens on: channel
// events for the local socket hub and, when enabled, cache invalidations.
type BookingHandler struct {
	client     Subscriber
	hub        gateway.Deliverer
	invalidate natspkg.MessageHandler
	subs       []*nats.Subscription
}

// NewBookingHandler creates a new booking NATS handler. A nil hub skips the
// channel subject and a nil invalidate skips cache invalidations.
func NewBookingHandler(client Subscriber, hub gateway.Deliverer, invalidate natspkg.MessageHandler) *BookingHandler {
	return &BookingHandler{
		client:     client,
		hub:        hub,
		invalidate: invalidate,
		subs:       make([]*nats.Subscription, 0, 2),
	}
}

// InitNATSConsumers subscribes to the booking subjects
func (h *BookingHandler) InitNATSConsumers() error {
	if h.hub != nil {
		sub, err := h.client.Subscribe(constants.SubjectBookingChannel, h.handleChannelEvent)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", constants.SubjectBookingChannel, err)
		}
		h.subs = append(h.subs, sub)
	}

	if h.invalidate != nil {
		sub, err := h.client.Subscribe(constants.SubjectCacheInvalidate, h.invalidate)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", constants.SubjectCacheInvalidate, err)
		}
		h.subs = append(h.subs, sub)
	}

	logger.Info("NATS consumers initialized", logger.Int("subscriptions", len(h.subs)))
	return nil
}

func (h *BookingHandler) handleChannelEvent(data []byte) error {
	var ev models.ChannelEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("failed to decode channel event: %w", err)
	}

	n := h.hub.Deliver(ev)
	logger.Debug("Channel event delivered",
		logger.String("event", ev.Event),
		logger.BookingID(ev.BookingID),
		logger.Int("clients", n))
	return nil
}

// Close removes every subscription
func (h *BookingHandler) Close() {
	for _, sub := range h.subs {
		if err := sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe", logger.String("subject", sub.Subject), logger.Err(err))
		}
	}
	h.subs = nil
}
