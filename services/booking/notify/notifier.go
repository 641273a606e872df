package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking"
)

// Input describes a durable notification
type Input struct {
	Type    models.NotificationType
	Title   string
	Message string
	Data    models.NotificationData
}

// Notifier writes durable notifications and publishes channel events
type Notifier struct {
	repo  booking.NotificationRepo
	gw    booking.ChannelGW
	now   models.Clock
	newID func() string
}

// Option configures a Notifier
type Option func(*Notifier)

// WithClock overrides the time source
func WithClock(c models.Clock) Option {
	return func(n *Notifier) { n.now = c }
}

// WithIDGenerator overrides notification id generation
func WithIDGenerator(f func() string) Option {
	return func(n *Notifier) { n.newID = f }
}

func NewNotifier(repo booking.NotificationRepo, gw booking.ChannelGW, opts ...Option) *Notifier {
	n := &Notifier{
		repo:  repo,
		gw:    gw,
		now:   models.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify persists a notification for to and announces it with notification:new.
// Only the durable write can fail the call; the announcement is at-most-once.
func (n *Notifier) Notify(ctx context.Context, to Target, in Input) (*models.Notification, error) {
	if to.ID == "" {
		return nil, fmt.Errorf("notification recipient is required")
	}

	data, err := json.Marshal(in.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification data: %w", err)
	}

	record := &models.Notification{
		ID:        n.newID(),
		UserID:    to.ID,
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		Data:      data,
		CreatedAt: n.now(),
	}
	if err := n.repo.CreateNotification(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if err := n.Emit(ctx, constants.EventNotificationNew, record, in.Data.BookingID, to); err != nil {
		logger.WarnCtx(ctx, "Failed to announce notification",
			logger.String("notification_id", record.ID),
			logger.String("recipient", to.ID),
			logger.BookingID(in.Data.BookingID),
			logger.Err(err))
	}
	return record, nil
}

// Emit publishes one event to the union of the targets' groups
func (n *Notifier) Emit(ctx context.Context, event string, payload interface{}, bookingID string, targets ...Target) error {
	groups := Groups(targets...)
	if len(groups) == 0 {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", event, err)
	}

	return n.gw.Publish(ctx, models.ChannelEvent{
		Groups:     groups,
		Event:      event,
		Payload:    raw,
		BookingID:  bookingID,
		OccurredAt: n.now(),
	})
}
