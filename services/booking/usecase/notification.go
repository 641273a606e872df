package usecase

import (
	"context"

	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking"
)

const maxNotificationPage = 100

func (u *BookingUC) ListNotifications(ctx context.Context, actor models.Actor, filter models.NotificationListFilter) ([]*models.Notification, error) {
	if actor.ID == "" {
		return nil, booking.ErrUnauthorized
	}
	if filter.Limit < 0 {
		return nil, booking.Validationf("limit must not be negative")
	}
	if filter.Limit == 0 || filter.Limit > maxNotificationPage {
		filter.Limit = maxNotificationPage
	}
	return u.notifications.ListNotifications(ctx, actor.ID, filter)
}

func (u *BookingUC) MarkNotificationRead(ctx context.Context, actor models.Actor, id string) error {
	if actor.ID == "" {
		return booking.ErrUnauthorized
	}
	return u.notifications.MarkNotificationRead(ctx, actor.ID, id)
}

// MarkAllNotificationsRead returns how many notifications changed
func (u *BookingUC) MarkAllNotificationsRead(ctx context.Context, actor models.Actor) (int64, error) {
	if actor.ID == "" {
		return 0, booking.ErrUnauthorized
	}
	return u.notifications.MarkAllNotificationsRead(ctx, actor.ID)
}
