package booking

import (
	"context"

	"github.com/piresc/tukang/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/tukang/services/booking BookingUC

// BookingUC is the booking lifecycle manager
type BookingUC interface {
	CreateBooking(ctx context.Context, actor models.Actor, req *models.CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	ListUserBookings(ctx context.Context, actor models.Actor, filter models.BookingListFilter) ([]*models.Booking, error)
	ListWorkerBookings(ctx context.Context, actor models.Actor, filter models.BookingListFilter) ([]*models.Booking, error)

	AcceptBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	RejectBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, actor models.Actor, id string, req *models.StatusUpdateRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, actor models.Actor, id string, req *models.CancelRequest) (*models.Booking, error)
	DeleteBooking(ctx context.Context, actor models.Actor, id string) error
	SubmitReview(ctx context.Context, actor models.Actor, id string, req *models.ReviewRequest) (*models.Booking, error)

	ConfirmPayment(ctx context.Context, actor models.Actor, id string) (*models.PaymentConfirmation, error)
	ProcessOnlinePayment(ctx context.Context, actor models.Actor, id string, req *models.OnlinePaymentRequest) (*models.PaymentConfirmation, error)

	UpdateWorkerLocation(ctx context.Context, actor models.Actor, req *models.LocationUpdateRequest) error
	SetWorkerAvailability(ctx context.Context, actor models.Actor, req *models.AvailabilityRequest) (*models.Worker, error)

	ListNotifications(ctx context.Context, actor models.Actor, filter models.NotificationListFilter) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, actor models.Actor, id string) error
	MarkAllNotificationsRead(ctx context.Context, actor models.Actor) (int64, error)
}
