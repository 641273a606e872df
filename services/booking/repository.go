package booking

import (
	"context"
	"time"

	"github.com/piresc/tukang/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/tukang/services/booking BookingRepo,WorkerRepo,UserRepo,ServiceRepo,NotificationRepo

// BookingRepo is the authoritative booking store. Every conditional method is a
// single atomic write; a zero-row outcome is reported as ErrNotFound when the
// row is missing and as a conflict error otherwise.
type BookingRepo interface {
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID string, status models.BookingStatus) ([]*models.Booking, error)
	ListWorkerBookings(ctx context.Context, workerID string, status models.BookingStatus) ([]*models.Booking, error)

	// AcceptBooking assigns workerID to a booking that is pending, or accepted
	// without a worker. Returns ErrAcceptRaceLost when another worker holds it.
	AcceptBooking(ctx context.Context, id, workerID string, now time.Time) (*models.Booking, error)
	// ReleaseBooking reverts a booking accepted by workerID to pending
	ReleaseBooking(ctx context.Context, id, workerID string, now time.Time) (*models.Booking, error)
	// TransitionStatus moves a booking assigned to workerID from one of from to to
	TransitionStatus(ctx context.Context, id, workerID string, from []models.BookingStatus, to models.BookingStatus, now time.Time) (*models.Booking, error)
	CancelBooking(ctx context.Context, id, reason string, now time.Time) (*models.Booking, error)
	// DeleteBooking removes a booking in one of allowed and returns the row as
	// it was at deletion
	DeleteBooking(ctx context.Context, id string, allowed []models.BookingStatus) (*models.Booking, error)
	SetReview(ctx context.Context, id string, rating int, review string, now time.Time) (*models.Booking, error)

	// ConfirmPayment sets one party's confirmation flag on a completed booking.
	// Returns ErrAlreadyConfirmed when the flag is already set.
	ConfirmPayment(ctx context.Context, id string, party models.PaymentParty, now time.Time) (*models.Booking, error)
	// SettlePayment marks a booking paid when both flags are set and it is still
	// pending. settled is true only for the call that performed the write.
	SettlePayment(ctx context.Context, id string, now time.Time) (b *models.Booking, settled bool, err error)
	// CompleteOnlinePayment sets both flags and paid in one write
	CompleteOnlinePayment(ctx context.Context, id, paymentID string, now time.Time) (*models.Booking, error)

	WorkerBookingStats(ctx context.Context, workerID string) (*models.WorkerStats, error)
	ServiceRating(ctx context.Context, serviceID string) (*models.RatingAggregate, error)
}

// WorkerRepo is the worker store
type WorkerRepo interface {
	GetWorker(ctx context.Context, id string) (*models.Worker, error)
	// ListCandidateWorkers returns active, available workers listing any of
	// categories (lowercase). limit <= 0 means unlimited.
	ListCandidateWorkers(ctx context.Context, categories []string, limit int) ([]*models.Worker, error)
	// ClaimWorker marks an active, available worker busy on bookingID.
	// Returns ErrWorkerBusy when the worker is inactive or holds another booking.
	ClaimWorker(ctx context.Context, workerID, bookingID string, now time.Time) error
	// ReleaseWorker frees a worker if it is still bound to bookingID
	ReleaseWorker(ctx context.Context, workerID, bookingID string, now time.Time) error
	// UpdateWorkerStats writes every reputation field of stats except
	// TotalEarnings, which only AddWorkerRewards changes.
	UpdateWorkerStats(ctx context.Context, workerID string, stats *models.WorkerStats, now time.Time) error
	// AddWorkerRewards atomically increments reward points and earnings and
	// returns the new totals.
	AddWorkerRewards(ctx context.Context, workerID string, points int, earnings float64, now time.Time) (int, float64, error)
	UpdateWorkerLocation(ctx context.Context, workerID string, c models.Coordinates, now time.Time) error
	SetWorkerActive(ctx context.Context, workerID string, active bool, now time.Time) (*models.Worker, error)
}

// UserRepo is the customer store
type UserRepo interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	// AddRewardPoints atomically adds delta (may be negative) and returns the new balance
	AddRewardPoints(ctx context.Context, userID string, delta int, now time.Time) (int, error)
}

// ServiceRepo is the service catalogue store
type ServiceRepo interface {
	UpdateServiceRating(ctx context.Context, serviceID string, agg *models.RatingAggregate, now time.Time) error
}

// NotificationRepo is the durable notification store
type NotificationRepo interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID string, filter models.NotificationListFilter) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error)
}
