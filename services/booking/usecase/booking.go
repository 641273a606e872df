package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking"
	"github.com/piresc/tukang/services/booking/notify"
)

// CreateBooking validates and stores a pending booking, then dispatches it
// in the background. It succeeds even when no worker is reachable.
func (u *BookingUC) CreateBooking(ctx context.Context, actor models.Actor, req *models.CreateBookingRequest) (*models.Booking, error) {
	if actor.Role != models.RoleUser || actor.ID == "" {
		return nil, fmt.Errorf("only customers create bookings: %w", booking.ErrUnauthorized)
	}
	if err := validateCreate(req); err != nil {
		return nil, err
	}
	if req.RewardPointsUsed > 0 {
		user, err := u.users.GetUser(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if user.RewardPoints < req.RewardPointsUsed {
			return nil, booking.Validationf("insufficient reward points: have %d, want %d", user.RewardPoints, req.RewardPointsUsed)
		}
	}

	now := u.now()
	coords := *req.Coordinates
	b := &models.Booking{
		ID:               u.newID(),
		UserID:           actor.ID,
		ServiceID:        req.ServiceID,
		ServiceName:      strings.TrimSpace(req.ServiceName),
		ServiceCategory:  strings.TrimSpace(req.ServiceCategory),
		Description:      req.Description,
		Images:           req.Images,
		Address:          strings.TrimSpace(req.Address),
		Coordinates:      &coords,
		ScheduledDate:    req.ScheduledDate,
		Status:           models.BookingStatusPending,
		Price:            req.Price,
		PaymentStatus:    models.PaymentStatusPending,
		PaymentMethod:    req.PaymentMethod,
		RewardPointsUsed: req.RewardPointsUsed,
		DiscountAmount:   req.DiscountAmount,
		FinalAmount:      req.FinalAmount,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if b.PaymentMethod == "" {
		b.PaymentMethod = models.PaymentMethodCash
	}

	if err := u.bookings.CreateBooking(ctx, b); err != nil {
		return nil, err
	}
	logger.InfoCtx(ctx, "Booking created",
		logger.BookingID(b.ID),
		logger.String("user_id", b.UserID),
		logger.String("category", b.ServiceCategory),
		logger.Bool("scheduled", b.IsScheduled(now)))

	u.notifyLater(ctx, b, notify.User(b.UserID), notify.Input{
		Type:    models.NotificationBookingCreated,
		Title:   "Booking created",
		Message: fmt.Sprintf("We are finding a worker for %s", b.ServiceName),
		Data:    notificationData(b),
	})
	u.emitLater(ctx, b.ID, constants.EventBookingCreated, bookingEvent(b), notify.User(b.UserID))
	u.dispatchLater(ctx, b)
	return b, nil
}

func validateCreate(req *models.CreateBookingRequest) error {
	switch {
	case req == nil:
		return booking.Validationf("request body is required")
	case strings.TrimSpace(req.ServiceName) == "":
		return booking.Validationf("serviceName is required")
	case strings.TrimSpace(req.ServiceCategory) == "":
		return booking.Validationf("serviceCategory is required")
	case strings.TrimSpace(req.Address) == "":
		return booking.Validationf("address is required")
	case req.Coordinates == nil:
		return booking.Validationf("coordinates are required")
	case !req.Coordinates.Valid():
		return booking.Validationf("coordinates are out of range")
	case req.Price < 0:
		return booking.Validationf("price must not be negative")
	case req.RewardPointsUsed < 0:
		return booking.Validationf("rewardPointsUsed must not be negative")
	case req.DiscountAmount < 0 || req.FinalAmount < 0:
		return booking.Validationf("discountAmount and finalAmount must not be negative")
	}
	switch req.PaymentMethod {
	case "", models.PaymentMethodCash, models.PaymentMethodOnline:
	default:
		return booking.Validationf("unknown paymentMethod %q", req.PaymentMethod)
	}
	return nil
}

// GetBooking returns a booking to its customer, its worker, or any worker
// while it is still open for acceptance.
func (u *BookingUC) GetBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	b, err := u.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case actor.IsUser(b.UserID), actor.IsWorker(b.WorkerID):
		return b, nil
	case actor.Role == models.RoleWorker && b.Status == models.BookingStatusPending:
		return b, nil
	}
	return nil, fmt.Errorf("booking %s: %w", id, booking.ErrUnauthorized)
}

func (u *BookingUC) ListUserBookings(ctx context.Context, actor models.Actor, filter models.BookingListFilter) ([]*models.Booking, error) {
	if actor.Role != models.RoleUser || actor.ID == "" {
		return nil, booking.ErrUnauthorized
	}
	if err := validateStatusFilter(filter.Status); err != nil {
		return nil, err
	}
	return u.bookings.ListUserBookings(ctx, actor.ID, filter.Status)
}

// ListWorkerBookings reads through the worker bookings cache
func (u *BookingUC) ListWorkerBookings(ctx context.Context, actor models.Actor, filter models.BookingListFilter) ([]*models.Booking, error) {
	if actor.Role != models.RoleWorker || actor.ID == "" {
		return nil, booking.ErrUnauthorized
	}
	if err := validateStatusFilter(filter.Status); err != nil {
		return nil, err
	}

	statusKey := string(filter.Status)
	var version uint64
	if u.cache != nil {
		if cached, ok := u.cache.Get(ctx, actor.ID, statusKey); ok {
			return cached, nil
		}
		version = u.cache.Version(ctx, actor.ID)
	}

	list, err := u.bookings.ListWorkerBookings(ctx, actor.ID, filter.Status)
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		u.cache.Set(ctx, actor.ID, statusKey, version, list)
	}
	return list, nil
}

func validateStatusFilter(s models.BookingStatus) error {
	if s != "" && !s.IsValid() {
		return booking.Validationf("unknown status %q", s)
	}
	return nil
}
