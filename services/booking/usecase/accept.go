package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking"
	"github.com/piresc/tukang/services/booking/notify"
)

// AcceptBooking assigns the calling worker to a booking. The worker is claimed
// first, then the booking is taken with a conditional write so at most one
// worker wins; a lost race releases the claim.
func (u *BookingUC) AcceptBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	if actor.Role != models.RoleWorker || actor.ID == "" {
		return nil, fmt.Errorf("only workers accept bookings: %w", booking.ErrUnauthorized)
	}

	worker, err := u.workers.GetWorker(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !worker.IsActive {
		return nil, booking.ErrWorkerBusy
	}

	now := u.now()
	if err := u.workers.ClaimWorker(ctx, actor.ID, id, now); err != nil {
		return nil, err
	}

	b, err := u.bookings.AcceptBooking(ctx, id, actor.ID, now)
	if err != nil {
		if current, ok := u.heldBy(ctx, id, actor.ID); ok {
			return current, nil
		}
		u.freeWorker(ctx, actor.ID, id)
		if errors.Is(err, booking.ErrAcceptRaceLost) {
			logger.InfoCtx(ctx, "Accept race lost",
				logger.BookingID(id),
				logger.WorkerID(actor.ID))
		}
		return nil, err
	}

	u.invalidateWorker(ctx, actor.ID)
	logger.InfoCtx(ctx, "Booking accepted",
		logger.BookingID(b.ID),
		logger.WorkerID(actor.ID))

	data := notificationData(b)
	u.notifyLater(ctx, b, notify.User(b.UserID), notify.Input{
		Type:    models.NotificationBookingAccepted,
		Title:   "Booking accepted",
		Message: fmt.Sprintf("%s accepted your %s booking", worker.Name, b.ServiceName),
		Data:    data,
	})
	u.notifyLater(ctx, b, notify.Worker(actor.ID), notify.Input{
		Type:    models.NotificationBookingAccepted,
		Title:   "Booking assigned",
		Message: fmt.Sprintf("You accepted the %s booking at %s", b.ServiceName, b.Address),
		Data:    data,
	})
	u.emitLater(ctx, b.ID, constants.EventBookingAccepted, bookingEvent(b), notify.User(b.UserID), notify.Worker(actor.ID))
	u.emitLater(ctx, b.ID, constants.EventBookingUpdated, bookingEvent(b), notify.Workers())
	return b, nil
}

// heldBy reports whether the booking is already in workerID's hands, which
// makes a repeated accept from the winner idempotent.
func (u *BookingUC) heldBy(ctx context.Context, id, workerID string) (*models.Booking, bool) {
	current, err := u.bookings.GetBooking(ctx, id)
	if err != nil || current.WorkerID != workerID || current.Status.IsTerminal() {
		return nil, false
	}
	return current, current.Status != models.BookingStatusPending
}

// RejectBooking declines a booking. Declining a pending dispatch only informs
// the customer; the assigned worker rejecting an accepted booking returns it
// to pending and dispatches it again.
func (u *BookingUC) RejectBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	if actor.Role != models.RoleWorker || actor.ID == "" {
		return nil, fmt.Errorf("only workers reject bookings: %w", booking.ErrUnauthorized)
	}

	b, err := u.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case b.Status == models.BookingStatusPending:
		payload := BookingEvent{BookingID: b.ID, Status: b.Status, WorkerID: actor.ID}
		u.emitLater(ctx, b.ID, constants.EventBookingRejected, payload, notify.User(b.UserID))
		u.emitLater(ctx, b.ID, constants.EventBookingUpdated, payload, notify.Workers())
		return b, nil
	case b.Status == models.BookingStatusAccepted && b.WorkerID == actor.ID:
	case b.Status == models.BookingStatusAccepted:
		return nil, fmt.Errorf("booking %s is assigned to another worker: %w", id, booking.ErrUnauthorized)
	default:
		return nil, fmt.Errorf("reject from %s: %w", b.Status, booking.ErrIllegalTransition)
	}

	released, err := u.bookings.ReleaseBooking(ctx, id, actor.ID, u.now())
	if err != nil {
		return nil, err
	}
	u.freeWorker(ctx, actor.ID, id)
	u.invalidateWorker(ctx, actor.ID)
	logger.InfoCtx(ctx, "Booking released by worker",
		logger.BookingID(id),
		logger.WorkerID(actor.ID))

	payload := BookingEvent{BookingID: released.ID, Status: released.Status, WorkerID: actor.ID, Booking: released}
	u.notifyLater(ctx, released, notify.User(released.UserID), notify.Input{
		Type:    models.NotificationBookingRejected,
		Title:   "Finding another worker",
		Message: fmt.Sprintf("Your worker can no longer take the %s booking. We are finding another one.", released.ServiceName),
		Data:    models.NotificationData{BookingID: released.ID, Status: released.Status, ServiceName: released.ServiceName, WorkerID: actor.ID},
	})
	u.emitLater(ctx, released.ID, constants.EventBookingRejected, payload, notify.User(released.UserID))
	u.emitLater(ctx, released.ID, constants.EventBookingUpdated, payload, notify.Workers())
	u.dispatchLater(ctx, released)
	return released, nil
}
