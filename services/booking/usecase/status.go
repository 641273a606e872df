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

// UpdateStatus lets the assigned worker start or complete the job
func (u *BookingUC) UpdateStatus(ctx context.Context, actor models.Actor, id string, req *models.StatusUpdateRequest) (*models.Booking, error) {
	if actor.Role != models.RoleWorker || actor.ID == "" {
		return nil, fmt.Errorf("only workers update booking status: %w", booking.ErrUnauthorized)
	}
	if req == nil {
		return nil, booking.Validationf("request body is required")
	}
	to := req.Status
	if to != models.BookingStatusInProgress && to != models.BookingStatusCompleted {
		return nil, booking.Validationf("status must be %s or %s", models.BookingStatusInProgress, models.BookingStatusCompleted)
	}

	current, err := u.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.WorkerID != actor.ID {
		return nil, fmt.Errorf("booking %s is not assigned to this worker: %w", id, booking.ErrUnauthorized)
	}

	b, err := u.bookings.TransitionStatus(ctx, id, actor.ID, models.SourcesFor(to), to, u.now())
	if err != nil {
		return nil, err
	}
	u.invalidateWorker(ctx, actor.ID)
	logger.InfoCtx(ctx, "Booking status updated",
		logger.BookingID(b.ID),
		logger.WorkerID(actor.ID),
		logger.String("status", string(b.Status)))

	u.emitLater(ctx, b.ID, constants.EventBookingStatusUpdated, bookingEvent(b), notify.User(b.UserID), notify.Worker(actor.ID))

	data := notificationData(b)
	if to == models.BookingStatusInProgress {
		u.notifyLater(ctx, b, notify.User(b.UserID), notify.Input{
			Type:    models.NotificationWorkStarted,
			Title:   "Work started",
			Message: fmt.Sprintf("Work on your %s booking has started", b.ServiceName),
			Data:    data,
		})
		return b, nil
	}

	u.freeWorker(ctx, actor.ID, b.ID)
	u.recomputeWorkerLater(ctx, b.ID, actor.ID)
	u.notifyLater(ctx, b, notify.User(b.UserID), notify.Input{
		Type:    models.NotificationBookingCompleted,
		Title:   "Booking completed",
		Message: fmt.Sprintf("Your %s booking is complete. Please confirm payment and leave a review.", b.ServiceName),
		Data:    data,
	})
	u.notifyLater(ctx, b, notify.Worker(actor.ID), notify.Input{
		Type:    models.NotificationBookingCompleted,
		Title:   "Job completed",
		Message: fmt.Sprintf("You completed the %s booking", b.ServiceName),
		Data:    data,
	})
	return b, nil
}

// CancelBooking cancels a booking on behalf of its customer or its assigned
// worker. The worker id stays on the record.
func (u *BookingUC) CancelBooking(ctx context.Context, actor models.Actor, id string, req *models.CancelRequest) (*models.Booking, error) {
	current, err := u.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsUser(current.UserID) && !(current.HasWorker() && actor.IsWorker(current.WorkerID)) {
		return nil, fmt.Errorf("booking %s: %w", id, booking.ErrUnauthorized)
	}

	var reason string
	if req != nil {
		reason = strings.TrimSpace(req.Reason)
	}
	b, err := u.bookings.CancelBooking(ctx, id, reason, u.now())
	if err != nil {
		return nil, err
	}
	if b.HasWorker() {
		u.freeWorker(ctx, b.WorkerID, b.ID)
		u.invalidateWorker(ctx, b.WorkerID)
	}
	logger.InfoCtx(ctx, "Booking cancelled",
		logger.BookingID(b.ID),
		logger.String("by", string(actor.Role)),
		logger.String("reason", reason))

	payload := bookingEvent(b)
	payload.Reason = reason
	u.notifyLater(ctx, b, notify.User(b.UserID), notify.Input{
		Type:    models.NotificationBookingCancelled,
		Title:   "Booking cancelled",
		Message: fmt.Sprintf("Your %s booking was cancelled", b.ServiceName),
		Data:    notificationData(b),
	})
	u.emitLater(ctx, b.ID, constants.EventBookingCancelled, payload, notify.User(b.UserID))
	if b.HasWorker() {
		u.emitLater(ctx, b.ID, constants.EventBookingCancelled, payload, notify.Worker(b.WorkerID))
	} else {
		u.emitLater(ctx, b.ID, constants.EventBookingUpdated, payload, notify.Workers())
	}
	return b, nil
}

// deletable lists the statuses a customer may delete from
var deletable = []models.BookingStatus{
	models.BookingStatusPending,
	models.BookingStatusAccepted,
	models.BookingStatusCancelled,
}

// DeleteBooking removes a booking owned by the caller. Only the customer keeps
// a durable record of the deletion; the worker is told over the channel.
func (u *BookingUC) DeleteBooking(ctx context.Context, actor models.Actor, id string) error {
	current, err := u.bookings.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsUser(current.UserID) {
		return fmt.Errorf("booking %s: %w", id, booking.ErrUnauthorized)
	}

	// the deleted row may have been accepted after the read above
	b, err := u.bookings.DeleteBooking(ctx, id, deletable)
	if err != nil {
		return err
	}
	if b.Status == models.BookingStatusAccepted && b.HasWorker() {
		u.freeWorker(ctx, b.WorkerID, b.ID)
	}
	u.invalidateWorker(ctx, b.WorkerID)
	logger.InfoCtx(ctx, "Booking deleted",
		logger.BookingID(b.ID),
		logger.String("status", string(b.Status)))

	u.notifyLater(ctx, b, notify.User(b.UserID), notify.Input{
		Type:    models.NotificationBookingDeleted,
		Title:   "Booking deleted",
		Message: fmt.Sprintf("Your %s booking was deleted", b.ServiceName),
		Data:    notificationData(b),
	})
	payload := BookingEvent{BookingID: b.ID, Status: b.Status, WorkerID: b.WorkerID, Deleted: true}
	if b.HasWorker() {
		u.emitLater(ctx, b.ID, constants.EventBookingUpdated, payload, notify.Worker(b.WorkerID))
	} else {
		u.emitLater(ctx, b.ID, constants.EventBookingUpdated, payload, notify.Workers())
	}
	return nil
}
