package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking"
	"github.com/piresc/tukang/services/booking/dispatch"
	"github.com/piresc/tukang/services/booking/notify"
	"golang.org/x/sync/errgroup"
)

// SubmitReview records the customer's single rating of a completed booking and
// refreshes the worker and service aggregates.
func (u *BookingUC) SubmitReview(ctx context.Context, actor models.Actor, id string, req *models.ReviewRequest) (*models.Booking, error) {
	if req == nil {
		return nil, booking.Validationf("request body is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, booking.Validationf("rating must be between 1 and 5")
	}

	current, err := u.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsUser(current.UserID) {
		return nil, fmt.Errorf("booking %s: %w", id, booking.ErrUnauthorized)
	}

	b, err := u.bookings.SetReview(ctx, id, req.Rating, strings.TrimSpace(req.Review), u.now())
	if err != nil {
		return nil, err
	}
	u.invalidateWorker(ctx, b.WorkerID)
	logger.InfoCtx(ctx, "Booking reviewed",
		logger.BookingID(b.ID),
		logger.WorkerID(b.WorkerID),
		logger.Int("rating", req.Rating))

	workerID, serviceID := b.WorkerID, b.ServiceID
	u.followUp(ctx, b.ID, "review.aggregates", func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		if workerID != "" {
			g.Go(func() error { return u.recomputeWorker(gctx, b.ID, workerID) })
		}
		if serviceID != "" {
			g.Go(func() error { return u.recomputeService(gctx, serviceID) })
		}
		return g.Wait()
	})
	if workerID != "" {
		data := notificationData(b)
		data.Extra = map[string]interface{}{"rating": req.Rating}
		u.notifyLater(ctx, b, notify.Worker(workerID), notify.Input{
			Type:    models.NotificationReviewReceived,
			Title:   "New review",
			Message: fmt.Sprintf("You received a %d-star review for %s", req.Rating, b.ServiceName),
			Data:    data,
		})
	}
	return b, nil
}

// recomputeWorkerLater queues a worker stats refresh
func (u *BookingUC) recomputeWorkerLater(ctx context.Context, bookingID, workerID string) {
	u.followUp(ctx, bookingID, "worker.stats", func(ctx context.Context) error {
		return u.recomputeWorker(ctx, bookingID, workerID)
	})
}

// recomputeWorker derives a worker's reputation from their completed bookings
// and announces it.
func (u *BookingUC) recomputeWorker(ctx context.Context, bookingID, workerID string) error {
	raw, err := u.bookings.WorkerBookingStats(ctx, workerID)
	if err != nil {
		return err
	}
	stats := dispatch.ComputeStats(raw.CompletedJobs, raw.Rating, raw.TotalReviews, raw.TotalEarnings)
	if err := u.workers.UpdateWorkerStats(ctx, workerID, stats, u.now()); err != nil {
		return err
	}
	logger.DebugCtx(ctx, "Worker stats recomputed",
		logger.WorkerID(workerID),
		logger.Int("completed_jobs", stats.CompletedJobs),
		logger.String("badge", string(stats.Badge)))
	return u.notifier.Emit(ctx, constants.EventWorkerStatsUpdated,
		WorkerStatsEvent{WorkerID: workerID, WorkerStats: stats}, bookingID, notify.Worker(workerID))
}

func (u *BookingUC) recomputeService(ctx context.Context, serviceID string) error {
	agg, err := u.bookings.ServiceRating(ctx, serviceID)
	if err != nil {
		return err
	}
	return u.services.UpdateServiceRating(ctx, serviceID, agg, u.now())
}
