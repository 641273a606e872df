package dispatch

import (
	"context"
	"errors"

	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking/notify"
)

// Emitter publishes channel events
type Emitter interface {
	Emit(ctx context.Context, event string, payload interface{}, bookingID string, targets ...notify.Target) error
}

// Dispatcher plans and delivers booking requests. It never fails: planning
// errors degrade to the fallback broadcast and delivery errors are logged.
type Dispatcher struct {
	planner *Planner
	emitter Emitter
	now     models.Clock
}

func NewDispatcher(planner *Planner, emitter Emitter, now models.Clock) *Dispatcher {
	if now == nil {
		now = models.Now
	}
	return &Dispatcher{planner: planner, emitter: emitter, now: now}
}

// Dispatch delivers b to workers and returns the executed plan, which is
// always non-nil. When a direct send fails and the plan has no broadcast, the
// raw booking is broadcast instead. An error is returned only when nothing
// could be delivered.
func (d *Dispatcher) Dispatch(ctx context.Context, b *models.Booking) (*Plan, error) {
	plan, err := d.planner.Plan(ctx, b, d.now())
	if err != nil {
		logger.WarnCtx(ctx, "Dispatch planning failed, broadcasting booking",
			logger.BookingID(b.ID),
			logger.Err(err))
		plan = FallbackPlan(b, err)
	}

	var (
		errs      []error
		delivered int
	)
	for i, c := range plan.Direct {
		payload := plan.Payload
		payload.Rank = i + 1
		if c.HasDistance() {
			dist := c.DistanceKm
			payload.DistanceFromUser = &dist
		}
		if err := d.emitter.Emit(ctx, constants.EventBookingRequest, payload, b.ID, notify.Direct(c.Worker.ID)); err != nil {
			logger.WarnCtx(ctx, "Failed to send booking request",
				logger.BookingID(b.ID),
				logger.WorkerID(c.Worker.ID),
				logger.Err(err))
			errs = append(errs, err)
			continue
		}
		delivered++
	}

	if len(errs) > 0 && !plan.Broadcast {
		plan.Broadcast = true
		plan.Payload.Fallback = true
	}

	if plan.Broadcast {
		if err := d.emitter.Emit(ctx, constants.EventBookingRequest, plan.Payload, b.ID, notify.Workers()); err != nil {
			logger.WarnCtx(ctx, "Failed to broadcast booking request",
				logger.BookingID(b.ID),
				logger.String("mode", string(plan.Mode)),
				logger.Err(err))
			errs = append(errs, err)
		} else {
			delivered++
		}
	}

	logger.InfoCtx(ctx, "Booking dispatched",
		logger.BookingID(b.ID),
		logger.String("mode", string(plan.Mode)),
		logger.String("area", plan.Payload.AreaHash),
		logger.Int("eligible", len(plan.Ranked)),
		logger.Int("direct", len(plan.Direct)),
		logger.Int("unverified", len(plan.Unverified)))

	if delivered == 0 && len(errs) > 0 {
		return plan, errors.Join(errs...)
	}
	return plan, nil
}
