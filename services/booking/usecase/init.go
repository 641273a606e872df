package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	nr "github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/internal/pkg/newrelic"
	"github.com/piresc/tukang/internal/pkg/retry"
	"github.com/piresc/tukang/internal/pkg/taskqueue"
	"github.com/piresc/tukang/services/booking"
	"github.com/piresc/tukang/services/booking/dispatch"
	"github.com/piresc/tukang/services/booking/notify"
)

// Deps are the collaborators of the lifecycle manager. Cache may be nil.
type Deps struct {
	Bookings      booking.BookingRepo
	Workers       booking.WorkerRepo
	Users         booking.UserRepo
	Services      booking.ServiceRepo
	Notifications booking.NotificationRepo
	Gateway       booking.ChannelGW
	Cache         booking.WorkerBookingsCache
	Synonyms      *dispatch.SynonymTable
	Queue         *taskqueue.Queue
}

// BookingUC owns every booking state transition. The primary write of each
// operation runs inline; notifications, events, stat recomputes and ledger
// updates run as follow-up tasks keyed by booking id.
type BookingUC struct {
	bookings      booking.BookingRepo
	workers       booking.WorkerRepo
	users         booking.UserRepo
	services      booking.ServiceRepo
	notifications booking.NotificationRepo
	cache         booking.WorkerBookingsCache
	queue         *taskqueue.Queue

	notifier   *notify.Notifier
	dispatcher *dispatch.Dispatcher

	rewards models.RewardsConfig
	nrApp   *nr.Application
	now     models.Clock
	newID   func() string
}

// Option configures a BookingUC
type Option func(*BookingUC)

// WithClock overrides the time source
func WithClock(c models.Clock) Option {
	return func(u *BookingUC) { u.now = c }
}

// WithIDGenerator overrides booking id generation
func WithIDGenerator(f func() string) Option {
	return func(u *BookingUC) { u.newID = f }
}

// WithNewRelic reports follow-up tasks as background transactions
func WithNewRelic(app *nr.Application) Option {
	return func(u *BookingUC) { u.nrApp = app }
}

// NewBookingUC creates a new booking usecase instance
func NewBookingUC(cfg *models.Config, deps Deps, opts ...Option) *BookingUC {
	u := &BookingUC{
		bookings:      deps.Bookings,
		workers:       deps.Workers,
		users:         deps.Users,
		services:      deps.Services,
		notifications: deps.Notifications,
		cache:         deps.Cache,
		queue:         deps.Queue,
		rewards:       cfg.Rewards,
		now:           models.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.queue == nil {
		u.queue = taskqueue.New(taskqueue.DefaultConfig(), nil)
	}

	u.notifier = notify.NewNotifier(deps.Notifications, deps.Gateway, notify.WithClock(u.now))
	planner := dispatch.NewPlanner(deps.Workers, deps.Users, deps.Synonyms, cfg.Dispatch)
	u.dispatcher = dispatch.NewDispatcher(planner, u.notifier, u.now)
	return u
}

// followUp queues best-effort work for a booking. Missing records are not
// retried.
func (u *BookingUC) followUp(ctx context.Context, bookingID, name string, task taskqueue.Task) {
	err := u.queue.Submit(ctx, bookingID, name, func(ctx context.Context) error {
		ctx, end := newrelic.BackgroundContext(ctx, u.nrApp, "followup/"+name)
		defer end()

		err := task(ctx)
		if errors.Is(err, booking.ErrNotFound) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		logger.WarnCtx(ctx, "Follow-up dropped",
			logger.BookingID(bookingID),
			logger.String("task", name),
			logger.Err(err))
	}
}

// notifyLater queues a durable notification
func (u *BookingUC) notifyLater(ctx context.Context, b *models.Booking, to notify.Target, in notify.Input) {
	u.followUp(ctx, b.ID, "notify."+string(in.Type)+"."+string(to.Role), func(ctx context.Context) error {
		_, err := u.notifier.Notify(ctx, to, in)
		return err
	})
}

// emitLater queues a channel event
func (u *BookingUC) emitLater(ctx context.Context, bookingID, event string, payload interface{}, targets ...notify.Target) {
	u.followUp(ctx, bookingID, "emit."+event, func(ctx context.Context) error {
		return u.notifier.Emit(ctx, event, payload, bookingID, targets...)
	})
}

// dispatchLater queues a dispatch round for b
func (u *BookingUC) dispatchLater(ctx context.Context, b *models.Booking) {
	snapshot := b.Clone()
	u.followUp(ctx, b.ID, "dispatch", func(ctx context.Context) error {
		_, err := u.dispatcher.Dispatch(ctx, snapshot)
		return err
	})
}

// freeWorker makes a worker available again. A failed release is retried in
// the background.
func (u *BookingUC) freeWorker(ctx context.Context, workerID, bookingID string) {
	if workerID == "" {
		return
	}
	err := u.workers.ReleaseWorker(ctx, workerID, bookingID, u.now())
	if err == nil {
		return
	}
	logger.WarnCtx(ctx, "Failed to release worker, retrying in background",
		logger.BookingID(bookingID),
		logger.WorkerID(workerID),
		logger.Err(err))
	u.followUp(ctx, bookingID, "worker.release", func(ctx context.Context) error {
		return u.workers.ReleaseWorker(ctx, workerID, bookingID, u.now())
	})
}

func (u *BookingUC) invalidateWorker(ctx context.Context, workerID string) {
	if u.cache == nil || workerID == "" {
		return
	}
	u.cache.InvalidateWorker(ctx, workerID)
}

func notificationData(b *models.Booking) models.NotificationData {
	return models.NotificationData{
		BookingID:   b.ID,
		Status:      b.Status,
		ServiceName: b.ServiceName,
		WorkerID:    b.WorkerID,
	}
}

var _ booking.BookingUC = (*BookingUC)(nil)
