package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/internal/pkg/retry"
	"github.com/piresc/tukang/internal/pkg/taskqueue"
	"github.com/piresc/tukang/services/booking"
	"github.com/piresc/tukang/services/booking/cache"
	"github.com/piresc/tukang/services/booking/dispatch"
	"github.com/piresc/tukang/services/booking/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

type recordingGW struct {
	mu       sync.Mutex
	events   []models.ChannelEvent
	failOn   map[string]bool
	failures int
}

var errBrokerDown = errors.New("broker unavailable")

func (g *recordingGW) Publish(_ context.Context, ev models.ChannelEvent) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failOn[ev.Event] {
		g.failures++
		return errBrokerDown
	}
	g.events = append(g.events, ev)
	return nil
}

// failEvents makes every publish of the named events fail
func (g *recordingGW) failEvents(events ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failOn = make(map[string]bool, len(events))
	for _, e := range events {
		g.failOn[e] = true
	}
}

func (g *recordingGW) failureCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failures
}

func (g *recordingGW) named(event string) []models.ChannelEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []models.ChannelEvent
	for _, ev := range g.events {
		if ev.Event == event {
			out = append(out, ev)
		}
	}
	return out
}

type scenario struct {
	uc    *BookingUC
	store *memory.Store
	gw    *recordingGW
	queue *taskqueue.Queue
	cache *cache.Memory
}

var (
	customer = models.Actor{ID: "u-1", Role: models.RoleUser}
	gold     = models.Actor{ID: "w-gold", Role: models.RoleWorker}
	iron     = models.Actor{ID: "w-iron", Role: models.RoleWorker}
)

func testWorker(id string, badge models.Badge, kmNorth float64) *models.Worker {
	return &models.Worker{
		ID:                         id,
		Name:                       "Worker " + id,
		IsActive:                   true,
		Status:                     models.WorkerStatusAvailable,
		Badge:                      badge,
		Rating:                     4,
		ServiceCategories:          []string{"Carpentry"},
		CategoryVerificationStatus: map[string]models.Verification{"carpentry": models.SimpleVerification(models.VerificationVerified)},
		CurrentLocation:            &models.Coordinates{Latitude: -6.2 + kmNorth/111.195, Longitude: 106.8},
	}
}

// newScenario wires the usecase over a seeded memory store. wrap, when given,
// replaces the booking repository seen by the usecase.
func newScenario(t *testing.T, wrap ...func(*memory.Store) booking.BookingRepo) *scenario {
	t.Helper()
	store := memory.NewStore()
	store.PutUser(&models.User{ID: "u-1", FirstName: "Sari", LastName: "Dewi", RewardPoints: 50})
	store.PutService(&models.Service{ID: "svc-1", Name: "Door repair", Category: "carpenter"})
	store.PutWorker(testWorker("w-iron", models.BadgeIron, 1))
	store.PutWorker(testWorker("w-gold", models.BadgeGold, 5))

	queue := taskqueue.New(taskqueue.Config{
		Workers: 4,
		Retry:   retry.Config{MaxRetries: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1},
	}, nil)
	t.Cleanup(queue.Close)

	var seq int64
	gw := &recordingGW{}
	mc := cache.NewMemory(time.Minute, 100, testClock)
	cfg := &models.Config{
		Dispatch: models.DispatchConfig{TopN: 3},
		Rewards:  models.RewardsConfig{PointsPerUnit: 10, CurrencyUnit: 100, WorkerBase: 10},
	}
	var bookings booking.BookingRepo = store
	for _, w := range wrap {
		bookings = w(store)
	}
	uc := NewBookingUC(cfg, Deps{
		Bookings:      bookings,
		Workers:       store,
		Users:         store,
		Services:      store,
		Notifications: store,
		Gateway:       gw,
		Cache:         mc,
		Synonyms:      dispatch.NewSynonymTable(map[string][]string{"carpenter": {"carpentry"}}),
		Queue:         queue,
	},
		WithClock(testClock),
		WithIDGenerator(func() string { return fmt.Sprintf("b-%d", atomic.AddInt64(&seq, 1)) }),
	)
	return &scenario{uc: uc, store: store, gw: gw, queue: queue, cache: mc}
}

func createRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		ServiceID:       "svc-1",
		ServiceName:     "Door repair",
		ServiceCategory: "Carpenter",
		Address:         "Jl. Sudirman 1",
		Coordinates:     &models.Coordinates{Latitude: -6.2, Longitude: 106.8},
		Price:           250,
	}
}

func (s *scenario) create(t *testing.T, req *models.CreateBookingRequest) *models.Booking {
	t.Helper()
	b, err := s.uc.CreateBooking(context.Background(), customer, req)
	require.NoError(t, err)
	s.queue.Wait()
	return b
}

// completed drives a booking through accept, start and completion by the gold worker
func (s *scenario) completed(t *testing.T, req *models.CreateBookingRequest) *models.Booking {
	t.Helper()
	ctx := context.Background()
	b := s.create(t, req)
	_, err := s.uc.AcceptBooking(ctx, gold, b.ID)
	require.NoError(t, err)
	_, err = s.uc.UpdateStatus(ctx, gold, b.ID, &models.StatusUpdateRequest{Status: models.BookingStatusInProgress})
	require.NoError(t, err)
	done, err := s.uc.UpdateStatus(ctx, gold, b.ID, &models.StatusUpdateRequest{Status: models.BookingStatusCompleted})
	require.NoError(t, err)
	s.queue.Wait()
	return done
}

func (s *scenario) notificationTypes(t *testing.T, userID string) []models.NotificationType {
	t.Helper()
	list, err := s.store.ListNotifications(context.Background(), userID, models.NotificationListFilter{})
	require.NoError(t, err)
	var types []models.NotificationType
	for _, n := range list {
		types = append(types, n.Type)
	}
	return types
}

func TestScenario_CreateDispatchesGoldFirst(t *testing.T) {
	s := newScenario(t)

	b := s.create(t, createRequest())

	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, models.PaymentMethodCash, b.PaymentMethod)

	requests := s.gw.named(constants.EventBookingRequest)
	require.Len(t, requests, 3)
	assert.Equal(t, []string{"w-gold"}, requests[0].Groups)
	assert.Equal(t, []string{"w-iron"}, requests[1].Groups)
	assert.Equal(t, []string{"worker"}, requests[2].Groups)

	var payload dispatch.RequestPayload
	require.NoError(t, json.Unmarshal(requests[0].Payload, &payload))
	assert.Equal(t, 1, payload.Rank)
	assert.Equal(t, "Sari Dewi", payload.CustomerName)

	created := s.gw.named(constants.EventBookingCreated)
	require.Len(t, created, 1)
	assert.Equal(t, []string{"u-1", "user"}, created[0].Groups)
	assert.Contains(t, s.notificationTypes(t, "u-1"), models.NotificationBookingCreated)
}

func TestScenario_ConcurrentAcceptHasOneWinner(t *testing.T) {
	s := newScenario(t)
	const contenders = 16
	for i := 0; i < contenders; i++ {
		s.store.PutWorker(testWorker(fmt.Sprintf("w-%02d", i), models.BadgeSilver, float64(i)))
	}
	b := s.create(t, createRequest())

	var (
		wg     sync.WaitGroup
		wins   int64
		lost   int64
		winner atomic.Value
	)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := s.uc.AcceptBooking(context.Background(), models.Actor{ID: id, Role: models.RoleWorker}, b.ID)
			switch {
			case err == nil:
				atomic.AddInt64(&wins, 1)
				winner.Store(id)
			case errors.Is(err, booking.ErrAcceptRaceLost):
				atomic.AddInt64(&lost, 1)
			}
		}(fmt.Sprintf("w-%02d", i))
	}
	wg.Wait()
	s.queue.Wait()

	assert.EqualValues(t, 1, wins)
	assert.EqualValues(t, contenders-1, lost)

	stored, err := s.store.GetBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAccepted, stored.Status)
	assert.Equal(t, winner.Load(), stored.WorkerID)

	for i := 0; i < contenders; i++ {
		w, err := s.store.GetWorker(context.Background(), fmt.Sprintf("w-%02d", i))
		require.NoError(t, err)
		if w.ID == stored.WorkerID {
			assert.Equal(t, models.WorkerStatusBusy, w.Status)
			assert.Equal(t, b.ID, w.CurrentBookingID)
			continue
		}
		assert.Equal(t, models.WorkerStatusAvailable, w.Status, w.ID)
		assert.Empty(t, w.CurrentBookingID, w.ID)
	}
}

func TestScenario_RepeatedAcceptByHolderIsIdempotent(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	b := s.create(t, createRequest())

	_, err := s.uc.AcceptBooking(ctx, gold, b.ID)
	require.NoError(t, err)
	again, err := s.uc.AcceptBooking(ctx, gold, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "w-gold", again.WorkerID)

	w, err := s.store.GetWorker(ctx, "w-gold")
	require.NoError(t, err)
	assert.Equal(t, models.WorkerStatusBusy, w.Status)

	_, err = s.uc.AcceptBooking(ctx, iron, b.ID)
	assert.ErrorIs(t, err, booking.ErrAcceptRaceLost)
}

func TestScenario_AcceptInvalidatesWorkerCache(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	b := s.create(t, createRequest())

	before, err := s.uc.ListWorkerBookings(ctx, gold, models.BookingListFilter{})
	require.NoError(t, err)
	assert.Empty(t, before)
	assert.Equal(t, 1, s.cache.Len())

	_, err = s.uc.AcceptBooking(ctx, gold, b.ID)
	require.NoError(t, err)

	after, err := s.uc.ListWorkerBookings(ctx, gold, models.BookingListFilter{})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, b.ID, after[0].ID)
}

// acceptDuringList accepts a booking after the worker's list was read but
// before the usecase caches it
type acceptDuringList struct {
	*memory.Store
	uc        *BookingUC
	bookingID string
}

func (r *acceptDuringList) ListWorkerBookings(ctx context.Context, workerID string, status models.BookingStatus) ([]*models.Booking, error) {
	list, err := r.Store.ListWorkerBookings(ctx, workerID, status)
	if r.bookingID != "" {
		id := r.bookingID
		r.bookingID = ""
		if _, aerr := r.uc.AcceptBooking(ctx, models.Actor{ID: workerID, Role: models.RoleWorker}, id); aerr != nil {
			return nil, aerr
		}
	}
	return list, err
}

func TestScenario_ListRacingInvalidationIsNotCached(t *testing.T) {
	repo := &acceptDuringList{}
	s := newScenario(t, func(store *memory.Store) booking.BookingRepo {
		repo.Store = store
		return repo
	})
	repo.uc = s.uc
	ctx := context.Background()
	b := s.create(t, createRequest())
	repo.bookingID = b.ID

	stale, err := s.uc.ListWorkerBookings(ctx, gold, models.BookingListFilter{})
	require.NoError(t, err)
	assert.Empty(t, stale)
	assert.Equal(t, 0, s.cache.Len())

	fresh, err := s.uc.ListWorkerBookings(ctx, gold, models.BookingListFilter{})
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, b.ID, fresh[0].ID)
}

func TestScenario_RejectReturnsBookingToPendingAndRedispatches(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	b := s.create(t, createRequest())
	firstRound := len(s.gw.named(constants.EventBookingRequest))

	_, err := s.uc.AcceptBooking(ctx, gold, b.ID)
	require.NoError(t, err)

	_, err = s.uc.RejectBooking(ctx, iron, b.ID)
	assert.ErrorIs(t, err, booking.ErrUnauthorized)

	released, err := s.uc.RejectBooking(ctx, gold, b.ID)
	require.NoError(t, err)
	s.queue.Wait()

	assert.Equal(t, models.BookingStatusPending, released.Status)
	assert.Empty(t, released.WorkerID)

	w, err := s.store.GetWorker(ctx, "w-gold")
	require.NoError(t, err)
	assert.Equal(t, models.WorkerStatusAvailable, w.Status)

	assert.Len(t, s.gw.named(constants.EventBookingRequest), 2*firstRound)
	assert.Contains(t, s.notificationTypes(t, "u-1"), models.NotificationBookingRejected)
}

func TestScenario_RejectPendingOnlyInformsCustomer(t *testing.T) {
	s := newScenario(t)
	b := s.create(t, createRequest())

	got, err := s.uc.RejectBooking(context.Background(), iron, b.ID)
	require.NoError(t, err)
	s.queue.Wait()

	assert.Equal(t, models.BookingStatusPending, got.Status)
	rejected := s.gw.named(constants.EventBookingRejected)
	require.Len(t, rejected, 1)
	assert.Equal(t, []string{"u-1", "user"}, rejected[0].Groups)
	assert.NotContains(t, s.notificationTypes(t, "u-1"), models.NotificationBookingRejected)
}

func TestScenario_CancelKeepsWorkerAndFreesThem(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	b := s.create(t, createRequest())
	_, err := s.uc.AcceptBooking(ctx, gold, b.ID)
	require.NoError(t, err)

	_, err = s.uc.CancelBooking(ctx, iron, b.ID, nil)
	assert.ErrorIs(t, err, booking.ErrUnauthorized)

	cancelled, err := s.uc.CancelBooking(ctx, customer, b.ID, &models.CancelRequest{Reason: " changed my mind "})
	require.NoError(t, err)
	s.queue.Wait()

	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, "w-gold", cancelled.WorkerID)
	assert.Equal(t, "changed my mind", cancelled.CancellationReason)

	w, err := s.store.GetWorker(ctx, "w-gold")
	require.NoError(t, err)
	assert.Equal(t, models.WorkerStatusAvailable, w.Status)

	assert.Contains(t, s.notificationTypes(t, "u-1"), models.NotificationBookingCancelled)
	assert.NotContains(t, s.notificationTypes(t, "w-gold"), models.NotificationBookingCancelled)
	assert.Len(t, s.gw.named(constants.EventBookingCancelled), 2)

	_, err = s.uc.CancelBooking(ctx, customer, b.ID, nil)
	assert.ErrorIs(t, err, booking.ErrIllegalTransition)
}

func TestScenario_DeleteRules(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	started := s.create(t, createRequest())
	_, err := s.uc.AcceptBooking(ctx, gold, started.ID)
	require.NoError(t, err)
	_, err = s.uc.UpdateStatus(ctx, gold, started.ID, &models.StatusUpdateRequest{Status: models.BookingStatusInProgress})
	require.NoError(t, err)

	err = s.uc.DeleteBooking(ctx, customer, started.ID)
	assert.ErrorIs(t, err, booking.ErrIllegalTransition)
	_, err = s.store.GetBooking(ctx, started.ID)
	assert.NoError(t, err)

	pending := s.create(t, createRequest())
	assert.ErrorIs(t, s.uc.DeleteBooking(ctx, gold, pending.ID), booking.ErrUnauthorized)
	require.NoError(t, s.uc.DeleteBooking(ctx, customer, pending.ID))
	s.queue.Wait()

	_, err = s.store.GetBooking(ctx, pending.ID)
	assert.ErrorIs(t, err, booking.ErrNotFound)
	assert.Contains(t, s.notificationTypes(t, "u-1"), models.NotificationBookingDeleted)
	assert.NotContains(t, s.notificationTypes(t, "w-gold"), models.NotificationBookingDeleted)

	updates := s.gw.named(constants.EventBookingUpdated)
	require.NotEmpty(t, updates)
	var last BookingEvent
	require.NoError(t, json.Unmarshal(updates[len(updates)-1].Payload, &last))
	assert.True(t, last.Deleted)
	assert.Equal(t, pending.ID, last.BookingID)
}

// acceptOnDelete lets a worker win the booking between the usecase's read and
// the delete write
type acceptOnDelete struct {
	*memory.Store
	workerID string
}

func (r *acceptOnDelete) DeleteBooking(ctx context.Context, id string, allowed []models.BookingStatus) (*models.Booking, error) {
	if err := r.ClaimWorker(ctx, r.workerID, id, testNow); err != nil {
		return nil, err
	}
	if _, err := r.AcceptBooking(ctx, id, r.workerID, testNow); err != nil {
		return nil, err
	}
	return r.Store.DeleteBooking(ctx, id, allowed)
}

func TestScenario_DeleteFreesWorkerWhoAcceptedConcurrently(t *testing.T) {
	s := newScenario(t, func(store *memory.Store) booking.BookingRepo {
		return &acceptOnDelete{Store: store, workerID: "w-gold"}
	})
	ctx := context.Background()

	b := s.create(t, createRequest())
	require.NoError(t, s.uc.DeleteBooking(ctx, customer, b.ID))
	s.queue.Wait()

	_, err := s.store.GetBooking(ctx, b.ID)
	assert.ErrorIs(t, err, booking.ErrNotFound)

	w, err := s.store.GetWorker(ctx, "w-gold")
	require.NoError(t, err)
	assert.Equal(t, models.WorkerStatusAvailable, w.Status)
	assert.Empty(t, w.CurrentBookingID)

	updates := s.gw.named(constants.EventBookingUpdated)
	require.NotEmpty(t, updates)
	var last BookingEvent
	require.NoError(t, json.Unmarshal(updates[len(updates)-1].Payload, &last))
	assert.True(t, last.Deleted)
	assert.Equal(t, "w-gold", last.WorkerID)

	next := s.create(t, createRequest())
	_, err = s.uc.AcceptBooking(ctx, gold, next.ID)
	assert.NoError(t, err)
}

func TestScenario_CompletionRecomputesWorkerStats(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	done := s.completed(t, createRequest())

	assert.Equal(t, models.BookingStatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	w, err := s.store.GetWorker(ctx, "w-gold")
	require.NoError(t, err)
	assert.Equal(t, models.WorkerStatusAvailable, w.Status)
	assert.Equal(t, 1, w.CompletedJobs)
	assert.Equal(t, models.BadgeIron, w.Badge)
	assert.Greater(t, w.RankScore, 0.0)

	assert.Len(t, s.gw.named(constants.EventWorkerStatsUpdated), 1)
	assert.Contains(t, s.notificationTypes(t, "u-1"), models.NotificationBookingCompleted)
	assert.Contains(t, s.notificationTypes(t, "w-gold"), models.NotificationBookingCompleted)

	_, err = s.uc.UpdateStatus(ctx, gold, done.ID, &models.StatusUpdateRequest{Status: models.BookingStatusInProgress})
	assert.ErrorIs(t, err, booking.ErrIllegalTransition)
}

func TestScenario_ReviewUpdatesAggregatesOnce(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	done := s.completed(t, createRequest())

	reviewed, err := s.uc.SubmitReview(ctx, customer, done.ID, &models.ReviewRequest{Rating: 4, Review: "tidy work"})
	require.NoError(t, err)
	s.queue.Wait()

	require.NotNil(t, reviewed.Rating)
	assert.Equal(t, 4, *reviewed.Rating)

	svc, err := s.store.GetService(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, svc.Rating)
	assert.Equal(t, 1, svc.ReviewCount)

	w, err := s.store.GetWorker(ctx, "w-gold")
	require.NoError(t, err)
	assert.Equal(t, 4.0, w.Rating)
	assert.Equal(t, 1, w.TotalReviews)
	assert.Contains(t, s.notificationTypes(t, "w-gold"), models.NotificationReviewReceived)

	_, err = s.uc.SubmitReview(ctx, customer, done.ID, &models.ReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, booking.ErrAlreadyReviewed)
}

func TestScenario_CashPaymentCreditsRewardsOnce(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	req := createRequest()
	req.RewardPointsUsed = 5
	done := s.completed(t, req)

	var (
		wg      sync.WaitGroup
		settled int64
	)
	for _, actor := range []models.Actor{customer, gold} {
		wg.Add(1)
		go func(actor models.Actor) {
			defer wg.Done()
			res, err := s.uc.ConfirmPayment(ctx, actor, done.ID)
			if assert.NoError(t, err) && res.Settled {
				atomic.AddInt64(&settled, 1)
			}
		}(actor)
	}
	wg.Wait()
	s.queue.Wait()

	assert.EqualValues(t, 1, settled)

	paid, err := s.store.GetBooking(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaymentConfirmedAt)

	user, err := s.store.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 50+10*2-5, user.RewardPoints)

	w, err := s.store.GetWorker(ctx, "w-gold")
	require.NoError(t, err)
	assert.Equal(t, 10+2, w.RewardPoints)
	assert.Equal(t, 250.0, w.TotalEarnings)

	assert.Len(t, s.gw.named(constants.EventRewardPointsUpdated), 1)
	assert.Len(t, s.gw.named(constants.EventWorkerRewardPointsUpdated), 1)
	assert.Contains(t, s.notificationTypes(t, "u-1"), models.NotificationPaymentConfirmed)
	assert.Contains(t, s.notificationTypes(t, "w-gold"), models.NotificationPaymentConfirmed)

	_, err = s.uc.ConfirmPayment(ctx, customer, done.ID)
	assert.ErrorIs(t, err, booking.ErrAlreadyConfirmed)
}

func TestScenario_RewardPublishFailureDoesNotRecredit(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	done := s.completed(t, createRequest())
	s.gw.failEvents(constants.EventRewardPointsUpdated, constants.EventWorkerRewardPointsUpdated)

	_, err := s.uc.ConfirmPayment(ctx, customer, done.ID)
	require.NoError(t, err)
	res, err := s.uc.ConfirmPayment(ctx, gold, done.ID)
	require.NoError(t, err)
	require.True(t, res.Settled)
	s.queue.Wait()

	assert.GreaterOrEqual(t, s.gw.failureCount(), 2)

	user, err := s.store.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 50+10*2, user.RewardPoints)

	w, err := s.store.GetWorker(ctx, "w-gold")
	require.NoError(t, err)
	assert.Equal(t, 10+2, w.RewardPoints)
	assert.Equal(t, 250.0, w.TotalEarnings)
}

// flakySettle fails the next n settle writes
type flakySettle struct {
	*memory.Store
	n int32
}

func (r *flakySettle) SettlePayment(ctx context.Context, id string, now time.Time) (*models.Booking, bool, error) {
	if atomic.AddInt32(&r.n, -1) >= 0 {
		return nil, false, errors.New("connection reset")
	}
	return r.Store.SettlePayment(ctx, id, now)
}

func TestScenario_RepeatedConfirmSettlesAfterFailedSettle(t *testing.T) {
	repo := &flakySettle{}
	s := newScenario(t, func(store *memory.Store) booking.BookingRepo {
		repo.Store = store
		return repo
	})
	ctx := context.Background()
	done := s.completed(t, createRequest())

	res, err := s.uc.ConfirmPayment(ctx, customer, done.ID)
	require.NoError(t, err)
	assert.False(t, res.Settled)

	atomic.StoreInt32(&repo.n, 1)
	_, err = s.uc.ConfirmPayment(ctx, gold, done.ID)
	require.Error(t, err)

	stuck, err := s.store.GetBooking(ctx, done.ID)
	require.NoError(t, err)
	assert.True(t, stuck.WorkerConfirmedPayment)
	assert.Equal(t, models.PaymentStatusPending, stuck.PaymentStatus)

	res, err = s.uc.ConfirmPayment(ctx, gold, done.ID)
	require.NoError(t, err)
	assert.True(t, res.Settled)
	s.queue.Wait()

	paid, err := s.store.GetBooking(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)
	user, err := s.store.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 50+10*2, user.RewardPoints)

	_, err = s.uc.ConfirmPayment(ctx, gold, done.ID)
	assert.ErrorIs(t, err, booking.ErrAlreadyConfirmed)
}

func TestScenario_OnlinePaymentSettlesImmediately(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	req := createRequest()
	req.PaymentMethod = models.PaymentMethodOnline
	req.DiscountAmount = 50
	req.FinalAmount = 200
	done := s.completed(t, req)

	_, err := s.uc.ProcessOnlinePayment(ctx, gold, done.ID, &models.OnlinePaymentRequest{PaymentID: "pay-1"})
	assert.ErrorIs(t, err, booking.ErrUnauthorized)

	res, err := s.uc.ProcessOnlinePayment(ctx, customer, done.ID, &models.OnlinePaymentRequest{PaymentID: "pay-1"})
	require.NoError(t, err)
	s.queue.Wait()

	assert.True(t, res.Settled)
	assert.Equal(t, models.PaymentStatusPaid, res.Booking.PaymentStatus)
	assert.Equal(t, "pay-1", res.Booking.PaymentID)
	assert.True(t, res.Booking.UserConfirmedPayment)
	assert.True(t, res.Booking.WorkerConfirmedPayment)

	w, err := s.store.GetWorker(ctx, "w-gold")
	require.NoError(t, err)
	assert.Equal(t, 200.0, w.TotalEarnings)

	_, err = s.uc.ProcessOnlinePayment(ctx, customer, done.ID, nil)
	assert.ErrorIs(t, err, booking.ErrAlreadyConfirmed)
}

func TestScenario_WorkerAvailabilityGatesAccept(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	b := s.create(t, createRequest())

	w, err := s.uc.SetWorkerAvailability(ctx, gold, &models.AvailabilityRequest{IsActive: false})
	require.NoError(t, err)
	assert.False(t, w.IsActive)

	_, err = s.uc.AcceptBooking(ctx, gold, b.ID)
	assert.ErrorIs(t, err, booking.ErrWorkerBusy)

	require.NoError(t, s.uc.UpdateWorkerLocation(ctx, iron, &models.LocationUpdateRequest{Latitude: -6.3, Longitude: 106.9}))
	stored, err := s.store.GetWorker(ctx, "w-iron")
	require.NoError(t, err)
	require.NotNil(t, stored.CurrentLocation)
	assert.Equal(t, -6.3, stored.CurrentLocation.Latitude)
}

func TestScenario_Notifications(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	s.create(t, createRequest())
	s.create(t, createRequest())

	unread, err := s.uc.ListNotifications(ctx, customer, models.NotificationListFilter{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread, 2)

	require.NoError(t, s.uc.MarkNotificationRead(ctx, customer, unread[0].ID))
	assert.ErrorIs(t, s.uc.MarkNotificationRead(ctx, gold, unread[1].ID), booking.ErrNotFound)

	n, err := s.uc.MarkAllNotificationsRead(ctx, customer)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	unread, err = s.uc.ListNotifications(ctx, customer, models.NotificationListFilter{UnreadOnly: true})
	require.NoError(t, err)
	assert.Empty(t, unread)
}
