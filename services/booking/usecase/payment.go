package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking"
	"github.com/piresc/tukang/services/booking/notify"
)

// ConfirmPayment records one party's confirmation of a cash payment. The
// booking settles once both parties have confirmed; only the call that
// performs the settlement credits rewards.
func (u *BookingUC) ConfirmPayment(ctx context.Context, actor models.Actor, id string) (*models.PaymentConfirmation, error) {
	current, err := u.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	var party models.PaymentParty
	switch {
	case actor.IsUser(current.UserID):
		party = models.PaymentPartyUser
	case current.HasWorker() && actor.IsWorker(current.WorkerID):
		party = models.PaymentPartyWorker
	default:
		return nil, fmt.Errorf("booking %s: %w", id, booking.ErrUnauthorized)
	}

	now := u.now()
	_, confirmErr := u.bookings.ConfirmPayment(ctx, id, party, now)
	if confirmErr != nil && !errors.Is(confirmErr, booking.ErrAlreadyConfirmed) {
		return nil, confirmErr
	}
	// A repeated confirmation still settles a booking whose earlier settle
	// write failed after both flags were recorded.
	b, settled, err := u.bookings.SettlePayment(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if confirmErr != nil && !settled {
		return nil, confirmErr
	}
	logger.InfoCtx(ctx, "Payment confirmed",
		logger.BookingID(b.ID),
		logger.String("party", string(party)),
		logger.Bool("settled", settled))

	u.emitLater(ctx, b.ID, constants.EventPaymentStatusUpdated, paymentEvent(b), parties(b)...)
	if settled {
		u.settle(ctx, b)
	}
	return &models.PaymentConfirmation{Booking: b, Settled: settled}, nil
}

// ProcessOnlinePayment marks an online-paid booking settled in one step
func (u *BookingUC) ProcessOnlinePayment(ctx context.Context, actor models.Actor, id string, req *models.OnlinePaymentRequest) (*models.PaymentConfirmation, error) {
	current, err := u.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsUser(current.UserID) {
		return nil, fmt.Errorf("booking %s: %w", id, booking.ErrUnauthorized)
	}

	var paymentID string
	if req != nil {
		paymentID = strings.TrimSpace(req.PaymentID)
	}
	b, err := u.bookings.CompleteOnlinePayment(ctx, id, paymentID, u.now())
	if err != nil {
		return nil, err
	}
	logger.InfoCtx(ctx, "Online payment processed",
		logger.BookingID(b.ID),
		logger.String("payment_id", b.PaymentID))

	u.emitLater(ctx, b.ID, constants.EventPaymentStatusUpdated, paymentEvent(b), parties(b)...)
	u.settle(ctx, b)
	return &models.PaymentConfirmation{Booking: b, Settled: true}, nil
}

// parties targets the customer and, when assigned, the worker of b
func parties(b *models.Booking) []notify.Target {
	targets := []notify.Target{notify.User(b.UserID)}
	if b.HasWorker() {
		targets = append(targets, notify.Worker(b.WorkerID))
	}
	return targets
}

// rewardBlocks is the number of whole currency units in amount
func (u *BookingUC) rewardBlocks(amount float64) int {
	if u.rewards.CurrencyUnit <= 0 || amount <= 0 {
		return 0
	}
	return int(math.Floor(amount / u.rewards.CurrencyUnit))
}

// settle credits the reward ledgers of a freshly paid booking. The customer
// earns points per block and gives back the points spent at booking time; the
// worker earns a base plus one point per block together with the amount.
// Each increment is its own follow-up and announces the new balance in a
// separate one, so a failed publish never replays a credit.
func (u *BookingUC) settle(ctx context.Context, b *models.Booking) {
	amount := b.SettlementAmount()
	blocks := u.rewardBlocks(amount)
	userDelta := u.rewards.PointsPerUnit*blocks - b.RewardPointsUsed
	workerPoints := u.rewards.WorkerBase + blocks

	bookingID, userID, workerID := b.ID, b.UserID, b.WorkerID
	u.followUp(ctx, bookingID, "rewards.user", func(ctx context.Context) error {
		balance, err := u.users.AddRewardPoints(ctx, userID, userDelta, u.now())
		if err != nil {
			return err
		}
		u.emitLater(ctx, bookingID, constants.EventRewardPointsUpdated,
			RewardEvent{BookingID: bookingID, PointsDelta: userDelta, RewardPoints: balance},
			notify.User(userID))
		return nil
	})
	if workerID != "" {
		u.followUp(ctx, bookingID, "rewards.worker", func(ctx context.Context) error {
			points, earnings, err := u.workers.AddWorkerRewards(ctx, workerID, workerPoints, amount, u.now())
			if err != nil {
				return err
			}
			u.emitLater(ctx, bookingID, constants.EventWorkerRewardPointsUpdated,
				RewardEvent{BookingID: bookingID, PointsDelta: workerPoints, RewardPoints: points, TotalEarnings: &earnings},
				notify.Worker(workerID))
			return nil
		})
		u.invalidateWorker(ctx, workerID)
	}

	data := notificationData(b)
	data.Extra = map[string]interface{}{"amount": amount}
	u.notifyLater(ctx, b, notify.User(userID), notify.Input{
		Type:    models.NotificationPaymentConfirmed,
		Title:   "Payment complete",
		Message: fmt.Sprintf("Payment of %.2f for %s is complete", amount, b.ServiceName),
		Data:    data,
	})
	if workerID != "" {
		u.notifyLater(ctx, b, notify.Worker(workerID), notify.Input{
			Type:    models.NotificationPaymentConfirmed,
			Title:   "Payment received",
			Message: fmt.Sprintf("Payment of %.2f for %s is complete", amount, b.ServiceName),
			Data:    data,
		})
	}
	logger.InfoCtx(ctx, "Booking settled",
		logger.BookingID(bookingID),
		logger.Float64("amount", amount),
		logger.Int("user_points_delta", userDelta),
		logger.Int("worker_points", workerPoints))
}
