package usecase

import (
	"github.com/piresc/tukang/internal/pkg/models"
)

// BookingEvent is the payload of booking:* channel events
type BookingEvent struct {
	BookingID string               `json:"bookingId"`
	Status    models.BookingStatus `json:"status"`
	WorkerID  string               `json:"workerId,omitempty"`
	Reason    string               `json:"reason,omitempty"`
	Deleted   bool                 `json:"deleted,omitempty"`
	Booking   *models.Booking      `json:"booking,omitempty"`
}

func bookingEvent(b *models.Booking) BookingEvent {
	return BookingEvent{
		BookingID: b.ID,
		Status:    b.Status,
		WorkerID:  b.WorkerID,
		Booking:   b,
	}
}

// PaymentEvent is the payload of payment:status_updated
type PaymentEvent struct {
	BookingID              string               `json:"bookingId"`
	PaymentStatus          models.PaymentStatus `json:"paymentStatus"`
	PaymentMethod          models.PaymentMethod `json:"paymentMethod"`
	UserConfirmedPayment   bool                 `json:"userConfirmedPayment"`
	WorkerConfirmedPayment bool                 `json:"workerConfirmedPayment"`
	Amount                 float64              `json:"amount"`
}

func paymentEvent(b *models.Booking) PaymentEvent {
	return PaymentEvent{
		BookingID:              b.ID,
		PaymentStatus:          b.PaymentStatus,
		PaymentMethod:          b.PaymentMethod,
		UserConfirmedPayment:   b.UserConfirmedPayment,
		WorkerConfirmedPayment: b.WorkerConfirmedPayment,
		Amount:                 b.SettlementAmount(),
	}
}

// RewardEvent is the payload of reward:points_updated and
// worker:reward_points_updated
type RewardEvent struct {
	BookingID     string   `json:"bookingId"`
	PointsDelta   int      `json:"pointsDelta"`
	RewardPoints  int      `json:"rewardPoints"`
	TotalEarnings *float64 `json:"totalEarnings,omitempty"`
}

// WorkerStatsEvent is the payload of worker:stats_updated
type WorkerStatsEvent struct {
	WorkerID string `json:"workerId"`
	*models.WorkerStats
}
