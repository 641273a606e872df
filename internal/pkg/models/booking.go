package models

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusAccepted   BookingStatus = "accepted"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// IsTerminal reports whether no further lifecycle transition is allowed
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// IsValid reports whether s is a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// transitions lists the legal status moves. accepted -> pending is the reject path.
var transitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusAccepted, BookingStatusCancelled},
	BookingStatusAccepted:   {BookingStatusInProgress, BookingStatusCancelled, BookingStatusPending},
	BookingStatusInProgress: {BookingStatusCompleted},
}

// CanTransition reports whether a booking may move from one status to another
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SourcesFor returns every status that may legally transition into to
func SourcesFor(to BookingStatus) []BookingStatus {
	var sources []BookingStatus
	for _, from := range []BookingStatus{BookingStatusPending, BookingStatusAccepted, BookingStatusInProgress} {
		if CanTransition(from, to) {
			sources = append(sources, from)
		}
	}
	return sources
}

// PaymentStatus represents the settlement state of a booking
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentMethod is how the customer pays the worker
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
)

// PaymentParty identifies which side of a booking confirms a payment
type PaymentParty string

const (
	PaymentPartyUser   PaymentParty = "user"
	PaymentPartyWorker PaymentParty = "worker"
)

// Coordinates is a latitude/longitude pair in degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the pair lies within the WGS84 ranges
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Booking is a single customer request for a service
type Booking struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	WorkerID string `json:"workerId,omitempty"`

	ServiceID       string   `json:"serviceId"`
	ServiceName     string   `json:"serviceName"`
	ServiceCategory string   `json:"serviceCategory"`
	Description     string   `json:"description,omitempty"`
	Images          []string `json:"images,omitempty"`

	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates"`

	ScheduledDate *time.Time    `json:"scheduledDate,omitempty"`
	Status        BookingStatus `json:"status"`

	Price                  float64       `json:"price"`
	PaymentStatus          PaymentStatus `json:"paymentStatus"`
	PaymentMethod          PaymentMethod `json:"paymentMethod"`
	PaymentID              string        `json:"paymentId,omitempty"`
	UserConfirmedPayment   bool          `json:"userConfirmedPayment"`
	WorkerConfirmedPayment bool          `json:"workerConfirmedPayment"`
	PaymentConfirmedAt     *time.Time    `json:"paymentConfirmedAt,omitempty"`
	RewardPointsUsed       int           `json:"rewardPointsUsed"`
	DiscountAmount         float64       `json:"discountAmount"`
	FinalAmount            float64       `json:"finalAmount"`

	Rating             *int       `json:"rating,omitempty"`
	Review             string     `json:"review,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasWorker reports whether a worker is attached
func (b *Booking) HasWorker() bool {
	return b.WorkerID != ""
}

// IsScheduled reports whether the booking is scheduled strictly after now
func (b *Booking) IsScheduled(now time.Time) bool {
	return b.ScheduledDate != nil && b.ScheduledDate.After(now)
}

// SettlementAmount is the amount the customer actually pays
func (b *Booking) SettlementAmount() float64 {
	if b.DiscountAmount > 0 && b.FinalAmount > 0 {
		return b.FinalAmount
	}
	return b.Price
}

// Clone returns a deep copy so stores never share mutable state with callers
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	c := *b
	if b.Images != nil {
		c.Images = append([]string(nil), b.Images...)
	}
	if b.Coordinates != nil {
		coords := *b.Coordinates
		c.Coordinates = &coords
	}
	c.ScheduledDate = cloneTime(b.ScheduledDate)
	c.PaymentConfirmedAt = cloneTime(b.PaymentConfirmedAt)
	c.CompletedAt = cloneTime(b.CompletedAt)
	c.CancelledAt = cloneTime(b.CancelledAt)
	if b.Rating != nil {
		r := *b.Rating
		c.Rating = &r
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// BookingDTO flattens a Booking for sqlx scanning
type BookingDTO struct {
	ID                     string         `db:"id"`
	UserID                 string         `db:"user_id"`
	WorkerID               sql.NullString `db:"worker_id"`
	ServiceID              string         `db:"service_id"`
	ServiceName            string         `db:"service_name"`
	ServiceCategory        string         `db:"service_category"`
	Description            string         `db:"description"`
	Images                 pq.StringArray `db:"images"`
	Address                string         `db:"address"`
	Latitude               float64        `db:"latitude"`
	Longitude              float64        `db:"longitude"`
	ScheduledDate          sql.NullTime   `db:"scheduled_date"`
	Status                 BookingStatus  `db:"status"`
	Price                  float64        `db:"price"`
	PaymentStatus          PaymentStatus  `db:"payment_status"`
	PaymentMethod          PaymentMethod  `db:"payment_method"`
	PaymentID              sql.NullString `db:"payment_id"`
	UserConfirmedPayment   bool           `db:"user_confirmed_payment"`
	WorkerConfirmedPayment bool           `db:"worker_confirmed_payment"`
	PaymentConfirmedAt     sql.NullTime   `db:"payment_confirmed_at"`
	RewardPointsUsed       int            `db:"reward_points_used"`
	DiscountAmount         float64        `db:"discount_amount"`
	FinalAmount            float64        `db:"final_amount"`
	Rating                 sql.NullInt32  `db:"rating"`
	Review                 sql.NullString `db:"review"`
	CompletedAt            sql.NullTime   `db:"completed_at"`
	CancelledAt            sql.NullTime   `db:"cancelled_at"`
	CancellationReason     sql.NullString `db:"cancellation_reason"`
	CreatedAt              time.Time      `db:"created_at"`
	UpdatedAt              time.Time      `db:"updated_at"`
}

// ToDTO converts a Booking to its row form
func (b *Booking) ToDTO() *BookingDTO {
	dto := &BookingDTO{
		ID:                     b.ID,
		UserID:                 b.UserID,
		WorkerID:               nullString(b.WorkerID),
		ServiceID:              b.ServiceID,
		ServiceName:            b.ServiceName,
		ServiceCategory:        b.ServiceCategory,
		Description:            b.Description,
		Images:                 pq.StringArray(b.Images),
		Address:                b.Address,
		ScheduledDate:          nullTime(b.ScheduledDate),
		Status:                 b.Status,
		Price:                  b.Price,
		PaymentStatus:          b.PaymentStatus,
		PaymentMethod:          b.PaymentMethod,
		PaymentID:              nullString(b.PaymentID),
		UserConfirmedPayment:   b.UserConfirmedPayment,
		WorkerConfirmedPayment: b.WorkerConfirmedPayment,
		PaymentConfirmedAt:     nullTime(b.PaymentConfirmedAt),
		RewardPointsUsed:       b.RewardPointsUsed,
		DiscountAmount:         b.DiscountAmount,
		FinalAmount:            b.FinalAmount,
		Review:                 nullString(b.Review),
		CompletedAt:            nullTime(b.CompletedAt),
		CancelledAt:            nullTime(b.CancelledAt),
		CancellationReason:     nullString(b.CancellationReason),
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
	}
	if b.Coordinates != nil {
		dto.Latitude = b.Coordinates.Latitude
		dto.Longitude = b.Coordinates.Longitude
	}
	if b.Rating != nil {
		dto.Rating = sql.NullInt32{Int32: int32(*b.Rating), Valid: true}
	}
	return dto
}

// ToBooking converts a row back into a Booking
func (dto *BookingDTO) ToBooking() *Booking {
	b := &Booking{
		ID:                     dto.ID,
		UserID:                 dto.UserID,
		WorkerID:               dto.WorkerID.String,
		ServiceID:              dto.ServiceID,
		ServiceName:            dto.ServiceName,
		ServiceCategory:        dto.ServiceCategory,
		Description:            dto.Description,
		Images:                 []string(dto.Images),
		Address:                dto.Address,
		Coordinates:            &Coordinates{Latitude: dto.Latitude, Longitude: dto.Longitude},
		ScheduledDate:          timePtr(dto.ScheduledDate),
		Status:                 dto.Status,
		Price:                  dto.Price,
		PaymentStatus:          dto.PaymentStatus,
		PaymentMethod:          dto.PaymentMethod,
		PaymentID:              dto.PaymentID.String,
		UserConfirmedPayment:   dto.UserConfirmedPayment,
		WorkerConfirmedPayment: dto.WorkerConfirmedPayment,
		PaymentConfirmedAt:     timePtr(dto.PaymentConfirmedAt),
		RewardPointsUsed:       dto.RewardPointsUsed,
		DiscountAmount:         dto.DiscountAmount,
		FinalAmount:            dto.FinalAmount,
		Review:                 dto.Review.String,
		CompletedAt:            timePtr(dto.CompletedAt),
		CancelledAt:            timePtr(dto.CancelledAt),
		CancellationReason:     dto.CancellationReason.String,
		CreatedAt:              dto.CreatedAt,
		UpdatedAt:              dto.UpdatedAt,
	}
	if dto.Rating.Valid {
		r := int(dto.Rating.Int32)
		b.Rating = &r
	}
	return b
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
