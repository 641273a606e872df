package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking"
)

const bookingColumns = `id, user_id, worker_id, service_id, service_name, service_category,
	description, images, address, latitude, longitude, scheduled_date, status, price,
	payment_status, payment_method, payment_id, user_confirmed_payment, worker_confirmed_payment,
	payment_confirmed_at, reward_points_used, discount_amount, final_amount, rating, review,
	completed_at, cancelled_at, cancellation_reason, created_at, updated_at`

// BookingRepo stores bookings in postgres. Every state change is a single
// conditional UPDATE so concurrent writers never both succeed.
type BookingRepo struct {
	db *sqlx.DB
}

func NewBookingRepo(db *sqlx.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// CreateBooking inserts a new booking row
func (r *BookingRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES (:id, :user_id, :worker_id, :service_id, :service_name, :service_category,
			:description, :images, :address, :latitude, :longitude, :scheduled_date, :status, :price,
			:payment_status, :payment_method, :payment_id, :user_confirmed_payment, :worker_confirmed_payment,
			:payment_confirmed_at, :reward_points_used, :discount_amount, :final_amount, :rating, :review,
			:completed_at, :cancelled_at, :cancellation_reason, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, b.ToDTO()); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetBooking retrieves a booking by ID
func (r *BookingRepo) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var dto models.BookingDTO
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	if err := r.db.GetContext(ctx, &dto, query, id); err != nil {
		return nil, notFound("booking", id, err)
	}
	return dto.ToBooking(), nil
}

func (r *BookingRepo) ListUserBookings(ctx context.Context, userID string, status models.BookingStatus) ([]*models.Booking, error) {
	return r.list(ctx, "user_id", userID, status)
}

func (r *BookingRepo) ListWorkerBookings(ctx context.Context, workerID string, status models.BookingStatus) ([]*models.Booking, error) {
	return r.list(ctx, "worker_id", workerID, status)
}

func (r *BookingRepo) list(ctx context.Context, column, id string, status models.BookingStatus) ([]*models.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE %s = $1 AND ($2::text = '' OR status = $2)
		ORDER BY created_at DESC, id
	`, bookingColumns, column)

	var rows []models.BookingDTO
	if err := r.db.SelectContext(ctx, &rows, query, id, string(status)); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	out := make([]*models.Booking, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToBooking())
	}
	return out, nil
}

// update runs a conditional UPDATE ... RETURNING. When no row matches, miss
// inspects the current row to explain why.
func (r *BookingRepo) update(ctx context.Context, id string, miss func(*models.Booking) error, query string, args ...interface{}) (*models.Booking, error) {
	var dto models.BookingDTO
	err := r.db.GetContext(ctx, &dto, query, args...)
	if err == nil {
		return dto.ToBooking(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	current, gerr := r.GetBooking(ctx, id)
	if gerr != nil {
		return nil, gerr
	}
	return nil, miss(current)
}

func illegal(op string) func(*models.Booking) error {
	return func(b *models.Booking) error {
		return fmt.Errorf("%s from %s: %w", op, b.Status, booking.ErrIllegalTransition)
	}
}

func (r *BookingRepo) AcceptBooking(ctx context.Context, id, workerID string, now time.Time) (*models.Booking, error) {
	query := `
		UPDATE bookings SET worker_id = $2, status = 'accepted', updated_at = $3
		WHERE id = $1 AND (status = 'pending' OR (status = 'accepted' AND worker_id IS NULL))
		RETURNING ` + bookingColumns
	return r.update(ctx, id, func(b *models.Booking) error {
		if b.HasWorker() && b.Status != models.BookingStatusCancelled {
			return booking.ErrAcceptRaceLost
		}
		return illegal("accept")(b)
	}, query, id, workerID, now)
}

func (r *BookingRepo) ReleaseBooking(ctx context.Context, id, workerID string, now time.Time) (*models.Booking, error) {
	query := `
		UPDATE bookings SET worker_id = NULL, status = 'pending', updated_at = $3
		WHERE id = $1 AND status = 'accepted' AND worker_id = $2
		RETURNING ` + bookingColumns
	return r.update(ctx, id, illegal("release"), query, id, workerID, now)
}

func (r *BookingRepo) TransitionStatus(ctx context.Context, id, workerID string, from []models.BookingStatus, to models.BookingStatus, now time.Time) (*models.Booking, error) {
	var completedAt sql.NullTime
	if to == models.BookingStatusCompleted {
		completedAt = sql.NullTime{Time: now, Valid: true}
	}
	query := `
		UPDATE bookings SET status = $4, updated_at = $5, completed_at = COALESCE($6, completed_at)
		WHERE id = $1 AND worker_id = $2 AND status = ANY($3)
		RETURNING ` + bookingColumns
	return r.update(ctx, id, illegal("move to "+string(to)), query,
		id, workerID, statusArray(from), string(to), now, completedAt)
}

func (r *BookingRepo) CancelBooking(ctx context.Context, id, reason string, now time.Time) (*models.Booking, error) {
	query := `
		UPDATE bookings SET status = 'cancelled', cancelled_at = $3, cancellation_reason = $4, updated_at = $3
		WHERE id = $1 AND status = ANY($2)
		RETURNING ` + bookingColumns
	return r.update(ctx, id, illegal("cancel"), query,
		id, statusArray(models.SourcesFor(models.BookingStatusCancelled)), now, reason)
}

func (r *BookingRepo) DeleteBooking(ctx context.Context, id string, allowed []models.BookingStatus) (*models.Booking, error) {
	query := `DELETE FROM bookings WHERE id = $1 AND status = ANY($2) RETURNING ` + bookingColumns
	return r.update(ctx, id, illegal("delete"), query, id, statusArray(allowed))
}

func (r *BookingRepo) SetReview(ctx context.Context, id string, rating int, review string, now time.Time) (*models.Booking, error) {
	query := `
		UPDATE bookings SET rating = $2, review = $3, updated_at = $4
		WHERE id = $1 AND status = 'completed' AND rating IS NULL
		RETURNING ` + bookingColumns
	return r.update(ctx, id, func(b *models.Booking) error {
		if b.Status != models.BookingStatusCompleted {
			return illegal("review")(b)
		}
		return booking.ErrAlreadyReviewed
	}, query, id, rating, review, now)
}

var confirmColumns = map[models.PaymentParty]string{
	models.PaymentPartyUser:   "user_confirmed_payment",
	models.PaymentPartyWorker: "worker_confirmed_payment",
}

func (r *BookingRepo) ConfirmPayment(ctx context.Context, id string, party models.PaymentParty, now time.Time) (*models.Booking, error) {
	column, ok := confirmColumns[party]
	if !ok {
		return nil, booking.Validationf("unknown payment party %q", party)
	}
	query := fmt.Sprintf(`
		UPDATE bookings SET %[1]s = TRUE, updated_at = $2
		WHERE id = $1 AND status = 'completed' AND %[1]s = FALSE
		RETURNING %[2]s`, column, bookingColumns)
	return r.update(ctx, id, func(b *models.Booking) error {
		if b.Status != models.BookingStatusCompleted {
			return illegal("confirm payment")(b)
		}
		return booking.ErrAlreadyConfirmed
	}, query, id, now)
}

func (r *BookingRepo) SettlePayment(ctx context.Context, id string, now time.Time) (*models.Booking, bool, error) {
	query := `
		UPDATE bookings SET payment_status = 'paid', payment_confirmed_at = $2, updated_at = $2
		WHERE id = $1 AND payment_status = 'pending'
			AND user_confirmed_payment AND worker_confirmed_payment
		RETURNING ` + bookingColumns

	var dto models.BookingDTO
	err := r.db.GetContext(ctx, &dto, query, id, now)
	switch {
	case err == nil:
		return dto.ToBooking(), true, nil
	case errors.Is(err, sql.ErrNoRows):
		current, gerr := r.GetBooking(ctx, id)
		if gerr != nil {
			return nil, false, gerr
		}
		return current, false, nil
	default:
		return nil, false, fmt.Errorf("failed to settle payment: %w", err)
	}
}

func (r *BookingRepo) CompleteOnlinePayment(ctx context.Context, id, paymentID string, now time.Time) (*models.Booking, error) {
	query := `
		UPDATE bookings SET user_confirmed_payment = TRUE, worker_confirmed_payment = TRUE,
			payment_status = 'paid', payment_confirmed_at = $3,
			payment_id = COALESCE(NULLIF($2, ''), payment_id), updated_at = $3
		WHERE id = $1 AND status = 'completed' AND payment_method = 'online' AND payment_status = 'pending'
		RETURNING ` + bookingColumns
	return r.update(ctx, id, func(b *models.Booking) error {
		switch {
		case b.Status != models.BookingStatusCompleted:
			return illegal("pay")(b)
		case b.PaymentMethod != models.PaymentMethodOnline:
			return booking.Validationf("booking is not paid online")
		default:
			return booking.ErrAlreadyConfirmed
		}
	}, query, id, paymentID, now)
}

type workerStatsRow struct {
	CompletedJobs int     `db:"completed_jobs"`
	TotalReviews  int     `db:"total_reviews"`
	Rating        float64 `db:"rating"`
	TotalEarnings float64 `db:"total_earnings"`
}

// WorkerBookingStats aggregates the completed bookings of a worker. Earnings
// count the settled amount of each paid booking.
func (r *BookingRepo) WorkerBookingStats(ctx context.Context, workerID string) (*models.WorkerStats, error) {
	query := `
		SELECT COUNT(*) AS completed_jobs,
			COUNT(rating) AS total_reviews,
			COALESCE(AVG(rating), 0) AS rating,
			COALESCE(SUM(CASE WHEN discount_amount > 0 AND final_amount > 0 THEN final_amount ELSE price END)
				FILTER (WHERE payment_status = 'paid'), 0) AS total_earnings
		FROM bookings
		WHERE worker_id = $1 AND status = 'completed'
	`
	var row workerStatsRow
	if err := r.db.GetContext(ctx, &row, query, workerID); err != nil {
		return nil, fmt.Errorf("failed to aggregate worker bookings: %w", err)
	}
	return &models.WorkerStats{
		CompletedJobs: row.CompletedJobs,
		TotalReviews:  row.TotalReviews,
		Rating:        row.Rating,
		TotalEarnings: row.TotalEarnings,
	}, nil
}

// ServiceRating averages every rated booking of a service
func (r *BookingRepo) ServiceRating(ctx context.Context, serviceID string) (*models.RatingAggregate, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0) AS average, COUNT(rating) AS count
		FROM bookings
		WHERE service_id = $1 AND rating IS NOT NULL
	`
	var agg models.RatingAggregate
	if err := r.db.GetContext(ctx, &agg, query, serviceID); err != nil {
		return nil, fmt.Errorf("failed to aggregate service rating: %w", err)
	}
	return &agg, nil
}

var _ booking.BookingRepo = (*BookingRepo)(nil)
