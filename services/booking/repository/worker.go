package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking"
)

const workerColumns = `id, name, phone, service_categories, category_verification_status,
	is_active, status, latitude, longitude, rating, completed_jobs, total_reviews, badge,
	rank_score, reward_points, total_earnings, current_booking_id, updated_at`

// WorkerRepo stores worker profiles and dispatch availability
type WorkerRepo struct {
	db *sqlx.DB
}

func NewWorkerRepo(db *sqlx.DB) *WorkerRepo {
	return &WorkerRepo{db: db}
}

func (r *WorkerRepo) GetWorker(ctx context.Context, id string) (*models.Worker, error) {
	var dto models.WorkerDTO
	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = $1`
	if err := r.db.GetContext(ctx, &dto, query, id); err != nil {
		return nil, notFound("worker", id, err)
	}
	w, err := dto.ToWorker()
	if err != nil {
		return nil, fmt.Errorf("failed to decode worker %s: %w", id, err)
	}
	return w, nil
}

// ListCandidateWorkers matches categories against the trimmed, lowercased
// entries of service_categories. Busy and inactive workers are filtered before
// the limit applies.
func (r *WorkerRepo) ListCandidateWorkers(ctx context.Context, categories []string, limit int) ([]*models.Worker, error) {
	wanted := make([]string, 0, len(categories))
	for _, c := range categories {
		wanted = append(wanted, strings.ToLower(strings.TrimSpace(c)))
	}

	query := `
		SELECT ` + workerColumns + ` FROM workers
		WHERE EXISTS (
			SELECT 1 FROM unnest(service_categories) AS c WHERE lower(trim(c)) = ANY($1)
		)
		AND is_active AND status = 'available'
		ORDER BY id`
	args := []interface{}{pq.Array(wanted)}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	var rows []models.WorkerDTO
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list candidate workers: %w", err)
	}
	out := make([]*models.Worker, 0, len(rows))
	for i := range rows {
		w, err := rows[i].ToWorker()
		if err != nil {
			return nil, fmt.Errorf("failed to decode worker %s: %w", rows[i].ID, err)
		}
		out = append(out, w)
	}
	return out, nil
}

func (r *WorkerRepo) ClaimWorker(ctx context.Context, workerID, bookingID string, now time.Time) error {
	query := `
		UPDATE workers SET status = 'busy', current_booking_id = $2, updated_at = $3
		WHERE id = $1 AND is_active AND (status <> 'busy' OR current_booking_id = $2)
	`
	res, err := r.db.ExecContext(ctx, query, workerID, bookingID, now)
	if err != nil {
		return fmt.Errorf("failed to claim worker: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil || n > 0 {
		return err
	}
	ok, err := exists(ctx, r.db, "workers", workerID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("worker %s: %w", workerID, booking.ErrNotFound)
	}
	return booking.ErrWorkerBusy
}

// ReleaseWorker is a no-op when the worker has moved on to another booking
func (r *WorkerRepo) ReleaseWorker(ctx context.Context, workerID, bookingID string, now time.Time) error {
	query := `
		UPDATE workers SET status = 'available', current_booking_id = NULL, updated_at = $3
		WHERE id = $1 AND (current_booking_id = $2 OR current_booking_id IS NULL)
	`
	res, err := r.db.ExecContext(ctx, query, workerID, bookingID, now)
	if err != nil {
		return fmt.Errorf("failed to release worker: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil || n > 0 {
		return err
	}
	ok, err := exists(ctx, r.db, "workers", workerID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("worker %s: %w", workerID, booking.ErrNotFound)
	}
	return nil
}

// UpdateWorkerStats writes the reputation fields. total_earnings is owned by
// AddWorkerRewards and left untouched.
func (r *WorkerRepo) UpdateWorkerStats(ctx context.Context, workerID string, stats *models.WorkerStats, now time.Time) error {
	query := `
		UPDATE workers SET completed_jobs = $2, rating = $3, total_reviews = $4, badge = $5,
			rank_score = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, workerID, stats.CompletedJobs, stats.Rating,
		stats.TotalReviews, string(stats.Badge), stats.RankScore, now)
	if err != nil {
		return fmt.Errorf("failed to update worker stats: %w", err)
	}
	return r.requireRow(res, workerID)
}

func (r *WorkerRepo) AddWorkerRewards(ctx context.Context, workerID string, points int, earnings float64, now time.Time) (int, float64, error) {
	query := `
		UPDATE workers SET reward_points = reward_points + $2, total_earnings = total_earnings + $3, updated_at = $4
		WHERE id = $1
		RETURNING reward_points, total_earnings
	`
	var totals struct {
		RewardPoints  int     `db:"reward_points"`
		TotalEarnings float64 `db:"total_earnings"`
	}
	if err := r.db.GetContext(ctx, &totals, query, workerID, points, earnings, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, fmt.Errorf("worker %s: %w", workerID, booking.ErrNotFound)
		}
		return 0, 0, fmt.Errorf("failed to add worker rewards: %w", err)
	}
	return totals.RewardPoints, totals.TotalEarnings, nil
}

func (r *WorkerRepo) UpdateWorkerLocation(ctx context.Context, workerID string, c models.Coordinates, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE workers SET latitude = $2, longitude = $3, updated_at = $4 WHERE id = $1`,
		workerID, c.Latitude, c.Longitude, now)
	if err != nil {
		return fmt.Errorf("failed to update worker location: %w", err)
	}
	return r.requireRow(res, workerID)
}

func (r *WorkerRepo) SetWorkerActive(ctx context.Context, workerID string, active bool, now time.Time) (*models.Worker, error) {
	query := `
		UPDATE workers SET is_active = $2, updated_at = $3 WHERE id = $1
		RETURNING ` + workerColumns
	var dto models.WorkerDTO
	if err := r.db.GetContext(ctx, &dto, query, workerID, active, now); err != nil {
		return nil, notFound("worker", workerID, err)
	}
	w, err := dto.ToWorker()
	if err != nil {
		return nil, fmt.Errorf("failed to decode worker %s: %w", workerID, err)
	}
	return w, nil
}

func (r *WorkerRepo) requireRow(res sql.Result, workerID string) error {
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("worker %s: %w", workerID, booking.ErrNotFound)
	}
	return nil
}

var _ booking.WorkerRepo = (*WorkerRepo)(nil)
