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

// UserRepo reads customers and adjusts their reward balance
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetUser retrieves a customer by ID
func (r *UserRepo) GetUser(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, phone, reward_points, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, notFound("user", id, err)
	}
	return &user, nil
}

// AddRewardPoints applies delta in place and returns the new balance
func (r *UserRepo) AddRewardPoints(ctx context.Context, userID string, delta int, now time.Time) (int, error) {
	query := `
		UPDATE users SET reward_points = reward_points + $2, updated_at = $3
		WHERE id = $1
		RETURNING reward_points
	`
	var balance int
	if err := r.db.GetContext(ctx, &balance, query, userID, delta, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("user %s: %w", userID, booking.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to add reward points: %w", err)
	}
	return balance, nil
}

// ServiceRepo maintains the denormalized rating of catalogue services
type ServiceRepo struct {
	db *sqlx.DB
}

func NewServiceRepo(db *sqlx.DB) *ServiceRepo {
	return &ServiceRepo{db: db}
}

func (r *ServiceRepo) UpdateServiceRating(ctx context.Context, serviceID string, agg *models.RatingAggregate, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE services SET rating = $2, review_count = $3, updated_at = $4 WHERE id = $1`,
		serviceID, agg.Average, agg.Count, now)
	if err != nil {
		return fmt.Errorf("failed to update service rating: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("service %s: %w", serviceID, booking.ErrNotFound)
	}
	return nil
}

var (
	_ booking.UserRepo    = (*UserRepo)(nil)
	_ booking.ServiceRepo = (*ServiceRepo)(nil)
)
