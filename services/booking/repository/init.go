// Package repository holds the postgres implementations of the booking stores
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking"
)

// Repositories groups every store over one database handle
type Repositories struct {
	Bookings      *BookingRepo
	Workers       *WorkerRepo
	Users         *UserRepo
	Services      *ServiceRepo
	Notifications *NotificationRepo
}

// NewRepositories builds every postgres store on db
func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Bookings:      NewBookingRepo(db),
		Workers:       NewWorkerRepo(db),
		Users:         NewUserRepo(db),
		Services:      NewServiceRepo(db),
		Notifications: NewNotificationRepo(db),
	}
}

func statusArray(statuses []models.BookingStatus) interface{} {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return pq.Array(out)
}

func notFound(what, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, booking.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

func exists(ctx context.Context, db *sqlx.DB, table, id string) (bool, error) {
	var ok bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table)
	if err := db.GetContext(ctx, &ok, query, id); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", table, err)
	}
	return ok, nil
}
