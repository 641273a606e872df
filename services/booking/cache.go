package booking

import (
	"context"

	"github.com/piresc/tukang/internal/pkg/models"
)

// WorkerBookingsCache fronts ListWorkerBookings. Implementations never fail the
// caller; a miss or an internal error both read as a miss.
type WorkerBookingsCache interface {
	Get(ctx context.Context, workerID, statusFilter string) ([]*models.Booking, bool)
	// Version returns the worker's invalidation generation. Read it before
	// loading from the store and hand it to Set.
	Version(ctx context.Context, workerID string) uint64
	// Set stores bookings unless the worker was invalidated after version
	Set(ctx context.Context, workerID, statusFilter string, version uint64, bookings []*models.Booking)
	InvalidateWorker(ctx context.Context, workerID string)
}
