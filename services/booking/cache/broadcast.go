package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking"
)

// Publisher sends a JSON message on a subject
type Publisher interface {
	PublishJSON(subject string, v interface{}) error
}

// Invalidation is the message exchanged between instances
type Invalidation struct {
	WorkerID string `json:"workerId"`
	Origin   string `json:"origin"`
}

// Broadcast keeps process-local caches of several instances coherent by
// publishing every invalidation and applying those of other instances.
type Broadcast struct {
	local  booking.WorkerBookingsCache
	pub    Publisher
	origin string
}

func NewBroadcast(local booking.WorkerBookingsCache, pub Publisher) *Broadcast {
	return &Broadcast{local: local, pub: pub, origin: uuid.NewString()}
}

func (b *Broadcast) Get(ctx context.Context, workerID, statusFilter string) ([]*models.Booking, bool) {
	return b.local.Get(ctx, workerID, statusFilter)
}

func (b *Broadcast) Version(ctx context.Context, workerID string) uint64 {
	return b.local.Version(ctx, workerID)
}

func (b *Broadcast) Set(ctx context.Context, workerID, statusFilter string, version uint64, bookings []*models.Booking) {
	b.local.Set(ctx, workerID, statusFilter, version, bookings)
}

func (b *Broadcast) InvalidateWorker(ctx context.Context, workerID string) {
	b.local.InvalidateWorker(ctx, workerID)
	if err := b.pub.PublishJSON(constants.SubjectCacheInvalidate, Invalidation{WorkerID: workerID, Origin: b.origin}); err != nil {
		logger.WarnCtx(ctx, "Failed to broadcast cache invalidation",
			logger.WorkerID(workerID),
			logger.Err(err))
	}
}

// HandleInvalidation applies an invalidation received from another instance
func (b *Broadcast) HandleInvalidation(data []byte) error {
	var msg Invalidation
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("failed to decode cache invalidation: %w", err)
	}
	if msg.Origin == b.origin || msg.WorkerID == "" {
		return nil
	}
	b.local.InvalidateWorker(context.Background(), msg.WorkerID)
	return nil
}
