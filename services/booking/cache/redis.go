package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
)

// errStaleVersion aborts a write whose worker was invalidated since its read
var errStaleVersion = errors.New("worker bookings invalidated since read")

// Redis is a cache shared by every instance. Each worker has an index set
// listing its cached keys so invalidation never scans the keyspace, and a
// generation counter bumped on every invalidation.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

func entryKey(workerID, statusFilter string) string {
	return fmt.Sprintf(constants.KeyWorkerBookings, workerID, statusKey(statusFilter))
}

func indexKey(workerID string) string {
	return fmt.Sprintf(constants.KeyWorkerBookingsIndex, workerID)
}

func genKey(workerID string) string {
	return fmt.Sprintf(constants.KeyWorkerBookingsGen, workerID)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readVersion(ctx context.Context, c getter, key string) (uint64, error) {
	v, err := c.Get(ctx, key).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (r *Redis) Version(ctx context.Context, workerID string) uint64 {
	v, err := readVersion(ctx, r.client, genKey(workerID))
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read worker cache generation",
			logger.WorkerID(workerID),
			logger.Err(err))
	}
	return v
}

func (r *Redis) Get(ctx context.Context, workerID, statusFilter string) ([]*models.Booking, bool) {
	data, err := r.client.Get(ctx, entryKey(workerID, statusFilter)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WarnCtx(ctx, "Worker bookings cache read failed",
				logger.WorkerID(workerID),
				logger.Err(err))
		}
		return nil, false
	}

	var bookings []*models.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		logger.WarnCtx(ctx, "Discarding undecodable cache entry",
			logger.WorkerID(workerID),
			logger.Err(err))
		return nil, false
	}
	return bookings, true
}

// Set writes the entry in a transaction watching the generation key, so an
// invalidation racing the write wins.
func (r *Redis) Set(ctx context.Context, workerID, statusFilter string, version uint64, bookings []*models.Booking) {
	data, err := json.Marshal(bookings)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to encode cache entry", logger.WorkerID(workerID), logger.Err(err))
		return
	}

	key := entryKey(workerID, statusFilter)
	idx := indexKey(workerID)
	gen := genKey(workerID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx, gen)
		if err != nil {
			return err
		}
		if current != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			pipe.SAdd(ctx, idx, key)
			pipe.Expire(ctx, idx, 2*r.ttl)
			return nil
		})
		return err
	}, gen)
	switch {
	case err == nil, errors.Is(err, errStaleVersion), errors.Is(err, redis.TxFailedErr):
	default:
		logger.WarnCtx(ctx, "Worker bookings cache write failed",
			logger.WorkerID(workerID),
			logger.Err(err))
	}
}

func (r *Redis) InvalidateWorker(ctx context.Context, workerID string) {
	if err := r.client.Incr(ctx, genKey(workerID)).Err(); err != nil {
		logger.WarnCtx(ctx, "Failed to bump worker cache generation",
			logger.WorkerID(workerID),
			logger.Err(err))
	}

	idx := indexKey(workerID)
	keys, err := r.client.SMembers(ctx, idx).Result()
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read worker cache index",
			logger.WorkerID(workerID),
			logger.Err(err))
		return
	}

	if err := r.client.Del(ctx, append(keys, idx)...).Err(); err != nil {
		logger.WarnCtx(ctx, "Worker bookings cache invalidation failed",
			logger.WorkerID(workerID),
			logger.Err(err))
	}
}
