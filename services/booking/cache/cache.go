package cache

import (
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking"
)

// Cache drivers accepted in CacheConfig.Driver
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverNone   = "none"
)

// New builds the worker bookings cache selected by cfg. A nil cache means
// caching is disabled. rdb is only required for the redis driver.
func New(cfg models.CacheConfig, rdb *redis.Client) booking.WorkerBookingsCache {
	switch strings.ToLower(cfg.Driver) {
	case DriverNone:
		return nil
	case DriverRedis:
		if rdb == nil {
			logger.Warn("Redis cache selected without a redis client, falling back to memory")
			return NewMemory(cfg.TTL, cfg.MaxEntries, nil)
		}
		return NewRedis(rdb, cfg.TTL)
	default:
		return NewMemory(cfg.TTL, cfg.MaxEntries, nil)
	}
}

func statusKey(statusFilter string) string {
	if statusFilter == "" {
		return constants.StatusFilterAll
	}
	return statusFilter
}

func cloneBookings(in []*models.Booking) []*models.Booking {
	out := make([]*models.Booking, len(in))
	for i, b := range in {
		out[i] = b.Clone()
	}
	return out
}
