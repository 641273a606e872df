package booking

import (
	"context"

	"github.com/piresc/tukang/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/tukang/services/booking ChannelGW

// ChannelGW publishes real-time events. Delivery is at-most-once.
type ChannelGW interface {
	Publish(ctx context.Context, event models.ChannelEvent) error
}
