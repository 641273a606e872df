package usecase

import (
	"context"
	"fmt"

	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking"
)

// UpdateWorkerLocation stores the caller's latest position used for dispatch
// ranking.
func (u *BookingUC) UpdateWorkerLocation(ctx context.Context, actor models.Actor, req *models.LocationUpdateRequest) error {
	if actor.Role != models.RoleWorker || actor.ID == "" {
		return fmt.Errorf("only workers report locations: %w", booking.ErrUnauthorized)
	}
	if req == nil {
		return booking.Validationf("request body is required")
	}
	c := models.Coordinates{Latitude: req.Latitude, Longitude: req.Longitude}
	if !c.Valid() {
		return booking.Validationf("coordinates are out of range")
	}
	return u.workers.UpdateWorkerLocation(ctx, actor.ID, c, u.now())
}

// SetWorkerAvailability toggles whether the caller receives dispatches
func (u *BookingUC) SetWorkerAvailability(ctx context.Context, actor models.Actor, req *models.AvailabilityRequest) (*models.Worker, error) {
	if actor.Role != models.RoleWorker || actor.ID == "" {
		return nil, fmt.Errorf("only workers change availability: %w", booking.ErrUnauthorized)
	}
	if req == nil {
		return nil, booking.Validationf("request body is required")
	}
	w, err := u.workers.SetWorkerActive(ctx, actor.ID, req.IsActive, u.now())
	if err != nil {
		return nil, err
	}
	logger.InfoCtx(ctx, "Worker availability changed",
		logger.WorkerID(w.ID),
		logger.Bool("active", w.IsActive))
	return w, nil
}
