package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/internal/utils"
	"github.com/piresc/tukang/services/booking"
)

// Mode is how a plan reaches workers
type Mode string

const (
	// ModeScheduled sends to every eligible worker
	ModeScheduled Mode = "scheduled"
	// ModeInstant sends to the top ranked workers and broadcasts to the rest
	ModeInstant Mode = "instant"
	// ModeUnverifiedBroadcast broadcasts asking clients to re-check verification
	ModeUnverifiedBroadcast Mode = "unverified_broadcast"
	// ModeFallback broadcasts the raw booking summary after a planning failure
	ModeFallback Mode = "fallback"
)

const DefaultTopN = 3

// RequestPayload is the booking:request event body
type RequestPayload struct {
	BookingID            string          `json:"bookingId"`
	Booking              *models.Booking `json:"booking"`
	CustomerName         string          `json:"customerName,omitempty"`
	CustomerPhone        string          `json:"customerPhone,omitempty"`
	AreaHash             string          `json:"areaHash,omitempty"`
	IsScheduled          bool            `json:"isScheduled"`
	DistanceFromUser     *float64        `json:"distanceFromUser,omitempty"`
	Rank                 int             `json:"rank,omitempty"`
	RequiresVerification bool            `json:"requiresVerification,omitempty"`
	Fallback             bool            `json:"fallback,omitempty"`
}

// Plan says who receives a booking request
type Plan struct {
	Mode       Mode
	Ranked     []Candidate // every eligible worker, best first
	Direct     []Candidate // workers addressed on their own channel
	Broadcast  bool        // also send to the general worker channel
	Unverified []*models.Worker
	Payload    RequestPayload
	Err        error // planning failure behind ModeFallback
}

// Planner builds dispatch plans
type Planner struct {
	workers        booking.WorkerRepo
	users          booking.UserRepo
	synonyms       *SynonymTable
	topN           int
	candidateLimit int
}

func NewPlanner(workers booking.WorkerRepo, users booking.UserRepo, synonyms *SynonymTable, cfg models.DispatchConfig) *Planner {
	topN := cfg.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	if synonyms == nil {
		synonyms = NewSynonymTable(nil)
	}
	return &Planner{
		workers:        workers,
		users:          users,
		synonyms:       synonyms,
		topN:           topN,
		candidateLimit: cfg.CandidateLimit,
	}
}

// Synonyms returns the planner's category table
func (p *Planner) Synonyms() *SynonymTable {
	return p.synonyms
}

// Plan selects and orders the workers for b
func (p *Planner) Plan(ctx context.Context, b *models.Booking, now time.Time) (*Plan, error) {
	if b == nil || b.Coordinates == nil {
		return nil, fmt.Errorf("booking coordinates are required for dispatch")
	}

	workers, err := p.workers.ListCandidateWorkers(ctx, p.synonyms.Variants(b.ServiceCategory), p.candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate workers: %w", err)
	}

	elig := Filter(p.synonyms, b.ServiceCategory, workers)
	plan := &Plan{
		Ranked:     Rank(b.Coordinates, elig.Eligible),
		Unverified: elig.Unverified,
		Payload:    p.basePayload(ctx, b),
	}

	switch {
	case len(plan.Ranked) == 0:
		plan.Mode = ModeUnverifiedBroadcast
		plan.Broadcast = true
		plan.Payload.RequiresVerification = true
	case b.IsScheduled(now):
		plan.Mode = ModeScheduled
		plan.Direct = plan.Ranked
		plan.Payload.IsScheduled = true
	default:
		plan.Mode = ModeInstant
		plan.Direct = plan.Ranked
		if len(plan.Direct) > p.topN {
			plan.Direct = plan.Direct[:p.topN]
		}
		plan.Broadcast = true
	}
	return plan, nil
}

// FallbackPlan broadcasts the raw booking summary
func FallbackPlan(b *models.Booking, cause error) *Plan {
	return &Plan{
		Mode:      ModeFallback,
		Broadcast: true,
		Payload: RequestPayload{
			BookingID: b.ID,
			Booking:   b,
			AreaHash:  utils.AreaHash(b.Coordinates),
			Fallback:  true,
		},
		Err: cause,
	}
}

// basePayload enriches the request with the customer's display details.
// A failed lookup only drops the enrichment.
func (p *Planner) basePayload(ctx context.Context, b *models.Booking) RequestPayload {
	payload := RequestPayload{
		BookingID: b.ID,
		Booking:   b,
		AreaHash:  utils.AreaHash(b.Coordinates),
	}
	if p.users == nil {
		return payload
	}

	user, err := p.users.GetUser(ctx, b.UserID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to load customer for dispatch payload",
			logger.BookingID(b.ID),
			logger.String("user_id", b.UserID),
			logger.Err(err))
		return payload
	}
	payload.CustomerName = user.DisplayName()
	payload.CustomerPhone = user.Phone
	return payload
}
