package models

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/lib/pq"
)

// WorkerStatus is the dispatch availability of a worker
type WorkerStatus string

const (
	WorkerStatusAvailable WorkerStatus = "available"
	WorkerStatusBusy      WorkerStatus = "busy"
)

// Badge is the reputation tier of a worker
type Badge string

const (
	BadgeIron     Badge = "Iron"
	BadgeSilver   Badge = "Silver"
	BadgeGold     Badge = "Gold"
	BadgePlatinum Badge = "Platinum"
)

// Completed-job thresholds for each badge tier
const (
	PlatinumJobThreshold = 2000
	GoldJobThreshold     = 1200
	SilverJobThreshold   = 500
)

// BadgeForJobs derives a badge from a completed job count
func BadgeForJobs(completedJobs int) Badge {
	switch {
	case completedJobs >= PlatinumJobThreshold:
		return BadgePlatinum
	case completedJobs >= GoldJobThreshold:
		return BadgeGold
	case completedJobs >= SilverJobThreshold:
		return BadgeSilver
	default:
		return BadgeIron
	}
}

// ParseBadge matches a stored badge name case-insensitively. Unknown names yield "".
func ParseBadge(s string) Badge {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "platinum":
		return BadgePlatinum
	case "gold":
		return BadgeGold
	case "silver":
		return BadgeSilver
	case "iron":
		return BadgeIron
	}
	return ""
}

// Weight is the dispatch weight of the badge
func (b Badge) Weight() int {
	switch b {
	case BadgePlatinum:
		return 4
	case BadgeGold:
		return 3
	case BadgeSilver:
		return 2
	default:
		return 1
	}
}

// Worker is the dispatch-relevant view of a gig worker
type Worker struct {
	ID                         string                  `json:"id"`
	Name                       string                  `json:"name"`
	Phone                      string                  `json:"phone,omitempty"`
	ServiceCategories          []string                `json:"serviceCategories"`
	CategoryVerificationStatus map[string]Verification `json:"categoryVerificationStatus"`
	IsActive                   bool                    `json:"isActive"`
	Status                     WorkerStatus            `json:"status"`
	CurrentLocation            *Coordinates            `json:"currentLocation,omitempty"`
	Rating                     float64                 `json:"rating"`
	CompletedJobs              int                     `json:"completedJobs"`
	TotalReviews               int                     `json:"totalReviews"`
	Badge                      Badge                   `json:"badge,omitempty"`
	RankScore                  float64                 `json:"rankScore"`
	RewardPoints               int                     `json:"rewardPoints"`
	TotalEarnings              float64                 `json:"totalEarnings"`
	CurrentBookingID           string                  `json:"currentBookingId,omitempty"`
	UpdatedAt                  time.Time               `json:"updatedAt"`
}

// EffectiveBadge returns the stored badge or one derived from completed jobs
func (w *Worker) EffectiveBadge() Badge {
	if w.Badge != "" {
		return w.Badge
	}
	return BadgeForJobs(w.CompletedJobs)
}

// Clone returns a deep copy
func (w *Worker) Clone() *Worker {
	if w == nil {
		return nil
	}
	c := *w
	c.ServiceCategories = append([]string(nil), w.ServiceCategories...)
	if w.CategoryVerificationStatus != nil {
		c.CategoryVerificationStatus = make(map[string]Verification, len(w.CategoryVerificationStatus))
		for k, v := range w.CategoryVerificationStatus {
			c.CategoryVerificationStatus[k] = v
		}
	}
	if w.CurrentLocation != nil {
		loc := *w.CurrentLocation
		c.CurrentLocation = &loc
	}
	return &c
}

// WorkerStats is the recomputed reputation of a worker. TotalEarnings is the
// settled amount of paid completed bookings, reported but never persisted.
type WorkerStats struct {
	CompletedJobs int     `json:"completedJobs"`
	Rating        float64 `json:"rating"`
	TotalReviews  int     `json:"totalReviews"`
	Badge         Badge   `json:"badge"`
	RankScore     float64 `json:"rankScore"`
	TotalEarnings float64 `json:"totalEarnings"`
}

// WorkerDTO is the sqlx row form of a Worker
type WorkerDTO struct {
	ID                         string          `db:"id"`
	Name                       string          `db:"name"`
	Phone                      sql.NullString  `db:"phone"`
	ServiceCategories          pq.StringArray  `db:"service_categories"`
	CategoryVerificationStatus []byte          `db:"category_verification_status"`
	IsActive                   bool            `db:"is_active"`
	Status                     WorkerStatus    `db:"status"`
	Latitude                   sql.NullFloat64 `db:"latitude"`
	Longitude                  sql.NullFloat64 `db:"longitude"`
	Rating                     float64         `db:"rating"`
	CompletedJobs              int             `db:"completed_jobs"`
	TotalReviews               int             `db:"total_reviews"`
	Badge                      sql.NullString  `db:"badge"`
	RankScore                  float64         `db:"rank_score"`
	RewardPoints               int             `db:"reward_points"`
	TotalEarnings              float64         `db:"total_earnings"`
	CurrentBookingID           sql.NullString  `db:"current_booking_id"`
	UpdatedAt                  time.Time       `db:"updated_at"`
}

// ToWorker converts a row into a Worker, normalizing every verification
// entry to its structured form.
func (dto *WorkerDTO) ToWorker() (*Worker, error) {
	w := &Worker{
		ID:                dto.ID,
		Name:              dto.Name,
		Phone:             dto.Phone.String,
		ServiceCategories: []string(dto.ServiceCategories),
		IsActive:          dto.IsActive,
		Status:            dto.Status,
		Rating:            dto.Rating,
		CompletedJobs:     dto.CompletedJobs,
		TotalReviews:      dto.TotalReviews,
		Badge:             ParseBadge(dto.Badge.String),
		RankScore:         dto.RankScore,
		RewardPoints:      dto.RewardPoints,
		TotalEarnings:     dto.TotalEarnings,
		CurrentBookingID:  dto.CurrentBookingID.String,
		UpdatedAt:         dto.UpdatedAt,
	}
	if dto.Latitude.Valid && dto.Longitude.Valid {
		w.CurrentLocation = &Coordinates{Latitude: dto.Latitude.Float64, Longitude: dto.Longitude.Float64}
	}
	w.CategoryVerificationStatus = map[string]Verification{}
	if len(dto.CategoryVerificationStatus) > 0 {
		if err := json.Unmarshal(dto.CategoryVerificationStatus, &w.CategoryVerificationStatus); err != nil {
			return nil, err
		}
	}
	return w, nil
}
