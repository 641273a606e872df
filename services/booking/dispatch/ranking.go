package dispatch

import (
	"math"
	"sort"

	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/internal/utils"
)

// PriorityScore orders workers for dispatch. A stored rank score wins;
// otherwise the badge tier dominates and rating breaks ties within a tier.
func PriorityScore(w *models.Worker) float64 {
	if w.RankScore > 0 {
		return w.RankScore
	}
	return float64(w.EffectiveBadge().Weight())*100 + w.Rating*10
}

// RankScore is the reputation score stored on a worker after each recompute
func RankScore(rating float64, totalReviews, completedJobs int) float64 {
	return rating*20 + float64(totalReviews)*2 + float64(completedJobs)*0.5
}

// ComputeStats derives badge and rank score from raw booking aggregates
func ComputeStats(completedJobs int, rating float64, totalReviews int, totalEarnings float64) *models.WorkerStats {
	return &models.WorkerStats{
		CompletedJobs: completedJobs,
		Rating:        rating,
		TotalReviews:  totalReviews,
		Badge:         models.BadgeForJobs(completedJobs),
		RankScore:     RankScore(rating, totalReviews, completedJobs),
		TotalEarnings: totalEarnings,
	}
}

// Candidate is an eligible worker with its dispatch ordering keys
type Candidate struct {
	Worker     *models.Worker
	Score      float64
	DistanceKm float64 // +Inf when the worker has no location
}

// HasDistance reports whether the distance is known
func (c Candidate) HasDistance() bool {
	return !math.IsInf(c.DistanceKm, 0)
}

// Rank scores workers against origin and sorts them by score descending,
// then distance ascending.
func Rank(origin *models.Coordinates, workers []*models.Worker) []Candidate {
	ranked := make([]Candidate, 0, len(workers))
	for _, w := range workers {
		ranked = append(ranked, Candidate{
			Worker:     w,
			Score:      PriorityScore(w),
			DistanceKm: utils.DistanceBetween(origin, w.CurrentLocation),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})
	return ranked
}
