package dispatch

import (
	"github.com/piresc/tukang/internal/pkg/models"
)

// Eligibility splits a candidate pool for one service category
type Eligibility struct {
	// Eligible workers list the category, are active and available, and are
	// verified for it.
	Eligible []*models.Worker
	// Unverified workers pass every rule except verification
	Unverified []*models.Worker
	// Rejected workers do not list the category or are not available
	Rejected []*models.Worker
}

// Filter applies the dispatch eligibility rules for category
func Filter(table *SynonymTable, category string, workers []*models.Worker) Eligibility {
	var out Eligibility
	for _, w := range workers {
		switch {
		case !listsCategory(table, w, category), !w.IsActive, w.Status != models.WorkerStatusAvailable:
			out.Rejected = append(out.Rejected, w)
		case !verifiedFor(table, w, category):
			out.Unverified = append(out.Unverified, w)
		default:
			out.Eligible = append(out.Eligible, w)
		}
	}
	return out
}

func listsCategory(table *SynonymTable, w *models.Worker, category string) bool {
	for _, c := range w.ServiceCategories {
		if table.Equal(c, category) {
			return true
		}
	}
	return false
}

// verifiedFor checks the exact category key first and falls back to any key
// naming the same canonical category.
func verifiedFor(table *SynonymTable, w *models.Worker, category string) bool {
	if v, ok := w.CategoryVerificationStatus[category]; ok {
		return v.IsVerified()
	}
	for key, v := range w.CategoryVerificationStatus {
		if table.Equal(key, category) && v.IsVerified() {
			return true
		}
	}
	return false
}
