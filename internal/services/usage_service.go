package services

import (
	"time"

	"instructly_go_backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// UsageService answers cost questions against the billing ledger. Reads fail
// open: an unreadable ledger is treated as zero spend so a storage outage
// never blocks classification.
type UsageService struct {
	store        UsageStore
	monthlyLimit float64
	now          func() time.Time
}

func NewUsageService(store UsageStore, monthlyLimit float64) *UsageService {
	return &UsageService{
		store:        store,
		monthlyLimit: monthlyLimit,
		now:          time.Now,
	}
}

// GetUserMonthlyCost returns the user's spend since the start of the current
// calendar month. Always succeeds; query failures read as zero.
func (us *UsageService) GetUserMonthlyCost(userID uuid.UUID) float64 {
	cost, err := us.store.SumCostSince(userID, startOfMonth(us.now()))
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to query monthly cost, treating as zero")
		return 0
	}
	return cost
}

// CheckCostLimits compares current monthly spend against the per-user cap.
// The limit is a strict less-than: spend equal to the cap is over it.
func (us *UsageService) CheckCostLimits(userID uuid.UUID) *models.CostLimitStatus {
	current := us.GetUserMonthlyCost(userID)
	return &models.CostLimitStatus{
		WithinLimits: current < us.monthlyLimit,
		CurrentCost:  current,
		Limit:        us.monthlyLimit,
	}
}

// startOfMonth returns the first instant of t's calendar month in t's location.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
