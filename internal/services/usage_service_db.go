package services

import (
	"time"

	"instructly_go_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultUsageStore struct {
	db *gorm.DB
}

func NewUsageStoreDB(db *gorm.DB) UsageStore {
	return &DefaultUsageStore{db: db}
}

func (s *DefaultUsageStore) AppendUsageRecord(record *models.UsageRecord) error {
	return s.db.Create(record).Error
}

func (s *DefaultUsageStore) SumCostSince(userID uuid.UUID, since time.Time) (float64, error) {
	var total float64
	err := s.db.Model(&models.UsageRecord{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Select("COALESCE(SUM(cost_usd), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
