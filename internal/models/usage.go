package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsageRecord is an append-only ledger row for one billable model call.
// CreatedAt (from gorm.Model) anchors the monthly cost window.
type UsageRecord struct {
	gorm.Model
	UserID        uuid.UUID `gorm:"type:uuid;index"`
	ModelTier     string    `gorm:"index"`
	OperationType string
	InputTokens   int32
	OutputTokens  int32
	CostUSD       float64
}
