package model

import (
	"time"
)

// InventoryItem represents the database model for claimable tokens
type InventoryItem struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement"`
	Value     string  `gorm:"uniqueIndex;not null;size:255"`
	IsClaimed bool    `gorm:"not null;default:false"`
	ClaimedBy *uint64 `gorm:"index"`
	ClaimedAt *time.Time
	ExpiresAt *time.Time
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for InventoryItem
func (InventoryItem) TableName() string {
	return "inventory_items"
}
