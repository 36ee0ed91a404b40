package model

import (
	"time"
)

// RedeemableKey represents the database model for VIP keys
type RedeemableKey struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Value        string `gorm:"uniqueIndex;not null;size:32"`
	CreditAmount int64  `gorm:"not null"`
	KeyType      string `gorm:"not null;size:20;default:regular"`
	IsUsed       bool   `gorm:"not null;default:false"`
	UsedBy       *uint64
	UsedAt       *time.Time
	ExpiresAt    *time.Time
	IsExpired    bool      `gorm:"not null;default:false"`
	Description  string    `gorm:"size:200"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for RedeemableKey
func (RedeemableKey) TableName() string {
	return "redeemable_keys"
}
