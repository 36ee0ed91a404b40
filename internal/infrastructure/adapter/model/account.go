package model

import (
	"time"
)

// Account represents the database model for accounts
type Account struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	Username       string `gorm:"uniqueIndex;not null;size:100"`
	Email          string `gorm:"uniqueIndex;not null;size:255"`
	Role           string `gorm:"not null;size:20;default:user"`
	IsActive       bool   `gorm:"not null;default:true"`
	RequestBalance int64  `gorm:"not null;default:0"`
	ExpiryTime     *time.Time
	IsExpired      bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
