package model

import (
	"time"
)

// TransactionRecord represents the database model for the append-only ledger
type TransactionRecord struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	AccountID   uint64    `gorm:"not null;index"`
	Delta       int64     `gorm:"not null"`
	Description string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for TransactionRecord
func (TransactionRecord) TableName() string {
	return "transaction_records"
}

// DailyCode represents the single-row daily code table
type DailyCode struct {
	ID        int    `gorm:"primaryKey"`
	Code      string `gorm:"not null;size:100"`
	UpdatedBy *uint64
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for DailyCode
func (DailyCode) TableName() string {
	return "daily_codes"
}
