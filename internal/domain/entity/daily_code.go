package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

// DailyCodeID is the primary key of the single configuration row
const DailyCodeID = 1

const maxDailyCodeLength = 100

// DailyCode is the admin-set code readable by unexpired accounts
type DailyCode struct {
	Code      string
	UpdatedBy *uint64
	UpdatedAt time.Time
}

// NewDailyCode trims and validates a code
func NewDailyCode(code string, updatedBy uint64, now time.Time) (*DailyCode, error) {
	code = strings.TrimSpace(code)
	if code == "" || utf8.RuneCountInString(code) > maxDailyCodeLength {
		return nil, fmt.Errorf("%w: daily code must be 1..%d characters", errs.ErrInvalidInput, maxDailyCodeLength)
	}
	dc := &DailyCode{Code: code, UpdatedAt: now}
	if updatedBy != 0 {
		dc.UpdatedBy = &updatedBy
	}
	return dc, nil
}

// DailyCodeCacheKey is the state store key holding the cached code
const DailyCodeCacheKey = "ledger:daily_code"
