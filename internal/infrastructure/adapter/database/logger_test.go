package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/requestid"
	timeprovider "github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/time"
	mockcore "github.com/amirhossein-jamali/credit-exchange/mocks/port/core"
)

func TestExtractQueryType(t *testing.T) {
	testCases := []struct {
		sql  string
		want string
	}{
		{`SELECT * FROM "accounts" WHERE id = $1`, "SELECT"},
		{`  insert into "inventory_items" ("value") VALUES ($1)`, "INSERT"},
		{`UPDATE "redeemable_keys" SET "is_used"=$1`, "UPDATE"},
		{`DELETE FROM "daily_codes"`, "DELETE"},
		{`BEGIN`, ""},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, extractQueryType(tc.sql), tc.sql)
	}
}

func TestExtractTableName(t *testing.T) {
	testCases := []struct {
		sql  string
		want string
	}{
		{`SELECT * FROM "accounts" WHERE "accounts"."id" = 1 FOR UPDATE`, "accounts"},
		{`INSERT INTO "inventory_items" ("value","created_at") VALUES ('a',now())`, "inventory_items"},
		{`UPDATE "redeemable_keys" SET "is_used"=true WHERE id = 1`, "redeemable_keys"},
		{`SELECT 1`, ""},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, extractTableName(tc.sql), tc.sql)
	}
}

func TestDatabaseLoggerTrace(t *testing.T) {
	clock := timeprovider.NewFixedTimeProvider(retryEpoch)
	ctx := requestid.WithRequestID(context.Background(), "req-42")
	fc := func() (string, int64) { return `SELECT * FROM "accounts"`, 1 }

	t.Run("SlowQueryWarns", func(t *testing.T) {
		log := mockcore.NewMockLogger(t)
		log.EXPECT().Warn("Slow SQL Query", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["trace_id"] == "req-42" && fields["table"] == "accounts"
		})).Return().Once()

		dbLogger := NewDatabaseLogger(log, clock, "warn", 100*time.Millisecond)
		dbLogger.Trace(ctx, clock.Now().Add(-time.Second), fc, nil)
	})

	t.Run("ErrorLogsError", func(t *testing.T) {
		log := mockcore.NewMockLogger(t)
		log.EXPECT().Error("SQL Error", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["error"] == "boom"
		})).Return().Once()

		dbLogger := NewDatabaseLogger(log, clock, "error", 0)
		dbLogger.Trace(ctx, clock.Now(), fc, errors.New("boom"))
	})

	t.Run("NotFoundIsNotAnError", func(t *testing.T) {
		log := mockcore.NewMockLogger(t)

		dbLogger := NewDatabaseLogger(log, clock, "error", 0)
		dbLogger.Trace(ctx, clock.Now(), fc, gorm.ErrRecordNotFound)
	})

	t.Run("InfoLogsAtDebug", func(t *testing.T) {
		log := mockcore.NewMockLogger(t)
		log.EXPECT().Debug("SQL Query", mock.Anything).Return().Once()

		dbLogger := NewDatabaseLogger(log, clock, "info", time.Second)
		dbLogger.Trace(ctx, clock.Now(), fc, nil)
	})

	t.Run("SilentLogsNothing", func(t *testing.T) {
		log := mockcore.NewMockLogger(t)

		dbLogger := NewDatabaseLogger(log, clock, "info", 0).LogMode(logger.Silent)
		dbLogger.Trace(ctx, clock.Now(), fc, errors.New("boom"))
	})
}
