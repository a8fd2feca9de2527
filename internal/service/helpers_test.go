package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/database"
	"github.com/noah-isme/drivedesk-api/internal/dto"
)

var testDBSeq atomic.Int64

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service_%d_%d?mode=memory&cache=shared", time.Now().UnixNano(), testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

type stubActivityRecorder struct {
	entries []ActivityEntry
}

func (s *stubActivityRecorder) Record(_ context.Context, entry ActivityEntry) (dto.AdminActivityResponse, error) {
	s.entries = append(s.entries, entry)
	return dto.AdminActivityResponse{Action: entry.Action, EntityType: entry.EntityType, EntityID: entry.EntityID}, nil
}

func (s *stubActivityRecorder) actions() []string {
	out := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry.Action)
	}
	return out
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
