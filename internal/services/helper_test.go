package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/justsurfingit/automate/internal/database"
	"github.com/justsurfingit/automate/internal/dtos"
	"github.com/justsurfingit/automate/internal/models"
	"github.com/justsurfingit/automate/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore returns a store on a private in-memory SQLite database.
func newTestStore(t *testing.T) *storage.GormStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to create in-memory database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return storage.NewGormStore(db)
}

// fakeSearcher counts calls and serves a fixed listing.
type fakeSearcher struct {
	mu    sync.Mutex
	jobs  []models.Job
	err   error
	calls []dtos.JobSearchRequest
}

func (f *fakeSearcher) SearchJobs(ctx context.Context, req dtos.JobSearchRequest) ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.jobs, f.err
}

func (f *fakeSearcher) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
