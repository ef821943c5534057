package journal

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mrlokans/moodsnapshot/internal/database"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("mood-%04d", n)
	}
}

func setupTestService(t *testing.T, opts ...Option) (*Service, *database.Database, *testClock) {
	t.Helper()

	db, err := database.NewDatabase(
		filepath.Join(t.TempDir(), "journal.db"),
		database.WithLogger(gormlogger.Discard),
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := &testClock{now: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	base := []Option{
		WithClock(clock.Now),
		WithLocation(time.UTC),
		WithIDGenerator(sequentialIDs()),
	}
	return New(db, append(base, opts...)...), db, clock
}

func ptr[T any](v T) *T {
	return &v
}

var ctx = context.Background()
