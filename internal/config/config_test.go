package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	// Empty variables count as unset.
	for _, key := range []string{"PORT", "HOST", "DATABASE_PATH", "LOG_LEVEL", "RETENTION_ENABLED", "TASK_WORKERS"} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()

	assert.Equal(t, int32(8190), cfg.HTTP.Port)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Retention.Enabled)
	assert.Equal(t, 365, cfg.Retention.Days)
	assert.Equal(t, "0 3 * * *", cfg.Retention.Schedule)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.Tasks.CleanupInterval)
	assert.Equal(t, 20, cfg.Journal.FrequentTags)
	assert.Equal(t, 10, cfg.Journal.TopTags)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/journal.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RETENTION_ENABLED", "true")
	t.Setenv("RETENTION_DAYS", "90")
	t.Setenv("TASK_RELEASE_AFTER", "30s")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/journal.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Retention.Enabled)
	assert.Equal(t, 90, cfg.Retention.Days)
	assert.Equal(t, 30*time.Second, cfg.Tasks.ReleaseAfter)
}

func TestJournal_Location(t *testing.T) {
	loc, err := Journal{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = Journal{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = Journal{Timezone: "Mars/Olympus_Mons"}.Location()
	assert.Error(t, err)
}
