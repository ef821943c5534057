package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Log
		Journal
		Retention
		Tasks
	}

	HTTP struct {
		Port int32
		Host string // Loopback by default; the API has no authentication
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Log struct {
		Level  string // zerolog level name
		Pretty bool   // Console output instead of JSON
	}
	Journal struct {
		Timezone     string // IANA name deciding which day is "today"; empty means the host zone
		FrequentTags int    // Default limit for frequent tags and the export tag list
		TopTags      int    // Tags listed in an insights report
	}
	Retention struct {
		Enabled  bool
		Days     int    // Keep entries dated within this many days of today
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration // Stuck tasks go back to the queue after this
		CleanupInterval time.Duration
	}
)

// Location resolves Journal.Timezone.
func (j Journal) Location() (*time.Location, error) {
	if j.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(j.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid JOURNAL_TIMEZONE %q: %w", j.Timezone, err)
	}
	return loc, nil
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)

	v.SetDefault("journal_timezone", "")
	v.SetDefault("journal_frequent_tags", 20)
	v.SetDefault("journal_top_tags", 10)

	// Retention defaults
	v.SetDefault("retention_enabled", false)
	v.SetDefault("retention_days", 365)
	v.SetDefault("retention_schedule", "0 3 * * *") // Daily at 03:00

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
		Journal: Journal{
			Timezone:     v.GetString("JOURNAL_TIMEZONE"),
			FrequentTags: v.GetInt("JOURNAL_FREQUENT_TAGS"),
			TopTags:      v.GetInt("JOURNAL_TOP_TAGS"),
		},
		Retention: Retention{
			Enabled:  v.GetBool("RETENTION_ENABLED"),
			Days:     v.GetInt("RETENTION_DAYS"),
			Schedule: v.GetString("RETENTION_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
