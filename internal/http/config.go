package http

import "github.com/rs/zerolog"

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Journal  Journal
	Database Pinger

	// Task queue (optional). When nil, admin operations run inline.
	TaskQueue TaskQueue

	// Days used by POST /api/admin/purge when the body names none
	RetentionDays int

	// Upper bound for POST /api/import bodies
	MaxImportBytes int64

	Logger zerolog.Logger

	// Application info
	Version string
}
