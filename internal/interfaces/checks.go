package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/moodsnapshot/internal/database"
	"github.com/mrlokans/moodsnapshot/internal/http"
	"github.com/mrlokans/moodsnapshot/internal/journal"
	"github.com/mrlokans/moodsnapshot/internal/scheduler"
	"github.com/mrlokans/moodsnapshot/internal/tasks"
)

// =============================================================================
// Record Store
// =============================================================================

var _ database.Conn = (*database.Database)(nil)
var _ journal.Store = (*database.Database)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Journal Service
// =============================================================================

var _ http.Journal = (*journal.Service)(nil)
var _ tasks.MoodPurger = (*journal.Service)(nil)
var _ tasks.TagUsageRebuilder = (*journal.Service)(nil)
var _ scheduler.MoodPurger = (*journal.Service)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.PurgeQueue = (*tasks.Client)(nil)
