// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Record Store
//
//   - database.Conn: hands out the live gorm handle; *database.Database and the
//     transaction-bound connection inside Database.Transaction both implement it
//     (internal/database/database.go)
//   - journal.Store: a Conn that can also open transactions (internal/journal/service.go)
//
// ## HTTP Dependencies
//
// Controllers take the narrow interface they need (internal/http/stores.go):
//
//   - MoodStore, SettingsStore, TagStore, InsightsProvider, SnapshotStore,
//     RetentionStore: slices of *journal.Service
//   - Journal: all of the above, handed to NewRouter
//   - TaskQueue: the background queue, optional
//   - Pinger: the health check's view of the database
//
// ## Background Work
//
//   - tasks.MoodPurger, tasks.TagUsageRebuilder: what task processors call
//   - scheduler.PurgeQueue, scheduler.MoodPurger: how the retention scheduler
//     purges, through the queue when present and in-process otherwise
//
// # Adding a New Background Task
//
//  1. Define the task in internal/tasks/ with a Config() method, a processor and
//     a NewXQueue constructor (see purge_moods.go).
//
//  2. Add an EnqueueX helper on tasks.Client and register the queue in
//     entrypoint.Build.
//
//  3. Add the method to http.TaskQueue if an endpoint triggers it, and a
//     compile-time check in checks.go.
package interfaces
