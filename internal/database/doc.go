// Package database provides the local record store for the journal.
//
// # Architecture
//
// The store is organized into one sub-package per collection:
//
//	database/
//	├── database.go      # Connection setup, migrations, transactions
//	├── moods/           # Mood entries, with the date index
//	├── settings/        # The settings singleton
//	└── tags/            # Tag-usage counters
//
// # Using Sub-packages
//
// Each sub-package provides a Repository over a Conn:
//
//	db, err := database.NewDatabase("./moodsnapshot.db")
//
//	moodsRepo := moods.NewRepository(db)
//	entries, err := moodsRepo.QueryByDateRange(ctx, "2024-01-01", "2024-01-31")
//
// Repositories built inside Database.Transaction share one transaction:
//
//	err := db.Transaction(ctx, func(tx database.Conn) error {
//		if err := moods.NewRepository(tx).Put(ctx, entry); err != nil {
//			return err
//		}
//		return tags.NewRepository(tx).Increment(ctx, entry.DistinctTags(), now)
//	})
//
// # Errors
//
// Operations on a store that was never opened, or was closed, fail with
// entities.ErrUninitialized. Driver errors are wrapped as entities.StorageError.
// Point lookups return (nil, nil) for missing keys and deletes of missing keys
// succeed.
package database
