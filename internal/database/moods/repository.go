// Package moods provides database operations for mood entries.
//
// # Usage
//
//	repo := moods.NewRepository(db)
//	entries, err := repo.QueryByDateRange(ctx, "2024-03-01", "2024-03-31")
package moods

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/moodsnapshot/internal/database"
	"github.com/mrlokans/moodsnapshot/internal/entities"
)

const batchSize = 200

// Repository handles all mood entry database operations.
type Repository struct {
	conn database.Conn
}

// NewRepository creates a new moods repository.
func NewRepository(conn database.Conn) *Repository {
	return &Repository{conn: conn}
}

func (r *Repository) db(ctx context.Context) (*gorm.DB, error) {
	db, err := r.conn.Conn()
	if err != nil {
		return nil, err
	}
	return db.WithContext(ctx), nil
}

// Put inserts the entry or overwrites the one with the same ID.
func (r *Repository) Put(ctx context.Context, entry *entities.MoodEntry) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	err = db.Clauses(clause.OnConflict{UpdateAll: true}).Create(entry).Error
	return entities.NewStorageError("put mood "+entry.ID, err)
}

// PutAll upserts entries in batches.
func (r *Repository) PutAll(ctx context.Context, entries []entities.MoodEntry) error {
	if len(entries) == 0 {
		return nil
	}
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	err = db.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(entries, batchSize).Error
	return entities.NewStorageError("put moods", err)
}

// Get retrieves an entry by ID. A missing ID yields (nil, nil).
func (r *Repository) Get(ctx context.Context, id string) (*entities.MoodEntry, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}
	var entry entities.MoodEntry
	err = db.Where("id = ?", id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, entities.NewStorageError("get mood "+id, err)
	}
	return &entry, nil
}

// GetAll retrieves every entry. Order is stable across reads but callers
// should sort if they need a particular one.
func (r *Repository) GetAll(ctx context.Context) ([]entities.MoodEntry, error) {
	return r.find(ctx, "get all moods", func(db *gorm.DB) *gorm.DB { return db })
}

// GetByDate retrieves every physical entry recorded for date.
func (r *Repository) GetByDate(ctx context.Context, date string) ([]entities.MoodEntry, error) {
	return r.find(ctx, "get moods by date", func(db *gorm.DB) *gorm.DB {
		return db.Where("date = ?", date)
	})
}

// QueryByDateRange retrieves entries whose date lies in [startDate, endDate].
func (r *Repository) QueryByDateRange(ctx context.Context, startDate, endDate string) ([]entities.MoodEntry, error) {
	return r.find(ctx, "query moods by date range", func(db *gorm.DB) *gorm.DB {
		return db.Where("date >= ? AND date <= ?", startDate, endDate)
	})
}

// QueryBefore retrieves entries dated strictly before date.
func (r *Repository) QueryBefore(ctx context.Context, date string) ([]entities.MoodEntry, error) {
	return r.find(ctx, "query moods before date", func(db *gorm.DB) *gorm.DB {
		return db.Where("date < ?", date)
	})
}

// Count returns the number of stored entries.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	db, err := r.db(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	err = db.Model(&entities.MoodEntry{}).Count(&count).Error
	return count, entities.NewStorageError("count moods", err)
}

// Delete removes an entry. Deleting a missing ID is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	err = db.Where("id = ?", id).Delete(&entities.MoodEntry{}).Error
	return entities.NewStorageError("delete mood "+id, err)
}

// DeleteBefore removes entries dated strictly before date and returns how many
// rows went away.
func (r *Repository) DeleteBefore(ctx context.Context, date string) (int64, error) {
	db, err := r.db(ctx)
	if err != nil {
		return 0, err
	}
	result := db.Where("date < ?", date).Delete(&entities.MoodEntry{})
	if result.Error != nil {
		return 0, entities.NewStorageError("delete moods before "+date, result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteAll removes every entry.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	db, err := r.db(ctx)
	if err != nil {
		return 0, err
	}
	result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entities.MoodEntry{})
	if result.Error != nil {
		return 0, entities.NewStorageError("delete all moods", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *Repository) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]entities.MoodEntry, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}
	entries := []entities.MoodEntry{}
	err = scope(db).Order("date ASC, created_at ASC, id ASC").Find(&entries).Error
	if err != nil {
		return nil, entities.NewStorageError(op, err)
	}
	return entries, nil
}
