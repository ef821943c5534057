// Package tags provides database operations for tag-usage counters.
//
// Counters are denormalized statistics over mood entries: one row per distinct
// tag (case-sensitive) with the number of entries that include it and when it
// was last used.
//
// # Usage
//
//	repo := tags.NewRepository(db)
//	err := repo.Increment(ctx, []string{"work", "sleep"}, time.Now())
package tags

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/moodsnapshot/internal/database"
	"github.com/mrlokans/moodsnapshot/internal/entities"
)

// Repository handles all tag-usage database operations.
type Repository struct {
	conn database.Conn
}

// NewRepository creates a new tags repository.
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

// Put creates or overwrites a counter.
func (r *Repository) Put(ctx context.Context, usage *entities.TagUsage) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	err = db.Clauses(clause.OnConflict{UpdateAll: true}).Create(usage).Error
	return entities.NewStorageError("put tag "+usage.Tag, err)
}

// Get retrieves a counter. A missing tag yields (nil, nil).
func (r *Repository) Get(ctx context.Context, tag string) (*entities.TagUsage, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}
	var usage entities.TagUsage
	err = db.Where("tag = ?", tag).First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, entities.NewStorageError("get tag "+tag, err)
	}
	return &usage, nil
}

// GetAll retrieves every counter ordered by tag.
func (r *Repository) GetAll(ctx context.Context) ([]entities.TagUsage, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}
	usages := []entities.TagUsage{}
	if err := db.Order("tag ASC").Find(&usages).Error; err != nil {
		return nil, entities.NewStorageError("get all tags", err)
	}
	return usages, nil
}

// GetTop returns up to limit counters, highest count first, ties broken by the
// most recent LastUsed and then by tag. A limit <= 0 returns all counters.
func (r *Repository) GetTop(ctx context.Context, limit int) ([]entities.TagUsage, error) {
	usages, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	SortByFrequency(usages)
	if limit > 0 && len(usages) > limit {
		usages = usages[:limit]
	}
	return usages, nil
}

// Delete removes a counter. Deleting a missing tag is not an error.
func (r *Repository) Delete(ctx context.Context, tag string) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	err = db.Where("tag = ?", tag).Delete(&entities.TagUsage{}).Error
	return entities.NewStorageError("delete tag "+tag, err)
}

// Increment adds one use to every tag and stamps LastUsed, creating counters
// as needed. Pass distinct tags; duplicates are counted again.
func (r *Repository) Increment(ctx context.Context, tags []string, at time.Time) error {
	if len(tags) == 0 {
		return nil
	}
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	at = at.UTC()
	for _, tag := range tags {
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tag"}},
			DoUpdates: clause.Assignments(map[string]any{
				"count":     gorm.Expr("tag_usage.count + 1"),
				"last_used": at,
			}),
		}).Create(&entities.TagUsage{Tag: tag, Count: 1, LastUsed: at}).Error
		if err != nil {
			return entities.NewStorageError("increment tag "+tag, err)
		}
	}
	return nil
}

// Touch stamps LastUsed on existing counters without changing their counts.
func (r *Repository) Touch(ctx context.Context, tags []string, at time.Time) error {
	if len(tags) == 0 {
		return nil
	}
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	err = db.Model(&entities.TagUsage{}).
		Where("tag IN ?", tags).
		Update("last_used", at.UTC()).Error
	return entities.NewStorageError("touch tags", err)
}

// Decrement removes one use from every tag and drops counters that reach zero.
func (r *Repository) Decrement(ctx context.Context, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	for _, tag := range tags {
		err := db.Model(&entities.TagUsage{}).
			Where("tag = ?", tag).
			UpdateColumn("count", gorm.Expr("count - 1")).Error
		if err != nil {
			return entities.NewStorageError("decrement tag "+tag, err)
		}
	}
	err = db.Where("tag IN ? AND count <= 0", tags).Delete(&entities.TagUsage{}).Error
	return entities.NewStorageError("prune tags", err)
}

// ReplaceAll deletes every counter and writes usages in their place. Run it
// inside a transaction.
func (r *Repository) ReplaceAll(ctx context.Context, usages []entities.TagUsage) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entities.TagUsage{}).Error; err != nil {
		return entities.NewStorageError("clear tags", err)
	}
	if len(usages) == 0 {
		return nil
	}
	err = db.CreateInBatches(usages, 200).Error
	return entities.NewStorageError("write tags", err)
}

// SortByFrequency orders usages by count desc, LastUsed desc, tag asc.
func SortByFrequency(usages []entities.TagUsage) {
	sort.SliceStable(usages, func(i, j int) bool {
		a, b := usages[i], usages[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if !a.LastUsed.Equal(b.LastUsed) {
			return a.LastUsed.After(b.LastUsed)
		}
		return a.Tag < b.Tag
	})
}
