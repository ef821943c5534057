// Package settings provides database operations for the settings singleton.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	s, err := repo.Get(ctx)
package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/moodsnapshot/internal/database"
	"github.com/mrlokans/moodsnapshot/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	conn database.Conn
}

// NewRepository creates a new settings repository.
func NewRepository(conn database.Conn) *Repository {
	return &Repository{conn: conn}
}

// Get retrieves the settings record. It returns (nil, nil) when none has been
// persisted yet.
func (r *Repository) Get(ctx context.Context) (*entities.Settings, error) {
	db, err := r.conn.Conn()
	if err != nil {
		return nil, err
	}
	var s entities.Settings
	err = db.WithContext(ctx).Where("id = ?", entities.SettingsID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, entities.NewStorageError("get settings", err)
	}
	return &s, nil
}

// Put creates or overwrites the settings record. The ID is forced to the
// singleton key.
func (r *Repository) Put(ctx context.Context, s *entities.Settings) error {
	db, err := r.conn.Conn()
	if err != nil {
		return err
	}
	s.ID = entities.SettingsID
	err = db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(s).Error
	return entities.NewStorageError("put settings", err)
}

// Delete removes the settings record. Deleting when none exists is not an error.
func (r *Repository) Delete(ctx context.Context) error {
	db, err := r.conn.Conn()
	if err != nil {
		return err
	}
	err = db.WithContext(ctx).Where("id = ?", entities.SettingsID).Delete(&entities.Settings{}).Error
	return entities.NewStorageError("delete settings", err)
}
