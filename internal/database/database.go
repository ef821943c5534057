package database

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/moodsnapshot/internal/entities"
)

// Conn hands out the live gorm handle. Repositories hold a Conn rather than a
// *gorm.DB so that a closed or never-opened store fails with ErrUninitialized.
type Conn interface {
	Conn() (*gorm.DB, error)
}

type Database struct {
	mu   sync.RWMutex
	db   *gorm.DB
	path string
}

// Option tweaks how the database is opened.
type Option func(*gorm.Config)

// WithLogger replaces gorm's query logger.
func WithLogger(l logger.Interface) Option {
	return func(c *gorm.Config) {
		c.Logger = l
	}
}

// NewDatabase opens (or creates) the SQLite store at dbPath and migrates the
// moods, settings and tag_usage tables.
func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	for _, opt := range opts {
		opt(gormCfg)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	// One connection: a single writer, and ":memory:" stays one database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entities.MoodEntry{},
		&entities.Settings{},
		&entities.TagUsage{},
	)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{db: db, path: dbPath}, nil
}

// Conn returns the open handle, or ErrUninitialized.
func (d *Database) Conn() (*gorm.DB, error) {
	if d == nil {
		return nil, entities.ErrUninitialized
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.db == nil {
		return nil, entities.ErrUninitialized
	}
	return d.db, nil
}

// Path returns the file the database was opened from.
func (d *Database) Path() string {
	return d.path
}

// Ping checks that the underlying connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	db, err := d.Conn()
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return entities.NewStorageError("ping", err)
	}
	return entities.NewStorageError("ping", sqlDB.PingContext(ctx))
}

// Close releases the connection. Later operations fail with ErrUninitialized.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	d.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn against a Conn bound to one transaction. Any error from fn
// rolls everything back and is returned as is; commit failures surface as
// storage failures.
func (d *Database) Transaction(ctx context.Context, fn func(tx Conn) error) error {
	db, err := d.Conn()
	if err != nil {
		return err
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txConn{tx: tx})
	})
	return entities.NewStorageError("transaction", err)
}

type txConn struct {
	tx *gorm.DB
}

func (c txConn) Conn() (*gorm.DB, error) {
	return c.tx, nil
}
