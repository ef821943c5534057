// Package journal is the persistence facade for the mood journal.
//
// Service is the only path presentation code (the HTTP API, the CLI, background
// tasks) uses to reach stored data. It validates input, keeps tag-usage counters
// in step with mood entries and resolves several entries on one date to the
// most recently created one.
//
// Composite writes (an entry plus its tag counters, an import) run in a single
// database transaction.
package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrlokans/moodsnapshot/internal/database"
	"github.com/mrlokans/moodsnapshot/internal/entities"
)

// DefaultFrequentTags is the number of tags GetFrequentTags returns for a
// non-positive limit, and the number included in exports.
const DefaultFrequentTags = 20

// DefaultTopTags is how many tags an insights report lists.
const DefaultTopTags = 10

// Store is the record store the service writes through.
type Store interface {
	database.Conn
	Transaction(ctx context.Context, fn func(tx database.Conn) error) error
}

// Service implements mood, settings, tag, snapshot and retention operations.
type Service struct {
	store        Store
	now          func() time.Time
	loc          *time.Location
	newID        func() string
	log          zerolog.Logger
	frequentTags int
	topTags      int
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLocation sets the time zone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.log = l.With().Str("component", "journal").Logger()
	}
}

// WithIDGenerator replaces the UUID generator used for new entries.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

// WithTagLimits overrides the frequent-tag and insights top-tag counts.
func WithTagLimits(frequent, top int) Option {
	return func(s *Service) {
		if frequent > 0 {
			s.frequentTags = frequent
		}
		if top > 0 {
			s.topTags = top
		}
	}
}

// New creates a Service over store. The store must already be open; calls on a
// closed store fail with entities.ErrUninitialized.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:        store,
		now:          time.Now,
		loc:          time.Local,
		newID:        uuid.NewString,
		log:          zerolog.Nop(),
		frequentTags: DefaultFrequentTags,
		topTags:      DefaultTopTags,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock's current time in its location.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

// Today returns the current calendar day as YYYY-MM-DD.
func (s *Service) Today() string {
	return s.Now().Format(entities.DateLayout)
}

// stamp is the time written to createdAt, updatedAt and lastUsed.
func (s *Service) stamp() time.Time {
	return s.now().UTC()
}
