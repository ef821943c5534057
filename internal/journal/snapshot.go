package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/mrlokans/moodsnapshot/internal/database"
	"github.com/mrlokans/moodsnapshot/internal/database/moods"
	"github.com/mrlokans/moodsnapshot/internal/database/settings"
	"github.com/mrlokans/moodsnapshot/internal/entities"
)

// SnapshotVersion is the export format version written by ExportSnapshot.
const SnapshotVersion = 1

// Snapshot is the export bundle: every entry, the settings and the frequent tags.
type Snapshot struct {
	Version    int                  `json:"version"`
	ExportDate time.Time            `json:"exportDate"`
	Moods      []entities.MoodEntry `json:"moods"`
	Settings   *entities.Settings   `json:"settings"`
	Tags       []string             `json:"tags"`
}

// ImportResult reports what ImportSnapshot wrote.
type ImportResult struct {
	Moods            int  `json:"moods"`
	SettingsImported bool `json:"settingsImported"`
	Tags             int  `json:"tags"`
}

// ExportSnapshot collects the whole dataset.
func (s *Service) ExportSnapshot(ctx context.Context) (*Snapshot, error) {
	all, err := s.GetAllMoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("export moods: %w", err)
	}
	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("export settings: %w", err)
	}
	frequent, err := s.GetFrequentTags(ctx, s.frequentTags)
	if err != nil {
		return nil, fmt.Errorf("export tags: %w", err)
	}
	return &Snapshot{
		Version:    SnapshotVersion,
		ExportDate: s.stamp(),
		Moods:      all,
		Settings:   current,
		Tags:       frequent,
	}, nil
}

// MarshalSnapshot renders snap as indented JSON.
func MarshalSnapshot(snap *Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

type rawSnapshot struct {
	Version  json.RawMessage `json:"version"`
	Moods    json.RawMessage `json:"moods"`
	Settings json.RawMessage `json:"settings"`
}

// ImportSnapshot writes the entries and settings found in data. Entries
// overwrite stored entries with the same id; nothing else is deleted, so
// importing the same bundle twice has the same effect as once. The bundle is
// validated in full before anything is written, and all writes share one
// transaction. Tag counters are rebuilt from the resulting entries.
//
// Malformed bundles fail with an *entities.ImportError, which matches
// entities.ErrInvalidFormat.
func (s *Service) ImportSnapshot(ctx context.Context, data []byte) (*ImportResult, error) {
	entries, imported, err := s.parseSnapshot(data)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Moods: len(entries), SettingsImported: imported != nil}
	err = s.store.Transaction(ctx, func(tx database.Conn) error {
		repo := moods.NewRepository(tx)
		if err := fillImportedTimestamps(ctx, repo, entries); err != nil {
			return err
		}
		if err := repo.PutAll(ctx, entries); err != nil {
			return err
		}
		if imported != nil {
			settingsRepo := settings.NewRepository(tx)
			stored, err := settingsRepo.Get(ctx)
			if err != nil {
				return err
			}
			fillImportedSettingsTimestamps(imported, stored, s.stamp())
			if err := settingsRepo.Put(ctx, imported); err != nil {
				return err
			}
		}
		n, err := rebuildTagUsage(ctx, tx)
		result.Tags = n
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("import snapshot: %w", err)
	}

	s.log.Info().
		Int("moods", result.Moods).
		Bool("settings", result.SettingsImported).
		Msg("snapshot imported")
	return result, nil
}

func (s *Service) parseSnapshot(data []byte) ([]entities.MoodEntry, *entities.Settings, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, &entities.ImportError{Detail: "payload is not a JSON object", Err: err}
	}
	s.checkSnapshotVersion(raw.Version)

	trimmed := bytes.TrimSpace(raw.Moods)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil, &entities.ImportError{Detail: "moods is missing"}
	}
	if trimmed[0] != '[' {
		return nil, nil, &entities.ImportError{Detail: "moods is not an array"}
	}

	var entries []entities.MoodEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, nil, &entities.ImportError{Detail: "moods", Err: err}
	}

	byID := make(map[string]int, len(entries))
	out := make([]entities.MoodEntry, 0, len(entries))
	for i := range entries {
		e := entries[i]
		if err := validateImported(&e); err != nil {
			return nil, nil, &entities.ImportError{Detail: fmt.Sprintf("moods[%d]", i), Err: err}
		}
		// A later duplicate id replaces the earlier one, as a second put would.
		if j, ok := byID[e.ID]; ok {
			out[j] = e
			continue
		}
		byID[e.ID] = len(out)
		out = append(out, e)
	}

	imported, err := parseImportedSettings(raw.Settings)
	if err != nil {
		return nil, nil, err
	}
	return out, imported, nil
}

// checkSnapshotVersion only warns: hand-written bundles may carry any version
// or none at all.
func (s *Service) checkSnapshotVersion(raw json.RawMessage) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return
	}
	var version int
	if err := json.Unmarshal(trimmed, &version); err != nil {
		s.log.Warn().RawJSON("version", trimmed).Msg("snapshot version is not an integer, importing anyway")
		return
	}
	if version > SnapshotVersion {
		s.log.Warn().Int("version", version).Msg("importing snapshot from a newer format version")
	}
}

func validateImported(e *entities.MoodEntry) error {
	if e.ID == "" {
		return entities.NewValidationError("id", "is required")
	}
	if err := validateDate("date", e.Date); err != nil {
		return err
	}
	if err := validateMood(e.Mood); err != nil {
		return err
	}
	e.Tags = NormalizeTags(e.Tags)
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return nil
}

// fillImportedTimestamps completes entries that came without timestamps. A
// stored entry with the same id keeps its own; a new one is stamped at
// midnight UTC of its date. Neither depends on the clock, so importing the
// same bundle again writes the same rows.
func fillImportedTimestamps(ctx context.Context, repo *moods.Repository, entries []entities.MoodEntry) error {
	for i := range entries {
		e := &entries[i]
		if !e.CreatedAt.IsZero() && !e.UpdatedAt.IsZero() {
			continue
		}
		stored, err := repo.Get(ctx, e.ID)
		if err != nil {
			return err
		}
		if stored != nil {
			if e.CreatedAt.IsZero() {
				e.CreatedAt = stored.CreatedAt.UTC()
			}
			if e.UpdatedAt.IsZero() {
				e.UpdatedAt = stored.UpdatedAt.UTC()
			}
			continue
		}
		if e.CreatedAt.IsZero() {
			day, err := time.Parse(entities.DateLayout, e.Date)
			if err != nil {
				return err
			}
			e.CreatedAt = day
		}
		if e.UpdatedAt.IsZero() {
			e.UpdatedAt = e.CreatedAt
		}
	}
	return nil
}

func parseImportedSettings(raw json.RawMessage) (*entities.Settings, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var imported entities.Settings
	if err := json.Unmarshal(trimmed, &imported); err != nil {
		return nil, &entities.ImportError{Detail: "settings", Err: err}
	}

	imported.ID = entities.SettingsID
	imported.MoodConfig = datatypes.NewJSONType(imported.Config())
	if imported.Theme == "" {
		imported.Theme = entities.ThemeAuto
	}
	if !imported.Theme.IsValid() {
		return nil, &entities.ImportError{Detail: fmt.Sprintf("settings.theme %q is not one of light, dark, auto", imported.Theme)}
	}
	if imported.ReminderTime != nil {
		switch {
		case *imported.ReminderTime == "":
			imported.ReminderTime = nil
		case !entities.IsValidReminderTime(*imported.ReminderTime):
			return nil, &entities.ImportError{Detail: fmt.Sprintf("settings.reminderTime %q is not a HH:MM time", *imported.ReminderTime)}
		}
	}
	return &imported, nil
}

// fillImportedSettingsTimestamps keeps the stored timestamps for fields the
// bundle left out, and falls back to now only when nothing is stored yet.
func fillImportedSettingsTimestamps(imported, stored *entities.Settings, now time.Time) {
	if imported.CreatedAt.IsZero() {
		imported.CreatedAt = now
		if stored != nil {
			imported.CreatedAt = stored.CreatedAt.UTC()
		}
	}
	if imported.UpdatedAt.IsZero() {
		imported.UpdatedAt = now
		if stored != nil {
			imported.UpdatedAt = stored.UpdatedAt.UTC()
		}
	}
}
