package entities

import (
	"regexp"
	"time"

	"gorm.io/datatypes"
)

// SettingsID is the fixed primary key of the settings singleton.
const SettingsID = "user-settings"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeAuto:
		return true
	}
	return false
}

// MoodConfig maps each mood value to how it is presented.
type MoodConfig struct {
	Labels map[int]string `json:"labels"`
	Colors map[int]string `json:"colors"`
	Emojis map[int]string `json:"emojis"`
}

// DefaultMoodConfig returns a fresh copy of the built-in presentation config.
func DefaultMoodConfig() MoodConfig {
	return MoodConfig{
		Labels: map[int]string{
			1: "Very Sad",
			2: "Sad",
			3: "Neutral",
			4: "Happy",
			5: "Very Happy",
		},
		Colors: map[int]string{
			1: "#dc2626", // red-600
			2: "#f97316", // orange-500
			3: "#6b7280", // gray-500
			4: "#16a34a", // green-600
			5: "#22c55e", // green-500
		},
		Emojis: map[int]string{
			1: "😢",
			2: "😞",
			3: "😐",
			4: "😊",
			5: "😄",
		},
	}
}

// Complete returns a copy of c in which every mood value has a label, color and
// emoji. Missing or empty values fall back to the defaults; keys outside 1..5 are
// dropped.
func (c MoodConfig) Complete() MoodConfig {
	def := DefaultMoodConfig()
	return MoodConfig{
		Labels: completeMap(c.Labels, def.Labels),
		Colors: completeMap(c.Colors, def.Colors),
		Emojis: completeMap(c.Emojis, def.Emojis),
	}
}

// Merge overlays every non-empty value from patch onto c.
func (c MoodConfig) Merge(patch MoodConfig) MoodConfig {
	return MoodConfig{
		Labels: overlayMap(c.Labels, patch.Labels),
		Colors: overlayMap(c.Colors, patch.Colors),
		Emojis: overlayMap(c.Emojis, patch.Emojis),
	}.Complete()
}

func completeMap(values, defaults map[int]string) map[int]string {
	out := make(map[int]string, len(MoodValues))
	for _, v := range MoodValues {
		if s, ok := values[v]; ok && s != "" {
			out[v] = s
		} else {
			out[v] = defaults[v]
		}
	}
	return out
}

func overlayMap(base, patch map[int]string) map[int]string {
	out := make(map[int]string, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Settings is the per-installation preferences singleton.
type Settings struct {
	ID              string                         `gorm:"primaryKey;size:32" json:"id"`
	MoodConfig      datatypes.JSONType[MoodConfig] `json:"moodConfig"`
	ReminderEnabled bool                           `gorm:"not null;default:false" json:"reminderEnabled"`
	ReminderTime    *string                        `gorm:"size:5" json:"reminderTime,omitempty"`
	Theme           Theme                          `gorm:"size:8;not null" json:"theme"`
	CreatedAt       time.Time                      `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt       time.Time                      `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings returns the settings materialized on first access.
func DefaultSettings(now time.Time) Settings {
	return Settings{
		ID:              SettingsID,
		MoodConfig:      datatypes.NewJSONType(DefaultMoodConfig()),
		ReminderEnabled: false,
		Theme:           ThemeAuto,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Config returns the mood presentation config with all five values populated.
func (s Settings) Config() MoodConfig {
	return s.MoodConfig.Data().Complete()
}

var reminderTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// IsValidReminderTime reports whether s is a 24-hour HH:MM time.
func IsValidReminderTime(s string) bool {
	return reminderTimePattern.MatchString(s)
}
