package entities

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the calendar-day format used for MoodEntry.Date.
const DateLayout = "2006-01-02"

// Mood values are an ordinal scale, 1 = most negative, 5 = most positive.
const (
	MoodMin = 1
	MoodMax = 5
)

// MoodValues lists every valid mood value in ascending order.
var MoodValues = []int{1, 2, 3, 4, 5}

// MoodEntry is one recorded mood for a calendar day.
//
// Timestamps are written verbatim (gorm auto-timestamps are disabled) so that
// imported entries keep their original createdAt/updatedAt.
type MoodEntry struct {
	ID        string                      `gorm:"primaryKey;size:64" json:"id"`
	Date      string                      `gorm:"index:idx_moods_date;size:10;not null" json:"date"`
	Mood      int                         `gorm:"index:idx_moods_mood;not null" json:"mood"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
	Notes     string                      `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time                   `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time                   `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (MoodEntry) TableName() string {
	return "moods"
}

// HasTag reports whether the entry lists tag (case-sensitive).
func (m MoodEntry) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// DistinctTags returns the entry's tags with duplicates removed, first occurrence wins.
func (m MoodEntry) DistinctTags() []string {
	return DistinctStrings(m.Tags)
}

// IsValidMood reports whether v is on the 1..5 scale.
func IsValidMood(v int) bool {
	return v >= MoodMin && v <= MoodMax
}

// IsValidDate reports whether s is a real calendar day in YYYY-MM-DD form.
func IsValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// DistinctStrings removes duplicates from values, preserving first-seen order.
func DistinctStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
