// Package insights computes summary statistics over mood entries.
//
// Everything here is a pure function of the entries it is handed; callers pick
// the window (see Window) and fetch the entries themselves.
package insights

import (
	"sort"
	"time"

	"github.com/mrlokans/moodsnapshot/internal/entities"
)

// Summary holds aggregate statistics for a set of entries.
type Summary struct {
	Count      int            `json:"count"`
	Average    float64        `json:"average"`
	MoodCounts map[int]int    `json:"moodCounts"`
	TagCounts  map[string]int `json:"tagCounts"`
}

// TagInsight is how often a tag appears and the mean mood of entries carrying it.
type TagInsight struct {
	Tag     string  `json:"tag"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// Summarize computes count, mean mood, per-mood counts and per-tag counts.
// MoodCounts always has keys 1..5. The mean of an empty set is 0.
func Summarize(entries []entities.MoodEntry) Summary {
	s := Summary{
		Count:      len(entries),
		MoodCounts: make(map[int]int, len(entities.MoodValues)),
		TagCounts:  make(map[string]int),
	}
	for _, v := range entities.MoodValues {
		s.MoodCounts[v] = 0
	}

	total := 0
	for _, e := range entries {
		total += e.Mood
		if _, ok := s.MoodCounts[e.Mood]; ok {
			s.MoodCounts[e.Mood]++
		}
		for _, tag := range e.Tags {
			s.TagCounts[tag]++
		}
	}
	if len(entries) > 0 {
		s.Average = float64(total) / float64(len(entries))
	}
	return s
}

// Streak counts consecutive calendar days, ending today, that have at least one
// entry. If the most recent entry is not dated today the streak is 0, even when
// yesterday was logged.
func Streak(entries []entities.MoodEntry, today string) int {
	if len(entries) == 0 {
		return 0
	}
	logged := make(map[string]struct{}, len(entries))
	latest := ""
	for _, e := range entries {
		logged[e.Date] = struct{}{}
		if e.Date > latest {
			latest = e.Date
		}
	}
	if latest != today {
		return 0
	}
	day, err := time.Parse(entities.DateLayout, today)
	if err != nil {
		return 0
	}

	streak := 0
	for {
		if _, ok := logged[day.Format(entities.DateLayout)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// TagAverage returns the mean mood over entries that include tag. ok is false
// when no entry carries the tag.
func TagAverage(entries []entities.MoodEntry, tag string) (avg float64, ok bool) {
	total, n := 0, 0
	for _, e := range entries {
		if e.HasTag(tag) {
			total += e.Mood
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(total) / float64(n), true
}

// TopTags returns up to limit tags by occurrence, each with its mood average.
// Ties are broken alphabetically. A limit <= 0 returns every tag.
func TopTags(entries []entities.MoodEntry, limit int) []TagInsight {
	counts := Summarize(entries).TagCounts
	out := make([]TagInsight, 0, len(counts))
	for tag, count := range counts {
		avg, _ := TagAverage(entries, tag)
		out = append(out, TagInsight{Tag: tag, Count: count, Average: avg})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
