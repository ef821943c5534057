package insights

import (
	"fmt"
	"time"

	"github.com/mrlokans/moodsnapshot/internal/entities"
)

// Timeframe names a reporting window.
type Timeframe string

const (
	TimeframeWeek  Timeframe = "7d"
	TimeframeMonth Timeframe = "30d"
	TimeframeAll   Timeframe = "all"
)

// ParseTimeframe validates s. An empty string selects the 30-day window.
func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(s); tf {
	case "":
		return TimeframeMonth, nil
	case TimeframeWeek, TimeframeMonth, TimeframeAll:
		return tf, nil
	}
	return "", entities.NewValidationError("timeframe", fmt.Sprintf("unknown timeframe %q", s))
}

// Days is the look-back span of tf; 0 for TimeframeAll.
func (tf Timeframe) Days() int {
	switch tf {
	case TimeframeWeek:
		return 7
	case TimeframeMonth:
		return 30
	}
	return 0
}

// Window returns the inclusive date range for tf relative to now's calendar day.
// "7d" spans today-7 through today, which is 8 calendar days; "30d" spans 31.
// Arithmetic is by calendar day in now's location, not by 24-hour offsets.
// bounded is false for TimeframeAll.
func Window(tf Timeframe, now time.Time) (start, end string, bounded bool) {
	days := tf.Days()
	if days == 0 {
		return "", "", false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -days).Format(entities.DateLayout), today.Format(entities.DateLayout), true
}

// Report bundles the statistics shown for one timeframe.
type Report struct {
	Timeframe Timeframe    `json:"timeframe"`
	Start     string       `json:"start,omitempty"`
	End       string       `json:"end,omitempty"`
	Summary   Summary      `json:"summary"`
	Streak    int          `json:"streak"`
	TopTags   []TagInsight `json:"topTags"`
}

// BuildReport summarizes entries already restricted to the window.
func BuildReport(tf Timeframe, entries []entities.MoodEntry, now time.Time, topN int) Report {
	start, end, _ := Window(tf, now)
	return Report{
		Timeframe: tf,
		Start:     start,
		End:       end,
		Summary:   Summarize(entries),
		Streak:    Streak(entries, now.Format(entities.DateLayout)),
		TopTags:   TopTags(entries, topN),
	}
}
