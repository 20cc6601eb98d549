package engine

import (
	"fmt"
	"time"
)

// DayEntry is one calendar day's accumulated study seconds.
type DayEntry struct {
	Date         string `json:"date"` // ISO calendar date (2006-01-02)
	StudySeconds int    `json:"study_seconds"`
}

// Heatmap is the per-day study ledger for exactly one calendar month,
// ordered by date ascending with one entry per day. When the wall-clock
// month moves on, the ledger is rebuilt from scratch; lifetime totals are
// the only durable aggregate across months.
type Heatmap struct {
	Entries []DayEntry
}

// NewHeatmap returns a zeroed ledger spanning now's month.
func NewHeatmap(now time.Time) *Heatmap {
	h := &Heatmap{}
	h.rebuild(now)
	return h
}

// daysInMonth returns the number of days in t's month.
func daysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}

func (h *Heatmap) rebuild(now time.Time) {
	n := daysInMonth(now)
	entries := make([]DayEntry, 0, n)
	for day := 1; day <= n; day++ {
		d := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location())
		entries = append(entries, DayEntry{Date: DateOf(d)})
	}
	h.Entries = entries
}

// Month returns the year and month the ledger currently spans. A ledger is
// never empty; a zero-entry ledger (fresh load) reports a zero time.
func (h *Heatmap) Month() (int, time.Month) {
	if len(h.Entries) == 0 {
		return 0, 0
	}
	t, err := time.ParseInLocation("2006-01-02", h.Entries[0].Date, time.Local)
	if err != nil {
		return 0, 0
	}
	return t.Year(), t.Month()
}

// EnsureCurrentMonth rebuilds the ledger for now's month when the stored
// month or year is stale. Must run before any read or write that depends on
// "today". Rebuilding drops the prior month's entries. Returns true when a
// rebuild happened.
func (h *Heatmap) EnsureCurrentMonth(now time.Time) bool {
	year, month := h.Month()
	if year == now.Year() && month == now.Month() {
		return false
	}
	h.rebuild(now)
	return true
}

// AddStudySeconds credits seconds to the entry for date. The date must fall
// inside the ledger's current month; callers run EnsureCurrentMonth first so
// "today" always qualifies.
func (h *Heatmap) AddStudySeconds(date time.Time, seconds int) error {
	if seconds < 0 {
		return fmt.Errorf("%w: negative study seconds %d", ErrInvalidArgument, seconds)
	}
	key := DateOf(date)
	for i := range h.Entries {
		if h.Entries[i].Date == key {
			h.Entries[i].StudySeconds += seconds
			return nil
		}
	}
	return fmt.Errorf("%w: date %s outside the ledger's current month", ErrInvalidArgument, key)
}

// SecondsOn returns the study seconds recorded for date, or 0 when the date
// is outside the ledger's month.
func (h *Heatmap) SecondsOn(date time.Time) int {
	key := DateOf(date)
	for _, e := range h.Entries {
		if e.Date == key {
			return e.StudySeconds
		}
	}
	return 0
}

// DefaultBucketThresholds are the ascending second boundaries between
// intensity buckets: one bucket per full hour up to five hours.
var DefaultBucketThresholds = []int{3600, 7200, 10800, 14400, 18000}

// IntensityBucket maps a day's study seconds onto a small ordinal scale for
// presentation: 0 for no study, then one bucket per threshold crossed.
// With the default thresholds that is 0 / <1h / 1-2h / 2-3h / 3-4h / 4-5h /
// >=5h, i.e. ordinals 0 through 6. Pure function.
func IntensityBucket(daySeconds int, thresholds []int) int {
	if daySeconds <= 0 {
		return 0
	}
	bucket := 1
	for _, t := range thresholds {
		if daySeconds >= t {
			bucket++
		}
	}
	return bucket
}
