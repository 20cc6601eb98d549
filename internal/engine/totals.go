package engine

import (
	"fmt"
	"time"
)

// Totals holds the two parallel per-kind second counters. Daily accumulates
// since the last rollover; Lifetime accumulates everything already rolled
// over. Both only grow, except the rollover itself, which moves daily into
// lifetime atomically.
type Totals struct {
	Daily        map[ActivityKind]int
	Lifetime     map[ActivityKind]int
	LastRollover string // ISO calendar date of the last rollover check
}

// NewTotals returns zeroed totals with the rollover anchored at now.
func NewTotals(now time.Time) *Totals {
	return &Totals{
		Daily:        zeroCounters(),
		Lifetime:     zeroCounters(),
		LastRollover: DateOf(now),
	}
}

func zeroCounters() map[ActivityKind]int {
	m := make(map[ActivityKind]int, len(Kinds()))
	for _, k := range Kinds() {
		m[k] = 0
	}
	return m
}

// RecordElapsed adds seconds to the daily counter for kind.
func (t *Totals) RecordElapsed(kind ActivityKind, seconds int) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown activity kind %q", ErrInvalidArgument, kind)
	}
	if seconds < 0 {
		return fmt.Errorf("%w: negative elapsed seconds %d", ErrInvalidArgument, seconds)
	}
	t.Daily[kind] += seconds
	return nil
}

// CheckRollover folds daily totals into lifetime totals when now's calendar
// date differs from the last rollover date. The comparison is on the date
// component only, so restarts and DST shifts roll over exactly once per
// boundary crossed; a gap spanning several days still folds just once.
// Returns true when a rollover happened. Idempotent within a day.
func (t *Totals) CheckRollover(now time.Time) bool {
	today := DateOf(now)
	if today == t.LastRollover {
		return false
	}
	for _, k := range Kinds() {
		t.Lifetime[k] += t.Daily[k]
		t.Daily[k] = 0
	}
	t.LastRollover = today
	return true
}

// DailySum returns the sum of all daily counters.
func (t *Totals) DailySum() int {
	return sumCounters(t.Daily)
}

// LifetimeSum returns the sum of all lifetime counters.
func (t *Totals) LifetimeSum() int {
	return sumCounters(t.Lifetime)
}

func sumCounters(m map[ActivityKind]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

// TotalFor returns daily+lifetime seconds for a single kind.
func (t *Totals) TotalFor(kind ActivityKind) int {
	return t.Daily[kind] + t.Lifetime[kind]
}
