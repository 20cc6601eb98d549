// Package engine implements the time-accrual and progression core of
// focuswatch: the timer session, daily/lifetime totals with calendar-day
// rollover, the study heatmap ledger, and the xp/level ladder derived from
// study time.
package engine

import "fmt"

// ActivityKind identifies one of the fixed trackable activities.
type ActivityKind string

// The closed set of activity kinds.
const (
	KindStudy ActivityKind = "study"
	KindPlay  ActivityKind = "play"
	KindIdle  ActivityKind = "idle"
)

// Kinds returns all activity kinds in display order.
func Kinds() []ActivityKind {
	return []ActivityKind{KindStudy, KindPlay, KindIdle}
}

// Valid reports whether k is a member of the closed kind set.
func (k ActivityKind) Valid() bool {
	switch k {
	case KindStudy, KindPlay, KindIdle:
		return true
	}
	return false
}

// String returns the lowercase wire/display name of the kind.
func (k ActivityKind) String() string {
	return string(k)
}

// ParseKind converts a user-supplied name into an ActivityKind.
func ParseKind(s string) (ActivityKind, error) {
	k := ActivityKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown activity kind %q (want study, play, or idle)", ErrInvalidArgument, s)
	}
	return k, nil
}
