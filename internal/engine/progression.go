package engine

import "fmt"

// SecondsPerLevel is the study time required per level: one hour.
const SecondsPerLevel = 3600

// Progression tracks cumulative study seconds as xp and the level derived
// from them. Level is never stored independently of xp.
type Progression struct {
	XP    int
	Level int
}

// NewProgression returns a fresh progression at level 1.
func NewProgression() *Progression {
	return &Progression{XP: 0, Level: 1}
}

// LevelForXP derives the level for a given xp value.
func LevelForXP(xp int) int {
	return xp/SecondsPerLevel + 1
}

// AddXP credits study seconds and re-derives the level.
func (p *Progression) AddXP(seconds int) error {
	if seconds < 0 {
		return fmt.Errorf("%w: negative xp %d", ErrInvalidArgument, seconds)
	}
	p.XP += seconds
	p.Level = LevelForXP(p.XP)
	return nil
}

// ProgressFraction returns progress toward the next level in [0, 1).
func (p *Progression) ProgressFraction() float64 {
	return float64(p.XP%SecondsPerLevel) / SecondsPerLevel
}

// TitleEntry maps a level breakpoint to a display title and color tag.
type TitleEntry struct {
	MinLevel int
	Title    string
	ColorTag string
}

// TitleTable is an ascending list of level breakpoints. It is configuration
// data injected from outside the engine so breakpoints can change without
// touching progression logic.
type TitleTable []TitleEntry

// DefaultTitleTable is the built-in level ladder.
var DefaultTitleTable = TitleTable{
	{MinLevel: 1, Title: "Novice", ColorTag: "muted"},
	{MinLevel: 5, Title: "Apprentice", ColorTag: "primary"},
	{MinLevel: 10, Title: "Scholar", ColorTag: "primary"},
	{MinLevel: 20, Title: "Adept", ColorTag: "success"},
	{MinLevel: 35, Title: "Expert", ColorTag: "success"},
	{MinLevel: 50, Title: "Master", ColorTag: "warning"},
	{MinLevel: 75, Title: "Sage", ColorTag: "warning"},
}

// belowRange is the sentinel returned for levels below every breakpoint.
var belowRange = TitleEntry{MinLevel: 0, Title: "Unranked", ColorTag: "muted"}

// TitleFor returns the entry with the greatest MinLevel <= level. Levels
// below the table's first breakpoint get the sentinel "Unranked" entry;
// by construction level is always >= 1 so a table starting at 1 never
// falls through.
func (tt TitleTable) TitleFor(level int) TitleEntry {
	best := belowRange
	found := false
	for _, e := range tt {
		if e.MinLevel <= level && (!found || e.MinLevel >= best.MinLevel) {
			best = e
			found = true
		}
	}
	return best
}
