package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Gateway is the durable key-value store the engine loads from at startup
// and writes to after every mutation. Load methods return nil (no error)
// when a record has never been saved. Writes happen after the in-memory
// mutation they reflect; a failed write never rolls the mutation back.
type Gateway interface {
	SaveTotals(t *Totals) error
	SaveProgression(p *Progression) error
	SaveHeatmap(entries []DayEntry) error
	LoadTotals() (*Totals, error)
	LoadProgression() (*Progression, error)
	LoadHeatmap() ([]DayEntry, error)
}

// Engine owns the aggregate tracking state: the live timer session, the
// totals store, the heatmap ledger, and the progression state. A single
// mutex guards the combined state so Stop's sub-updates commit as one
// transaction even under a multi-threaded host.
type Engine struct {
	mu      sync.Mutex
	clock   Clock
	gateway Gateway
	titles  TitleTable

	session session
	totals  *Totals
	heatmap *Heatmap
	prog    *Progression
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithTitleTable overrides the default level-title ladder.
func WithTitleTable(tt TitleTable) Option {
	return func(e *Engine) {
		if len(tt) > 0 {
			e.titles = tt
		}
	}
}

// New loads persisted state through the gateway and returns a ready engine.
// Missing records start fresh. A stale heatmap month or a pending daily
// rollover left over from a previous run is resolved immediately.
func New(clock Clock, gateway Gateway, opts ...Option) (*Engine, error) {
	e := &Engine{
		clock:   clock,
		gateway: gateway,
		titles:  DefaultTitleTable,
	}
	for _, opt := range opts {
		opt(e)
	}

	now := clock.Now()

	totals, err := gateway.LoadTotals()
	if err != nil {
		return nil, fmt.Errorf("loading totals: %w", err)
	}
	if totals == nil {
		totals = NewTotals(now)
	}
	e.totals = totals

	prog, err := gateway.LoadProgression()
	if err != nil {
		return nil, fmt.Errorf("loading progression: %w", err)
	}
	if prog == nil {
		prog = NewProgression()
	}
	// Level is derived state; re-derive on load so a hand-edited or stale
	// record can never disagree with xp.
	prog.Level = LevelForXP(prog.XP)
	e.prog = prog

	entries, err := gateway.LoadHeatmap()
	if err != nil {
		return nil, fmt.Errorf("loading heatmap: %w", err)
	}
	if entries == nil {
		e.heatmap = NewHeatmap(now)
	} else {
		e.heatmap = &Heatmap{Entries: entries}
	}

	// Resolve staleness accumulated while the process was down. Persist only
	// what actually changed.
	rolled := e.totals.CheckRollover(now)
	rebuilt := e.heatmap.EnsureCurrentMonth(now)

	var saves []func() error
	if rolled {
		saves = append(saves, func() error { return gateway.SaveTotals(e.totals) })
	}
	if rebuilt {
		saves = append(saves, func() error { return gateway.SaveHeatmap(e.heatmap.Entries) })
	}
	if err := persist(saves...); err != nil {
		return e, err
	}
	return e, nil
}

// persist runs gateway writes in order, wrapping any failure as an
// ErrPersistence the caller can retry; in-memory state is already current.
func persist(saves ...func() error) error {
	var errs []error
	for _, save := range saves {
		if err := save(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrPersistence, errors.Join(errs...))
	}
	return nil
}

// Start activates a timer for kind. Starting the already-active kind fails
// with ErrAlreadyRunning; starting a different kind while one runs redirects
// tracking, carrying the accumulated elapsed seconds over to the new kind
// (see session.start).
func (e *Engine) Start(kind ActivityKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown activity kind %q", ErrInvalidArgument, kind)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.start(kind)
}

// SwitchTo commits any running session to its own kind, then starts kind
// fresh. This is the strict alternative to Start's carry-on-switch policy.
func (e *Engine) SwitchTo(kind ActivityKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown activity kind %q", ErrInvalidArgument, kind)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	saveErr := e.stopLocked()
	if err := e.session.start(kind); err != nil {
		return err
	}
	return saveErr
}

// Tick accrues one second into the active session. No-op while stopped.
// Invoked once per whole second of wall-clock time by the run loop.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.tick()
}

// Stop commits the active session: elapsed seconds go into the daily total
// for the active kind, and a Study session additionally credits today's
// heatmap entry and the xp ladder. The three sub-updates apply as a single
// transaction under the engine lock. No-op when no session is active.
// A non-nil error is always an ErrPersistence; the commit itself held.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stopLocked()
}

func (e *Engine) stopLocked() error {
	if !e.session.running() {
		return nil
	}
	kind := e.session.active
	elapsed := e.session.elapsed
	now := e.clock.Now()

	// Cheap idempotent guards so a session spanning midnight or a month
	// boundary commits into the correct day.
	e.totals.CheckRollover(now)
	rebuilt := e.heatmap.EnsureCurrentMonth(now)

	// None of these can fail: elapsed is non-negative, kind is valid, and
	// today is inside the freshly ensured month.
	_ = e.totals.RecordElapsed(kind, elapsed)
	study := kind == KindStudy
	if study {
		_ = e.heatmap.AddStudySeconds(now, elapsed)
		_ = e.prog.AddXP(elapsed)
	}
	e.session.clear()

	saves := []func() error{
		func() error { return e.gateway.SaveTotals(e.totals) },
	}
	if study || rebuilt {
		saves = append(saves, func() error { return e.gateway.SaveHeatmap(e.heatmap.Entries) })
	}
	if study {
		saves = append(saves, func() error { return e.gateway.SaveProgression(e.prog) })
	}
	return persist(saves...)
}

// Reset abandons the active session without committing its elapsed time
// anywhere. Unconditional; safe to call while stopped.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.clear()
}

// CheckRollover folds daily totals into lifetime totals if the local
// calendar day has changed since the last check. Driven at least once per
// minute by the run loop and implicitly by every Stop.
func (e *Engine) CheckRollover() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.clock.Now()
	rolled := e.totals.CheckRollover(now)
	rebuilt := e.heatmap.EnsureCurrentMonth(now)

	var saves []func() error
	if rolled {
		saves = append(saves, func() error { return e.gateway.SaveTotals(e.totals) })
	}
	if rebuilt {
		saves = append(saves, func() error { return e.gateway.SaveHeatmap(e.heatmap.Entries) })
	}
	return persist(saves...)
}

// RecordElapsed credits already-measured seconds directly to a kind's daily
// total, bypassing the live session. Used for manual adjustments.
func (e *Engine) RecordElapsed(kind ActivityKind, seconds int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.totals.RecordElapsed(kind, seconds); err != nil {
		return err
	}
	return persist(func() error { return e.gateway.SaveTotals(e.totals) })
}

// Snapshot is a read-only copy of the aggregate state for rendering.
type Snapshot struct {
	Running  bool
	Active   ActivityKind
	Elapsed  int
	Daily    map[ActivityKind]int
	Lifetime map[ActivityKind]int
	XP       int
	Level    int
	Progress float64
	Title    TitleEntry
	Today    DayEntry
}

// Snapshot returns a consistent copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.clock.Now()
	s := Snapshot{
		Running:  e.session.running(),
		Active:   e.session.active,
		Elapsed:  e.session.elapsed,
		Daily:    copyCounters(e.totals.Daily),
		Lifetime: copyCounters(e.totals.Lifetime),
		XP:       e.prog.XP,
		Level:    e.prog.Level,
		Progress: e.prog.ProgressFraction(),
		Title:    e.titles.TitleFor(e.prog.Level),
		Today:    DayEntry{Date: DateOf(now), StudySeconds: e.heatmap.SecondsOn(now)},
	}
	return s
}

func copyCounters(m map[ActivityKind]int) map[ActivityKind]int {
	out := make(map[ActivityKind]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MonthView is a presentation slice of the heatmap for a requested month.
// Only the wall-clock-current month carries real data; any other month
// renders as an all-zero grid because the ledger retains no history.
type MonthView struct {
	Year    int
	Month   time.Month
	Current bool
	Entries []DayEntry
}

// MonthView returns the heatmap for the month offset months away from the
// current one (offset 0 = current). View-only; never mutates the ledger.
func (e *Engine) MonthView(offset int) MonthView {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.clock.Now()
	e.heatmap.EnsureCurrentMonth(now)

	target := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, offset, 0)
	view := MonthView{
		Year:    target.Year(),
		Month:   target.Month(),
		Current: offset == 0,
	}
	if view.Current {
		view.Entries = append([]DayEntry(nil), e.heatmap.Entries...)
		return view
	}
	n := daysInMonth(target)
	for day := 1; day <= n; day++ {
		d := time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, target.Location())
		view.Entries = append(view.Entries, DayEntry{Date: DateOf(d)})
	}
	return view
}

// Titles exposes the configured title table for presentation layers.
func (e *Engine) Titles() TitleTable {
	return e.titles
}
