package engine

import (
	"errors"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock for deterministic day/month tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// memGateway keeps persisted records in memory and counts writes.
type memGateway struct {
	totals    *Totals
	prog      *Progression
	heatmap   []DayEntry
	saveErr   error
	saveCount int
}

func (g *memGateway) SaveTotals(t *Totals) error {
	if g.saveErr != nil {
		return g.saveErr
	}
	g.saveCount++
	cp := *t
	cp.Daily = copyCounters(t.Daily)
	cp.Lifetime = copyCounters(t.Lifetime)
	g.totals = &cp
	return nil
}

func (g *memGateway) SaveProgression(p *Progression) error {
	if g.saveErr != nil {
		return g.saveErr
	}
	g.saveCount++
	cp := *p
	g.prog = &cp
	return nil
}

func (g *memGateway) SaveHeatmap(entries []DayEntry) error {
	if g.saveErr != nil {
		return g.saveErr
	}
	g.saveCount++
	g.heatmap = append([]DayEntry(nil), entries...)
	return nil
}

func (g *memGateway) LoadTotals() (*Totals, error)           { return g.totals, nil }
func (g *memGateway) LoadProgression() (*Progression, error) { return g.prog, nil }
func (g *memGateway) LoadHeatmap() ([]DayEntry, error)       { return g.heatmap, nil }

// newTestEngine builds an engine on a fake clock anchored mid-month, mid-day.
func newTestEngine(t *testing.T) (*Engine, *fakeClock, *memGateway) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, time.March, 14, 10, 0, 0, 0, time.Local)}
	gw := &memGateway{}
	eng, err := New(clock, gw)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return eng, clock, gw
}

func tickN(eng *Engine, n int) {
	for i := 0; i < n; i++ {
		eng.Tick()
	}
}

func TestStop_CommitsExactTickedSeconds(t *testing.T) {
	for _, n := range []int{0, 1, 59, 3600} {
		eng, _, _ := newTestEngine(t)
		if err := eng.Start(KindPlay); err != nil {
			t.Fatalf("Start: %v", err)
		}
		tickN(eng, n)
		if err := eng.Stop(); err != nil {
			t.Fatalf("Stop: %v", err)
		}

		snap := eng.Snapshot()
		if snap.Daily[KindPlay] != n {
			t.Errorf("ticked %d: daily.play = %d, want %d", n, snap.Daily[KindPlay], n)
		}
		if snap.Daily[KindStudy] != 0 || snap.Daily[KindIdle] != 0 {
			t.Errorf("ticked %d: other kinds changed: study=%d idle=%d",
				n, snap.Daily[KindStudy], snap.Daily[KindIdle])
		}
		if snap.XP != 0 {
			t.Errorf("play session granted xp: %d", snap.XP)
		}
	}
}

func TestStopStudy_DerivesLevelFromXP(t *testing.T) {
	cases := []struct {
		seconds   int
		wantLevel int
	}{
		{0, 1},
		{3599, 1},
		{3600, 2},
		{7200, 3},
	}
	for _, tc := range cases {
		eng, _, _ := newTestEngine(t)
		if err := eng.Start(KindStudy); err != nil {
			t.Fatalf("Start: %v", err)
		}
		tickN(eng, tc.seconds)
		if err := eng.Stop(); err != nil {
			t.Fatalf("Stop: %v", err)
		}

		snap := eng.Snapshot()
		if snap.XP != tc.seconds {
			t.Errorf("%d seconds: xp = %d, want %d", tc.seconds, snap.XP, tc.seconds)
		}
		if snap.Level != tc.wantLevel {
			t.Errorf("%d seconds: level = %d, want %d", tc.seconds, snap.Level, tc.wantLevel)
		}
	}
}

func TestStop_FullScenarioFromFreshState(t *testing.T) {
	eng, clock, _ := newTestEngine(t)

	snap := eng.Snapshot()
	if snap.XP != 0 || snap.Level != 1 || snap.Daily[KindStudy] != 0 {
		t.Fatalf("state not fresh: %+v", snap)
	}

	if err := eng.Start(KindStudy); err != nil {
		t.Fatalf("Start: %v", err)
	}
	tickN(eng, 7200)
	if err := eng.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	snap = eng.Snapshot()
	if snap.Daily[KindStudy] != 7200 {
		t.Errorf("daily.study = %d, want 7200", snap.Daily[KindStudy])
	}
	if snap.XP != 7200 {
		t.Errorf("xp = %d, want 7200", snap.XP)
	}
	if snap.Level != 3 {
		t.Errorf("level = %d, want 3", snap.Level)
	}
	if snap.Today.Date != DateOf(clock.Now()) || snap.Today.StudySeconds != 7200 {
		t.Errorf("today's heatmap entry = %+v, want %d seconds on %s",
			snap.Today, 7200, DateOf(clock.Now()))
	}
}

// Starting a different kind without stopping first redirects tracking: the
// accumulated seconds keep running and commit to whichever kind is active
// at stop, never to the kind they started under. SwitchTo is the strict
// commit-first variant.
func TestStart_SwitchCarriesElapsedToNewKind(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if err := eng.Start(KindPlay); err != nil {
		t.Fatalf("Start(play): %v", err)
	}
	tickN(eng, 120)
	if err := eng.Start(KindStudy); err != nil {
		t.Fatalf("Start(study) while play active: %v", err)
	}

	snap := eng.Snapshot()
	if snap.Active != KindStudy || snap.Elapsed != 120 {
		t.Fatalf("after switch: active=%s elapsed=%d, want study/120 carried over",
			snap.Active, snap.Elapsed)
	}

	tickN(eng, 10)
	if err := eng.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	snap = eng.Snapshot()
	if snap.Daily[KindPlay] != 0 {
		t.Errorf("redirected play time was committed to play: daily.play = %d", snap.Daily[KindPlay])
	}
	if snap.Daily[KindStudy] != 130 {
		t.Errorf("daily.study = %d, want 130", snap.Daily[KindStudy])
	}
}

// A fresh start after a stop begins counting from zero.
func TestStart_FreshStartResetsElapsed(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if err := eng.Start(KindPlay); err != nil {
		t.Fatalf("Start(play): %v", err)
	}
	tickN(eng, 30)
	if err := eng.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if err := eng.Start(KindStudy); err != nil {
		t.Fatalf("Start(study): %v", err)
	}
	if snap := eng.Snapshot(); snap.Elapsed != 0 {
		t.Errorf("elapsed after fresh start = %d, want 0", snap.Elapsed)
	}
}

func TestStart_SameKindFailsAlreadyRunning(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if err := eng.Start(KindStudy); err != nil {
		t.Fatalf("Start: %v", err)
	}
	tickN(eng, 42)

	err := eng.Start(KindStudy)
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("restarting active kind: err = %v, want ErrAlreadyRunning", err)
	}

	// The running session must be untouched.
	snap := eng.Snapshot()
	if snap.Elapsed != 42 {
		t.Errorf("elapsed after rejected restart = %d, want 42", snap.Elapsed)
	}
}

func TestStart_UnknownKindRejected(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	if err := eng.Start(ActivityKind("sleep")); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Start(sleep): err = %v, want ErrInvalidArgument", err)
	}
}

func TestSwitchTo_CommitsBeforeStarting(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if err := eng.Start(KindPlay); err != nil {
		t.Fatalf("Start: %v", err)
	}
	tickN(eng, 120)
	if err := eng.SwitchTo(KindStudy); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}

	snap := eng.Snapshot()
	if snap.Daily[KindPlay] != 120 {
		t.Errorf("daily.play = %d, want 120 (committed by switch)", snap.Daily[KindPlay])
	}
	if snap.Active != KindStudy || snap.Elapsed != 0 {
		t.Errorf("after switch: active=%s elapsed=%d, want study/0", snap.Active, snap.Elapsed)
	}
}

func TestReset_DiscardsWithoutCommitting(t *testing.T) {
	eng, _, gw := newTestEngine(t)

	if err := eng.Start(KindStudy); err != nil {
		t.Fatalf("Start: %v", err)
	}
	tickN(eng, 500)
	before := gw.saveCount
	eng.Reset()

	snap := eng.Snapshot()
	if snap.Running {
		t.Error("session still running after Reset")
	}
	if snap.Daily[KindStudy] != 0 || snap.XP != 0 {
		t.Errorf("Reset committed time: daily.study=%d xp=%d", snap.Daily[KindStudy], snap.XP)
	}
	if gw.saveCount != before {
		t.Errorf("Reset wrote to the gateway (%d new saves)", gw.saveCount-before)
	}
}

func TestStop_NoopWhenIdle(t *testing.T) {
	eng, _, gw := newTestEngine(t)
	before := gw.saveCount
	if err := eng.Stop(); err != nil {
		t.Fatalf("Stop while idle: %v", err)
	}
	if gw.saveCount != before {
		t.Errorf("idle Stop wrote to the gateway")
	}
}

func TestTick_NoopWhenIdle(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	tickN(eng, 30)
	snap := eng.Snapshot()
	if snap.Elapsed != 0 {
		t.Errorf("elapsed = %d after idle ticks, want 0", snap.Elapsed)
	}
}

func TestStop_SessionSpanningMidnight(t *testing.T) {
	eng, clock, _ := newTestEngine(t)

	if err := eng.RecordElapsed(KindPlay, 100); err != nil {
		t.Fatalf("RecordElapsed: %v", err)
	}
	if err := eng.Start(KindStudy); err != nil {
		t.Fatalf("Start: %v", err)
	}
	tickN(eng, 60)

	// Cross the day boundary before stopping.
	clock.advance(24 * time.Hour)
	if err := eng.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	snap := eng.Snapshot()
	if snap.Lifetime[KindPlay] != 100 || snap.Daily[KindPlay] != 0 {
		t.Errorf("yesterday's play not rolled over: daily=%d lifetime=%d",
			snap.Daily[KindPlay], snap.Lifetime[KindPlay])
	}
	if snap.Daily[KindStudy] != 60 {
		t.Errorf("daily.study = %d, want 60 in the new day", snap.Daily[KindStudy])
	}
	if snap.Today.StudySeconds != 60 {
		t.Errorf("today's heatmap = %d, want 60", snap.Today.StudySeconds)
	}
}

func TestStop_PersistenceFailureKeepsCommit(t *testing.T) {
	eng, _, gw := newTestEngine(t)

	if err := eng.Start(KindStudy); err != nil {
		t.Fatalf("Start: %v", err)
	}
	tickN(eng, 300)

	gw.saveErr = errors.New("disk full")
	err := eng.Stop()
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("Stop with failing gateway: err = %v, want ErrPersistence", err)
	}

	// The in-memory mutation must survive the failed write.
	snap := eng.Snapshot()
	if snap.Daily[KindStudy] != 300 || snap.XP != 300 {
		t.Errorf("failed save rolled back commit: daily.study=%d xp=%d",
			snap.Daily[KindStudy], snap.XP)
	}
	if snap.Running {
		t.Error("session still running after Stop")
	}
}

// New resolves stale state even when the gateway cannot persist the fix:
// the returned engine is usable alongside the ErrPersistence, and the next
// successful write catches the store up.
func TestNew_StartupSaveFailureYieldsUsableEngine(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.March, 14, 10, 0, 0, 0, time.Local)}
	stale := NewTotals(time.Date(2026, time.March, 13, 22, 0, 0, 0, time.Local))
	stale.Daily[KindStudy] = 500
	gw := &memGateway{
		totals:  stale,
		saveErr: errors.New("disk full"),
	}

	eng, err := New(clock, gw)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("New over failing gateway: err = %v, want ErrPersistence", err)
	}
	if eng == nil {
		t.Fatal("New returned a nil engine alongside ErrPersistence")
	}

	// The rollover resolved in memory despite the failed write.
	snap := eng.Snapshot()
	if snap.Daily[KindStudy] != 0 || snap.Lifetime[KindStudy] != 500 {
		t.Errorf("stale day not folded: daily.study=%d lifetime.study=%d",
			snap.Daily[KindStudy], snap.Lifetime[KindStudy])
	}

	gw.saveErr = nil
	if err := eng.Start(KindPlay); err != nil {
		t.Fatalf("Start: %v", err)
	}
	tickN(eng, 10)
	if err := eng.Stop(); err != nil {
		t.Fatalf("Stop after gateway recovered: %v", err)
	}
	if gw.totals.Lifetime[KindStudy] != 500 {
		t.Errorf("recovered save lost folded lifetime: %d, want 500", gw.totals.Lifetime[KindStudy])
	}
}

func TestNew_ReloadRoundTrip(t *testing.T) {
	eng, clock, gw := newTestEngine(t)

	if err := eng.Start(KindStudy); err != nil {
		t.Fatalf("Start: %v", err)
	}
	tickN(eng, 4000)
	if err := eng.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	// A second engine over the same gateway sees identical state.
	reloaded, err := New(clock, gw)
	if err != nil {
		t.Fatalf("New(reload): %v", err)
	}
	a, b := eng.Snapshot(), reloaded.Snapshot()
	if a.XP != b.XP || a.Level != b.Level {
		t.Errorf("progression mismatch after reload: %d/%d vs %d/%d", a.XP, a.Level, b.XP, b.Level)
	}
	for _, k := range Kinds() {
		if a.Daily[k] != b.Daily[k] || a.Lifetime[k] != b.Lifetime[k] {
			t.Errorf("totals mismatch for %s after reload", k)
		}
	}
	if a.Today != b.Today {
		t.Errorf("heatmap today mismatch: %+v vs %+v", a.Today, b.Today)
	}
}

func TestMonthView_OtherMonthsAreEmpty(t *testing.T) {
	eng, clock, _ := newTestEngine(t)

	if err := eng.Start(KindStudy); err != nil {
		t.Fatalf("Start: %v", err)
	}
	tickN(eng, 900)
	if err := eng.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	current := eng.MonthView(0)
	if !current.Current {
		t.Error("offset 0 view not marked current")
	}
	if got := current.Entries[clock.Now().Day()-1].StudySeconds; got != 900 {
		t.Errorf("current view today = %d, want 900", got)
	}

	prev := eng.MonthView(-1)
	if prev.Current {
		t.Error("offset -1 view marked current")
	}
	if prev.Month != time.February || prev.Year != 2026 {
		t.Errorf("offset -1 = %s %d, want February 2026", prev.Month, prev.Year)
	}
	if len(prev.Entries) != 28 {
		t.Errorf("February 2026 has %d entries, want 28", len(prev.Entries))
	}
	for _, e := range prev.Entries {
		if e.StudySeconds != 0 {
			t.Errorf("historical month carries data: %+v", e)
		}
	}
}
