package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/engine"
)

// Record keys for the engine's persisted state.
const (
	keyDailyTotals    = "daily_totals"
	keyLifetimeTotals = "lifetime_totals"
	keyLastRollover   = "last_rollover_date"
	keyXP             = "xp"
	keyLevel          = "level"
	keyHeatmap        = "heatmap"
	keyUsername       = "username"
)

// setRecord upserts one JSON-encoded record.
func (db *DB) setRecord(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	_, err = db.conn.Exec(`
		INSERT INTO state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// getRecord decodes one record into out. Returns false when the key has
// never been written.
func (db *DB) getRecord(key string, out any) (bool, error) {
	var raw string
	row := db.conn.QueryRow("SELECT value FROM state WHERE key = ?", key)
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// SaveTotals persists the daily/lifetime counters and the last rollover date.
func (db *DB) SaveTotals(t *engine.Totals) error {
	if err := db.setRecord(keyDailyTotals, t.Daily); err != nil {
		return err
	}
	if err := db.setRecord(keyLifetimeTotals, t.Lifetime); err != nil {
		return err
	}
	return db.setRecord(keyLastRollover, t.LastRollover)
}

// LoadTotals restores the totals store, or returns nil when never saved.
func (db *DB) LoadTotals() (*engine.Totals, error) {
	var daily map[engine.ActivityKind]int
	ok, err := db.getRecord(keyDailyTotals, &daily)
	if err != nil || !ok {
		return nil, err
	}

	t := &engine.Totals{Daily: daily}
	if _, err := db.getRecord(keyLifetimeTotals, &t.Lifetime); err != nil {
		return nil, err
	}
	if t.Lifetime == nil {
		t.Lifetime = make(map[engine.ActivityKind]int)
	}
	if _, err := db.getRecord(keyLastRollover, &t.LastRollover); err != nil {
		return nil, err
	}

	// Older records may predate a kind; make both counter maps total.
	for _, k := range engine.Kinds() {
		if _, found := t.Daily[k]; !found {
			t.Daily[k] = 0
		}
		if _, found := t.Lifetime[k]; !found {
			t.Lifetime[k] = 0
		}
	}
	return t, nil
}

// SaveProgression persists xp and the derived level.
func (db *DB) SaveProgression(p *engine.Progression) error {
	if err := db.setRecord(keyXP, p.XP); err != nil {
		return err
	}
	return db.setRecord(keyLevel, p.Level)
}

// LoadProgression restores progression state, or nil when never saved.
// Level is stored for external readers; the engine re-derives it from xp.
func (db *DB) LoadProgression() (*engine.Progression, error) {
	var xp int
	ok, err := db.getRecord(keyXP, &xp)
	if err != nil || !ok {
		return nil, err
	}
	p := &engine.Progression{XP: xp}
	if _, err := db.getRecord(keyLevel, &p.Level); err != nil {
		return nil, err
	}
	return p, nil
}

// SaveHeatmap persists the current month's ledger entries in order.
func (db *DB) SaveHeatmap(entries []engine.DayEntry) error {
	return db.setRecord(keyHeatmap, entries)
}

// LoadHeatmap restores the ledger entries, or nil when never saved.
func (db *DB) LoadHeatmap() ([]engine.DayEntry, error) {
	var entries []engine.DayEntry
	ok, err := db.getRecord(keyHeatmap, &entries)
	if err != nil || !ok {
		return nil, err
	}
	return entries, nil
}

// SaveUsername persists the profile display name.
func (db *DB) SaveUsername(name string) error {
	return db.setRecord(keyUsername, name)
}

// LoadUsername returns the profile display name, or fallback when unset.
func (db *DB) LoadUsername(fallback string) (string, error) {
	var name string
	ok, err := db.getRecord(keyUsername, &name)
	if err != nil {
		return "", err
	}
	if !ok || name == "" {
		return fallback, nil
	}
	return name, nil
}
