package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/blackwell-systems/focuswatch/internal/config"
	"github.com/blackwell-systems/focuswatch/internal/engine"
	"github.com/blackwell-systems/focuswatch/internal/output"
	"github.com/blackwell-systems/focuswatch/internal/store"
)

// openState loads config, opens the database, and builds the engine on top
// of it. The caller owns closing the returned DB.
func openState() (*config.Config, *store.DB, *engine.Engine, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}
	output.AutoColor()
	output.SetWidth(cfg.Output.Width)

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database: %w", err)
	}

	eng, err := engine.New(engine.SystemClock(), db,
		engine.WithTitleTable(titleTable(cfg)))
	if err != nil {
		// A failed save of the startup rollover or month rebuild leaves the
		// in-memory state current; the next commit retries the write.
		if errors.Is(err, engine.ErrPersistence) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			return cfg, db, eng, nil
		}
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("loading state: %w", err)
	}
	return cfg, db, eng, nil
}

// titleTable converts configured ladder rows into the engine's table.
func titleTable(cfg *config.Config) engine.TitleTable {
	tt := make(engine.TitleTable, 0, len(cfg.Levels))
	for _, l := range cfg.Levels {
		tt = append(tt, engine.TitleEntry{
			MinLevel: l.MinLevel,
			Title:    l.Title,
			ColorTag: l.Color,
		})
	}
	return tt
}

func defaultUsername() string {
	return config.DefaultUsername
}

// withDB runs fn against the store for commands that do not need the engine
// (todo and profile management).
func withDB(fn func(db *store.DB) error) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}
	output.AutoColor()
	output.SetWidth(cfg.Output.Width)

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return fn(db)
}
