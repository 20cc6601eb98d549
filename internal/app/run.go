package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/focuswatch/internal/engine"
	"github.com/blackwell-systems/focuswatch/internal/output"
)

var runAbandon bool

var runCmd = &cobra.Command{
	Use:   "run <study|play|idle>",
	Short: "Run a live timer session in the foreground",
	Long: `Start a timer for the given activity and accrue seconds until
interrupted. Ctrl-C stops the session and commits its time: daily totals
always, and for study sessions also today's heatmap entry and xp.

The daily rollover check keeps running alongside the timer, so a session
left running past midnight folds yesterday's totals on schedule.

Examples:
  focuswatch run study             # study until ctrl-c, then commit
  focuswatch run play --abandon    # time play, discard on exit`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runAbandon, "abandon", false, "Discard the session's time on exit instead of committing it")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	kind, err := engine.ParseKind(args[0])
	if err != nil {
		return err
	}

	cfg, db, eng, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := eng.Start(kind); err != nil {
		return fmt.Errorf("starting %s timer: %w", kind, err)
	}

	fmt.Printf("%s %s\n",
		output.StyleHeader.Render("tracking"),
		output.StyleBold.Render(kind.String()))
	fmt.Println(output.StyleMuted.Render("ctrl-c to stop"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// One-second accrual tick with a live readout.
	g.Go(func() error {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				eng.Tick()
				snap := eng.Snapshot()
				fmt.Printf("\r  %s %s ", kind, output.FormatClock(snap.Elapsed))
			}
		}
	})

	// Rollover check at the configured cadence (at least once a minute),
	// so a session spanning midnight folds promptly.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.RolloverEvery())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := eng.CheckRollover(); err != nil {
					fmt.Fprintf(os.Stderr, "\nwarning: %v\n", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println()

	if runAbandon {
		eng.Reset()
		fmt.Println(output.StyleMuted.Render("session abandoned, nothing committed"))
		return nil
	}

	snap := eng.Snapshot()
	elapsed := snap.Elapsed
	if err := eng.Stop(); err != nil {
		// The commit held in memory; only the save failed.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	fmt.Printf("committed %s of %s\n",
		output.StyleBold.Render(output.FormatDuration(elapsed)), kind)
	if kind == engine.KindStudy {
		after := eng.Snapshot()
		fmt.Printf("level %d %s  %s\n",
			after.Level,
			output.StyleForTag(after.Title.ColorTag).Render(after.Title.Title),
			output.XPBar(after.Progress, 24))
	}
	return nil
}
