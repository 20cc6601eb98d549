package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/engine"
	"github.com/blackwell-systems/focuswatch/internal/output"
)

var addCmd = &cobra.Command{
	Use:   "add <study|play|idle> <duration>",
	Short: "Credit already-spent time to today's totals",
	Long: `Record time that was spent away from a live timer, adding it directly
to today's daily total for the activity. Time added this way does not earn
xp or heatmap credit; only live study sessions do.

Examples:
  focuswatch add play 45m
  focuswatch add study 1h30m`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	kind, err := engine.ParseKind(args[0])
	if err != nil {
		return err
	}
	d, err := time.ParseDuration(args[1])
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", args[1], err)
	}
	seconds := int(d.Seconds())
	if seconds <= 0 {
		return fmt.Errorf("duration must be positive, got %s", d)
	}

	_, db, eng, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := eng.RecordElapsed(kind, seconds); err != nil {
		return err
	}
	fmt.Printf("added %s to today's %s total\n",
		output.StyleBold.Render(output.FormatDuration(seconds)), kind)
	return nil
}
