// Package app contains the Cobra command tree for focuswatch.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/engine"
	"github.com/blackwell-systems/focuswatch/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "focuswatch",
	Short: "Personal activity timers with levels and a study heatmap",
	Long: `focuswatch tracks how you spend your time across study, play, and idle
timers. Study time earns xp toward levels and fills a monthly heatmap;
daily totals fold into lifetime totals at each day boundary. A todo list
rides along.

Run 'focuswatch' with no arguments for a quick dashboard summary.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/focuswatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, db, eng, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	snap := eng.Snapshot()
	name, err := db.LoadUsername(defaultUsername())
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	titleStyle := output.StyleForTag(snap.Title.ColorTag)
	fmt.Printf("%s  %s\n",
		output.StyleBold.Render(name),
		titleStyle.Render(fmt.Sprintf("Level %d %s", snap.Level, snap.Title.Title)))
	fmt.Printf("  %s\n\n", output.XPBar(snap.Progress, 24))

	tbl := output.NewTable("ACTIVITY", "TODAY", "LIFETIME")
	for _, k := range engine.Kinds() {
		tbl.AddRow(k.String(),
			output.FormatDuration(snap.Daily[k]),
			output.FormatDuration(snap.Daily[k]+snap.Lifetime[k]))
	}
	tbl.Print()

	if bar := output.GoalBar(snap.Today.StudySeconds, cfg.DailyGoalSeconds, 24); bar != "" {
		fmt.Printf("\n%s %s\n", output.StyleMuted.Render("today's goal"), bar)
	}

	todos, err := db.ListTodos()
	if err != nil {
		return fmt.Errorf("listing todos: %w", err)
	}
	open := 0
	for _, t := range todos {
		if !t.Completed {
			open++
		}
	}
	if open > 0 {
		fmt.Printf("\n%s\n", output.StyleMuted.Render(fmt.Sprintf("%d open todo(s) — focuswatch todo list", open)))
	}
	return nil
}
