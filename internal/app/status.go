package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/engine"
	"github.com/blackwell-systems/focuswatch/internal/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show totals, level, and progress toward the next level",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, db, eng, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	snap := eng.Snapshot()

	fmt.Println(output.Section("Progression"))
	fmt.Printf(" level %s %s\n",
		output.StyleBold.Render(fmt.Sprintf("%d", snap.Level)),
		output.StyleForTag(snap.Title.ColorTag).Render(snap.Title.Title))
	fmt.Printf(" xp    %d (%s to next level)\n",
		snap.XP, output.FormatDuration(engine.SecondsPerLevel-snap.XP%engine.SecondsPerLevel))
	fmt.Printf(" %s\n", output.XPBar(snap.Progress, 30))

	fmt.Println(output.Section("Totals"))
	tbl := output.NewTable("ACTIVITY", "TODAY", "LIFETIME", "ALL TIME")
	for _, k := range engine.Kinds() {
		tbl.AddRow(k.String(),
			output.FormatDuration(snap.Daily[k]),
			output.FormatDuration(snap.Lifetime[k]),
			output.FormatDuration(snap.Daily[k]+snap.Lifetime[k]))
	}
	fmt.Print(" ")
	tbl.Print()

	if bar := output.GoalBar(snap.Today.StudySeconds, cfg.DailyGoalSeconds, 30); bar != "" {
		fmt.Printf("\n %s %s\n", output.StyleMuted.Render("today"), bar)
	}
	return nil
}
