package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/output"
)

var heatmapMonth int

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Show the study heatmap for a month",
	Long: `Render the per-day study heatmap. Only the current month holds data;
the ledger is rebuilt each month and history is not retained, so browsing
other months shows an empty grid.

Examples:
  focuswatch heatmap               # current month
  focuswatch heatmap --month -1    # previous month (empty grid)`,
	RunE: runHeatmap,
}

func init() {
	heatmapCmd.Flags().IntVar(&heatmapMonth, "month", 0, "Signed month offset from the current month")
	rootCmd.AddCommand(heatmapCmd)
}

func runHeatmap(cmd *cobra.Command, args []string) error {
	cfg, db, eng, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	view := eng.MonthView(heatmapMonth)
	fmt.Println(output.RenderMonth(view, cfg.BucketThresholds))
	fmt.Println(output.HeatmapLegend())

	if view.Current {
		total := 0
		days := 0
		for _, e := range view.Entries {
			total += e.StudySeconds
			if e.StudySeconds > 0 {
				days++
			}
		}
		fmt.Printf("\n%s\n", output.StyleMuted.Render(
			fmt.Sprintf("%s studied across %d day(s) this month", output.FormatDuration(total), days)))
	}
	return nil
}
