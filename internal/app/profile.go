package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/engine"
	"github.com/blackwell-systems/focuswatch/internal/output"
)

var profileName string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the profile card",
	Long: `Show the profile card: display name, total study and play time, and
the productivity share of study over study+play.

Examples:
  focuswatch profile               # show the card
  focuswatch profile --name ada    # rename, then show`,
	Args: cobra.NoArgs,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&profileName, "name", "", "Set the display name")
	rootCmd.AddCommand(profileCmd)
}

// productivityPercent is the study share of active (study+play) time,
// rounded to the nearest whole percent. Idle time does not count against it.
func productivityPercent(study, play int) int {
	total := study + play
	if total == 0 {
		return 0
	}
	return int(float64(study)/float64(total)*100 + 0.5)
}

func runProfile(cmd *cobra.Command, args []string) error {
	_, db, eng, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if profileName != "" {
		if err := db.SaveUsername(profileName); err != nil {
			return fmt.Errorf("saving name: %w", err)
		}
	}

	name, err := db.LoadUsername(defaultUsername())
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	snap := eng.Snapshot()
	study := snap.Daily[engine.KindStudy] + snap.Lifetime[engine.KindStudy]
	play := snap.Daily[engine.KindPlay] + snap.Lifetime[engine.KindPlay]

	fmt.Println(output.Section(name))
	tbl := output.NewTable("TOTAL STUDY", "TOTAL PLAY", "PRODUCTIVITY")
	tbl.AddRow(
		output.FormatDuration(study),
		output.FormatDuration(play),
		fmt.Sprintf("%d%%", productivityPercent(study, play)))
	fmt.Print(" ")
	tbl.Print()

	fmt.Printf("\n level %d %s\n", snap.Level,
		output.StyleForTag(snap.Title.ColorTag).Render(snap.Title.Title))
	return nil
}
