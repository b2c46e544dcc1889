package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/district91/leaderboard-cli/internal/scoring"
)

var winnersCmd = &cobra.Command{
	Use:   "winners",
	Short: "List incentive winners across every cohort and tier",
	Long: `Lists every top-three placement (boundary ties included) in each
cohort's overall standings and each tier's standings.`,
	RunE: runWinnersCmd,
}

func init() {
	rootCmd.AddCommand(winnersCmd)
}

func runWinnersCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("score"); err != nil {
		return err
	}

	cards, rules, _, err := runPipeline(ctx, false)
	if err != nil {
		return err
	}

	winners := scoring.Winners(scoring.Eligible(cards, rules))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	printTabbed(w, []string{"Cohort", "Category", "Rank", "Club", "Name", "Points"})
	for _, win := range winners {
		printTabbed(w, []string{
			win.Cohort.DisplayName(),
			win.Category(),
			strconv.Itoa(win.Entry.Rank),
			strconv.Itoa(win.Entry.ClubNumber),
			win.Entry.ClubName,
			strconv.Itoa(win.Entry.Score),
		})
	}
	_ = w.Flush()
	return nil
}
