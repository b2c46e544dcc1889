package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/district91/leaderboard-cli/internal/model"
	"github.com/district91/leaderboard-cli/internal/scoring"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print a ranked per-cohort leaderboard",
	Long: `Ranks eligible clubs within one cohort, by grand total or a single
tier's points, and marks incentive-qualifying placements.

Examples:
  # Rising Stars overall standings
  leaderboard-cli leaderboard --cohort 2

  # Powerhouse education standings, legacy shared-rank view
  leaderboard-cli leaderboard --cohort 3 --tier pathways_pioneers --mode dense`,
	RunE: runLeaderboardCmd,
}

func init() {
	f := leaderboardCmd.Flags()
	f.Int("cohort", 0, "cohort number (1-4, smallest clubs first)")
	f.String("tier", "", "rank by one tier's points instead of grand total")
	f.String("mode", string(scoring.ModeSequential), "ranking mode: sequential or dense")
	_ = leaderboardCmd.MarkFlagRequired("cohort")

	rootCmd.AddCommand(leaderboardCmd)
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("score"); err != nil {
		return err
	}

	cohortN, _ := cmd.Flags().GetInt("cohort")
	cohort := model.Cohort(cohortN)
	if !cohort.Known() {
		return eris.Errorf("leaderboard: --cohort must be 1-4 (got %d)", cohortN)
	}

	metric := scoring.MetricGrandTotal
	if tierName, _ := cmd.Flags().GetString("tier"); tierName != "" {
		tier, err := tierByName(tierName)
		if err != nil {
			return err
		}
		metric = scoring.TierMetric(tier)
	}

	modeName, _ := cmd.Flags().GetString("mode")
	mode := scoring.Mode(modeName)
	if mode != scoring.ModeSequential && mode != scoring.ModeDense {
		return eris.Errorf("leaderboard: --mode must be sequential or dense (got %q)", modeName)
	}

	cards, rules, _, err := runPipeline(ctx, false)
	if err != nil {
		return err
	}

	entries := scoring.Rank(scoring.Eligible(cards, rules), cohort, metric, mode)
	printEntries(entries)
	return nil
}

func tierByName(name string) (model.Tier, error) {
	for _, t := range model.Tiers() {
		if name == string(t) {
			return t, nil
		}
	}
	return "", eris.Errorf("unknown tier %q (want one of pathways_pioneers, leadership_innovators, excellence_champions)", name)
}

func printEntries(entries []model.Entry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	printTabbed(w, []string{"Rank", "Club", "Name", "Points", "Grand Total", "Top 3"})
	for _, e := range entries {
		top := ""
		if e.TopThree {
			top = "*"
		}
		printTabbed(w, []string{
			strconv.Itoa(e.Rank),
			strconv.Itoa(e.ClubNumber),
			e.ClubName,
			strconv.Itoa(e.Score),
			strconv.Itoa(e.GrandTotal),
			top,
		})
	}
	_ = w.Flush()
}
