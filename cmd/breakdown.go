package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/district91/leaderboard-cli/internal/model"
)

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Print per-category points for one tier",
	Long: `Prints every category's points for one tier, club by club. Clubs
without a size cohort stay in this view even though they never rank.

Example:
  leaderboard-cli breakdown --tier leadership_innovators`,
	RunE: runBreakdownCmd,
}

func init() {
	breakdownCmd.Flags().String("tier", string(model.TierEducation), "tier to detail")
	rootCmd.AddCommand(breakdownCmd)
}

func runBreakdownCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("score"); err != nil {
		return err
	}

	tierName, _ := cmd.Flags().GetString("tier")
	tier, err := tierByName(tierName)
	if err != nil {
		return err
	}

	cards, rules, _, err := runPipeline(ctx, false)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	printTabbed(w, append([]string{"Club", "Name", "Cohort"}, categoryColumns(tier)...))
	for _, c := range cards {
		if c.ActiveMembers < rules.MinActiveMembers {
			continue
		}
		row := []string{strconv.Itoa(c.ClubNumber), c.ClubName, c.Cohort.DisplayName()}
		printTabbed(w, append(row, categoryValues(c, tier)...))
	}
	_ = w.Flush()
	return nil
}

func categoryColumns(tier model.Tier) []string {
	switch tier {
	case model.TierEducation:
		return []string{"L1", "L2", "L3", "L4", "L5", "DTM", "Triple Crown",
			"Humorous", "TableTopics", "Evaluation", "International", "Enrollment", "Total"}
	case model.TierLeadership:
		return []string{"COT R1", "COT R2", "MOT Q1", "MOT Q3", "PCC",
			"Mentorship", "DCP", "STH", "Total"}
	default:
		return []string{"Success Plan", "Quality Initiative", "Onboarding", "Total"}
	}
}

func categoryValues(c model.ScoreCard, tier model.Tier) []string {
	var vals []int
	switch tier {
	case model.TierEducation:
		p := c.Education
		vals = []int{p.L1, p.L2, p.L3, p.L4, p.L5, p.DTM, p.TripleCrown,
			p.Humorous, p.TableTopics, p.Evaluation, p.International, p.Enrollment, p.Total()}
	case model.TierLeadership:
		p := c.Leadership
		vals = []int{p.COTRound1, p.COTRound2, p.MOTQ1, p.MOTQ3, p.PathwaysCelebration,
			p.Mentorship, p.DistinguishedPartner, p.TransitionHandover, p.Total()}
	default:
		p := c.Operations
		vals = []int{p.SuccessPlan, p.QualityInitiative, p.MemberOnboarding, p.Total()}
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strconv.Itoa(v)
	}
	return out
}
