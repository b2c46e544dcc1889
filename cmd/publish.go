package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/district91/leaderboard-cli/internal/model"
	"github.com/district91/leaderboard-cli/internal/scoring"
	"github.com/district91/leaderboard-cli/pkg/notion"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish incentive winners to the Notion winners database",
	Long: `Runs the scoring pipeline and upserts the top-three placements of every
cohort (overall and per tier) into the configured Notion database.
Re-publishing after a new data drop updates the existing pages rather
than creating duplicates.`,
	RunE: runPublishCmd,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublishCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("score"); err != nil {
		return err
	}
	if err := cfg.Validate("publish"); err != nil {
		return err
	}

	cards, rules, res, err := runPipeline(ctx, false)
	if err != nil {
		return err
	}

	winners := scoring.Winners(scoring.Eligible(cards, rules))
	updateDate := res.UpdateDates[model.SourcePerformance]

	rows := make([]notion.Winner, 0, len(winners))
	for _, w := range winners {
		points := w.Entry.GrandTotal
		if w.Tier != "" {
			points = w.Entry.Score
		}
		rows = append(rows, notion.Winner{
			Cohort:     w.Cohort.DisplayName(),
			Category:   w.Category(),
			Rank:       w.Entry.Rank,
			ClubNumber: w.Entry.ClubNumber,
			ClubName:   w.Entry.ClubName,
			Points:     points,
			UpdateDate: updateDate,
		})
	}

	client := notion.NewClient(cfg.Notion.Token)
	result, err := notion.PublishWinners(ctx, client, cfg.Notion.WinnersDB, rows)
	if err != nil {
		return err
	}

	zap.L().Info("publish: winners database updated",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.String("update_date", updateDate))
	fmt.Printf("Published %d winners (%d created, %d updated)\n",
		len(rows), result.Created, result.Updated)
	return nil
}
