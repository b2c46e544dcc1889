package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/district91/leaderboard-cli/internal/model"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Fetch sources and score every club",
	Long: `Fetches all configured source tables, runs every category scorer, and
prints the aggregated per-club point table.

Examples:
  # Full scoring run, table output
  leaderboard-cli score

  # CSV to a file, archiving the fetched payloads
  leaderboard-cli score --format csv --output scores.csv --save-snapshot`,
	RunE: runScoreCmd,
}

func init() {
	f := scoreCmd.Flags()
	f.String("format", "table", "output format: table or csv")
	f.String("output", "", "output file path (default: stdout)")
	f.Bool("save-snapshot", false, "archive fetched payloads in the snapshot store")

	rootCmd.AddCommand(scoreCmd)
}

func runScoreCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("score"); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save-snapshot")
	if format != "table" && format != "csv" {
		return eris.Errorf("score: --format must be table or csv (got %q)", format)
	}

	cards, _, res, err := runPipeline(ctx, save)
	if err != nil {
		return err
	}

	zap.L().Info("scoring run complete",
		zap.Int("clubs", len(cards)),
		zap.String("update_date", res.UpdateDates[model.SourcePerformance]),
	)

	out, closeOut, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeOut()

	if format == "csv" {
		return writeCardsCSV(out, cards)
	}
	printCardsTable(out, cards)
	return nil
}

var cardColumns = []string{"Club", "Name", "Members", "Cohort", "Education", "Leadership", "Operations", "Grand Total"}

func cardRecord(c model.ScoreCard) []string {
	return []string{
		strconv.Itoa(c.ClubNumber),
		c.ClubName,
		strconv.Itoa(c.ActiveMembers),
		c.Cohort.DisplayName(),
		strconv.Itoa(c.Education.Total()),
		strconv.Itoa(c.Leadership.Total()),
		strconv.Itoa(c.Operations.Total()),
		strconv.Itoa(c.GrandTotal()),
	}
}

func printCardsTable(out *os.File, cards []model.ScoreCard) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	printTabbed(w, cardColumns)
	for _, c := range cards {
		printTabbed(w, cardRecord(c))
	}
	_ = w.Flush()
}

func writeCardsCSV(out *os.File, cards []model.ScoreCard) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(cardColumns); err != nil {
		return eris.Wrap(err, "score: write csv header")
	}
	for _, c := range cards {
		if err := cw.Write(cardRecord(c)); err != nil {
			return eris.Wrapf(err, "score: write csv row for club %d", c.ClubNumber)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "score: flush csv")
}

// openOutput resolves the output destination, defaulting to stdout.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "open output %s", path)
	}
	return f, func() { _ = f.Close() }, nil
}

func printTabbed(w *tabwriter.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, f)
	}
	fmt.Fprintln(w)
}
