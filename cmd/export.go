package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/district91/leaderboard-cli/internal/export"
	"github.com/district91/leaderboard-cli/internal/scoring"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write leaderboards to an xlsx workbook",
	Long: `Writes one sheet per cohort and tier plus overall standings per
cohort. Incentive-qualifying rows carry a highlight fill.

Example:
  leaderboard-cli export --output results.xlsx`,
	RunE: runExportCmd,
}

func init() {
	f := exportCmd.Flags()
	f.String("output", "leaderboard.xlsx", "workbook path")
	f.String("mode", string(scoring.ModeSequential), "ranking mode: sequential or dense")

	rootCmd.AddCommand(exportCmd)
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("score"); err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	modeName, _ := cmd.Flags().GetString("mode")
	mode := scoring.Mode(modeName)
	if mode != scoring.ModeSequential && mode != scoring.ModeDense {
		return eris.Errorf("export: --mode must be sequential or dense (got %q)", modeName)
	}

	cards, rules, _, err := runPipeline(ctx, false)
	if err != nil {
		return err
	}

	if err := export.WriteWorkbook(output, scoring.Eligible(cards, rules), mode); err != nil {
		return err
	}
	zap.L().Info("workbook written", zap.String("path", output))
	return nil
}
