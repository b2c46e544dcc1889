package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/district91/leaderboard-cli/internal/loader"
	"github.com/district91/leaderboard-cli/internal/model"
	"github.com/district91/leaderboard-cli/internal/scoring"
)

var deltaCmd = &cobra.Command{
	Use:   "delta",
	Short: "Compute quarter-only counters from two archived snapshots",
	Long: `Subtracts an archived performance snapshot from a later one, leaving
only the progress made between the two update dates. Clubs missing from
the prior snapshot keep their full current counters.

Example:
  leaderboard-cli delta --prior "1 January 2026"`,
	RunE: runDeltaCmd,
}

func init() {
	f := deltaCmd.Flags()
	f.String("prior", "", "update date of the baseline snapshot")
	f.String("current", "", "update date of the current snapshot (default: latest)")
	_ = deltaCmd.MarkFlagRequired("prior")

	rootCmd.AddCommand(deltaCmd)
}

func runDeltaCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	priorDate, _ := cmd.Flags().GetString("prior")
	currentDate, _ := cmd.Flags().GetString("current")

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	priorSnap, err := st.SnapshotByDate(ctx, model.SourcePerformance, priorDate)
	if err != nil {
		return err
	}
	if priorSnap == nil {
		return eris.Errorf("delta: no archived performance snapshot for %q", priorDate)
	}

	var currentSnap *model.Snapshot
	if currentDate != "" {
		currentSnap, err = st.SnapshotByDate(ctx, model.SourcePerformance, currentDate)
	} else {
		currentSnap, err = st.LatestSnapshot(ctx, model.SourcePerformance)
	}
	if err != nil {
		return err
	}
	if currentSnap == nil {
		return eris.New("delta: no current performance snapshot archived")
	}
	if currentSnap.UpdateDate == priorSnap.UpdateDate {
		return eris.Errorf("delta: current and prior snapshots are both %q", priorSnap.UpdateDate)
	}

	current := loader.ParsePerformance(currentSnap.Payload)
	prior := loader.ParsePerformance(priorSnap.Payload)
	diff := scoring.Delta(current, prior)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	printTabbed(w, []string{"Club", "Name", "L1", "L2", "Add L2", "L3", "L4", "Add L4", "COT R1", "COT R2"})
	for _, c := range diff {
		printTabbed(w, []string{
			strconv.Itoa(c.Number),
			c.Name,
			strconv.Itoa(c.Level1s),
			strconv.Itoa(c.Level2s),
			strconv.Itoa(c.AddLevel2s),
			strconv.Itoa(c.Level3s),
			strconv.Itoa(c.Level4s),
			strconv.Itoa(c.AddLevel4s),
			strconv.Itoa(c.OfficersTrainedR1),
			strconv.Itoa(c.OfficersTrainedR2),
		})
	}
	_ = w.Flush()
	return nil
}
