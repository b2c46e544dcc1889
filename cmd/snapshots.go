package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/district91/leaderboard-cli/internal/model"
)

var (
	snapshotsSource string
	snapshotsLimit  int
	snapshotsKeep   int
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Inspect and prune the snapshot archive",
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived snapshots, newest first",
	RunE:  runSnapshotsListCmd,
}

var snapshotsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old snapshots, keeping the newest N per source",
	RunE:  runSnapshotsPruneCmd,
}

func init() {
	snapshotsListCmd.Flags().StringVar(&snapshotsSource, "source", "", "limit to one source (e.g. club_performance)")
	snapshotsListCmd.Flags().IntVar(&snapshotsLimit, "limit", 20, "maximum snapshots to list per source")

	snapshotsPruneCmd.Flags().IntVar(&snapshotsKeep, "keep", 6, "snapshots to keep per source")

	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsPruneCmd)
	rootCmd.AddCommand(snapshotsCmd)
}

func runSnapshotsListCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	sources := model.AllSources()
	if snapshotsSource != "" {
		sources = []model.Source{model.Source(snapshotsSource)}
	}

	var rows []model.Snapshot
	for _, source := range sources {
		snaps, err := st.ListSnapshots(ctx, source, snapshotsLimit)
		if err != nil {
			return err
		}
		rows = append(rows, snaps...)
	}
	if len(rows) == 0 {
		fmt.Println("No snapshots archived.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	printTabbed(w, []string{"Source", "Update Date", "Fetched At"})
	for _, s := range rows {
		printTabbed(w, []string{string(s.Source), s.UpdateDate, s.FetchedAt.Format("2006-01-02 15:04:05 MST")})
	}
	_ = w.Flush()
	return nil
}

func runSnapshotsPruneCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if snapshotsKeep < 1 {
		return eris.Errorf("snapshots: --keep must be at least 1, got %d", snapshotsKeep)
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	deleted, err := st.PruneSnapshots(ctx, snapshotsKeep)
	if err != nil {
		return err
	}

	zap.L().Info("snapshots: pruned archive",
		zap.Int("deleted", deleted),
		zap.Int("keep", snapshotsKeep))
	fmt.Printf("Deleted %d snapshots (kept newest %d per source)\n", deleted, snapshotsKeep)
	return nil
}
