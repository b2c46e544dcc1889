// Package store persists raw source snapshots and per-club counter
// history. Leaderboards themselves are never stored; they are recomputed
// from snapshots on demand.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

// Store is the persistence interface for the snapshot archive.
type Store interface {
	// Snapshots
	SaveSnapshot(ctx context.Context, snap model.Snapshot) error
	LatestSnapshot(ctx context.Context, source model.Source) (*model.Snapshot, error)
	SnapshotByDate(ctx context.Context, source model.Source, updateDate string) (*model.Snapshot, error)
	PreviousSnapshot(ctx context.Context, source model.Source, before time.Time) (*model.Snapshot, error)
	ListSnapshots(ctx context.Context, source model.Source, limit int) ([]model.Snapshot, error)
	PruneSnapshots(ctx context.Context, keep int) (int, error)

	// Club counter history, used for progress deltas
	ArchiveClubs(ctx context.Context, updateDate string, clubs []model.Club) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates the store backend named by the config. The default driver
// is sqlite; postgres requires a database URL.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLite(cfg.Path)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

// clubColumns is the archive row layout shared by both backends.
var clubColumns = []string{
	"club_number", "club_name", "update_date",
	"active_members", "level_1s", "level_2s", "add_level_2s", "level_3s",
	"level_4s", "add_level_4s", "officers_trained_r1", "officers_trained_r2",
	"success_plan", "archived_at",
}

func clubRow(updateDate string, c model.Club, now time.Time) []any {
	return []any{
		c.Number, c.Name, updateDate,
		c.ActiveMembers, c.Level1s, c.Level2s, c.AddLevel2s, c.Level3s,
		c.Level4s, c.AddLevel4s, c.OfficersTrainedR1, c.OfficersTrainedR2,
		c.SuccessPlan, now,
	}
}
