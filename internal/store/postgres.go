package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/district91/leaderboard-cli/internal/db"
	"github.com/district91/leaderboard-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 5
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	source      TEXT NOT NULL,
	update_date TEXT NOT NULL,
	payload     BYTEA NOT NULL,
	fetched_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (source, update_date)
);

CREATE TABLE IF NOT EXISTS club_history (
	club_number         INTEGER NOT NULL,
	club_name           TEXT NOT NULL,
	update_date         TEXT NOT NULL,
	active_members      INTEGER NOT NULL DEFAULT 0,
	level_1s            INTEGER NOT NULL DEFAULT 0,
	level_2s            INTEGER NOT NULL DEFAULT 0,
	add_level_2s        INTEGER NOT NULL DEFAULT 0,
	level_3s            INTEGER NOT NULL DEFAULT 0,
	level_4s            INTEGER NOT NULL DEFAULT 0,
	add_level_4s        INTEGER NOT NULL DEFAULT 0,
	officers_trained_r1 INTEGER NOT NULL DEFAULT 0,
	officers_trained_r2 INTEGER NOT NULL DEFAULT 0,
	success_plan        TEXT NOT NULL DEFAULT '',
	archived_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (club_number, update_date)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_source ON snapshots(source, fetched_at DESC);
CREATE INDEX IF NOT EXISTS idx_club_history_date ON club_history(update_date);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap model.Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO snapshots (id, source, update_date, payload, fetched_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (source, update_date) DO UPDATE SET payload = $4, fetched_at = $5`,
		snap.ID, string(snap.Source), snap.UpdateDate, snap.Payload, snap.FetchedAt,
	)
	return eris.Wrapf(err, "postgres: save snapshot %s", snap.Source)
}

func (s *PostgresStore) LatestSnapshot(ctx context.Context, source model.Source) (*model.Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, source, update_date, payload, fetched_at FROM snapshots
		 WHERE source = $1 ORDER BY fetched_at DESC LIMIT 1`,
		string(source),
	)
	return scanPgSnapshot(row, "latest snapshot")
}

func (s *PostgresStore) SnapshotByDate(ctx context.Context, source model.Source, updateDate string) (*model.Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, source, update_date, payload, fetched_at FROM snapshots
		 WHERE source = $1 AND update_date = $2`,
		string(source), updateDate,
	)
	return scanPgSnapshot(row, "snapshot by date")
}

func (s *PostgresStore) PreviousSnapshot(ctx context.Context, source model.Source, before time.Time) (*model.Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, source, update_date, payload, fetched_at FROM snapshots
		 WHERE source = $1 AND fetched_at < $2 ORDER BY fetched_at DESC LIMIT 1`,
		string(source), before,
	)
	return scanPgSnapshot(row, "previous snapshot")
}

func (s *PostgresStore) ListSnapshots(ctx context.Context, source model.Source, limit int) ([]model.Snapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, source, update_date, fetched_at FROM snapshots
		 WHERE source = $1 ORDER BY fetched_at DESC LIMIT $2`,
		string(source), limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list snapshots")
	}
	defer rows.Close()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		var source string
		if err := rows.Scan(&snap.ID, &source, &snap.UpdateDate, &snap.FetchedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan snapshot")
		}
		snap.Source = model.Source(source)
		snaps = append(snaps, snap)
	}
	return snaps, eris.Wrap(rows.Err(), "postgres: list snapshots iterate")
}

func (s *PostgresStore) PruneSnapshots(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, eris.New("postgres: prune: keep must be positive")
	}
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY source ORDER BY fetched_at DESC) AS rn
				FROM snapshots
			) ranked WHERE rn <= $1
		)`,
		keep,
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: prune snapshots")
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) ArchiveClubs(ctx context.Context, updateDate string, clubs []model.Club) error {
	if len(clubs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([][]any, 0, len(clubs))
	for _, c := range clubs {
		rows = append(rows, clubRow(updateDate, c, now))
	}

	// First archive of an update date cannot conflict, so a straight
	// COPY serves it; re-archiving the same date falls back to upsert.
	var existing int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM club_history WHERE update_date = $1`, updateDate,
	).Scan(&existing)
	if err != nil {
		return eris.Wrap(err, "postgres: archive clubs count")
	}
	if existing == 0 {
		_, err := db.CopyFrom(ctx, s.pool, "club_history", clubColumns, rows)
		return eris.Wrap(err, "postgres: archive clubs")
	}

	_, err = db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "club_history",
		Columns:      clubColumns,
		ConflictKeys: []string{"club_number", "update_date"},
	}, rows)
	return eris.Wrap(err, "postgres: archive clubs")
}

func scanPgSnapshot(row pgx.Row, op string) (*model.Snapshot, error) {
	var snap model.Snapshot
	var source string
	err := row.Scan(&snap.ID, &source, &snap.UpdateDate, &snap.Payload, &snap.FetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: %s", op)
	}
	snap.Source = model.Source(source)
	return &snap, nil
}
