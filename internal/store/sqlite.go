package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/district91/leaderboard-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	update_date TEXT NOT NULL,
	payload     BLOB NOT NULL,
	fetched_at  DATETIME NOT NULL DEFAULT (datetime('now')),
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
	archived_at         DATETIME NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (club_number, update_date)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_source ON snapshots(source, fetched_at DESC);
CREATE INDEX IF NOT EXISTS idx_club_history_date ON club_history(update_date);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap model.Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, update_date, payload, fetched_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (source, update_date) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		snap.ID, string(snap.Source), snap.UpdateDate, snap.Payload, snap.FetchedAt,
	)
	return eris.Wrapf(err, "sqlite: save snapshot %s", snap.Source)
}

func (s *SQLiteStore) LatestSnapshot(ctx context.Context, source model.Source) (*model.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, update_date, payload, fetched_at FROM snapshots
		 WHERE source = ? ORDER BY fetched_at DESC LIMIT 1`,
		string(source),
	)
	return scanSnapshot(row, "latest snapshot")
}

func (s *SQLiteStore) SnapshotByDate(ctx context.Context, source model.Source, updateDate string) (*model.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, update_date, payload, fetched_at FROM snapshots
		 WHERE source = ? AND update_date = ?`,
		string(source), updateDate,
	)
	return scanSnapshot(row, "snapshot by date")
}

func (s *SQLiteStore) PreviousSnapshot(ctx context.Context, source model.Source, before time.Time) (*model.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, update_date, payload, fetched_at FROM snapshots
		 WHERE source = ? AND fetched_at < ? ORDER BY fetched_at DESC LIMIT 1`,
		string(source), before,
	)
	return scanSnapshot(row, "previous snapshot")
}

func (s *SQLiteStore) ListSnapshots(ctx context.Context, source model.Source, limit int) ([]model.Snapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, update_date, fetched_at FROM snapshots
		 WHERE source = ? ORDER BY fetched_at DESC LIMIT ?`,
		string(source), limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list snapshots")
	}
	defer rows.Close()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		if err := rows.Scan(&snap.ID, &snap.Source, &snap.UpdateDate, &snap.FetchedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan snapshot")
		}
		snaps = append(snaps, snap)
	}
	return snaps, eris.Wrap(rows.Err(), "sqlite: list snapshots iterate")
}

func (s *SQLiteStore) PruneSnapshots(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, eris.New("sqlite: prune: keep must be positive")
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY source ORDER BY fetched_at DESC) AS rn
				FROM snapshots
			) WHERE rn <= ?
		)`,
		keep,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prune snapshots")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}

func (s *SQLiteStore) ArchiveClubs(ctx context.Context, updateDate string, clubs []model.Club) error {
	if len(clubs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: archive clubs begin tx")
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(clubColumns)), ", ")
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO club_history (`+strings.Join(clubColumns, ", ")+`) VALUES (`+placeholders+`)`,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: archive clubs prepare")
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, c := range clubs {
		if _, err := stmt.ExecContext(ctx, clubRow(updateDate, c, now)...); err != nil {
			return eris.Wrapf(err, "sqlite: archive club %d", c.Number)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: archive clubs commit")
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scannable, op string) (*model.Snapshot, error) {
	var snap model.Snapshot
	err := row.Scan(&snap.ID, &snap.Source, &snap.UpdateDate, &snap.Payload, &snap.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: %s", op)
	}
	return &snap, nil
}
