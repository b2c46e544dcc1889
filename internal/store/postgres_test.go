package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/district91/leaderboard-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_LatestSnapshot_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, source, update_date, payload, fetched_at FROM snapshots`).
		WithArgs(string(model.SourcePerformance)).
		WillReturnError(pgx.ErrNoRows)

	snap, err := s.LatestSnapshot(context.Background(), model.SourcePerformance)
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LatestSnapshot_Found(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	fetched := time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, source, update_date, payload, fetched_at FROM snapshots`).
		WithArgs(string(model.SourceAwards)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "source", "update_date", "payload", "fetched_at"}).
			AddRow("snap-1", string(model.SourceAwards), "12 March 2026", []byte("csv"), fetched))

	snap, err := s.LatestSnapshot(context.Background(), model.SourceAwards)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, model.SourceAwards, snap.Source)
	assert.Equal(t, "12 March 2026", snap.UpdateDate)
	assert.Equal(t, fetched, snap.FetchedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveSnapshot_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`ON CONFLICT \(source, update_date\)`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.SaveSnapshot(context.Background(), model.Snapshot{
		Source:     model.SourceContests,
		UpdateDate: "5 March 2026",
		Payload:    []byte("csv"),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PreviousSnapshot_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`fetched_at < \$2`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	snap, err := s.PreviousSnapshot(context.Background(), model.SourcePerformance, time.Now())
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PruneSnapshots(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM snapshots`).
		WithArgs(3).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	n, err := s.PruneSnapshots(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ArchiveClubs_FirstArchiveUsesCopy(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM club_history`).
		WithArgs("12 March 2026").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCopyFrom(pgx.Identifier{"club_history"}, clubColumns).WillReturnResult(2)

	clubs := []model.Club{
		{Number: 1234, Name: "Thames Speakers", ActiveMembers: 22},
		{Number: 5678, Name: "River Orators", ActiveMembers: 14},
	}
	err := s.ArchiveClubs(context.Background(), "12 March 2026", clubs)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ArchiveClubs_RearchiveUpserts(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM club_history`).
		WithArgs("12 March 2026").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_club_history"}, clubColumns).WillReturnResult(2)
	mock.ExpectExec(`INSERT INTO "club_history"`).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	clubs := []model.Club{
		{Number: 1234, Name: "Thames Speakers", ActiveMembers: 22},
		{Number: 5678, Name: "River Orators", ActiveMembers: 14},
	}
	err := s.ArchiveClubs(context.Background(), "12 March 2026", clubs)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
