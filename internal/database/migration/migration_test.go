package migration

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sentinel = "SELECT to_regclass('public.blobs') IS NOT NULL"

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh database runs every step", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(sentinel)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS blobs").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_blobs_updated_at").WillReturnResult(sqlmock.NewResult(0, 0))

		var buf bytes.Buffer
		err = EnsureMigrated(ctx, db, zerolog.New(&buf), "localhost")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Contains(t, buf.String(), `"event":"db_migration_success"`)
	})

	t.Run("existing schema is skipped", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(sentinel)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err = EnsureMigrated(ctx, db, zerolog.Nop(), "localhost")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("step failure stops migration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(sentinel)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS blobs").WillReturnError(errors.New("permission denied"))

		err = EnsureMigrated(ctx, db, zerolog.Nop(), "localhost")

		assert.EqualError(t, err, "migration step create_table_blobs failed: permission denied")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sentinel failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(sentinel)).WillReturnError(errors.New("timeout"))

		err = EnsureMigrated(ctx, db, zerolog.Nop(), "localhost")

		assert.ErrorContains(t, err, "failed to check sentinel table")
	})
}
