// Reelparse
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Reelparse.
//
// Reelparse is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Reelparse is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Reelparse.  If not, see <http://www.gnu.org/licenses/>.

package historydb

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ZaparooProject/reelparse/pkg/database"
	"github.com/ZaparooProject/reelparse/pkg/parser"
	"github.com/ZaparooProject/reelparse/pkg/rules"
	testsqlmock "github.com/ZaparooProject/reelparse/pkg/testing/sqlmock"
	"github.com/gocarina/gocsv"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T, opts ...Option) *HistoryDB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})
	return db
}

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	})
}

func TestSaveAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(epoch)
	db := newTestDB(t, WithClock(clock))

	first, err := db.Save(ctx, "a.mkv", parser.Parse("a.mkv"))
	require.NoError(t, err)
	assert.Equal(t, epoch, first.Timestamp)
	assert.NotEmpty(t, first.ID)

	clock.Advance(time.Minute)
	second, err := db.Save(ctx, "Movie.2020.1080p.mkv", parser.Parse("Movie.2020.1080p.mkv"))
	require.NoError(t, err)

	list, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, epoch.Add(time.Minute), list[0].Timestamp)
	assert.Equal(t, "2020", list[0].Result.Parts.String(rules.FieldYear))
	assert.Equal(t, second.Result.MatchedRules, list[0].Result.MatchedRules)
}

func TestSaveReplacesSameFileName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t, sequentialIDs())

	_, err := db.Save(ctx, "a.mkv", parser.Parse("a.mkv"))
	require.NoError(t, err)
	_, err = db.Save(ctx, "b.mkv", parser.Parse("b.mkv"))
	require.NoError(t, err)
	again, err := db.Save(ctx, "a.mkv", parser.Parse("a.mkv"))
	require.NoError(t, err)

	list, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, again.ID, list[0].ID)
	assert.Equal(t, "a.mkv", list[0].FileName)
	assert.Equal(t, "b.mkv", list[1].FileName)
}

func TestSaveTrimsToMaxEntries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t, WithMaxEntries(3), sequentialIDs())
	assert.Equal(t, 3, db.MaxEntries())

	for i := range 5 {
		name := fmt.Sprintf("file%d.mkv", i)
		_, err := db.Save(ctx, name, parser.Parse(name))
		require.NoError(t, err)
	}

	list, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "file4.mkv", list[0].FileName)
	assert.Equal(t, "file2.mkv", list[2].FileName)
}

func TestDefaultMaxEntries(t *testing.T) {
	t.Parallel()

	db := newHistoryDB("x", WithMaxEntries(0))
	assert.Equal(t, DefaultMaxEntries, db.MaxEntries())
}

func TestGetDeleteClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)

	e, err := db.Save(ctx, "a.mkv", parser.Parse("a.mkv"))
	require.NoError(t, err)

	got, err := db.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.mkv", got.FileName)

	_, err = db.Get(ctx, "missing")
	require.ErrorIs(t, err, database.ErrNotFound)

	require.NoError(t, db.Delete(ctx, e.ID))
	require.ErrorIs(t, db.Delete(ctx, e.ID), database.ErrNotFound)

	_, err = db.Save(ctx, "b.mkv", parser.Parse("b.mkv"))
	require.NoError(t, err)
	require.NoError(t, db.Clear(ctx))
	list, err := db.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, db.Truncate(ctx))
	require.NoError(t, db.Vacuum(ctx))
}

func TestExportCSV(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t, WithClock(clockwork.NewFakeClockAt(epoch)), sequentialIDs())

	name := "Breaking.Bad.S05E14.720p.HDTV.x264-KILLERS.mp4"
	_, err := db.Save(ctx, name, parser.Parse(name))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, db.ExportCSV(ctx, &buf))

	var rows []CSVRow
	require.NoError(t, gocsv.Unmarshal(strings.NewReader(buf.String()), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "id-01", rows[0].ID)
	assert.Equal(t, "2026-03-01T12:00:00Z", rows[0].Timestamp)
	assert.Equal(t, "Breaking Bad", rows[0].Title)
	assert.Equal(t, "05", rows[0].Season)
	assert.Equal(t, "14", rows[0].Episode)
	assert.Equal(t, "KILLERS", rows[0].ReleaseGroup)
	assert.Contains(t, rows[0].MatchedRules, "season_episode")
}

func TestNullSQL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := &HistoryDB{}

	_, err := db.Save(ctx, "a", nil)
	require.ErrorIs(t, err, database.ErrNullSQL)
	_, err = db.List(ctx)
	require.ErrorIs(t, err, database.ErrNullSQL)
	require.ErrorIs(t, db.Delete(ctx, "x"), database.ErrNullSQL)
	require.ErrorIs(t, db.Clear(ctx), database.ErrNullSQL)
	require.ErrorIs(t, db.MigrateUp(ctx), database.ErrNullSQL)
	require.NoError(t, db.Close())
}

func newMockDB(t *testing.T) (*HistoryDB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := SetSQLForTesting(context.Background(), sqlDB, false,
		WithClock(clockwork.NewFakeClockAt(epoch)), sequentialIDs())
	require.NoError(t, err)
	return db, mock
}

func TestSqlSave_Success(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`delete from History where FileName = \?`).
		WithArgs("a.mkv").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`insert into History`).
		WithArgs("id-01", "a.mkv", epoch.UnixMilli(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`delete from History where DBID not in`).
		WithArgs(DefaultMaxEntries).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := db.Save(context.Background(), "a.mkv", parser.Parse("a.mkv"))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlSave_InsertErrorRollsBack(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`delete from History where FileName`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`insert into History`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := db.Save(context.Background(), "a.mkv", parser.Parse("a.mkv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute history insert")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlSave_BeginError(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)

	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	_, err := db.Save(context.Background(), "a.mkv", parser.Parse("a.mkv"))
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlList_ScanError(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"ID", "FileName", "Timestamp", "Result"}).
		AddRow("id-01", "a.mkv", epoch.UnixMilli(), "{not json")
	mock.ExpectQuery(`select ID, FileName, Timestamp, Result\s+from History\s+order by DBID desc`).
		WillReturnRows(rows)

	_, err := db.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode parse result")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlGet_NotFound(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)

	mock.ExpectQuery(`select ID, FileName, Timestamp, Result\s+from History\s+where ID = \?`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := db.Get(context.Background(), "nope")
	require.ErrorIs(t, err, database.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlDelete_Errors(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)

	mock.ExpectExec(`delete from History where ID = \?`).
		WithArgs("a").
		WillReturnError(errors.New("locked"))
	mock.ExpectExec(`delete from History where ID = \?`).
		WithArgs("b").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := db.Delete(context.Background(), "a")
	require.Error(t, err)
	assert.NotErrorIs(t, err, database.ErrNotFound)
	require.ErrorIs(t, db.Delete(context.Background(), "b"), database.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
