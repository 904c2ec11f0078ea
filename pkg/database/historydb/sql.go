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
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ZaparooProject/reelparse/pkg/database"
	"github.com/ZaparooProject/reelparse/pkg/parser"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func sqlMigrateUp(ctx context.Context, db *sql.DB) error {
	if err := database.MigrateUp(ctx, db, migrationFiles, "migrations"); err != nil {
		return fmt.Errorf("failed to run history database migrations: %w", err)
	}
	return nil
}

//goland:noinspection SqlWithoutWhere
func sqlTruncate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
	delete from History;
	vacuum;
	`)
	if err != nil {
		return fmt.Errorf("failed to truncate database: %w", err)
	}
	return nil
}

func sqlVacuum(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `vacuum;`); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	return nil
}

func sqlSave(ctx context.Context, db *sql.DB, entry *Entry, maxEntries int) error {
	data, err := json.Marshal(entry.Result)
	if err != nil {
		return fmt.Errorf("failed to encode parse result: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin history transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Warn().Err(rbErr).Msg("failed to rollback history transaction")
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`delete from History where FileName = ?;`,
		entry.FileName,
	); err != nil {
		return fmt.Errorf("failed to replace history entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		insert into History(
			ID, FileName, Timestamp, Result
		) values (?, ?, ?, ?);
	`,
		entry.ID,
		entry.FileName,
		entry.Timestamp.UnixMilli(),
		string(data),
	); err != nil {
		return fmt.Errorf("failed to execute history insert: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		delete from History where DBID not in (
			select DBID from History order by DBID desc limit ?
		);
	`, maxEntries)
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Debug().Int64("removed", n).Msg("trimmed history")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history transaction: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e    Entry
		ts   int64
		data string
	)
	if err := s.Scan(&e.ID, &e.FileName, &ts, &data); err != nil {
		return e, err //nolint:wrapcheck // wrapped by callers
	}
	e.Timestamp = time.UnixMilli(ts).UTC()
	e.Result = &parser.Result{}
	if err := json.Unmarshal([]byte(data), e.Result); err != nil {
		return e, fmt.Errorf("failed to decode parse result of %s: %w", e.ID, err)
	}
	return e, nil
}

func sqlList(ctx context.Context, db *sql.DB) ([]Entry, error) {
	list := make([]Entry, 0, DefaultMaxEntries)
	rows, err := db.QueryContext(ctx, `
		select ID, FileName, Timestamp, Result
		from History
		order by DBID desc;
	`)
	if err != nil {
		return list, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close sql rows")
		}
	}()
	for rows.Next() {
		e, scanErr := scanEntry(rows)
		if scanErr != nil {
			return list, fmt.Errorf("failed to scan history row: %w", scanErr)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return list, fmt.Errorf("error iterating history rows: %w", err)
	}
	return list, nil
}

func sqlGet(ctx context.Context, db *sql.DB, id string) (Entry, error) {
	row := db.QueryRowContext(ctx, `
		select ID, FileName, Timestamp, Result
		from History
		where ID = ?;
	`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("history entry %s: %w", id, database.ErrNotFound)
	} else if err != nil {
		return Entry{}, fmt.Errorf("failed to scan history row: %w", err)
	}
	return e, nil
}

func sqlDelete(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, `delete from History where ID = ?;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("history entry %s: %w", id, database.ErrNotFound)
	}
	return nil
}

//goland:noinspection SqlWithoutWhere
func sqlClear(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `delete from History;`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
