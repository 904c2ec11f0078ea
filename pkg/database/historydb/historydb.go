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

// Package historydb keeps the most recent parse results in a sqlite
// database.
package historydb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ZaparooProject/reelparse/pkg/database"
	"github.com/ZaparooProject/reelparse/pkg/parser"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultMaxEntries is how many entries are kept unless configured
// otherwise.
const DefaultMaxEntries = 10

// Entry is one remembered parse.
type Entry struct {
	Result    *parser.Result `json:"result"`
	Timestamp time.Time      `json:"timestamp"`
	ID        string         `json:"id"`
	FileName  string         `json:"fileName"`
}

type HistoryDB struct {
	sql        *sql.DB
	clock      clockwork.Clock
	newID      func() string
	path       string
	maxEntries int
}

var _ database.GenericDBI = (*HistoryDB)(nil)

type Option func(*HistoryDB)

// WithClock sets the clock used to timestamp entries.
func WithClock(c clockwork.Clock) Option {
	return func(db *HistoryDB) {
		db.clock = c
	}
}

// WithMaxEntries sets how many entries are kept. Values below 1 are
// ignored.
func WithMaxEntries(n int) Option {
	return func(db *HistoryDB) {
		if n > 0 {
			db.maxEntries = n
		}
	}
}

// WithIDGenerator replaces the uuid entry id generator.
func WithIDGenerator(fn func() string) Option {
	return func(db *HistoryDB) {
		db.newID = fn
	}
}

func newHistoryDB(path string, opts ...Option) *HistoryDB {
	db := &HistoryDB{
		path:       path,
		clock:      clockwork.NewRealClock(),
		newID:      uuid.NewString,
		maxEntries: DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Open opens or creates the history database at path and migrates it to
// the latest schema.
func Open(ctx context.Context, path string, opts ...Option) (*HistoryDB, error) {
	db := newHistoryDB(path, opts...)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create directory for database: %w", err)
	}
	sqlInstance, err := sql.Open("sqlite3", path+database.SqliteConnParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.sql = sqlInstance
	if err := db.MigrateUp(ctx); err != nil {
		_ = sqlInstance.Close()
		return nil, err
	}
	return db, nil
}

// SetSQLForTesting allows injection of a sql.DB instance for testing
// purposes. The schema is migrated unless the db is a mock.
func SetSQLForTesting(ctx context.Context, sqlDB *sql.DB, migrate bool, opts ...Option) (*HistoryDB, error) {
	db := newHistoryDB(":memory:", opts...)
	db.sql = sqlDB
	if !migrate {
		return db, nil
	}
	if err := db.MigrateUp(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *HistoryDB) GetDBPath() string {
	return db.path
}

func (db *HistoryDB) UnsafeGetSQLDb() *sql.DB {
	return db.sql
}

func (db *HistoryDB) MaxEntries() int {
	return db.maxEntries
}

func (db *HistoryDB) MigrateUp(ctx context.Context) error {
	if db.sql == nil {
		return database.ErrNullSQL
	}
	return sqlMigrateUp(ctx, db.sql)
}

func (db *HistoryDB) Truncate(ctx context.Context) error {
	if db.sql == nil {
		return database.ErrNullSQL
	}
	return sqlTruncate(ctx, db.sql)
}

func (db *HistoryDB) Vacuum(ctx context.Context) error {
	if db.sql == nil {
		return database.ErrNullSQL
	}
	return sqlVacuum(ctx, db.sql)
}

func (db *HistoryDB) Close() error {
	if db.sql == nil {
		return nil
	}
	if err := db.sql.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Save records the result of parsing name as the newest entry. An older
// entry for the same name is replaced and the oldest entries beyond the
// limit are dropped.
func (db *HistoryDB) Save(ctx context.Context, name string, res *parser.Result) (Entry, error) {
	if db.sql == nil {
		return Entry{}, database.ErrNullSQL
	}
	entry := Entry{
		ID:        db.newID(),
		FileName:  name,
		Timestamp: db.clock.Now().UTC().Truncate(time.Millisecond),
		Result:    res,
	}
	if err := sqlSave(ctx, db.sql, &entry, db.maxEntries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns every entry, newest first.
func (db *HistoryDB) List(ctx context.Context) ([]Entry, error) {
	if db.sql == nil {
		return nil, database.ErrNullSQL
	}
	return sqlList(ctx, db.sql)
}

// Get returns the entry with the given id or database.ErrNotFound.
func (db *HistoryDB) Get(ctx context.Context, id string) (Entry, error) {
	if db.sql == nil {
		return Entry{}, database.ErrNullSQL
	}
	return sqlGet(ctx, db.sql, id)
}

// Delete removes one entry. Deleting an unknown id returns
// database.ErrNotFound.
func (db *HistoryDB) Delete(ctx context.Context, id string) error {
	if db.sql == nil {
		return database.ErrNullSQL
	}
	return sqlDelete(ctx, db.sql, id)
}

// Clear removes every entry.
func (db *HistoryDB) Clear(ctx context.Context) error {
	if db.sql == nil {
		return database.ErrNullSQL
	}
	return sqlClear(ctx, db.sql)
}
