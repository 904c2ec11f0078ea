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

// Package database holds what the reelparse databases share: the generic
// database interface, common errors and goose migrations.
package database

import (
	"context"
	"database/sql"
	"errors"
)

var (
	// ErrNullSQL is returned when a database is used before it is opened.
	ErrNullSQL = errors.New("database is not connected")
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("record not found")
)

// SqliteConnParams are appended to sqlite file paths when opening.
const SqliteConnParams = "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"

type GenericDBI interface {
	UnsafeGetSQLDb() *sql.DB
	Truncate(ctx context.Context) error
	MigrateUp(ctx context.Context) error
	Vacuum(ctx context.Context) error
	Close() error
	GetDBPath() string
}
