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

package helpers

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/reelparse/pkg/database/historydb"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewHistoryDB returns a migrated history database in a temp dir. It is
// closed when the test ends.
func NewHistoryDB(t *testing.T, opts ...historydb.Option) *historydb.HistoryDB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "history_test.db"))
	require.NoError(t, err)
	// one connection so every query sees the same sqlite handle
	sqlDB.SetMaxOpenConns(1)

	db, err := historydb.SetSQLForTesting(context.Background(), sqlDB, true, opts...)
	if err != nil {
		_ = sqlDB.Close()
		t.Fatalf("failed to set up history db: %v", err)
	}
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})
	return db
}
