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
	"path/filepath"

	"github.com/ZaparooProject/reelparse/pkg/config"
	"github.com/adrg/xdg"
)

func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, config.AppName)
}

func DataDir() string {
	return filepath.Join(xdg.DataHome, config.AppName)
}

// LogDir is kept apart from the data dir so logs can be wiped freely.
func LogDir() string {
	return filepath.Join(xdg.StateHome, config.AppName, "logs")
}

func HistoryDBPath() string {
	return filepath.Join(DataDir(), config.HistoryDbFile)
}
