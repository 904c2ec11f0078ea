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

package models

type ParseParams struct {
	Save   *bool  `json:"save"`
	Name   string `json:"name" validate:"required,max=1024"`
	Format bool   `json:"format"`
}

type HighlightParams struct {
	Name string `json:"name" validate:"required,max=1024"`
}

type RulesParams struct {
	Category string `json:"category" validate:"omitempty,category"`
}

type RuleGetParams struct {
	ID string `json:"id" validate:"required"`
}

type ExtensionsParams struct {
	Category string `json:"category" validate:"omitempty,oneof=video subtitle"`
}

type ExtensionGetParams struct {
	Extension string `json:"extension" validate:"required"`
}

type HistoryDeleteParams struct {
	ID string `json:"id" validate:"required"`
}

// LookupParams either names a title directly or a file name to parse for
// one.
type LookupParams struct {
	Title string `json:"title" validate:"required_without=Name"`
	Name  string `json:"name" validate:"required_without=Title,max=1024"`
	Year  string `json:"year" validate:"omitempty,year"`
}

type UpdateSettingsParams struct {
	DebugLogging   *bool `json:"debugLogging"`
	HistoryEnabled *bool `json:"historyEnabled"`
	ErrorReporting *bool `json:"errorReporting"`
}
