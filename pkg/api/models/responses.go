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

import (
	"time"

	"github.com/ZaparooProject/reelparse/pkg/extensions"
	"github.com/ZaparooProject/reelparse/pkg/format"
	"github.com/ZaparooProject/reelparse/pkg/metadata/omdb"
	"github.com/ZaparooProject/reelparse/pkg/parser"
	"github.com/ZaparooProject/reelparse/pkg/rules"
)

type ParseResponse struct {
	Result    *parser.Result    `json:"result"`
	Formatted *format.Formatted `json:"formatted,omitempty"`
	HistoryID string            `json:"historyId,omitempty"`
}

type HighlightResponse struct {
	Segments []format.Segment `json:"segments"`
}

type RulesResponse struct {
	Rules []rules.Info `json:"rules"`
}

type CategoriesResponse struct {
	Categories []rules.CategoryInfo `json:"categories"`
}

type ExtensionsResponse struct {
	Extensions []extensions.Info `json:"extensions"`
}

type HistoryResponseEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Result    *parser.Result `json:"result"`
	ID        string         `json:"id"`
	FileName  string         `json:"fileName"`
}

type HistoryResponse struct {
	Entries []HistoryResponseEntry `json:"entries"`
}

type HistoryExportResponse struct {
	CSV string `json:"csv"`
}

type LookupResponse struct {
	Movie *omdb.Movie `json:"movie"`
	Link  string      `json:"link"`
	Title string      `json:"title"`
	Year  string      `json:"year,omitempty"`
}

type SettingsResponse struct {
	AllowedOrigins    []string `json:"allowedOrigins"`
	CustomRules       []string `json:"customRules"`
	APIPort           int      `json:"apiPort"`
	HistoryMaxEntries int      `json:"historyMaxEntries"`
	DebugLogging      bool     `json:"debugLogging"`
	HistoryEnabled    bool     `json:"historyEnabled"`
	ErrorReporting    bool     `json:"errorReporting"`
	OMDbConfigured    bool     `json:"omdbConfigured"`
}

type VersionResponse struct {
	Version  string `json:"version"`
	Platform string `json:"platform"`
}

type RulesReloadedPayload struct {
	Custom int `json:"custom"`
	Total  int `json:"total"`
}
