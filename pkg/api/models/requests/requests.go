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

package requests

import (
	"context"
	"encoding/json"

	"github.com/ZaparooProject/reelparse/pkg/api/models"
	"github.com/ZaparooProject/reelparse/pkg/config"
	"github.com/ZaparooProject/reelparse/pkg/database/historydb"
	"github.com/ZaparooProject/reelparse/pkg/metrics"
	"github.com/ZaparooProject/reelparse/pkg/metadata/omdb"
	"github.com/ZaparooProject/reelparse/pkg/parser"
)

// RequestEnv is everything a method handler can reach. History and OMDb
// are nil when the feature is off and Metrics may be nil.
type RequestEnv struct {
	Context       context.Context
	Config        *config.Instance
	Engine        func() *parser.Engine
	ReloadConfig  func() error
	History       *historydb.HistoryDB
	OMDb          *omdb.Client
	Metrics       *metrics.Metrics
	Notifications chan<- models.Notification
	Params        json.RawMessage
	ID            models.RPCID
	IsLocal       bool
}
