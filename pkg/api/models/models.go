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
	"encoding/json"
)

const (
	NotificationHistoryAdded   = "history.added"
	NotificationHistoryCleared = "history.cleared"
	NotificationRulesReloaded  = "rules.reloaded"
)

const (
	MethodParse          = "parse"
	MethodParseHighlight = "parse.highlight"
	MethodRules          = "rules"
	MethodRulesGet       = "rules.get"
	MethodCategories     = "categories"
	MethodExtensions     = "extensions"
	MethodExtensionsGet  = "extensions.get"
	MethodHistory        = "history"
	MethodHistoryDelete  = "history.delete"
	MethodHistoryClear   = "history.clear"
	MethodHistoryExport  = "history.export"
	MethodLookup         = "lookup"
	MethodSettings       = "settings"
	MethodSettingsUpdate = "settings.update"
	MethodSettingsReload = "settings.reload"
	MethodVersion        = "version"
)

type Notification struct {
	Method string
	Params json.RawMessage
}

type RequestObject struct {
	ID      *RPCID          `json:"id,omitempty"`
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type ErrorObject struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type ResponseObject struct {
	Result  any          `json:"result"`
	Error   *ErrorObject `json:"error,omitempty"`
	JSONRPC string       `json:"jsonrpc"`
	ID      RPCID        `json:"id"`
}

// ResponseErrorObject is sent for errors so the result key can be left out
// entirely, while a successful nil result is still sent as null.
type ResponseErrorObject struct {
	Error   *ErrorObject `json:"error"`
	JSONRPC string       `json:"jsonrpc"`
	ID      RPCID        `json:"id"`
}
