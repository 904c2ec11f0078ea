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

// Package methods holds the JSON-RPC method handlers.
package methods

import (
	"context"
	"errors"

	"github.com/ZaparooProject/reelparse/pkg/api/models/requests"
)

var (
	ErrHistoryDisabled   = errors.New("history is disabled")
	ErrLookupDisabled    = errors.New("omdb lookups are not configured")
	ErrRuleNotFound      = errors.New("rule not found")
	ErrExtensionNotFound = errors.New("extension not found")
)

func requestContext(env *requests.RequestEnv) context.Context {
	if env.Context == nil {
		return context.Background()
	}
	return env.Context
}
