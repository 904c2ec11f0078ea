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

package methods

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ZaparooProject/reelparse/pkg/api/models"
	"github.com/ZaparooProject/reelparse/pkg/api/models/requests"
	"github.com/ZaparooProject/reelparse/pkg/api/notifications"
	"github.com/ZaparooProject/reelparse/pkg/api/validation"
	"github.com/ZaparooProject/reelparse/pkg/database"
	"github.com/rs/zerolog/log"
)

func HandleHistory(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	if env.History == nil {
		return nil, ErrHistoryDisabled
	}

	entries, err := env.History.List(requestContext(&env))
	if err != nil {
		log.Error().Err(err).Msg("error getting history")
		return nil, errors.New("error getting history")
	}

	resp := models.HistoryResponse{
		Entries: make([]models.HistoryResponseEntry, len(entries)),
	}
	for i, e := range entries {
		resp.Entries[i] = models.HistoryResponseEntry{
			ID:        e.ID,
			FileName:  e.FileName,
			Timestamp: e.Timestamp,
			Result:    e.Result,
		}
	}
	return resp, nil
}

func HandleHistoryDelete(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	if env.History == nil {
		return nil, ErrHistoryDisabled
	}
	var params models.HistoryDeleteParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	err := env.History.Delete(requestContext(&env), params.ID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("history entry not found: %s", params.ID)
	} else if err != nil {
		log.Error().Err(err).Msg("error deleting history entry")
		return nil, errors.New("error deleting history entry")
	}
	return nil, nil
}

func HandleHistoryClear(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	if env.History == nil {
		return nil, ErrHistoryDisabled
	}
	if err := env.History.Clear(requestContext(&env)); err != nil {
		log.Error().Err(err).Msg("error clearing history")
		return nil, errors.New("error clearing history")
	}
	notifications.HistoryCleared(env.Notifications)
	return nil, nil
}

func HandleHistoryExport(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	if env.History == nil {
		return nil, ErrHistoryDisabled
	}
	var buf bytes.Buffer
	if err := env.History.ExportCSV(requestContext(&env), &buf); err != nil {
		log.Error().Err(err).Msg("error exporting history")
		return nil, errors.New("error exporting history")
	}
	return models.HistoryExportResponse{CSV: buf.String()}, nil
}
