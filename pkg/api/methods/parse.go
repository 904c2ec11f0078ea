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
	"github.com/ZaparooProject/reelparse/pkg/api/models"
	"github.com/ZaparooProject/reelparse/pkg/api/models/requests"
	"github.com/ZaparooProject/reelparse/pkg/api/notifications"
	"github.com/ZaparooProject/reelparse/pkg/api/validation"
	"github.com/ZaparooProject/reelparse/pkg/format"
	"github.com/ZaparooProject/reelparse/pkg/metrics"
	"github.com/rs/zerolog/log"
)

// HandleParse parses a file name and, unless told otherwise, records the
// result in history.
func HandleParse(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	var params models.ParseParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}
	log.Debug().Str("name", params.Name).Msg("received parse request")

	engine := env.Engine()
	res := env.Metrics.Parse(metrics.SourceAPI, engine, params.Name)
	resp := models.ParseResponse{Result: res}
	if params.Format {
		f := format.Format(res, engine.Rules())
		resp.Formatted = &f
	}

	save := params.Save == nil || *params.Save
	if save && env.History != nil {
		entry, err := env.History.Save(requestContext(&env), params.Name, res)
		if err != nil {
			// the parse itself still succeeded
			log.Error().Err(err).Msg("failed to save parse to history")
		} else {
			resp.HistoryID = entry.ID
			notifications.HistoryAdded(env.Notifications, models.HistoryResponseEntry{
				ID:        entry.ID,
				FileName:  entry.FileName,
				Timestamp: entry.Timestamp,
				Result:    entry.Result,
			})
		}
	}

	return resp, nil
}

func HandleParseHighlight(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	var params models.HighlightParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	engine := env.Engine()
	res := env.Metrics.Parse(metrics.SourceAPI, engine, params.Name)
	return models.HighlightResponse{
		Segments: format.Highlight(params.Name, res, engine.Rules()),
	}, nil
}
