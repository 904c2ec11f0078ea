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
	"errors"
	"fmt"
	"strings"

	"github.com/ZaparooProject/reelparse/pkg/api/models"
	"github.com/ZaparooProject/reelparse/pkg/api/models/requests"
	"github.com/ZaparooProject/reelparse/pkg/api/validation"
	"github.com/ZaparooProject/reelparse/pkg/metadata/omdb"
	"github.com/ZaparooProject/reelparse/pkg/rules"
	"github.com/rs/zerolog/log"
)

// HandleLookup finds the OMDb entry for a title. Given a file name
// instead, the parsed title and year are used.
func HandleLookup(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	if env.OMDb == nil || !env.OMDb.HasAPIKey() {
		return nil, ErrLookupDisabled
	}
	var params models.LookupParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	title, year := strings.TrimSpace(params.Title), strings.TrimSpace(params.Year)
	if title == "" {
		res := env.Engine().Parse(params.Name)
		title = res.Title()
		if year == "" {
			year = res.Parts.String(rules.FieldYear)
		}
	}
	if title == "" {
		return nil, fmt.Errorf("no title found in %q", params.Name)
	}

	movie, err := env.OMDb.Find(requestContext(&env), title, year)
	switch {
	case errors.Is(err, omdb.ErrNotFound):
		return nil, fmt.Errorf("no omdb match for %q", title)
	case err != nil:
		log.Error().Err(err).Str("title", title).Msg("omdb lookup failed")
		return nil, fmt.Errorf("omdb lookup failed: %w", err)
	}

	return models.LookupResponse{
		Title: title,
		Year:  year,
		Movie: movie,
		Link:  movie.Link(),
	}, nil
}
