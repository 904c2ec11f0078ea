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

	"github.com/ZaparooProject/reelparse/pkg/api/models"
	"github.com/ZaparooProject/reelparse/pkg/api/models/requests"
	"github.com/ZaparooProject/reelparse/pkg/api/validation"
	"github.com/ZaparooProject/reelparse/pkg/config"
	"github.com/rs/zerolog/log"
)

func settingsResponse(cfg *config.Instance) models.SettingsResponse {
	defs := cfg.CustomRuleDefinitions()
	ids := make([]string, 0, len(defs))
	for _, d := range defs {
		ids = append(ids, d.ID)
	}
	origins := cfg.AllowedOrigins()
	if origins == nil {
		origins = []string{}
	}
	return models.SettingsResponse{
		APIPort:           cfg.APIPort(),
		AllowedOrigins:    origins,
		DebugLogging:      cfg.DebugLogging(),
		HistoryEnabled:    cfg.HistoryEnabled(),
		HistoryMaxEntries: cfg.HistoryMaxEntries(),
		ErrorReporting:    cfg.ErrorReporting(),
		OMDbConfigured:    cfg.OMDbAPIKey() != "",
		CustomRules:       ids,
	}
}

func HandleSettings(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	return settingsResponse(env.Config), nil
}

// HandleSettingsUpdate changes settings and writes them to disk. Only
// local clients may change settings.
func HandleSettingsUpdate(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	if !env.IsLocal {
		return nil, errors.New("settings can only be changed locally")
	}
	var params models.UpdateSettingsParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	if params.DebugLogging != nil {
		log.Info().Bool("debugLogging", *params.DebugLogging).Msg("updating setting")
		env.Config.SetDebugLogging(*params.DebugLogging)
	}
	if params.HistoryEnabled != nil {
		log.Info().Bool("historyEnabled", *params.HistoryEnabled).Msg("updating setting")
		env.Config.SetHistoryEnabled(*params.HistoryEnabled)
	}
	if params.ErrorReporting != nil {
		log.Info().Bool("errorReporting", *params.ErrorReporting).Msg("updating setting")
		env.Config.SetErrorReporting(*params.ErrorReporting)
	}

	if err := env.Config.Save(); err != nil {
		log.Error().Err(err).Msg("error saving settings")
		return nil, errors.New("error saving settings")
	}
	return settingsResponse(env.Config), nil
}

// HandleSettingsReload re-reads the config file and rebuilds the rule
// set from it.
func HandleSettingsReload(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	if env.ReloadConfig == nil {
		return nil, errors.New("reload not supported")
	}
	if err := env.ReloadConfig(); err != nil {
		return nil, err
	}
	return settingsResponse(env.Config), nil
}
