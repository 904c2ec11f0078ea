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
	"fmt"

	"github.com/ZaparooProject/reelparse/pkg/api/models"
	"github.com/ZaparooProject/reelparse/pkg/api/models/requests"
	"github.com/ZaparooProject/reelparse/pkg/api/validation"
	"github.com/ZaparooProject/reelparse/pkg/extensions"
	"github.com/ZaparooProject/reelparse/pkg/rules"
)

func HandleRules(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	var params models.RulesParams
	if err := validation.UnmarshalOptional(env.Params, &params); err != nil {
		return nil, err
	}

	set := env.Engine().Rules()
	if params.Category == "" {
		return models.RulesResponse{Rules: set.Infos()}, nil
	}

	cat, err := rules.ParseCategory(params.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid category: %w", err)
	}
	matching := set.ByCategory(cat)
	resp := models.RulesResponse{Rules: make([]rules.Info, 0, len(matching))}
	for i := range matching {
		resp.Rules = append(resp.Rules, matching[i].Info())
	}
	return resp, nil
}

func HandleRuleGet(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	var params models.RuleGetParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}
	r, ok := env.Engine().Rules().Get(params.ID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, params.ID)
	}
	return r.Info(), nil
}

func HandleCategories(_ requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	return models.CategoriesResponse{Categories: rules.Categories()}, nil
}

func HandleExtensions(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	var params models.ExtensionsParams
	if err := validation.UnmarshalOptional(env.Params, &params); err != nil {
		return nil, err
	}
	if params.Category == "" {
		return models.ExtensionsResponse{Extensions: extensions.All()}, nil
	}
	return models.ExtensionsResponse{Extensions: extensions.ByCategory(params.Category)}, nil
}

func HandleExtensionGet(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	var params models.ExtensionGetParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}
	info, ok := extensions.Lookup(params.Extension)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrExtensionNotFound, params.Extension)
	}
	return info, nil
}
