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

package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDefinitionCapture(t *testing.T) {
	t.Parallel()

	r, err := FromDefinition(Definition{
		ID:       "criterion",
		Pattern:  `[\.\s]+(Criterion)[\.\s]+`,
		Field:    FieldVersion,
		Examples: []string{"Movie.1960.Criterion.1080p"},
	})
	require.NoError(t, err)

	assert.Equal(t, "criterion", r.Name, "name defaults to id")
	assert.Equal(t, CategoryVersion, r.Category, "category defaults to the field's")
	_, f, ok := r.Apply("Movie.1960.Criterion.1080p")
	require.True(t, ok)
	assert.Equal(t, "Criterion", f.String(FieldVersion))
}

func TestFromDefinitionFixedValue(t *testing.T) {
	t.Parallel()

	r, err := FromDefinition(Definition{
		ID:       "crunchyroll",
		Name:     "Crunchyroll",
		Category: "source",
		Pattern:  `[\.\s]+CR[\.\s]+`,
		Field:    FieldStreamingPlatform,
		Value:    "Crunchyroll",
	})
	require.NoError(t, err)

	_, f, ok := r.Apply("Show.S01E01.CR.WEB-DL")
	require.True(t, ok)
	assert.Equal(t, "Crunchyroll", f.String(FieldStreamingPlatform))
}

func TestFromDefinitionWholeMatchWithoutGroups(t *testing.T) {
	t.Parallel()

	r, err := FromDefinition(Definition{ID: "dub", Pattern: `DUBBED`, Field: FieldTags})
	require.NoError(t, err)

	_, f, ok := r.Apply("Movie.DUBBED.720p")
	require.True(t, ok)
	assert.Equal(t, []string{"DUBBED"}, f.Tags)
}

func TestFromDefinitionInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		def  Definition
	}{
		{name: "missing id", def: Definition{Pattern: `x`, Field: FieldTags}},
		{name: "bad id", def: Definition{ID: "Has Space", Pattern: `x`, Field: FieldTags}},
		{name: "missing pattern", def: Definition{ID: "x", Field: FieldTags}},
		{name: "bad pattern", def: Definition{ID: "x", Pattern: `(unclosed`, Field: FieldTags}},
		{name: "unknown field", def: Definition{ID: "x", Pattern: `x`, Field: "colour"}},
		{name: "composite field", def: Definition{ID: "x", Pattern: `x`, Field: FieldSceneInfo}},
		{name: "unknown category", def: Definition{ID: "x", Pattern: `x`, Field: FieldTags, Category: "misc"}},
		{name: "group out of range", def: Definition{ID: "x", Pattern: `x`, Field: FieldTags, Group: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromDefinition(tt.def)
			require.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}
}

func TestFromDefinitions(t *testing.T) {
	t.Parallel()

	rs, err := FromDefinitions([]Definition{
		{ID: "a", Pattern: `a`, Field: FieldTags},
		{ID: "b", Pattern: `b`, Field: FieldTags},
	})
	require.NoError(t, err)
	assert.Len(t, rs, 2)

	_, err = FromDefinitions([]Definition{
		{ID: "a", Pattern: `a`, Field: FieldTags},
		{ID: "b", Pattern: `(`, Field: FieldTags},
	})
	require.ErrorIs(t, err, ErrInvalidDefinition)
}
