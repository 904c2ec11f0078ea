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

package extensions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "plain", input: "mkv", want: "Matroska Video", wantOK: true},
		{name: "leading dot", input: ".mp4", want: "MPEG-4 Part 14", wantOK: true},
		{name: "upper case", input: ".M2TS", want: "MPEG-2 Transport Stream", wantOK: true},
		{name: "subtitle", input: "srt", want: "SubRip Subtitle", wantOK: true},
		{name: "unknown", input: "exe"},
		{name: "empty", input: ""},
		{name: "only dot", input: "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestAllAndByCategory(t *testing.T) {
	t.Parallel()

	all := All()
	require.Len(t, all, 18)
	assert.Equal(t, "mkv", all[0].Extension)
	assert.Equal(t, "sub", all[len(all)-1].Extension)

	video := ByCategory(CategoryVideo)
	subs := ByCategory(CategorySubtitle)
	assert.Len(t, video, 14)
	assert.Len(t, subs, 4)
	assert.Empty(t, ByCategory("audio"))
}

func TestLookupReturnsCopy(t *testing.T) {
	t.Parallel()

	info, ok := Lookup("mkv")
	require.True(t, ok)
	info.Pros[0] = "changed"

	again, _ := Lookup("mkv")
	assert.NotEqual(t, "changed", again.Pros[0])
}

func TestContainerExplanation(t *testing.T) {
	t.Parallel()

	assert.Contains(t, ContainerExplanation("mkv"), "Matroska")
	assert.Contains(t, ContainerExplanation(".M2TS"), "Blu-ray")
	assert.Equal(t, "webm container", ContainerExplanation("webm"))
}

// TestPropertyLookupNeverPanics verifies arbitrary input is safe and that
// lookups are case-insensitive.
func TestPropertyLookupNeverPanics(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		ext := rapid.String().Draw(t, "ext")
		info, ok := Lookup(ext)
		if ok && info.Extension != Normalize(ext) {
			t.Fatalf("lookup of %q returned %q", ext, info.Extension)
		}
	})
}
