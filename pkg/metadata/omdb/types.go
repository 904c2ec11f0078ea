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

package omdb

// Movie is an OMDb title. Search results only carry the first five
// fields.
type Movie struct {
	IMDbID     string `json:"imdbID" yaml:"imdbId"`
	Title      string `json:"Title" yaml:"title"`
	Year       string `json:"Year" yaml:"year"`
	Type       string `json:"Type" yaml:"type"`
	Poster     string `json:"Poster" yaml:"poster"`
	Rated      string `json:"Rated,omitempty" yaml:"rated,omitempty"`
	Released   string `json:"Released,omitempty" yaml:"released,omitempty"`
	Runtime    string `json:"Runtime,omitempty" yaml:"runtime,omitempty"`
	Genre      string `json:"Genre,omitempty" yaml:"genre,omitempty"`
	Director   string `json:"Director,omitempty" yaml:"director,omitempty"`
	Actors     string `json:"Actors,omitempty" yaml:"actors,omitempty"`
	Plot       string `json:"Plot,omitempty" yaml:"plot,omitempty"`
	Language   string `json:"Language,omitempty" yaml:"language,omitempty"`
	Country    string `json:"Country,omitempty" yaml:"country,omitempty"`
	IMDbRating string `json:"imdbRating,omitempty" yaml:"imdbRating,omitempty"`
}

// Link returns the IMDb page of the title.
func (m *Movie) Link() string {
	return IMDbLink(m.IMDbID)
}

type apiStatus struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type searchResponse struct {
	Search       []Movie `json:"Search"`
	TotalResults string  `json:"totalResults"`
}
