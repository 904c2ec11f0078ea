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

// Package omdb looks up films and shows on the Open Movie Database so a
// parsed title can be linked to its IMDb page.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZaparooProject/reelparse/pkg/shared/httpclient"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL           = "https://www.omdbapi.com/"
	DefaultRequestsPerMinute = 60
	defaultTimeout           = 15 * time.Second
	maxResponseSize          = 1 << 20
)

var (
	ErrNoAPIKey   = errors.New("omdb api key is not set")
	ErrNotFound   = errors.New("no matching title found")
	ErrEmptyTitle = errors.New("title is required")
)

// Client talks to the OMDb API. Identical concurrent requests share one
// round trip and all requests are paced by a rate limiter.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	group   singleflight.Group
	apiKey  string
	baseURL string
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRequestsPerMinute sets the request rate. Values below 1 disable
// pacing.
func WithRequestsPerMinute(n int) Option {
	return func(c *Client) {
		if n < 1 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(n)/60.0), 1)
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		http:    httpclient.NewClient(defaultTimeout),
	}
	WithRequestsPerMinute(DefaultRequestsPerMinute)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasAPIKey reports whether lookups can be made.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// Lookup fetches the single best title OMDb has for title and the
// optional year.
func (c *Client) Lookup(ctx context.Context, title, year string) (*Movie, error) {
	q, err := c.query(title, year)
	if err != nil {
		return nil, err
	}
	q.Set("t", strings.TrimSpace(title))

	var m Movie
	if err := c.get(ctx, q, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Search lists the titles OMDb has matching title and the optional year.
func (c *Client) Search(ctx context.Context, title, year string) ([]Movie, error) {
	q, err := c.query(title, year)
	if err != nil {
		return nil, err
	}
	q.Set("s", strings.TrimSpace(title))

	var out searchResponse
	if err := c.get(ctx, q, &out); err != nil {
		return nil, err
	}
	return out.Search, nil
}

func (c *Client) query(title, year string) (url.Values, error) {
	if !c.HasAPIKey() {
		return nil, ErrNoAPIKey
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	if y := strings.TrimSpace(year); y != "" {
		q.Set("y", y)
	}
	return q, nil
}

// get performs the request described by q and decodes it into dst. The
// raw body is shared between identical in-flight requests.
func (c *Client) get(ctx context.Context, q url.Values, dst any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid omdb base url: %w", err)
	}
	u.RawQuery = q.Encode()
	key := u.String()

	v, err, shared := c.group.Do(key, func() (any, error) {
		return c.fetch(ctx, key)
	})
	if err != nil {
		return err
	}
	if shared {
		log.Debug().Str("query", q.Get("t")+q.Get("s")).Msg("omdb request shared")
	}
	body, _ := v.([]byte)

	var status apiStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return fmt.Errorf("failed to decode omdb response: %w", err)
	}
	if !strings.EqualFold(status.Response, "True") {
		if status.Error != "" && !strings.Contains(strings.ToLower(status.Error), "not found") {
			return fmt.Errorf("omdb error: %s", status.Error)
		}
		return ErrNotFound
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to decode omdb response: %w", err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("omdb rate limit wait: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create omdb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("omdb request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close omdb response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read omdb response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("omdb rejected the api key: %w", ErrNoAPIKey)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("omdb returned status %d", resp.StatusCode)
	}
	return body, nil
}

// Find looks title up directly and falls back to the closest search
// result when OMDb has no exact title.
func (c *Client) Find(ctx context.Context, title, year string) (*Movie, error) {
	m, err := c.Lookup(ctx, title, year)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return m, err
	}
	candidates, err := c.Search(ctx, title, year)
	if err != nil {
		return nil, err
	}
	best, ok := BestMatch(title, year, candidates)
	if !ok {
		return nil, ErrNotFound
	}
	return &best, nil
}

// IMDbLink returns the IMDb page of an IMDb id.
func IMDbLink(id string) string {
	return "https://www.imdb.com/title/" + url.PathEscape(strings.TrimSpace(id)) + "/"
}
