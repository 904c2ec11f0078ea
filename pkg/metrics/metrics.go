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

// Package metrics exposes parser and API counters in the Prometheus
// format. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/ZaparooProject/reelparse/pkg/parser"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "reelparse"

// Parse sources.
const (
	SourceAPI  = "api"
	SourceREST = "rest"
)

type Metrics struct {
	registry      *prometheus.Registry
	parses        *prometheus.CounterVec
	ruleMatches   *prometheus.CounterVec
	unrecognized  prometheus.Counter
	parseDuration prometheus.Histogram
	apiRequests   *prometheus.CounterVec
	rulesLoaded   prometheus.Gauge
}

// New creates the collectors on a fresh registry, along with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		parses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "parses_total",
			Help:      "File names parsed, by request source.",
		}, []string{"source"}),
		ruleMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "rule_matches_total",
			Help:      "Times each rule or title heuristic matched.",
		}, []string{"rule"}),
		unrecognized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "unrecognized_total",
			Help:      "Parses that left unrecognized text.",
		}),
		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "parse_duration_seconds",
			Help:      "Time spent parsing one file name.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05, 0.1},
		}),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "JSON-RPC requests handled, by method and outcome.",
		}, []string{"method", "outcome"}),
		rulesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "rules_loaded",
			Help:      "Rules in the active rule set.",
		}),
	}

	m.registry.MustRegister(
		m.parses,
		m.ruleMatches,
		m.unrecognized,
		m.parseDuration,
		m.apiRequests,
		m.rulesLoaded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry is the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveParse records one finished parse.
func (m *Metrics) ObserveParse(source string, res *parser.Result, took time.Duration) {
	if m == nil || res == nil {
		return
	}
	m.parses.WithLabelValues(source).Inc()
	m.parseDuration.Observe(took.Seconds())
	for _, id := range res.MatchedRules {
		m.ruleMatches.WithLabelValues(id).Inc()
	}
	if res.Unrecognized != "" {
		m.unrecognized.Inc()
	}
}

// Parse parses name with engine and records it.
func (m *Metrics) Parse(source string, engine *parser.Engine, name string) *parser.Result {
	start := time.Now()
	res := engine.Parse(name)
	m.ObserveParse(source, res, time.Since(start))
	return res
}

// ObserveRequest records a handled JSON-RPC request.
func (m *Metrics) ObserveRequest(method string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.apiRequests.WithLabelValues(method, outcome).Inc()
}

// SetRulesLoaded records the size of the active rule set.
func (m *Metrics) SetRulesLoaded(n int) {
	if m == nil {
		return
	}
	m.rulesLoaded.Set(float64(n))
}
