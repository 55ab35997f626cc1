// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package metrics counts the work of a run and exports it in the Prometheus
// text format for the node_exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Round-trip result label values.
const (
	ResultValid  = "valid"
	ResultFailed = "failed"
)

// Metrics holds the collectors of one run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// EntriesChecked counts checked catalog entries by validation mode.
	EntriesChecked *prometheus.CounterVec
	// FlawedEntries counts entries with diagnostics by mode and file.
	FlawedEntries *prometheus.CounterVec
	// InputErrors counts catalog files that could not be loaded.
	InputErrors *prometheus.CounterVec
	// Translations counts round-trip lookups by result.
	Translations *prometheus.CounterVec
	// RunDuration measures whole commands.
	RunDuration *prometheus.HistogramVec
	// LastRun is the Unix time the last run finished, by command.
	LastRun *prometheus.GaugeVec
}

// New returns Metrics registered on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		EntriesChecked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocheck_entries_checked_total",
				Help: "Total number of catalog entries checked",
			},
			[]string{"mode"},
		),
		FlawedEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocheck_flawed_entries_total",
				Help: "Total number of catalog entries with at least one diagnostic",
			},
			[]string{"mode", "file"},
		),
		InputErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocheck_input_errors_total",
				Help: "Total number of catalog files that could not be loaded",
			},
			[]string{"mode"},
		),
		Translations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocheck_roundtrip_translations_total",
				Help: "Total number of round-trip lookups by result",
			},
			[]string{"result"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pocheck_run_duration_seconds",
				Help:    "Duration of pocheck commands in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		LastRun: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pocheck_last_run_timestamp_seconds",
				Help: "Unix time the last pocheck command finished",
			},
			[]string{"command"},
		),
	}

	m.registry.MustRegister(
		m.EntriesChecked,
		m.FlawedEntries,
		m.InputErrors,
		m.Translations,
		m.RunDuration,
		m.LastRun,
	)

	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFile records the outcome of checking one file.
func (m *Metrics) ObserveFile(mode, file string, entries, flawed int) {
	m.EntriesChecked.WithLabelValues(mode).Add(float64(entries))
	m.FlawedEntries.WithLabelValues(mode, file).Add(float64(flawed))
}

// ObserveInputError records a file that could not be loaded.
func (m *Metrics) ObserveInputError(mode string) {
	m.InputErrors.WithLabelValues(mode).Inc()
}

// ObserveRoundTrip records round-trip results.
func (m *Metrics) ObserveRoundTrip(valid, failed int) {
	m.Translations.WithLabelValues(ResultValid).Add(float64(valid))
	m.Translations.WithLabelValues(ResultFailed).Add(float64(failed))
}

// ObserveRun records the duration of a command finishing at end.
func (m *Metrics) ObserveRun(command string, start, end time.Time) {
	m.RunDuration.WithLabelValues(command).Observe(end.Sub(start).Seconds())
	m.LastRun.WithLabelValues(command).Set(float64(end.Unix()))
}

// WriteTextfile atomically writes all metrics to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
