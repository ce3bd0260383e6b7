// Package metrics records op invocations, created credentials and rotations
// in Prometheus form. A CLI run has no scrape endpoint, so the registry is
// written to a node_exporter textfile when the run ends.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics owns a private registry so repeated construction in tests never
// collides with prometheus.DefaultRegisterer.
type Metrics struct {
	registry *prometheus.Registry

	opCommandsTotal    *prometheus.CounterVec
	opCommandDuration  *prometheus.HistogramVec
	credentialsCreated *prometheus.CounterVec
	rotationsTotal     *prometheus.CounterVec
	lastRotation       *prometheus.GaugeVec
}

// New registers every metric on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		opCommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opcred_op_commands_total",
				Help: "Total number of 1Password CLI invocations",
			},
			[]string{"command", "status"},
		),
		opCommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "opcred_op_command_duration_seconds",
				Help:    "Duration of 1Password CLI invocations in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"command"},
		),
		credentialsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opcred_credentials_created_total",
				Help: "Total number of credentials created",
			},
			[]string{"provider", "status"},
		),
		rotationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opcred_rotations_total",
				Help: "Total number of credential rotations",
			},
			[]string{"provider", "status"},
		),
		lastRotation: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "opcred_last_rotation_timestamp_seconds",
				Help: "Unix time of the last successful rotation",
			},
			[]string{"provider"},
		),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordCommand records one op invocation. command is the op subcommand,
// e.g. "item get".
func (m *Metrics) RecordCommand(command string, success bool, durationSeconds float64) {
	if m == nil {
		return
	}
	m.opCommandsTotal.WithLabelValues(command, status(success)).Inc()
	m.opCommandDuration.WithLabelValues(command).Observe(durationSeconds)
}

// RecordCreate records a create attempt.
func (m *Metrics) RecordCreate(provider string, success bool) {
	if m == nil {
		return
	}
	m.credentialsCreated.WithLabelValues(provider, status(success)).Inc()
}

// RecordRotation records a rotation attempt. unixTime is stored on success.
func (m *Metrics) RecordRotation(provider string, success bool, unixTime float64) {
	if m == nil {
		return
	}
	m.rotationsTotal.WithLabelValues(provider, status(success)).Inc()
	if success {
		m.lastRotation.WithLabelValues(provider).Set(unixTime)
	}
}

// WriteTextfile writes every metric to path in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

func status(success bool) string {
	if success {
		return StatusSuccess
	}
	return StatusFailure
}
