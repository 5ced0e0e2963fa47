// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package notify

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for substitutions.
const (
	OutcomeReplaced = "replaced"
	OutcomeRemoved  = "removed"
)

// Metrics counts notifications in Prometheus collectors.
type Metrics struct {
	substitutions *prometheus.CounterVec
	rejections    *prometheus.CounterVec
}

// NewMetrics creates a metrics sink and registers its collectors with reg.
// Panics if registration fails (following prometheus convention).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		substitutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evcompress_substitutions_total",
				Help: "Total number of event fire call sites replaced",
			},
			[]string{"outcome"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evcompress_rejected_handlers_total",
				Help: "Total number of handlers that could not be resolved to a direct call",
			},
			[]string{"reason"},
		),
	}
	reg.MustRegister(m.substitutions, m.rejections)
	return m
}

// Substituted counts a replacement; an empty replacement counts as removed.
func (m *Metrics) Substituted(_, replacement string) {
	outcome := OutcomeReplaced
	if replacement == "" {
		outcome = OutcomeRemoved
	}
	m.substitutions.WithLabelValues(outcome).Inc()
}

// Rejected counts a rejected handler by reason.
func (m *Metrics) Rejected(_, _, reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}
