// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors updated by a Client.  A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	attempts *prometheus.CounterVec
	retries  *prometheus.CounterVec
	backoff  prometheus.Histogram
}

// NewMetrics creates and registers the collectors with reg.  If reg is nil,
// prometheus.DefaultRegisterer is used.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lambdasecret_attempts_total",
				Help: "Total number of attempts to fetch a secret, by outcome",
			},
			[]string{"outcome"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lambdasecret_retries_total",
				Help: "Total number of retries, by the reason the previous attempt failed",
			},
			[]string{"reason"},
		),
		backoff: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lambdasecret_backoff_seconds",
				Help:    "Backoff waits between attempts in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.retries, m.backoff} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observeAttempt(a Attempt) {
	if m != nil {
		m.attempts.WithLabelValues(a.Outcome.String()).Inc()
	}
}

func (m *Metrics) observeRetry(r Reason, wait time.Duration) {
	if m != nil {
		m.retries.WithLabelValues(string(r)).Inc()
		m.backoff.Observe(wait.Seconds())
	}
}
