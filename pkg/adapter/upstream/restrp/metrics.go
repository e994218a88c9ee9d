// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package restrp

import (
	"errors"
	"strconv"
	"time"

	"github.com/momeni/repair-gateway/pkg/core/cerr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rgweb",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Upstream REST requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rgweb",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Upstream REST request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// observe records one request. The outcome is "ok", the upstream HTTP
// status code, "timeout", or "error" for other transport failures.
func (m *metrics) observe(endpoint string, start time.Time, err error) {
	m.latency.WithLabelValues(endpoint).Observe(
		time.Since(start).Seconds(),
	)
	m.requests.WithLabelValues(endpoint, outcome(err)).Inc()
}

func outcome(err error) string {
	var ue *cerr.UpstreamError
	switch {
	case err == nil:
		return "ok"
	case !errors.As(err, &ue):
		return "error"
	case ue.Status != 0:
		return strconv.Itoa(ue.Status)
	case ue.Timeout():
		return "timeout"
	default:
		return "error"
	}
}
