// Copyright (C) 2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validators

import (
	"github.com/prometheus/client_golang/prometheus"
)

type StoreMetrics struct {
	lookups       prometheus.Counter
	builds        prometheus.Counter
	buildFailures prometheus.Counter
	validators    prometheus.Gauge
}

func newStoreMetrics(registerer prometheus.Registerer) (*StoreMetrics, error) {
	m := StoreMetrics{
		lookups: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "registry_lookups",
				Help: "Number of epoch registry lookups",
			},
		),
		builds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "registry_builds",
				Help: "Number of epoch registries built",
			},
		),
		buildFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "registry_build_failures",
				Help: "Number of epoch registries that failed to build",
			},
		),
		validators: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "registry_validators",
				Help: "Number of validators in the most recently built registry",
			},
		),
	}
	for _, c := range []prometheus.Collector{m.lookups, m.builds, m.buildFailures, m.validators} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return &m, nil
}
