// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stackcheck_run_duration_seconds",
			Help:    "Time taken to run every configured item",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)

	itemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stackcheck_items_total",
			Help: "Total number of item pipelines by outcome",
		},
		[]string{"outcome"}, // matched, mismatched, failed
	)

	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stackcheck_stage_duration_seconds",
			Help:    "Time taken by individual pipeline stages",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"stage"}, // gather, inspect, format, log
	)

	gatherErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stackcheck_gather_errors_total",
			Help: "Gather results carrying an error, by gatherer type",
		},
		[]string{"type"},
	)

	inspectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stackcheck_inspections_total",
			Help: "Evaluated expectations by result",
		},
		[]string{"result"}, // match, mismatch, error, absent
	)

	logFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stackcheck_log_failures_total",
			Help: "Messages a logger failed to emit, by logger type",
		},
		[]string{"type"},
	)
)

// WriteMetrics writes every registered metric to path in the Prometheus text
// format, suitable for the node exporter textfile collector.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
