// Copyright Project Contour Authors
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

// Package metrics exposes the Prometheus counters the RDS parser
// increments: one per resource-parse outcome, one per route skipped.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder wraps the two counters a parse run reports against.
type Recorder struct {
	resourceTotal *prometheus.CounterVec
	routeSkipped  *prometheus.CounterVec
}

// NewRecorder constructs a Recorder and registers its metrics with
// registerer. Pass prometheus.DefaultRegisterer in production, a fresh
// prometheus.NewRegistry() in tests.
func NewRecorder(registerer prometheus.Registerer) *Recorder {
	r := &Recorder{
		resourceTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rds_resource_total",
			Help: "Number of RouteConfiguration resources parsed, by result.",
		}, []string{"result"}),
		routeSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rds_route_skipped_total",
			Help: "Number of routes silently skipped during parsing, by reason.",
		}, []string{"reason"}),
	}

	registerer.MustRegister(r.resourceTotal, r.routeSkipped)

	return r
}

// ResourceAccepted records a RouteConfiguration that parsed cleanly.
func (r *Recorder) ResourceAccepted() {
	if r == nil {
		return
	}
	r.resourceTotal.WithLabelValues("accepted").Inc()
}

// ResourceRejected records a RouteConfiguration that failed to parse.
func (r *Recorder) ResourceRejected() {
	if r == nil {
		return
	}
	r.resourceTotal.WithLabelValues("rejected").Inc()
}

// RouteSkipped records one silently-dropped route or action, labeled
// by the reason it was dropped.
func (r *Recorder) RouteSkipped(reason string) {
	if r == nil {
		return
	}
	r.routeSkipped.WithLabelValues(reason).Inc()
}
