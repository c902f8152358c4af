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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := new(dto.Metric)
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func TestRecorderResourceOutcomes(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.ResourceAccepted()
	r.ResourceAccepted()
	r.ResourceRejected()

	assert.Equal(t, float64(2), counterValue(t, r.resourceTotal.WithLabelValues("accepted")))
	assert.Equal(t, float64(1), counterValue(t, r.resourceTotal.WithLabelValues("rejected")))
}

func TestRecorderRouteSkipped(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.RouteSkipped("query-parameters-present")
	r.RouteSkipped("query-parameters-present")
	r.RouteSkipped("cluster-header-specifier")

	assert.Equal(t, float64(2), counterValue(t, r.routeSkipped.WithLabelValues("query-parameters-present")))
	assert.Equal(t, float64(1), counterValue(t, r.routeSkipped.WithLabelValues("cluster-header-specifier")))
}

func TestRecorderNilReceiverIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ResourceAccepted()
		r.ResourceRejected()
		r.RouteSkipped("reason")
	})
}
