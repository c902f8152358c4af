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

package route

import (
	envoy_route_v3 "github.com/envoyproxy/go-control-plane/envoy/config/route/v3"
	"github.com/pkg/errors"
	"github.com/projectcontour/routediscovery/internal/registry"
)

// parseClusterWeight builds a ClusterWeight from a single
// WeightedCluster_ClusterWeight entry.
func parseClusterWeight(cw *envoy_route_v3.WeightedCluster_ClusterWeight, filters *registry.FilterRegistry) (*ClusterWeight, error) {
	overrides, err := parseFilterOverrides(cw.GetTypedPerFilterConfig(), filters)
	if err != nil {
		return nil, errors.Wrapf(err, "weight %q", cw.GetName())
	}

	return &ClusterWeight{
		Name:            cw.GetName(),
		Weight:          uint64(cw.GetWeight().GetValue()),
		FilterOverrides: overrides,
	}, nil
}
