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
	"testing"

	envoy_route_v3 "github.com/envoyproxy/go-control-plane/envoy/config/route/v3"
	"github.com/projectcontour/routediscovery/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Route order is preserved, and a route that is silently skipped leaves
// no gap in the resulting slice.
func TestParseVirtualHostPreservesOrderAndDropsSkips(t *testing.T) {
	vh := &envoy_route_v3.VirtualHost{
		Name:    "v",
		Domains: []string{"example.com"},
		Routes: []*envoy_route_v3.Route{
			{
				Match:  &envoy_route_v3.RouteMatch{PathSpecifier: &envoy_route_v3.RouteMatch_Prefix{Prefix: "/first"}},
				Action: &envoy_route_v3.Route_Route{Route: &envoy_route_v3.RouteAction{ClusterSpecifier: &envoy_route_v3.RouteAction_Cluster{Cluster: "c1"}}},
			},
			{
				Match: &envoy_route_v3.RouteMatch{
					PathSpecifier:   &envoy_route_v3.RouteMatch_Prefix{Prefix: "/dropped"},
					QueryParameters: []*envoy_route_v3.QueryParameterMatcher{{Name: "q"}},
				},
				Action: &envoy_route_v3.Route_Route{Route: &envoy_route_v3.RouteAction{ClusterSpecifier: &envoy_route_v3.RouteAction_Cluster{Cluster: "c2"}}},
			},
			{
				Match:  &envoy_route_v3.RouteMatch{PathSpecifier: &envoy_route_v3.RouteMatch_Prefix{Prefix: "/third"}},
				Action: &envoy_route_v3.Route_Route{Route: &envoy_route_v3.RouteAction{ClusterSpecifier: &envoy_route_v3.RouteAction_Cluster{Cluster: "c3"}}},
			},
		},
	}

	result, err := parseVirtualHost(vh, testArgs(), registry.NewFilterRegistry(), nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Routes, 2)
	assert.Equal(t, "c1", result.Routes[0].Action.ClusterName)
	assert.Equal(t, "c3", result.Routes[1].Action.ClusterName)
	assert.Equal(t, []string{"example.com"}, result.Domains)
}

func TestParseVirtualHostPropagatesHardError(t *testing.T) {
	vh := &envoy_route_v3.VirtualHost{
		Name: "v",
		Routes: []*envoy_route_v3.Route{{
			Match: &envoy_route_v3.RouteMatch{PathSpecifier: &envoy_route_v3.RouteMatch_Prefix{Prefix: "/"}},
			Action: &envoy_route_v3.Route_Route{Route: &envoy_route_v3.RouteAction{
				ClusterSpecifier: &envoy_route_v3.RouteAction_WeightedClusters{
					WeightedClusters: &envoy_route_v3.WeightedCluster{},
				},
			}},
		}},
	}

	_, err := parseVirtualHost(vh, testArgs(), registry.NewFilterRegistry(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `virtual host "v"`)
}
