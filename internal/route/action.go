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

// maxWeightSum is 2^32-1, the upper bound on a weighted-cluster sum.
const maxWeightSum uint64 = 1<<32 - 1

// parseRouteAction builds a RouteAction from a RouteAction proto. A
// nil result with an error for which IsSkip reports true means the
// action is skipped (the route it belongs to is dropped).
func parseRouteAction(ra *envoy_route_v3.RouteAction, args Args, filters *registry.FilterRegistry, plugins PluginConfigMap, optionalPlugins OptionalPluginSet) (*RouteAction, error) {
	action := &RouteAction{
		TimeoutNanos:    parseTimeout(ra),
		HashPolicies:    parseHashPolicies(ra.GetHashPolicy()),
		AutoHostRewrite: args.Flags.EnableAuthorityRewrite && args.ServerInfo.Trusted && ra.GetAutoHostRewrite().GetValue(),
	}

	retryPolicy, err := parseRetryPolicy(ra.GetRetryPolicy())
	if err != nil {
		return nil, err
	}
	action.RetryPolicy = retryPolicy

	switch spec := ra.GetClusterSpecifier().(type) {
	case *envoy_route_v3.RouteAction_Cluster:
		action.Kind = ActionKindCluster
		action.ClusterName = spec.Cluster

	case *envoy_route_v3.RouteAction_ClusterHeader:
		// Not supported; the route is dropped.
		args.observer().OnSkip("cluster-header-specifier")
		return nil, errSkip

	case *envoy_route_v3.RouteAction_WeightedClusters:
		entries := spec.WeightedClusters.GetClusters()
		if len(entries) == 0 {
			return nil, errors.New("weighted cluster list is empty")
		}

		weights := make([]ClusterWeight, 0, len(entries))
		var sum uint64
		for _, e := range entries {
			w, err := parseClusterWeight(e, filters)
			if err != nil {
				return nil, err
			}
			weights = append(weights, *w)
			sum += w.Weight
		}

		if sum <= 0 {
			return nil, errors.New("Sum of cluster weights should be above 0")
		}
		if sum > maxWeightSum {
			return nil, errors.Errorf("Sum of cluster weights %d exceeds the maximum allowed value of %d", sum, maxWeightSum)
		}

		action.Kind = ActionKindWeightedClusters
		action.WeightedClusters = weights
		action.SumOfWeights = sum

	case *envoy_route_v3.RouteAction_ClusterSpecifierPlugin:
		if !args.Flags.EnableRouteLookup {
			args.observer().OnSkip("cluster-specifier-plugin-disabled")
			return nil, errSkip
		}

		name := spec.ClusterSpecifierPlugin
		cfg, ok := plugins[name]
		if !ok {
			if _, optional := optionalPlugins[name]; optional {
				args.observer().OnSkip("optional-cluster-specifier-plugin-absent")
				return nil, errSkip
			}
			return nil, errors.Errorf("ClusterSpecifierPlugin for [%s] not found", name)
		}

		action.Kind = ActionKindClusterSpecifierPlugin
		action.Plugin = cfg

	default:
		// Unset or unknown cluster specifier: skip.
		args.observer().OnSkip("unset-or-unknown-cluster-specifier")
		return nil, errSkip
	}

	return action, nil
}

// parseTimeout derives a route action's effective timeout from its
// max_stream_duration settings.
func parseTimeout(ra *envoy_route_v3.RouteAction) *int64 {
	msd := ra.GetMaxStreamDuration()
	if msd == nil {
		return nil
	}

	if hdr := msd.GetGrpcTimeoutHeaderMax(); hdr != nil {
		nanos := hdr.AsDuration().Nanoseconds()
		return &nanos
	}

	if d := msd.GetMaxStreamDuration(); d != nil {
		nanos := d.AsDuration().Nanoseconds()
		return &nanos
	}

	return nil
}
