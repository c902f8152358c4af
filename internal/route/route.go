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

// parseRoute builds a Route from a single Route proto. A nil, nil
// return means the route is skipped and must be absent from the
// enclosing virtual host.
func parseRoute(r *envoy_route_v3.Route, args Args, filters *registry.FilterRegistry, plugins PluginConfigMap, optionalPlugins OptionalPluginSet) (*Route, error) {
	match, err := parseMatch(r.GetMatch(), args)
	if err != nil {
		if IsSkip(err) {
			return nil, nil
		}
		return nil, err
	}

	overrides, err := parseFilterOverrides(r.GetTypedPerFilterConfig(), filters)
	if err != nil {
		return nil, err
	}

	switch r.GetAction().(type) {
	case *envoy_route_v3.Route_Route:
		action, err := parseRouteAction(r.GetRoute(), args, filters, plugins, optionalPlugins)
		if err != nil {
			if IsSkip(err) {
				return nil, nil
			}
			return nil, err
		}

		return &Route{
			Kind:            RouteKindForwarding,
			Match:           *match,
			Action:          *action,
			FilterOverrides: overrides,
		}, nil

	case *envoy_route_v3.Route_NonForwardingAction:
		return &Route{
			Kind:            RouteKindNonForwarding,
			Match:           *match,
			FilterOverrides: overrides,
		}, nil

	default:
		return nil, errors.New("unknown action type")
	}
}
