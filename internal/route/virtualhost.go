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

// parseVirtualHost builds a VirtualHost from a VirtualHost proto.
func parseVirtualHost(vh *envoy_route_v3.VirtualHost, args Args, filters *registry.FilterRegistry, plugins PluginConfigMap, optionalPlugins OptionalPluginSet) (*VirtualHost, error) {
	routes := make([]Route, 0, len(vh.GetRoutes()))

	for _, r := range vh.GetRoutes() {
		parsed, err := parseRoute(r, args, filters, plugins, optionalPlugins)
		if err != nil {
			return nil, errors.Wrapf(err, "virtual host %q", vh.GetName())
		}
		if parsed == nil {
			continue
		}
		routes = append(routes, *parsed)
	}

	overrides, err := parseFilterOverrides(vh.GetTypedPerFilterConfig(), filters)
	if err != nil {
		return nil, errors.Wrapf(err, "virtual host %q", vh.GetName())
	}

	return &VirtualHost{
		Name:            vh.GetName(),
		Domains:         vh.GetDomains(),
		Routes:          routes,
		FilterOverrides: overrides,
	}, nil
}
