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
	xdsconfig "github.com/projectcontour/routediscovery/internal/xds"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
)

// parseFilterOverrides resolves a single (vhost, route, or
// weighted-cluster) scope's typed_per_filter_config map into the named
// filter configs that scope overrides.
func parseFilterOverrides(raw map[string]*anypb.Any, filters *registry.FilterRegistry) (map[string]registry.FilterConfig, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	out := make(map[string]registry.FilterConfig, len(raw))

	for name, a := range raw {
		cfg, skip, err := resolveFilterOverride(a, filters)
		if err != nil {
			return nil, errors.Wrapf(err, "HttpFilter %q", name)
		}
		if skip {
			continue
		}
		out[name] = cfg
	}

	return out, nil
}

// resolveFilterOverride unwraps a single typed_per_filter_config entry:
// the optional FilterConfig wrapper, then any TypedStruct envelope,
// then dispatches to the registered provider for the final type URL.
func resolveFilterOverride(a *anypb.Any, filters *registry.FilterRegistry) (registry.FilterConfig, bool, error) {
	isOptional := false
	inner := a

	// Step 1: unwrap the FilterConfig optional-wrapper, if present.
	if a.GetTypeUrl() == xdsconfig.FilterConfigTypeURL {
		wrapper := new(envoy_route_v3.FilterConfig)
		if err := proto.Unmarshal(a.GetValue(), wrapper); err != nil {
			return nil, false, errors.Wrap(err, "failed to unpack FilterConfig wrapper")
		}

		isOptional = wrapper.GetIsOptional()
		if wrapper.GetDisabled() {
			return nil, true, nil
		}
		inner = wrapper.GetConfig()
		if inner == nil {
			return nil, false, errors.New("FilterConfig wrapper carries no inner config")
		}
	}

	// Step 2: unwrap a TypedStruct envelope, if present.
	cfg, err := xdsconfig.Unwrap(inner)
	if err != nil {
		return nil, false, err
	}

	// Step 3: consult the filter registry by the final type URL.
	provider, ok := filters.Lookup(cfg.TypeURL)
	if !ok {
		if isOptional {
			return nil, true, nil
		}
		return nil, false, errors.Errorf("is required but unsupported (%s)", cfg.TypeURL)
	}

	// Step 4: delegate to the provider.
	parsed, err := provider.ParseOverride(cfg)
	if err != nil {
		return nil, false, err
	}

	return parsed, false, nil
}
