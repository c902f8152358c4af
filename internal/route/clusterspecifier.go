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
	envoy_config_route_v3 "github.com/envoyproxy/go-control-plane/envoy/config/route/v3"
	"github.com/pkg/errors"
	"github.com/projectcontour/routediscovery/internal/registry"
	xdsconfig "github.com/projectcontour/routediscovery/internal/xds"
)

// buildPluginConfigMap walks a RouteConfiguration's
// cluster_specifier_plugins list and resolves each one, rejecting the
// whole resource on a duplicate name. Only called when
// enableRouteLookup is true.
func buildPluginConfigMap(plugins []*envoy_config_route_v3.ClusterSpecifierPlugin, registry_ *registry.ClusterSpecifierPluginRegistry) (PluginConfigMap, OptionalPluginSet, error) {
	configs := PluginConfigMap{}
	optional := OptionalPluginSet{}
	seen := map[string]struct{}{}

	for _, p := range plugins {
		name := p.GetExtension().GetName()
		if _, ok := seen[name]; ok {
			return nil, nil, errors.Errorf("Multiple ClusterSpecifierPlugins with the same name: %s", name)
		}
		seen[name] = struct{}{}

		cfg, skip, err := resolveClusterSpecifierPlugin(p, registry_)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "ClusterSpecifierPlugin %q", name)
		}
		if skip {
			optional[name] = struct{}{}
			continue
		}

		configs[name] = NamedPluginConfig{Name: name, Config: cfg}
	}

	return configs, optional, nil
}

// resolveClusterSpecifierPlugin unwraps a single plugin's typed_config
// the same way resolveFilterOverride does, minus the FilterConfig
// wrapper step that has no cluster-specifier-plugin counterpart.
func resolveClusterSpecifierPlugin(p *envoy_config_route_v3.ClusterSpecifierPlugin, registry_ *registry.ClusterSpecifierPluginRegistry) (registry.PluginConfig, bool, error) {
	typedConfig := p.GetExtension().GetTypedConfig()
	if typedConfig == nil {
		return nil, false, errors.New("cluster specifier plugin has no typed_config")
	}

	cfg, err := xdsconfig.Unwrap(typedConfig)
	if err != nil {
		return nil, false, err
	}

	provider, ok := registry_.Lookup(cfg.TypeURL)
	if !ok {
		if p.GetIsOptional() {
			return nil, true, nil
		}
		return nil, false, errors.Errorf("unsupported cluster specifier plugin type %s", cfg.TypeURL)
	}

	parsed, err := provider.ParsePlugin(cfg)
	if err != nil {
		return nil, false, err
	}

	return parsed, false, nil
}
