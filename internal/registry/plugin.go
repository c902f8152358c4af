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

package registry

import (
	"sync"

	"github.com/projectcontour/routediscovery/internal/xds"
)

// PluginConfig is the opaque, plugin-specific value a
// ClusterSpecifierPluginProvider produces.
type PluginConfig interface{}

// ClusterSpecifierPluginProvider parses one cluster-specifier plugin's
// configuration, identified by the type URL it was registered under.
type ClusterSpecifierPluginProvider interface {
	ParsePlugin(cfg *xds.TypedConfig) (PluginConfig, error)
}

// ClusterSpecifierPluginRegistry maps a plugin's type URL to the
// provider responsible for parsing its configuration. Shape mirrors
// FilterRegistry; it is a distinct type because the two registries
// carry distinct optionality policy at the call site even though the
// envelope-unwrap step is identical.
type ClusterSpecifierPluginRegistry struct {
	mu        sync.RWMutex
	providers map[string]ClusterSpecifierPluginProvider
}

// NewClusterSpecifierPluginRegistry returns an empty registry.
func NewClusterSpecifierPluginRegistry() *ClusterSpecifierPluginRegistry {
	return &ClusterSpecifierPluginRegistry{providers: map[string]ClusterSpecifierPluginProvider{}}
}

// Register installs provider under typeURL, replacing any existing
// registration.
func (r *ClusterSpecifierPluginRegistry) Register(typeURL string, provider ClusterSpecifierPluginProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[typeURL] = provider
}

// Lookup returns the provider registered for typeURL, if any.
func (r *ClusterSpecifierPluginRegistry) Lookup(typeURL string) (ClusterSpecifierPluginProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[typeURL]
	return p, ok
}
