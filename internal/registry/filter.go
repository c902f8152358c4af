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

// Package registry holds the two runtime capability registries the RDS
// parser consults while resolving extensions: the HTTP filter registry
// and the cluster-specifier-plugin registry.
package registry

import (
	"sync"

	"github.com/projectcontour/routediscovery/internal/xds"
)

// FilterConfig is the opaque value a FilterProvider produces. The
// parser core treats it as a value that round-trips unmodified into
// the output tree.
type FilterConfig interface{}

// FilterProvider parses a per-filter override for one HTTP filter,
// identified by the type URL it was registered under.
type FilterProvider interface {
	// ParseOverride parses cfg, the already envelope-unwrapped typed
	// extension config (see xds.Unwrap), into a FilterConfig.
	ParseOverride(cfg *xds.TypedConfig) (FilterConfig, error)
}

// FilterRegistry maps a filter's type URL to the provider responsible
// for parsing its per-route/per-vhost/per-weighted-cluster override.
type FilterRegistry struct {
	mu        sync.RWMutex
	providers map[string]FilterProvider
}

// NewFilterRegistry returns an empty registry ready for Register calls.
func NewFilterRegistry() *FilterRegistry {
	return &FilterRegistry{providers: map[string]FilterProvider{}}
}

// Register installs provider under typeURL, replacing any existing
// registration. Intended to be called at process init time, mirroring
// the way Contour's dag.Processor implementations are wired together
// once at startup rather than re-resolved per parse.
func (r *FilterRegistry) Register(typeURL string, provider FilterProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[typeURL] = provider
}

// Lookup returns the provider registered for typeURL, if any.
func (r *FilterRegistry) Lookup(typeURL string) (FilterProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[typeURL]
	return p, ok
}
