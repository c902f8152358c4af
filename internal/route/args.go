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

import "github.com/projectcontour/routediscovery/internal/envconfig"

// ServerInfo describes the xDS control-plane connection this resource
// arrived on.
type ServerInfo struct {
	// Trusted reports whether the serving xDS server is trusted,
	// gating privileged semantics such as authority rewrite.
	Trusted bool
}

// Args bundles the capabilities the parser consults outside the
// RouteConfiguration message itself: the server-info bit and the two
// process-wide feature flags, injected rather than read live from the
// environment so tests can override them per call.
type Args struct {
	ServerInfo ServerInfo
	Flags      envconfig.Flags

	// Observer, if set, is notified of every silently-tolerated skip.
	// It exists purely for the ambient logging/metrics layer; the
	// parsing decisions themselves never depend on it.
	Observer SkipObserver
}

// SkipObserver is notified each time a well-formed-but-unactionable
// route or action is dropped, so the ambient logging/metrics layer can
// make those silent drops observable without turning them into
// errors.
type SkipObserver interface {
	OnSkip(reason string)
}

// noopObserver discards every notification; it is the default when
// Args.Observer is left unset.
type noopObserver struct{}

func (noopObserver) OnSkip(string) {}

func (a Args) observer() SkipObserver {
	if a.Observer == nil {
		return noopObserver{}
	}
	return a.Observer
}
