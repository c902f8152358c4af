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
	"time"

	envoy_route_v3 "github.com/envoyproxy/go-control-plane/envoy/config/route/v3"
	"github.com/pkg/errors"
	"github.com/projectcontour/routediscovery/internal/metrics"
	"github.com/projectcontour/routediscovery/internal/registry"
	xdsconfig "github.com/projectcontour/routediscovery/internal/xds"
	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/proto"
)

// skipRecorder bridges the silent route/action skip points to the
// ambient logging/metrics layer.
type skipRecorder struct {
	log logrus.FieldLogger
	rec *metrics.Recorder
}

func (s *skipRecorder) OnSkip(reason string) {
	s.rec.RouteSkipped(reason)
	if s.log != nil {
		s.log.WithField("reason", reason).Debug("skipping well-formed but unactionable route")
	}
}

// Registries bundles the two runtime capability registries the
// resource driver consults.
type Registries struct {
	Filters           *registry.FilterRegistry
	ClusterSpecifiers *registry.ClusterSpecifierPluginRegistry
}

// ExtractName returns a RouteConfiguration's resource name, for use by
// the external resource-type dispatch harness.
func ExtractName(rc *envoy_route_v3.RouteConfiguration) string {
	return rc.GetName()
}

// Parse is the single entry point into this package: it either returns
// a fully built RouteTableUpdate or a single wrapped error describing
// the first unrecoverable fault -- there is no partial result on error.
func Parse(msg proto.Message, args Args, registries Registries, log logrus.FieldLogger, rec *metrics.Recorder) (*RouteTableUpdate, error) {
	start := time.Now()

	if args.Observer == nil {
		args.Observer = &skipRecorder{log: log, rec: rec}
	}

	update, err := parse(msg, args, registries, log)
	if err != nil {
		rec.ResourceRejected()
		if log != nil {
			log.WithError(err).Warn("rejecting RouteConfiguration")
		}
		return nil, err
	}

	rec.ResourceAccepted()
	if log != nil {
		log.WithField("virtual-hosts", len(update.VirtualHosts)).
			WithField("elapsed", time.Since(start)).
			Debug("accepted RouteConfiguration")
	}

	return update, nil
}

func parse(msg proto.Message, args Args, registries Registries, log logrus.FieldLogger) (*RouteTableUpdate, error) {
	rc, ok := msg.(*envoy_route_v3.RouteConfiguration)
	if !ok {
		return nil, errors.Errorf("unexpected resource type %T, want %s", msg, xdsconfig.RouteConfigurationTypeURL)
	}

	var (
		plugins         PluginConfigMap
		optionalPlugins OptionalPluginSet
	)

	if args.Flags.EnableRouteLookup {
		var err error
		plugins, optionalPlugins, err = buildPluginConfigMap(rc.GetClusterSpecifierPlugins(), registries.ClusterSpecifiers)
		if err != nil {
			return nil, err
		}
	}

	vhosts := make([]VirtualHost, 0, len(rc.GetVirtualHosts()))
	for _, vh := range rc.GetVirtualHosts() {
		parsed, err := parseVirtualHost(vh, args, registries.Filters, plugins, optionalPlugins)
		if err != nil {
			return nil, err
		}
		vhosts = append(vhosts, *parsed)

		if log != nil {
			log.WithField("virtual-host", parsed.Name).
				WithField("routes", len(parsed.Routes)).
				Debug("parsed virtual host")
		}
	}

	return &RouteTableUpdate{VirtualHosts: vhosts}, nil
}
