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

// Command rdsvalidate reads a RouteConfiguration resource and reports
// whether this core would accept or reject it, exercising the whole
// parser the way the external resource-type dispatch harness would.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	envoy_route_v3 "github.com/envoyproxy/go-control-plane/envoy/config/route/v3"
	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/projectcontour/routediscovery/internal/envconfig"
	"github.com/projectcontour/routediscovery/internal/metrics"
	"github.com/projectcontour/routediscovery/internal/registry"
	"github.com/projectcontour/routediscovery/internal/route"
	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/encoding/protojson"
	"gopkg.in/yaml.v3"
)

func main() {
	app := kingpin.New("rdsvalidate", "Validate an Envoy RouteConfiguration against the RDS resource parser.")
	app.HelpFlag.Short('h')

	input := app.Arg("file", "Path to a RouteConfiguration resource (YAML or JSON). Reads stdin if omitted.").String()
	trusted := app.Flag("trusted-xds-server", "Treat the serving xDS server as trusted.").Bool()
	verbose := app.Flag("verbose", "Enable debug logging.").Bool()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	log := logrus.StandardLogger()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(*input, *trusted, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, trusted bool, log *logrus.Logger) error {
	raw, err := readInput(path)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	jsonBytes, err := yamlToJSON(raw)
	if err != nil {
		return fmt.Errorf("normalizing input: %w", err)
	}

	rc := new(envoy_route_v3.RouteConfiguration)
	if err := protojson.Unmarshal(jsonBytes, rc); err != nil {
		return fmt.Errorf("unmarshaling RouteConfiguration: %w", err)
	}

	args := route.Args{
		ServerInfo: route.ServerInfo{Trusted: trusted},
		Flags:      envconfig.FromEnvironment(),
	}

	registries := route.Registries{
		Filters:           registry.NewFilterRegistry(),
		ClusterSpecifiers: registry.NewClusterSpecifierPluginRegistry(),
	}

	recorder := metrics.NewRecorder(prometheus.NewRegistry())

	update, err := route.Parse(rc, args, registries, log.WithField("resource", route.ExtractName(rc)), recorder)
	if err != nil {
		return fmt.Errorf("rejected RouteConfiguration %q: %w", route.ExtractName(rc), err)
	}

	out, err := json.MarshalIndent(update, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	fmt.Println(string(out))

	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// yamlToJSON normalizes a YAML or JSON RouteConfiguration document to
// JSON bytes protojson can unmarshal. JSON is valid YAML, so this also
// handles plain-JSON input unchanged.
func yamlToJSON(in []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(in, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
