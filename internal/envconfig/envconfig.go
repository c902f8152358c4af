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

// Package envconfig reads the two process-wide feature flags the RDS
// parser is sensitive to. It is consulted exactly once, at process
// start, and the result is plumbed through as an injected capability
// (route.Args) rather than read live from the environment inside the
// parser itself -- tests need to override these per call.
package envconfig

import (
	"os"
	"strconv"
)

const (
	// RouteLookupEnv gates whether cluster_specifier_plugins are
	// pre-collected and whether CLUSTER_SPECIFIER_PLUGIN actions are
	// resolved at all.
	RouteLookupEnv = "GRPC_EXPERIMENTAL_XDS_RLS_LB"

	// AuthorityRewriteEnv gates whether a trusted server's
	// auto_host_rewrite can take effect.
	AuthorityRewriteEnv = "GRPC_EXPERIMENTAL_XDS_AUTHORITY_REWRITE"
)

// Flags holds the feature-flag values the parser reads at well-defined
// points.
type Flags struct {
	// EnableRouteLookup gates cluster-specifier-plugin support.
	// Default true.
	EnableRouteLookup bool

	// EnableAuthorityRewrite gates the authority-rewrite output flag.
	// Default false.
	EnableAuthorityRewrite bool
}

// FromEnvironment reads the two flags from the process environment,
// applying the documented defaults when unset or unparsable.
func FromEnvironment() Flags {
	return Flags{
		EnableRouteLookup:      boolEnv(RouteLookupEnv, true),
		EnableAuthorityRewrite: boolEnv(AuthorityRewriteEnv, false),
	}
}

func boolEnv(name string, def bool) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}

	return b
}
