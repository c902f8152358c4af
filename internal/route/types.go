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

// Package route implements the Route Discovery Service resource
// parser: it turns an envoy.config.route.v3.RouteConfiguration message
// into an immutable, normalized RouteTableUpdate.
package route

import (
	"regexp"

	"github.com/projectcontour/routediscovery/internal/registry"
	"google.golang.org/grpc/codes"
)

// RouteTableUpdate is the parsed, immutable result of a single RDS
// resource. Equality is structural.
type RouteTableUpdate struct {
	VirtualHosts []VirtualHost
}

// VirtualHost groups routes selected by authority/domain match.
type VirtualHost struct {
	Name            string
	Domains         []string
	Routes          []Route
	FilterOverrides map[string]registry.FilterConfig
}

// RouteKind distinguishes the two non-skipped Route shapes.
type RouteKind int

const (
	// RouteKindForwarding routes are dispatched through a RouteAction.
	RouteKindForwarding RouteKind = iota
	// RouteKindNonForwarding routes carry only a match and overrides.
	RouteKindNonForwarding
)

// Route is a single (match, action) pair. Kind discriminates which
// fields besides Match/FilterOverrides are meaningful: Action is only
// populated for RouteKindForwarding.
type Route struct {
	Kind            RouteKind
	Match           RouteMatch
	Action          RouteAction
	FilterOverrides map[string]registry.FilterConfig
}

// RouteMatch is the predicate a request must satisfy for Route to
// apply.
type RouteMatch struct {
	Path     PathMatcher
	Headers  []HeaderMatcher
	Fraction *FractionMatcher
}

// PathKind discriminates the PathMatcher variants.
type PathKind int

const (
	PathKindPrefix PathKind = iota
	PathKindExact
	PathKindRegex
)

// PathMatcher is a tagged variant: exactly one of Literal/Pattern is
// meaningful, selected by Kind.
type PathMatcher struct {
	Kind          PathKind
	Literal       string
	CaseSensitive bool
	Pattern       *regexp.Regexp
}

// HeaderMatcher is an opaque value produced by the external matcher
// builder (internal/matcher); the core only propagates it.
type HeaderMatcher interface{}

// FractionMatcher is a sampled fraction expressed as numerator over
// one of three fixed denominators.
type FractionMatcher struct {
	Numerator   uint32
	Denominator uint32
}

// Supported FractionMatcher.Denominator values.
const (
	DenominatorHundred     uint32 = 100
	DenominatorTenThousand uint32 = 10_000
	DenominatorMillion     uint32 = 1_000_000
)

// ActionKind discriminates the RouteAction variants.
type ActionKind int

const (
	ActionKindCluster ActionKind = iota
	ActionKindWeightedClusters
	ActionKindClusterSpecifierPlugin
)

// RouteAction is the forwarding decision a matched request resolves
// to, plus the fields common to all three specifier variants.
type RouteAction struct {
	Kind ActionKind

	// Populated when Kind == ActionKindCluster.
	ClusterName string

	// Populated when Kind == ActionKindWeightedClusters. SumOfWeights
	// is in (0, 2^32-1].
	WeightedClusters []ClusterWeight
	SumOfWeights     uint64

	// Populated when Kind == ActionKindClusterSpecifierPlugin.
	Plugin NamedPluginConfig

	HashPolicies    []HashPolicy
	TimeoutNanos    *int64
	RetryPolicy     *RetryPolicy
	AutoHostRewrite bool
}

// ClusterWeight is one entry of a weighted-cluster action.
type ClusterWeight struct {
	Name            string
	Weight          uint64
	FilterOverrides map[string]registry.FilterConfig
}

// HashPolicyKind discriminates the HashPolicy variants.
type HashPolicyKind int

const (
	HashPolicyKindHeader HashPolicyKind = iota
	HashPolicyKindChannelID
)

// HashPolicy is one consistent-hash load-balancing input.
type HashPolicy struct {
	Kind     HashPolicyKind
	Terminal bool

	// Populated when Kind == HashPolicyKindHeader.
	HeaderName   string
	Regex        *regexp.Regexp
	Substitution *string
}

// RetryPolicy is a route action's retry configuration. Status codes
// are drawn from a fixed, recognized subset and use
// google.golang.org/grpc/codes.Code values to match the retry-on
// vocabulary a gRPC client actually checks responses against.
type RetryPolicy struct {
	MaxAttempts           int
	RetryableStatusCodes  []codes.Code
	InitialBackoff        int64 // nanoseconds
	MaxBackoff            int64 // nanoseconds
	PerAttemptRecvTimeout *int64
}

// NamedPluginConfig names a cluster-specifier plugin and carries its
// already-parsed, plugin-specific configuration.
type NamedPluginConfig struct {
	Name   string
	Config registry.PluginConfig
}

// PluginConfigMap is populated once per RouteConfiguration from its
// cluster_specifier_plugins list. Names are unique by construction.
type PluginConfigMap map[string]NamedPluginConfig

// OptionalPluginSet is the set of plugin names that parsed cleanly but
// whose type was unrecognized and were declared optional.
type OptionalPluginSet map[string]struct{}
