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

// Package xds holds the well-known type URLs the RDS parser recognizes
// on its own, independent of either runtime registry.
package xds

const (
	// RouteConfigurationTypeURL is the type URL of the top-level resource
	// this core parses.
	RouteConfigurationTypeURL = "type.googleapis.com/envoy.config.route.v3.RouteConfiguration"

	// FilterConfigTypeURL is the optional-wrapper type that carries an
	// inner Any plus an is_optional bit for per-filter overrides.
	FilterConfigTypeURL = "type.googleapis.com/envoy.config.route.v3.FilterConfig"

	// TypedStructTypeURLLegacy and TypedStructTypeURLV3 are the two
	// structural envelopes whose inner type_url replaces the outer one.
	TypedStructTypeURLLegacy = "type.googleapis.com/udpa.type.v1.TypedStruct"
	TypedStructTypeURLV3     = "type.googleapis.com/xds.type.v3.TypedStruct"
)
