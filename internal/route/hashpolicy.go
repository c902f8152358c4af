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
	"regexp"

	envoy_route_v3 "github.com/envoyproxy/go-control-plane/envoy/config/route/v3"
	matcher_v3 "github.com/envoyproxy/go-control-plane/envoy/type/matcher/v3"
)

// channelIDFilterStateKey is the one FILTER_STATE key this parser
// recognizes.
const channelIDFilterStateKey = "io.grpc.channel_id"

// parseHashPolicies builds the HashPolicy list for a route action.
// Entries of unsupported kinds are silently dropped; no gap is left in
// the returned slice.
func parseHashPolicies(policies []*envoy_route_v3.RouteAction_HashPolicy) []HashPolicy {
	out := make([]HashPolicy, 0, len(policies))

	for _, p := range policies {
		switch spec := p.GetPolicySpecifier().(type) {
		case *envoy_route_v3.RouteAction_HashPolicy_Header_:
			out = append(out, HashPolicy{
				Kind:       HashPolicyKindHeader,
				Terminal:   p.GetTerminal(),
				HeaderName: spec.Header.GetHeaderName(),
				Regex:      compileRegexRewrite(spec.Header.GetRegexRewrite()),
				Substitution: substitutionOf(spec.Header.GetRegexRewrite()),
			})

		case *envoy_route_v3.RouteAction_HashPolicy_FilterState_:
			if spec.FilterState.GetKey() != channelIDFilterStateKey {
				continue
			}
			out = append(out, HashPolicy{
				Kind:     HashPolicyKindChannelID,
				Terminal: p.GetTerminal(),
			})

		default:
			// Cookie, ConnectionProperties, QueryParameter, and any
			// future kind: silently dropped.
		}
	}

	return out
}

func compileRegexRewrite(rr *matcher_v3.RegexMatchAndSubstitute) *regexp.Regexp {
	if rr == nil || rr.GetPattern().GetRegex() == "" {
		return nil
	}
	pattern, err := regexp.Compile(rr.GetPattern().GetRegex())
	if err != nil {
		return nil
	}
	return pattern
}

func substitutionOf(rr *matcher_v3.RegexMatchAndSubstitute) *string {
	if rr == nil {
		return nil
	}
	s := rr.GetSubstitution()
	return &s
}
