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
	envoy_type_v3 "github.com/envoyproxy/go-control-plane/envoy/type/v3"
	"github.com/pkg/errors"
	"github.com/projectcontour/routediscovery/internal/matcher"
)

// parseMatch builds a RouteMatch from a RouteMatch proto. A nil result
// with an error for which IsSkip reports true means "skip": the route
// can never match and must be dropped silently.
func parseMatch(m *envoy_route_v3.RouteMatch, args Args) (*RouteMatch, error) {
	if len(m.GetQueryParameters()) > 0 {
		args.observer().OnSkip("query-parameters-present")
		return nil, errSkip
	}

	path, err := parsePathMatcher(m)
	if err != nil {
		return nil, err
	}

	var fraction *FractionMatcher
	if rf := m.GetRuntimeFraction(); rf != nil {
		fraction, err = parseFractionMatcher(rf.GetDefaultValue())
		if err != nil {
			return nil, err
		}
	}

	headers := make([]HeaderMatcher, 0, len(m.GetHeaders()))
	for _, hm := range m.GetHeaders() {
		h, err := matcher.BuildHeader(hm)
		if err != nil {
			return nil, errors.Wrapf(err, "header matcher %q", hm.GetName())
		}
		headers = append(headers, h)
	}

	return &RouteMatch{Path: *path, Headers: headers, Fraction: fraction}, nil
}

func parsePathMatcher(m *envoy_route_v3.RouteMatch) (*PathMatcher, error) {
	switch p := m.GetPathSpecifier().(type) {
	case *envoy_route_v3.RouteMatch_Prefix:
		return &PathMatcher{
			Kind:          PathKindPrefix,
			Literal:       p.Prefix,
			CaseSensitive: caseSensitive(m),
		}, nil

	case *envoy_route_v3.RouteMatch_Path:
		return &PathMatcher{
			Kind:          PathKindExact,
			Literal:       p.Path,
			CaseSensitive: caseSensitive(m),
		}, nil

	case *envoy_route_v3.RouteMatch_SafeRegex:
		pattern, err := regexp.Compile(p.SafeRegex.GetRegex())
		if err != nil {
			return nil, errors.Errorf("Malformed safe regex pattern: %v", err)
		}
		return &PathMatcher{Kind: PathKindRegex, Pattern: pattern}, nil

	default:
		return nil, errors.New("Unknown path match type")
	}
}

// caseSensitive defaults to true when the field is absent.
func caseSensitive(m *envoy_route_v3.RouteMatch) bool {
	if cs := m.GetCaseSensitive(); cs != nil {
		return cs.GetValue()
	}
	return true
}

func parseFractionMatcher(fp *envoy_type_v3.FractionalPercent) (*FractionMatcher, error) {
	if fp == nil {
		return nil, nil
	}

	var denom uint32
	switch fp.GetDenominator() {
	case envoy_type_v3.FractionalPercent_HUNDRED:
		denom = DenominatorHundred
	case envoy_type_v3.FractionalPercent_TEN_THOUSAND:
		denom = DenominatorTenThousand
	case envoy_type_v3.FractionalPercent_MILLION:
		denom = DenominatorMillion
	default:
		return nil, errors.Errorf("unsupported fractional percent denominator: %v", fp.GetDenominator())
	}

	return &FractionMatcher{Numerator: fp.GetNumerator(), Denominator: denom}, nil
}
