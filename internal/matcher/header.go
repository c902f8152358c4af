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

// Package matcher builds ready-to-execute header matchers: it turns an
// envoy.config.route.v3.HeaderMatcher into a ready-to-execute value,
// surfacing any compilation failure as a plain string.
package matcher

import (
	"fmt"
	"regexp"

	envoy_route_v3 "github.com/envoyproxy/go-control-plane/envoy/config/route/v3"
	matcher_v3 "github.com/envoyproxy/go-control-plane/envoy/type/matcher/v3"
)

// HeaderKind discriminates the Header variants this builder supports.
type HeaderKind int

const (
	HeaderExact HeaderKind = iota
	HeaderPrefix
	HeaderSuffix
	HeaderContains
	HeaderRegex
	HeaderRange
	HeaderPresent
)

// Header is the compiled, ready-to-execute representation of one
// envoy.config.route.v3.HeaderMatcher. It is the concrete value
// route.HeaderMatcher carries around as an opaque interface{}.
type Header struct {
	Name    string
	Invert  bool
	Kind    HeaderKind
	Literal string
	Pattern *regexp.Regexp
	RangeLo int64
	RangeHi int64
}

// BuildHeader compiles hm into a Header, or returns a plain-string
// error describing why it could not.
func BuildHeader(hm *envoy_route_v3.HeaderMatcher) (*Header, error) {
	if hm == nil {
		return nil, fmt.Errorf("nil header matcher")
	}

	h := &Header{Name: hm.GetName(), Invert: hm.GetInvertMatch()}

	switch m := hm.GetHeaderMatchSpecifier().(type) {
	case *envoy_route_v3.HeaderMatcher_ExactMatch: //nolint:staticcheck // exact_match is deprecated but still emitted by some control planes
		h.Kind = HeaderExact
		h.Literal = m.ExactMatch
	case *envoy_route_v3.HeaderMatcher_StringMatch:
		return buildStringMatch(h, m.StringMatch)
	case *envoy_route_v3.HeaderMatcher_PrefixMatch: //nolint:staticcheck
		h.Kind = HeaderPrefix
		h.Literal = m.PrefixMatch
	case *envoy_route_v3.HeaderMatcher_SuffixMatch: //nolint:staticcheck
		h.Kind = HeaderSuffix
		h.Literal = m.SuffixMatch
	case *envoy_route_v3.HeaderMatcher_ContainsMatch: //nolint:staticcheck
		h.Kind = HeaderContains
		h.Literal = m.ContainsMatch
	case *envoy_route_v3.HeaderMatcher_SafeRegexMatch: //nolint:staticcheck
		pattern, err := regexp.Compile(m.SafeRegexMatch.GetRegex())
		if err != nil {
			return nil, fmt.Errorf("malformed safe regex pattern for header %q: %v", h.Name, err)
		}
		h.Kind = HeaderRegex
		h.Pattern = pattern
	case *envoy_route_v3.HeaderMatcher_RangeMatch:
		h.Kind = HeaderRange
		h.RangeLo = m.RangeMatch.GetStart()
		h.RangeHi = m.RangeMatch.GetEnd()
	case *envoy_route_v3.HeaderMatcher_PresentMatch:
		h.Kind = HeaderPresent
	default:
		return nil, fmt.Errorf("unsupported header match specifier for header %q", h.Name)
	}

	return h, nil
}

func buildStringMatch(h *Header, sm *matcher_v3.StringMatcher) (*Header, error) {
	switch {
	case sm.GetExact() != "":
		h.Kind = HeaderExact
		h.Literal = sm.GetExact()
	case sm.GetPrefix() != "":
		h.Kind = HeaderPrefix
		h.Literal = sm.GetPrefix()
	case sm.GetSuffix() != "":
		h.Kind = HeaderSuffix
		h.Literal = sm.GetSuffix()
	case sm.GetContains() != "":
		h.Kind = HeaderContains
		h.Literal = sm.GetContains()
	case sm.GetSafeRegex() != nil && sm.GetSafeRegex().GetRegex() != "":
		pattern, err := regexp.Compile(sm.GetSafeRegex().GetRegex())
		if err != nil {
			return nil, fmt.Errorf("malformed safe regex pattern for header %q: %v", h.Name, err)
		}
		h.Kind = HeaderRegex
		h.Pattern = pattern
	default:
		return nil, fmt.Errorf("empty string match for header %q", h.Name)
	}

	return h, nil
}
