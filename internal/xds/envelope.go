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

package xds

import (
	udpatypepb "github.com/cncf/xds/go/udpa/type/v1"
	xdstypepb "github.com/cncf/xds/go/xds/type/v3"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// TypedConfig is the result of unwrapping a typed extension config down
// to its real type URL. Exactly one of Any or Struct is set: Any when
// the source carried a concrete message, Struct when it arrived
// wrapped in a TypedStruct envelope and only the raw struct payload
// survives (the caller's registry provider is responsible for
// interpreting it).
type TypedConfig struct {
	TypeURL string
	Any     *anypb.Any
	Struct  *structpb.Struct
}

// Unwrap inspects a's type URL and, if it is one of the two TypedStruct
// envelope URLs, unmarshals the envelope and returns the inner type URL
// and raw struct payload it carries. Any other type URL is returned
// unchanged. Shared by the filter-config resolver and the
// cluster-specifier-plugin resolver.
func Unwrap(a *anypb.Any) (*TypedConfig, error) {
	if a == nil {
		return nil, errors.New("nil typed extension config")
	}

	switch a.GetTypeUrl() {
	case TypedStructTypeURLLegacy:
		ts := new(udpatypepb.TypedStruct)
		if err := proto.Unmarshal(a.GetValue(), ts); err != nil {
			return nil, errors.Wrap(err, "error unmarshaling udpa.type.v1.TypedStruct")
		}
		return &TypedConfig{TypeURL: ts.GetTypeUrl(), Struct: ts.GetValue()}, nil

	case TypedStructTypeURLV3:
		ts := new(xdstypepb.TypedStruct)
		if err := proto.Unmarshal(a.GetValue(), ts); err != nil {
			return nil, errors.Wrap(err, "error unmarshaling xds.type.v3.TypedStruct")
		}
		return &TypedConfig{TypeURL: ts.GetTypeUrl(), Struct: ts.GetValue()}, nil

	default:
		return &TypedConfig{TypeURL: a.GetTypeUrl(), Any: a}, nil
	}
}
