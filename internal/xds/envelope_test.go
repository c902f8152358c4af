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
	"testing"

	udpatypepb "github.com/cncf/xds/go/udpa/type/v1"
	xdstypepb "github.com/cncf/xds/go/xds/type/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestUnwrapNilErrors(t *testing.T) {
	_, err := Unwrap(nil)
	assert.Error(t, err)
}

func TestUnwrapPassthrough(t *testing.T) {
	inner, err := anypb.New(wrapperspb.Bool(true))
	require.NoError(t, err)
	inner.TypeUrl = "type.googleapis.com/envoy.extensions.filters.http.router.v3.Router"

	cfg, err := Unwrap(inner)
	require.NoError(t, err)
	assert.Equal(t, inner.GetTypeUrl(), cfg.TypeURL)
	assert.Same(t, inner, cfg.Any)
	assert.Nil(t, cfg.Struct)
}

func TestUnwrapLegacyTypedStruct(t *testing.T) {
	payload, err := structpb.NewStruct(map[string]any{"key": "value"})
	require.NoError(t, err)

	ts := &udpatypepb.TypedStruct{TypeUrl: "type.googleapis.com/my.custom.Config", Value: payload}
	raw, err := proto.Marshal(ts)
	require.NoError(t, err)

	a := &anypb.Any{TypeUrl: TypedStructTypeURLLegacy, Value: raw}

	cfg, err := Unwrap(a)
	require.NoError(t, err)
	assert.Equal(t, "type.googleapis.com/my.custom.Config", cfg.TypeURL)
	require.NotNil(t, cfg.Struct)
	assert.Equal(t, "value", cfg.Struct.Fields["key"].GetStringValue())
	assert.Nil(t, cfg.Any)
}

func TestUnwrapV3TypedStruct(t *testing.T) {
	payload, err := structpb.NewStruct(map[string]any{"key": "value"})
	require.NoError(t, err)

	ts := &xdstypepb.TypedStruct{TypeUrl: "type.googleapis.com/my.custom.Config", Value: payload}
	raw, err := proto.Marshal(ts)
	require.NoError(t, err)

	a := &anypb.Any{TypeUrl: TypedStructTypeURLV3, Value: raw}

	cfg, err := Unwrap(a)
	require.NoError(t, err)
	assert.Equal(t, "type.googleapis.com/my.custom.Config", cfg.TypeURL)
	require.NotNil(t, cfg.Struct)
}

func TestUnwrapMalformedLegacyTypedStructErrors(t *testing.T) {
	// A length-delimited field declaring more bytes than are actually
	// present, guaranteed to fail proto unmarshaling.
	a := &anypb.Any{TypeUrl: TypedStructTypeURLLegacy, Value: []byte{0x0A, 0x10, 0x01, 0x02}}

	_, err := Unwrap(a)
	assert.Error(t, err)
}
