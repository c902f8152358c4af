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
	"testing"

	envoy_route_v3 "github.com/envoyproxy/go-control-plane/envoy/config/route/v3"
	"github.com/projectcontour/routediscovery/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestParseClusterWeight(t *testing.T) {
	cw := &envoy_route_v3.WeightedCluster_ClusterWeight{
		Name:   "backend-a",
		Weight: wrapperspb.UInt32(50),
	}

	result, err := parseClusterWeight(cw, registry.NewFilterRegistry())
	require.NoError(t, err)
	assert.Equal(t, "backend-a", result.Name)
	assert.Equal(t, uint64(50), result.Weight)
}
