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
	"time"

	envoy_route_v3 "github.com/envoyproxy/go-control-plane/envoy/config/route/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestParseRetryPolicyNil(t *testing.T) {
	result, err := parseRetryPolicy(nil)
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestParseRetryPolicyDefaults(t *testing.T) {
	rp := &envoy_route_v3.RetryPolicy{RetryOn: "cancelled,unavailable"}

	result, err := parseRetryPolicy(rp)
	require.NoError(t, err)
	assert.Equal(t, 2, result.MaxAttempts)
	assert.Equal(t, defaultInitialBackoff.Nanoseconds(), result.InitialBackoff)
	assert.Equal(t, defaultMaxBackoff.Nanoseconds(), result.MaxBackoff)
	assert.Equal(t, []codes.Code{codes.Canceled, codes.Unavailable}, result.RetryableStatusCodes)
}

func TestParseRetryPolicyNumRetries(t *testing.T) {
	rp := &envoy_route_v3.RetryPolicy{NumRetries: wrapperspb.UInt32(4)}

	result, err := parseRetryPolicy(rp)
	require.NoError(t, err)
	assert.Equal(t, 5, result.MaxAttempts)
}

// A base_interval under one millisecond is clamped up to one
// millisecond, and with max_interval absent the max backoff is ten
// times the clamped value.
func TestParseRetryPolicySubMillisecondBaseClamped(t *testing.T) {
	rp := &envoy_route_v3.RetryPolicy{
		RetryBackOff: &envoy_route_v3.RetryPolicy_RetryBackOff{
			BaseInterval: durationpb.New(500 * time.Microsecond),
		},
	}

	result, err := parseRetryPolicy(rp)
	require.NoError(t, err)
	assert.Equal(t, minBackoff.Nanoseconds(), result.InitialBackoff)
	assert.Equal(t, (minBackoff * 10).Nanoseconds(), result.MaxBackoff)
}

func TestParseRetryPolicyMaxLessThanOriginalBaseErrors(t *testing.T) {
	rp := &envoy_route_v3.RetryPolicy{
		RetryBackOff: &envoy_route_v3.RetryPolicy_RetryBackOff{
			BaseInterval: durationpb.New(500 * time.Microsecond),
			MaxInterval:  durationpb.New(200 * time.Microsecond),
		},
	}

	_, err := parseRetryPolicy(rp)
	assert.Error(t, err)
}

func TestParseRetryPolicyMaxAtOrAboveOriginalBaseSucceeds(t *testing.T) {
	rp := &envoy_route_v3.RetryPolicy{
		RetryBackOff: &envoy_route_v3.RetryPolicy_RetryBackOff{
			BaseInterval: durationpb.New(500 * time.Microsecond),
			MaxInterval:  durationpb.New(500 * time.Microsecond),
		},
	}

	result, err := parseRetryPolicy(rp)
	require.NoError(t, err)
	assert.Equal(t, minBackoff.Nanoseconds(), result.InitialBackoff)
	assert.Equal(t, minBackoff.Nanoseconds(), result.MaxBackoff)
}

func TestParseRetryPolicyZeroBaseErrors(t *testing.T) {
	rp := &envoy_route_v3.RetryPolicy{
		RetryBackOff: &envoy_route_v3.RetryPolicy_RetryBackOff{
			BaseInterval: durationpb.New(0),
		},
	}

	_, err := parseRetryPolicy(rp)
	assert.Error(t, err)
}

func TestParseRetryPolicyMissingBaseIntervalErrors(t *testing.T) {
	rp := &envoy_route_v3.RetryPolicy{
		RetryBackOff: &envoy_route_v3.RetryPolicy_RetryBackOff{},
	}

	_, err := parseRetryPolicy(rp)
	assert.Error(t, err)
}

func TestParseRetryOn(t *testing.T) {
	tests := map[string]struct {
		in   string
		want []codes.Code
	}{
		"empty":                  {in: "", want: nil},
		"single recognized":      {in: "unavailable", want: []codes.Code{codes.Unavailable}},
		"unrecognized dropped":   {in: "unavailable,5xx,internal", want: []codes.Code{codes.Unavailable, codes.Internal}},
		"hyphen normalized":      {in: "deadline-exceeded", want: []codes.Code{codes.DeadlineExceeded}},
		"case insensitive":       {in: "Cancelled", want: []codes.Code{codes.Canceled}},
		"order and duplicates":   {in: "unavailable,cancelled,unavailable", want: []codes.Code{codes.Unavailable, codes.Canceled, codes.Unavailable}},
		"whitespace trimmed":     {in: " unavailable , cancelled ", want: []codes.Code{codes.Unavailable, codes.Canceled}},
		"resource-exhausted":     {in: "resource-exhausted", want: []codes.Code{codes.ResourceExhausted}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseRetryOn(tc.in))
		})
	}
}
