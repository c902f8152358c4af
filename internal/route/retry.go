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
	"strings"
	"time"

	envoy_route_v3 "github.com/envoyproxy/go-control-plane/envoy/config/route/v3"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
)

const (
	defaultInitialBackoff = 25 * time.Millisecond
	defaultMaxBackoff     = 250 * time.Millisecond
	minBackoff            = time.Millisecond
)

// retryableCodeNames maps the normalized (upper-cased, hyphen-to-
// underscore) token spelling to the fixed set of codes this parser
// supports. Only these five are recognized; anything else -- including
// Envoy's numeric codes and 5xx-style shorthands -- is silently ignored.
var retryableCodeNames = map[string]codes.Code{
	"CANCELLED":          codes.Canceled,
	"DEADLINE_EXCEEDED":  codes.DeadlineExceeded,
	"INTERNAL":           codes.Internal,
	"RESOURCE_EXHAUSTED": codes.ResourceExhausted,
	"UNAVAILABLE":        codes.Unavailable,
}

// parseRetryPolicy builds a RetryPolicy from a RetryPolicy proto. A nil
// rp yields a nil *RetryPolicy (retry policy is absent from the action).
func parseRetryPolicy(rp *envoy_route_v3.RetryPolicy) (*RetryPolicy, error) {
	if rp == nil {
		return nil, nil
	}

	maxAttempts := 2
	if n := rp.GetNumRetries(); n != nil {
		maxAttempts = int(n.GetValue()) + 1
	}

	initial := defaultInitialBackoff
	max := defaultMaxBackoff

	if bo := rp.GetRetryBackOff(); bo != nil {
		base := bo.GetBaseInterval()
		if base == nil {
			return nil, errors.New("No base_interval specified in retry_backoff")
		}

		originalBase := base.AsDuration()
		if originalBase <= 0 {
			return nil, errors.New("base_interval in retry_backoff must be positive")
		}

		initial = originalBase
		if initial < minBackoff {
			initial = minBackoff
		}

		if mi := bo.GetMaxInterval(); mi != nil {
			// The comparison against base uses the *original*,
			// unclamped base_interval even though the clamped value
			// is what ends up in the returned policy.
			originalMax := mi.AsDuration()
			if originalMax < originalBase {
				return nil, errors.New("max_interval in retry_backoff cannot be less than base_interval")
			}

			max = originalMax
			if max < minBackoff {
				max = minBackoff
			}
		} else {
			// Max absent implies max = base x 10, computed on the
			// clamped initial backoff.
			max = initial * 10
		}
	}

	return &RetryPolicy{
		MaxAttempts:          maxAttempts,
		RetryableStatusCodes: parseRetryOn(rp.GetRetryOn()),
		InitialBackoff:       initial.Nanoseconds(),
		MaxBackoff:           max.Nanoseconds(),
	}, nil
}

// parseRetryOn resolves a comma-separated retry_on token list to the
// recognized status codes. Order of first appearance is preserved;
// duplicates are retained.
func parseRetryOn(retryOn string) []codes.Code {
	var out []codes.Code

	for _, tok := range strings.Split(retryOn, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		normalized := strings.ReplaceAll(strings.ToUpper(tok), "-", "_")
		if code, ok := retryableCodeNames[normalized]; ok {
			out = append(out, code)
		}
	}

	return out
}
