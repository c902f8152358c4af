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

import "github.com/pkg/errors"

// errSkip is the sentinel "not an error" signal for a route or action
// that is well-formed but unactionable. Callers test for it
// with errors.Is and translate it into "omit this entry, keep going",
// never into a ResourceInvalid rejection of the enclosing container.
var errSkip = errors.New("skip: well-formed but unactionable")

// IsSkip reports whether err is (or wraps) the skip sentinel.
func IsSkip(err error) bool {
	return errors.Is(err, errSkip)
}
