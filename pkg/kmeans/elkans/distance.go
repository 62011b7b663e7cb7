// Copyright the ivfkmeans authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package elkans

import "github.com/ivfkmeans/ivfkmeans/pkg/kmeans"

// applyNorm divides vec in place by its norm, unless the norm is zero.
// Zero-norm vectors are left unmodified deliberately rather than
// guessing at a repair: dividing by a zero norm would produce NaN or
// infinite coordinates, not a point on the unit sphere. Any positive
// norm, however small, is divided by.
func applyNorm(norm kmeans.NormFunc, vec Vector) {
	n := norm(vec)
	if n > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / n)
		}
	}
}
