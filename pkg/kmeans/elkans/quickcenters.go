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

import (
	"sort"

	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans"
)

// quickCenters is the degenerate-case builder invoked when
// samples.Len() <= centers.Cap(). It must still deliver centers.Cap()
// distinct centers: real distinct samples are preferred, sorted into a
// deterministic order and deduplicated; any remaining slots are filled
// with synthetic random vectors in [0,1)^d, normalized when cfg.Norm is
// set.
func quickCenters(samples, centers *VectorArray, cfg kmeans.Config) error {
	n := samples.Len()

	if n > 0 {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool {
			return samples.Get(order[i]).compare(samples.Get(order[j])) < 0
		})

		var prev Vector
		for _, idx := range order {
			v := samples.Get(idx)
			if prev != nil && v.equal(prev) {
				continue
			}
			centers.Append(v.Clone())
			prev = v
		}
	}

	dim := centers.Dim()
	for centers.Len() < centers.Cap() {
		v := make(Vector, dim)
		for j := range v {
			v[j] = float32(cfg.Rand.Float64())
		}
		// Zero-norm synthetic vectors are left unnormalized: the
		// spec leaves this case undefined, and dividing by a zero
		// norm would otherwise produce NaN or infinite coordinates
		// rather than a point on the unit sphere.
		if cfg.Norm != nil {
			applyNorm(cfg.Norm, v)
		}
		centers.Append(v)
	}

	return nil
}
