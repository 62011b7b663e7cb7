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
	"math"
	"sort"

	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans"
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/kmeanserr"
)

// checkCenters enforces the postconditions a caller can rely on after
// a successful Train: exactly k centers, none NaN or infinite, no two
// byte-equal, and (if an index-level norm is configured) none with
// zero norm. Every violation here indicates the numerics drifted into
// an invalid state rather than something the caller did wrong; the
// expected response is to retry with a different seed or flag the
// dataset, which is why these are reported as errors rather than
// silently repaired.
func checkCenters(centers *VectorArray, cfg kmeans.Config) error {
	if centers.Len() != centers.Cap() {
		return kmeanserr.NewNotEnoughCenters(centers.Len(), centers.Cap())
	}

	for i := 0; i < centers.Len(); i++ {
		v := centers.Get(i)
		for d, x := range v {
			if math.IsNaN(float64(x)) {
				return kmeanserr.NewNaNDetected(i, d)
			}
			if math.IsInf(float64(x), 0) {
				return kmeanserr.NewInfiniteValue(i, d)
			}
		}
	}

	order := make([]int, centers.Len())
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return centers.Get(order[i]).compare(centers.Get(order[j])) < 0
	})

	for i := 1; i < len(order); i++ {
		if centers.Get(order[i]).equal(centers.Get(order[i-1])) {
			return kmeanserr.NewDuplicateCenters(order[i-1], order[i])
		}
	}

	if cfg.IndexNorm != nil {
		for i := 0; i < centers.Len(); i++ {
			if cfg.IndexNorm(centers.Get(i)) == 0 {
				return kmeanserr.NewZeroNorm(i)
			}
		}
	}

	return nil
}
