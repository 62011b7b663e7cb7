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
	"context"
	"math"

	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans"
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/kmeanserr"
)

// initCenters seeds centers with k-means++ and, as a side effect,
// fully populates lower (row-major numSamples x numCenters) with the
// exact distance from every sample to every chosen center at the
// moment it was chosen. That tightness is what lets ElkanKmeans's
// first iteration skip recomputing d(x, c(x)) (see the r=false path in
// elkan.go): lower[j,k] == true_distance(sample_j, center_k) on exit,
// which is a valid (and, for this one iteration, exact) lower bound.
func initCenters(ctx context.Context, samples, centers *VectorArray, lower []float32, cfg kmeans.Config) error {
	numSamples := samples.Len()
	numCenters := centers.Cap()

	weight := make([]float64, numSamples)
	for j := range weight {
		weight[j] = math.MaxFloat64
	}

	centers.Append(samples.Get(cfg.Rand.Intn(numSamples)).Clone())

	for i := 0; i < numCenters; i++ {
		if err := checkCancelled(ctx); err != nil {
			return err
		}

		sum := 0.0
		center := centers.Get(i)

		for j := 0; j < numSamples; j++ {
			d := cfg.Distance(samples.Get(j), center)
			lower[j*numCenters+i] = float32(d)

			w := d * d
			if w < weight[j] {
				weight[j] = w
			}
			sum += weight[j]
		}

		if i+1 == numCenters {
			break
		}

		choice := sum * cfg.Rand.Float64()
		j := 0
		for ; j < numSamples-1; j++ {
			choice -= weight[j]
			if choice <= 0 {
				break
			}
		}

		centers.Append(samples.Get(j).Clone())
	}

	return nil
}

func checkCancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return kmeanserr.NewCancelled(err)
	}
	return nil
}
