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
	"time"

	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans"
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/arena"
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/kmeanserr"
)

const maxIterations = 500

// bytesPerInt is used only for the up-front memory estimate; it does
// not need to track GOARCH exactly, just be in the right ballpark the
// way the original's `sizeof(int)` estimate is.
const bytesPerInt = 8

// memoryEstimate breaks the total scratch requirement down by array,
// so a BudgetExceeded error can name which array dominates.
type memoryEstimate struct {
	samples, centers, newCenters     int64
	counts, assignment               int64
	lower, upper                     int64
	s, halfcdist, newcdist           int64
}

func (m memoryEstimate) total() int64 {
	return m.samples + m.centers + m.newCenters + m.counts + m.assignment +
		m.lower + m.upper + m.s + m.halfcdist + m.newcdist
}

func estimateMemory(samples, centers *VectorArray) memoryEstimate {
	numCenters := int64(centers.Cap())
	numSamples := int64(samples.Len())
	dim := int64(centers.Dim())

	return memoryEstimate{
		samples:     int64(samples.Cap()) * dim * 4,
		centers:     numCenters * dim * 4,
		newCenters:  numCenters * dim * 4,
		counts:      numCenters * bytesPerInt,
		assignment:  numSamples * bytesPerInt,
		lower:       numSamples * numCenters * 4,
		upper:       numSamples * 4,
		s:           numCenters * 4,
		halfcdist:   numCenters * numCenters * 4,
		newcdist:    numCenters * 4,
	}
}

// elkanKmeans is the main accelerated Lloyd iteration: it maintains
// per-point upper bounds and per-(point,center) lower bounds plus
// inter-center distances, to prune the vast majority of distance
// evaluations while preserving exact Lloyd semantics.
func elkanKmeans(ctx context.Context, samples, centers *VectorArray, cfg kmeans.Config) error {
	numCenters := centers.Cap()
	numSamples := samples.Len()
	dim := centers.Dim()

	if int64(numCenters)*int64(numCenters) > math.MaxInt32 {
		return kmeanserr.NewDimensionOverflow(numCenters)
	}

	est := estimateMemory(samples, centers)
	if total := est.total(); total > cfg.MemBudgetBytes {
		cfg.Logger.Warnf("elkans: memory estimate exceeded budget: required=%dB budget=%dB breakdown=%+v",
			total, cfg.MemBudgetBytes, est)
		return kmeanserr.NewBudgetExceeded(total, cfg.MemBudgetBytes)
	}

	a := arena.New()
	defer a.Release()

	counts := a.Ints(numCenters)
	assignment := a.Ints(numSamples)
	lower := a.Float32s(numSamples * numCenters)
	upper := a.Float32s(numSamples)
	s := a.Float32s(numCenters)
	halfcdist := a.Float32s(numCenters * numCenters)
	newcdist := a.Float32s(numCenters)

	newCenters := NewVectorArray(numCenters, dim)
	for i := 0; i < numCenters; i++ {
		newCenters.Append(make(Vector, dim))
	}

	cfg.Logger.Infof("elkans: admitted training: numSamples=%d numCenters=%d dim=%d scratchBytes=%d",
		numSamples, numCenters, dim, a.TotalBytes())

	if err := initCenters(ctx, samples, centers, lower, cfg); err != nil {
		return err
	}

	// Assign each x to its closest initial center, reusing the
	// lower-bound matrix InitCenters just populated exactly.
	for j := 0; j < numSamples; j++ {
		minDistance := float32(math.MaxFloat32)
		closest := 0
		for k := 0; k < numCenters; k++ {
			d := lower[j*numCenters+k]
			if d < minDistance {
				minDistance = d
				closest = k
			}
		}
		upper[j] = minDistance
		assignment[j] = closest
	}

	for iteration := 0; iteration < maxIterations; iteration++ {
		if err := checkCancelled(ctx); err != nil {
			return err
		}

		start := time.Now()

		computeInterCenterDistances(centers, cfg.Distance, halfcdist, s)

		changes := assignAndRefine(samples, centers, cfg, iteration != 0, assignment, upper, lower, halfcdist, s)

		recalculateCentroids(samples, newCenters, cfg, assignment, counts)

		widenBounds(centers, newCenters, assignment, lower, upper, newcdist, cfg)

		for ci := 0; ci < numCenters; ci++ {
			centers.Set(ci, newCenters.Get(ci))
		}

		cfg.Metrics.IncIteration()
		cfg.Logger.Debugf("elkans: iter=%d changes=%d elapsed=%s", iteration, changes, time.Since(start))

		if changes == 0 && iteration != 0 {
			break
		}
	}

	return nil
}

// computeInterCenterDistances is Step 1: for all centers a<b compute
// halfcdist[a,b]=halfcdist[b,a]=0.5*d(a,b), then s[a]=min_{b!=a}
// halfcdist[a,b].
func computeInterCenterDistances(centers *VectorArray, distance kmeans.DistanceFunc, halfcdist, s []float32) {
	numCenters := centers.Cap()

	for a := 0; a < numCenters; a++ {
		va := centers.Get(a)
		for b := a + 1; b < numCenters; b++ {
			d := float32(0.5 * distance(va, centers.Get(b)))
			halfcdist[a*numCenters+b] = d
			halfcdist[b*numCenters+a] = d
		}
	}

	for a := 0; a < numCenters; a++ {
		minDist := float32(math.MaxFloat32)
		for b := 0; b < numCenters; b++ {
			if a == b {
				continue
			}
			if d := halfcdist[a*numCenters+b]; d < minDist {
				minDist = d
			}
		}
		s[a] = minDist
	}
}

// assignAndRefine is Steps 2-3: skip points whose upper bound is
// already tight, then for surviving points and centers, use the
// lower-bound and inter-center pruning tests before ever falling back
// to an exact distance computation. The tie-break is lowest-indexed
// center wins: only a strict improvement (dxc < dxcx) reassigns.
func assignAndRefine(
	samples, centers *VectorArray,
	cfg kmeans.Config,
	resetRecompute bool,
	assignment []int,
	upper, lower, halfcdist, s []float32,
) int {
	numCenters := centers.Cap()
	numSamples := samples.Len()
	changes := 0
	evals := 0

	for j := 0; j < numSamples; j++ {
		if upper[j] <= s[assignment[j]] {
			continue
		}

		recompute := resetRecompute
		x := samples.Get(j)

		for k := 0; k < numCenters; k++ {
			cx := assignment[j]
			if k == cx {
				continue
			}
			if upper[j] <= lower[j*numCenters+k] {
				continue
			}
			if upper[j] <= halfcdist[cx*numCenters+k] {
				continue
			}

			var dxcx float32
			if recompute {
				evals++
				dxcx = float32(cfg.Distance(x, centers.Get(cx)))
				lower[j*numCenters+cx] = dxcx
				upper[j] = dxcx
				recompute = false
			} else {
				dxcx = upper[j]
			}

			if dxcx > lower[j*numCenters+k] || dxcx > halfcdist[cx*numCenters+k] {
				evals++
				dxc := float32(cfg.Distance(x, centers.Get(k)))
				lower[j*numCenters+k] = dxc

				if dxc < dxcx {
					assignment[j] = k
					upper[j] = dxc
					changes++
				}
			}
		}
	}

	cfg.Metrics.AddDistanceEvals(evals)
	return changes
}

// recalculateCentroids is Step 4: each center becomes the mean of its
// assigned samples. Coordinate sums that overflow to +/-Inf are
// clamped to +/-FLT_MAX before dividing (the single localized, silent
// numeric recovery this module performs; NaN is never silently
// repaired). Empty clusters are reseeded with a uniform-random vector
// rather than left undefined.
func recalculateCentroids(samples, newCenters *VectorArray, cfg kmeans.Config, assignment, counts []int) {
	numCenters := newCenters.Cap()
	dim := newCenters.Dim()

	for a := 0; a < numCenters; a++ {
		v := newCenters.Get(a)
		for k := range v {
			v[k] = 0
		}
		counts[a] = 0
	}

	for j := 0; j < samples.Len(); j++ {
		a := assignment[j]
		counts[a]++
		dst := newCenters.Get(a)
		src := samples.Get(j)
		for k := 0; k < dim; k++ {
			dst[k] += src[k]
		}
	}

	for a := 0; a < numCenters; a++ {
		v := newCenters.Get(a)
		if counts[a] > 0 {
			for k := 0; k < dim; k++ {
				if math.IsInf(float64(v[k]), 0) {
					if v[k] > 0 {
						v[k] = math.MaxFloat32
					} else {
						v[k] = -math.MaxFloat32
					}
				}
			}
			for k := 0; k < dim; k++ {
				v[k] /= float32(counts[a])
			}
		} else {
			for k := 0; k < dim; k++ {
				v[k] = float32(cfg.Rand.Float64())
			}
		}

		if cfg.Norm != nil {
			applyNorm(cfg.Norm, v)
		}
	}
}

// widenBounds is Steps 5-6: lower bounds are widened conservatively by
// the distance each center moved, and every point's upper bound grows
// by the shift of its own assigned center, which is what makes
// recompute=true the correct default going into the next iteration.
func widenBounds(centers, newCenters *VectorArray, assignment []int, lower, upper, newcdist []float32, cfg kmeans.Config) {
	numCenters := centers.Cap()
	numSamples := len(assignment)

	for a := 0; a < numCenters; a++ {
		newcdist[a] = float32(cfg.Distance(centers.Get(a), newCenters.Get(a)))
	}

	for j := 0; j < numSamples; j++ {
		for k := 0; k < numCenters; k++ {
			d := lower[j*numCenters+k] - newcdist[k]
			if d < 0 {
				d = 0
			}
			lower[j*numCenters+k] = d
		}
	}

	for j := 0; j < numSamples; j++ {
		upper[j] += newcdist[assignment[j]]
	}
}
