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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans"
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/kmeanserr"
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/metric"
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/xrand"
)

func basicConfig(seed uint64) kmeans.Config {
	return kmeans.Config{
		Distance:       metric.L2,
		Norm:           nil,
		IndexNorm:      metric.L2Norm,
		MemBudgetBytes: 1 << 20,
		Rand:           xrand.New(seed),
	}
}

// scenario 1: numSamples <= numCenters routes through quickCenters.
// No index-level norm is configured: the (0,0) sample becomes a center,
// which the zero-norm postcondition would otherwise reject.
func TestTrain_RoutesToQuickPathWhenSamplesFitInCenters(t *testing.T) {
	samples := VectorArrayFrom([][]float32{{0, 0}, {1, 0}, {0, 1}})
	centers := NewVectorArray(5, 2)
	cfg := basicConfig(1)
	cfg.IndexNorm = nil
	require.NoError(t, Train(context.Background(), samples, centers, cfg))
	require.Equal(t, 5, centers.Len())
}

// numSamples > numCenters routes through the Elkan path.
func TestTrain_RoutesToElkanPathWhenSamplesExceedCenters(t *testing.T) {
	samples := twoWellSeparatedClusters()
	centers := NewVectorArray(2, 2)
	require.NoError(t, Train(context.Background(), samples, centers, basicConfig(1)))
	require.Equal(t, 2, centers.Len())
}

// scenario 5: a memory budget too small for the Elkan path's scratch
// arrays must surface as BudgetExceeded, not panic or silently degrade.
func TestTrain_RejectsUnderfundedMemoryBudget(t *testing.T) {
	samples := twoWellSeparatedClusters()
	centers := NewVectorArray(2, 2)
	cfg := basicConfig(1)
	cfg.MemBudgetBytes = 1

	err := Train(context.Background(), samples, centers, cfg)
	require.Error(t, err)
	require.True(t, kmeanserr.IsCode(err, kmeanserr.BudgetExceeded))
}

// scenario 6: a context cancelled before training on the Elkan path
// must propagate a Cancelled error rather than running to completion.
func TestTrain_PropagatesCancellation(t *testing.T) {
	samples := twoWellSeparatedClusters()
	centers := NewVectorArray(2, 2)
	cfg := basicConfig(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Train(ctx, samples, centers, cfg)
	require.Error(t, err)
	require.True(t, kmeanserr.IsCode(err, kmeanserr.Cancelled))
}

func TestTrain_PanicsOnNonEmptyCenters(t *testing.T) {
	samples := VectorArrayFrom([][]float32{{0, 0}, {1, 1}})
	centers := NewVectorArray(2, 2)
	centers.Append(Vector{0, 0})

	require.Panics(t, func() {
		_ = Train(context.Background(), samples, centers, basicConfig(1))
	})
}

func TestTrain_PanicsOnDimensionMismatch(t *testing.T) {
	samples := VectorArrayFrom([][]float32{{0, 0, 0}, {1, 1, 1}})
	centers := NewVectorArray(2, 2)

	require.Panics(t, func() {
		_ = Train(context.Background(), samples, centers, basicConfig(1))
	})
}

// Train's postcondition check must reject results with zero norm when
// an index-level norm is configured, even though quickCenters itself
// happily produces all-zero coordinates for degenerate single-sample
// inputs without a configured Norm to fix them up.
func TestTrain_PostconditionCatchesZeroNormWithoutFillNorm(t *testing.T) {
	samples := VectorArrayFrom([][]float32{{0, 0}})
	centers := NewVectorArray(1, 2)
	samples.Set(0, Vector{0, 0})

	cfg := basicConfig(1)
	err := Train(context.Background(), samples, centers, cfg)
	// a single zero sample with k=1 produces exactly one center, which
	// is also zero: IndexNorm should catch it.
	require.Error(t, err)
	require.True(t, kmeanserr.IsCode(err, kmeanserr.ZeroNorm))
}
