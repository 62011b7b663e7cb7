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
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans"
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/metric"
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/xrand"
)

// scenario 1: tiny quick path. 3 distinct samples, k=5: the first
// three centers should be exactly the (sorted, deduplicated) samples,
// the rest random fill-in in [0,1)^2.
func TestQuickCenters_TinyQuickPath(t *testing.T) {
	samples := VectorArrayFrom([][]float32{{0, 0}, {1, 0}, {0, 1}})
	centers := NewVectorArray(5, 2)
	cfg := kmeans.Config{Distance: metric.L2, Rand: xrand.New(1)}

	require.NoError(t, quickCenters(samples, centers, cfg))
	require.Equal(t, 5, centers.Len())

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		v := centers.Get(i)
		seen[vecKey(v)] = true
	}
	require.True(t, seen[vecKey(Vector{0, 0})])
	require.True(t, seen[vecKey(Vector{1, 0})])
	require.True(t, seen[vecKey(Vector{0, 1})])

	for i := 3; i < 5; i++ {
		v := centers.Get(i)
		for _, x := range v {
			require.GreaterOrEqual(t, x, float32(0))
			require.Less(t, x, float32(1))
		}
	}

	require.NoError(t, checkCenters(centers, cfg))
}

// scenario 2: duplicate samples. 10 copies of (1,0), k=3: exactly one
// real center, two random fill-ins.
func TestQuickCenters_DuplicateSamples(t *testing.T) {
	raw := make([][]float32, 10)
	for i := range raw {
		raw[i] = []float32{1, 0}
	}
	samples := VectorArrayFrom(raw)
	centers := NewVectorArray(3, 2)
	cfg := kmeans.Config{Distance: metric.L2, Rand: xrand.New(2)}

	require.NoError(t, quickCenters(samples, centers, cfg))
	require.Equal(t, 3, centers.Len())
	require.Equal(t, Vector{1, 0}, centers.Get(0))
	require.NoError(t, checkCenters(centers, cfg))
}

func TestQuickCenters_NormalizesSyntheticFill(t *testing.T) {
	samples := VectorArrayFrom([][]float32{{1, 0}})
	centers := NewVectorArray(3, 2)
	cfg := kmeans.Config{Distance: metric.Angular, Norm: metric.L2Norm, Rand: xrand.New(3)}

	require.NoError(t, quickCenters(samples, centers, cfg))
	for i := 1; i < 3; i++ {
		n := metric.L2Norm(centers.Get(i))
		require.InDelta(t, 1.0, n, 1e-6)
	}
}

func vecKey(v Vector) string {
	return fmt.Sprintf("%v", []float32(v))
}
