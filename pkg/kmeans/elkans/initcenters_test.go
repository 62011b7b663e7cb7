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
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/metric"
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/xrand"
)

// initCenters must leave lower[j,k] exactly equal to the true distance
// from sample j to center k at the moment center k was chosen (P3,
// tight at seeding time).
func TestInitCenters_LowerBoundIsExact(t *testing.T) {
	samples := VectorArrayFrom([][]float32{
		{0, 0}, {10, 0}, {0, 10}, {10, 10}, {5, 5}, {1, 1},
	})
	numCenters := 3
	centers := NewVectorArray(numCenters, 2)
	cfg := kmeans.Config{Distance: metric.L2, Rand: xrand.New(7)}

	lower := make([]float32, samples.Len()*numCenters)
	require.NoError(t, initCenters(context.Background(), samples, centers, lower, cfg))
	require.Equal(t, numCenters, centers.Len())

	for j := 0; j < samples.Len(); j++ {
		for k := 0; k < numCenters; k++ {
			want := float32(metric.L2(samples.Get(j), centers.Get(k)))
			require.InDelta(t, want, lower[j*numCenters+k], 1e-4)
		}
	}
}

// All samples identical: the weighted-probability selection must
// still terminate and produce duplicate centers (detected downstream
// by checkCenters, not by initCenters itself).
func TestInitCenters_AllSamplesEqual(t *testing.T) {
	raw := make([][]float32, 5)
	for i := range raw {
		raw[i] = []float32{3, 3}
	}
	samples := VectorArrayFrom(raw)
	numCenters := 3
	centers := NewVectorArray(numCenters, 2)
	cfg := kmeans.Config{Distance: metric.L2, Rand: xrand.New(11)}

	lower := make([]float32, samples.Len()*numCenters)
	require.NoError(t, initCenters(context.Background(), samples, centers, lower, cfg))
	require.Equal(t, numCenters, centers.Len())
	for i := 0; i < numCenters; i++ {
		require.Equal(t, Vector{3, 3}, centers.Get(i))
	}
}

func TestInitCenters_RespectsCancellation(t *testing.T) {
	samples := VectorArrayFrom([][]float32{{0, 0}, {1, 1}, {2, 2}, {3, 3}})
	centers := NewVectorArray(2, 2)
	cfg := kmeans.Config{Distance: metric.L2, Rand: xrand.New(1)}
	lower := make([]float32, samples.Len()*2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := initCenters(ctx, samples, centers, lower, cfg)
	require.Error(t, err)
}
