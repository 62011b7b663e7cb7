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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans"
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/kmeanserr"
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/metric"
)

func TestCheckCenters_OK(t *testing.T) {
	centers := VectorArrayFrom([][]float32{{1, 0}, {0, 1}, {2, 2}})
	cfg := kmeans.Config{}
	require.NoError(t, checkCenters(centers, cfg))
}

func TestCheckCenters_ShortRejected(t *testing.T) {
	centers := NewVectorArray(3, 2)
	centers.Append(Vector{1, 0})
	cfg := kmeans.Config{}
	err := checkCenters(centers, cfg)
	require.Error(t, err)
	require.True(t, kmeanserr.IsCode(err, kmeanserr.NotEnoughCenters))
}

func TestCheckCenters_DetectsNaN(t *testing.T) {
	centers := VectorArrayFrom([][]float32{{1, 0}, {float32(math.NaN()), 1}})
	err := checkCenters(centers, kmeans.Config{})
	require.Error(t, err)
	require.True(t, kmeanserr.IsCode(err, kmeanserr.NaNDetected))
}

func TestCheckCenters_DetectsInf(t *testing.T) {
	centers := VectorArrayFrom([][]float32{{1, 0}, {float32(math.Inf(1)), 1}})
	err := checkCenters(centers, kmeans.Config{})
	require.Error(t, err)
	require.True(t, kmeanserr.IsCode(err, kmeanserr.InfiniteValue))
}

func TestCheckCenters_DetectsDuplicates(t *testing.T) {
	centers := VectorArrayFrom([][]float32{{1, 0}, {2, 2}, {1, 0}})
	err := checkCenters(centers, kmeans.Config{})
	require.Error(t, err)
	require.True(t, kmeanserr.IsCode(err, kmeanserr.DuplicateCenters))
}

func TestCheckCenters_DetectsZeroNorm(t *testing.T) {
	centers := VectorArrayFrom([][]float32{{1, 0}, {0, 0}})
	cfg := kmeans.Config{IndexNorm: metric.L2Norm}
	err := checkCenters(centers, cfg)
	require.Error(t, err)
	require.True(t, kmeanserr.IsCode(err, kmeanserr.ZeroNorm))
}

func TestCheckCenters_ZeroNormIgnoredWithoutIndexNorm(t *testing.T) {
	centers := VectorArrayFrom([][]float32{{1, 0}, {0, 0}})
	require.NoError(t, checkCenters(centers, kmeans.Config{}))
}
