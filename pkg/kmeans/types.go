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

// Package kmeans holds the small set of interfaces the centroid
// training core is polymorphic over: a distance metric, an optional
// norm, and a random source. The core itself (VectorArray,
// QuickCenters, InitCenters, ElkanKmeans, CheckCenters, Train) lives in
// the elkans subpackage; this package exists so that package can depend
// on caller-supplied behavior without depending on any particular
// caller.
package kmeans

import (
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/kmeanslog"
	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans/kmeansmetrics"
)

// DistanceFunc computes the distance between two vectors of equal
// dimension. Implementations MUST satisfy the triangle inequality:
// ElkanKmeans's pruning is unsound otherwise. Squared distances are
// not acceptable here.
type DistanceFunc func(a, b []float32) float64

// NormFunc computes a scalar norm of a vector, used to project
// centers onto the unit sphere for spherical k-means variants.
type NormFunc func(v []float32) float64

// RandomSource is the uniform random source the core needs: a random
// index in [0,n) and a random float in [0,1). It is seedable so tests
// and property-based runs can get deterministic, bit-identical output.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// Config bundles everything Train needs beyond the sample/center
// containers themselves: the pluggable distance and (optional) norm
// functions, an optional index-level norm used only for the
// post-training zero-norm check, a memory budget, and a random source.
type Config struct {
	// Distance must satisfy the triangle inequality (e.g. Euclidean L2
	// distance, or angular distance for cosine/inner-product metrics).
	Distance DistanceFunc

	// Norm, if non-nil, is applied after every centroid update
	// (QuickCenters fill-in, ElkanKmeans Step 4, empty-cluster
	// reinitialization) to keep centers on the unit sphere for
	// spherical k-means.
	Norm NormFunc

	// IndexNorm, if non-nil, is validated post-hoc by CheckCenters:
	// no finalized center may have zero norm under it. It is
	// deliberately distinct from Norm, matching the original's split
	// between IVFFLAT_KMEANS_NORM_PROC (used during training) and
	// IVFFLAT_NORM_PROC (used only to validate the index's own metric).
	IndexNorm NormFunc

	// MemBudgetBytes is the absolute cap on ElkanKmeans scratch
	// allocation. Training fails fast with a BudgetExceeded error if
	// exceeded; there is no incremental or partial allocation.
	MemBudgetBytes int64

	// Rand is the uniform random source used for k-means++ seeding,
	// QuickCenters random fill-in, and empty-cluster reinitialization.
	Rand RandomSource

	// Logger receives iteration/admission diagnostics. A nil Logger is
	// treated as a no-op logger.
	Logger *kmeanslog.Logger

	// Metrics, if non-nil, receives Prometheus counters/histograms for
	// this training run. A nil Metrics disables metrics entirely.
	Metrics *kmeansmetrics.Recorder
}
