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

// Package elkans implements the centroid training core of an
// inverted-file vector index: k-means++ seeding feeding an Elkan
// accelerated Lloyd iteration, with a degenerate-case fallback for
// tiny sample sets. See the kmeans package for the pluggable
// distance/norm/random-source types Train is configured with.
package elkans

import (
	"context"
	"time"

	"github.com/ivfkmeans/ivfkmeans/pkg/kmeans"
)

// Train fills centers (capacity k, length 0 on entry) from samples
// (read-only, length n) using cfg's distance/norm/random-source. On
// success centers.Len() == centers.Cap() and every postcondition in
// checkCenters holds.
//
// Train is single-threaded and synchronous: there is no internal
// parallelism, and the only suspension points are the cancellation
// checks inside elkanKmeans's outer iteration and initCenters's outer
// seeding pass. Callers wanting multi-core acceleration should
// parallelize across independent Train calls, not expect one call to
// use more than one core.
func Train(ctx context.Context, samples, centers *VectorArray, cfg kmeans.Config) error {
	start := time.Now()
	defer func() {
		cfg.Metrics.ObserveTrainSeconds(time.Since(start).Seconds())
	}()

	if centers.Len() != 0 {
		panic("elkans: Train requires centers.Len() == 0 on entry")
	}
	if samples.Dim() != centers.Dim() {
		panic("elkans: Train requires samples and centers to share a dimension")
	}

	var err error
	if samples.Len() <= centers.Cap() {
		cfg.Logger.Infof("elkans: quick path: numSamples=%d numCenters=%d", samples.Len(), centers.Cap())
		err = quickCenters(samples, centers, cfg)
	} else {
		err = elkanKmeans(ctx, samples, centers, cfg)
	}
	if err != nil {
		return err
	}

	return checkCenters(centers, cfg)
}
