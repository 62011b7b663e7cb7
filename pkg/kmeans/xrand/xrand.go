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

// Package xrand provides the seedable RandomSource the training core
// needs for k-means++ seeding, QuickCenters fill-in, and empty-cluster
// reinitialization. The seed is a constructor parameter rather than a
// package-level constant, so production callers can seed from
// wall-clock time while tests get bit-identical, reproducible runs.
package xrand

import "math/rand"

// Source implements kmeans.RandomSource over the standard library PRNG.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded deterministically from seed. The same
// seed always produces the same sequence of draws.
func New(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewSource(int64(seed)))} //nolint:gosec // not used for cryptographic purposes
}

// Intn returns a uniformly distributed integer in [0, n).
func (s *Source) Intn(n int) int {
	return s.r.Intn(n)
}

// Float64 returns a uniformly distributed float64 in [0, 1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}
