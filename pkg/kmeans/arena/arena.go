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

// Package arena implements the scoped scratch allocator ElkanKmeans
// uses for its O(numSamples*numCenters) bookkeeping arrays.
//
// Go has no manual memory management, so this is not a literal bump
// allocator over one pre-sized buffer the way the original C
// implementation's per-call AllocSetContext is. Instead, every scratch
// slice is registered with the arena as it's allocated; Release (always
// invoked via defer, so it runs on every exit path: success, error, or
// cancellation) zeroes each registered slice and drops the arena's own
// references to them; the backing arrays become collectible once the
// caller's references are gone as well. TotalBytes lets the caller log actual
// scratch usage alongside the up-front budget estimate.
package arena

// Arena owns the scratch allocations for a single ElkanKmeans
// invocation and guarantees they are dropped together.
type Arena struct {
	releasers  []func()
	totalBytes int64
}

// New returns an empty Arena.
func New() *Arena {
	return &Arena{}
}

// Float32s allocates a zeroed []float32 of length n and registers it
// for release.
func (a *Arena) Float32s(n int) []float32 {
	s := make([]float32, n)
	a.totalBytes += int64(n) * 4
	a.releasers = append(a.releasers, func() { clear(s) })
	return s
}

// Float64s allocates a zeroed []float64 of length n and registers it
// for release.
func (a *Arena) Float64s(n int) []float64 {
	s := make([]float64, n)
	a.totalBytes += int64(n) * 8
	a.releasers = append(a.releasers, func() { clear(s) })
	return s
}

// Ints allocates a zeroed []int of length n and registers it for
// release.
func (a *Arena) Ints(n int) []int {
	s := make([]int, n)
	a.totalBytes += int64(n) * 8
	a.releasers = append(a.releasers, func() { clear(s) })
	return s
}

// TotalBytes reports the cumulative size of every slice the arena has
// handed out, for diagnostics alongside the up-front budget estimate.
func (a *Arena) TotalBytes() int64 {
	return a.totalBytes
}

// Release zeroes every registered slice and drops the arena's own
// references to them. Call via defer immediately after New so cleanup
// runs regardless of how the scope exits.
func (a *Arena) Release() {
	for _, release := range a.releasers {
		release()
	}
	a.releasers = nil
}
