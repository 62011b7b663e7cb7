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

// Package metric supplies concrete DistanceFunc/NormFunc
// implementations for callers of the training core. The core itself
// never imports this package (distance and norm functions are
// supplied by the caller), but this is where a real caller (and this
// module's tests and benchmark CLI) gets a metric that actually
// satisfies the triangle inequality.
//
// Computation is done with gonum's mat.VecDense.
package metric

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

func toVec(v []float32) *mat.VecDense {
	data := make([]float64, len(v))
	for i, x := range v {
		data[i] = float64(x)
	}
	return mat.NewVecDense(len(data), data)
}

// L2 is the Euclidean distance, suitable as Config.Distance for plain
// L2 k-means.
func L2(a, b []float32) float64 {
	va, vb := toVec(a), toVec(b)
	diff := mat.NewVecDense(va.Len(), nil)
	diff.SubVec(va, vb)
	return mat.Norm(diff, 2)
}

// InnerProduct returns the negative dot product of a and b, following
// the convention that "closer" means "smaller distance".
func InnerProduct(a, b []float32) float64 {
	return -mat.Dot(toVec(a), toVec(b))
}

// CosineSimilarity returns the cosine similarity of a and b, clamped
// to [-1, 1] to guard against floating-point drift feeding math.Acos
// a value outside its domain.
func CosineSimilarity(a, b []float32) float64 {
	va, vb := toVec(a), toVec(b)
	sim := mat.Dot(va, vb) / (mat.Norm(va, 2) * mat.Norm(vb, 2))
	return math.Min(1, math.Max(-1, sim))
}

// Angular is the angular distance between a and b, scaled to [0, 1].
// Unlike cosine distance, angular distance satisfies the triangle
// inequality, which is why ElkanKmeans requires it (rather than raw
// cosine distance) for the cosine/inner-product metrics.
func Angular(a, b []float32) float64 {
	return math.Acos(CosineSimilarity(a, b)) / math.Pi
}

// L2Norm is the Euclidean norm, suitable as Config.Norm/Config.IndexNorm
// for spherical k-means variants.
func L2Norm(v []float32) float64 {
	return mat.Norm(toVec(v), 2)
}
