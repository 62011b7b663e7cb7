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

// Package kmeansmetrics is an optional Prometheus recorder for the
// training core. Train never requires a Recorder: every method is a
// no-op on a nil *Recorder, and the core only ever calls the three
// methods below.
package kmeansmetrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder publishes counters/histograms for a training run. Pass nil
// wherever a *Recorder is accepted to disable metrics entirely.
type Recorder struct {
	iterations  prometheus.Counter
	distEvals   prometheus.Counter
	trainTiming prometheus.Histogram
}

// NewRecorder registers its metrics with reg and returns a Recorder.
// Callers that don't want Prometheus integration simply never call
// this and pass a nil *Recorder to Config.Metrics instead.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ivfkmeans",
			Name:      "iterations_total",
			Help:      "Number of Elkan Lloyd iterations executed across all Train calls.",
		}),
		distEvals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ivfkmeans",
			Name:      "distance_evaluations_total",
			Help:      "Number of point-to-center distance evaluations in the Elkan assignment step.",
		}),
		trainTiming: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ivfkmeans",
			Name:      "train_duration_seconds",
			Help:      "Wall-clock duration of a single Train call.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(r.iterations, r.distEvals, r.trainTiming)
	return r
}

// IncIteration records one more completed Lloyd iteration.
func (r *Recorder) IncIteration() {
	if r == nil {
		return
	}
	r.iterations.Inc()
}

// AddDistanceEvals records n additional distance evaluations made by
// the Elkan assignment step.
func (r *Recorder) AddDistanceEvals(n int) {
	if r == nil {
		return
	}
	r.distEvals.Add(float64(n))
}

// ObserveTrainSeconds records the wall-clock duration of a Train call.
func (r *Recorder) ObserveTrainSeconds(seconds float64) {
	if r == nil {
		return
	}
	r.trainTiming.Observe(seconds)
}
