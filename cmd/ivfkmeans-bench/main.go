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

// Command ivfkmeans-bench generates synthetic sample sets and runs the
// centroid training core against them, reporting SSE and wall time. It exists to exercise pkg/kmeans/elkans end to end
// without any surrounding index/SQL plumbing.
package main

import (
	"fmt"
	"os"

	"github.com/ivfkmeans/ivfkmeans/cmd/ivfkmeans-bench/bench"
)

func main() {
	if err := bench.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
