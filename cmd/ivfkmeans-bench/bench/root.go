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

package bench

import (
	"github.com/spf13/cobra"
)

// RootCmd is the ivfkmeans-bench entry point; main just calls Execute.
var RootCmd = &cobra.Command{
	Use:   "ivfkmeans-bench",
	Short: "Benchmark the IVF centroid training core against synthetic data",
}

func init() {
	RootCmd.AddCommand(runCmd)
}
