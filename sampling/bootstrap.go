//
// Copyright 2023 Google LLC
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
//

package sampling

import (
	"fmt"
	"sort"

	"github.com/google/statistical-inference/go/checks"
	"github.com/google/statistical-inference/go/inference"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// bootstrapSeedTag separates the bootstrap seed stream from the one used by
// SampleMeans, so the two operations draw unrelated sub-sequences from the
// same configured seed.
const bootstrapSeedTag = 0x626f6f74 // "boot"

// BootstrapMeanInterval estimates a percentile-bootstrap confidence interval
// for the population mean underlying values: it draws numBootstrap full-size
// resamples with replacement, records each resample's mean, and takes the
// empirical alpha/2 and 1−alpha/2 quantiles of those means as the interval
// bounds. The point estimate is the sample mean and the reported margin of
// error is half the interval width.
//
// Like SampleMeans, the operation is deterministic under a fixed seed.
func (s *Simulator) BootstrapMeanInterval(values []float64, numBootstrap int, confidenceLevel float64) (inference.IntervalResult, error) {
	if err := checks.CheckConfidenceLevel("BootstrapMeanInterval", confidenceLevel); err != nil {
		return inference.IntervalResult{}, err
	}
	if err := checks.CheckPositive("BootstrapMeanInterval", "numBootstrap", numBootstrap); err != nil {
		return inference.IntervalResult{}, err
	}
	if err := checks.CheckSampleSize("BootstrapMeanInterval", len(values), 2); err != nil {
		return inference.IntervalResult{}, err
	}
	mean, err := inference.Mean(values)
	if err != nil {
		return inference.IntervalResult{}, fmt.Errorf("BootstrapMeanInterval: %w", err)
	}

	bootMeans := make([]float64, numBootstrap)
	s.forEachResample(numBootstrap, func(i int) {
		rng := rand.New(rand.NewSource(subSeed(s.seed^bootstrapSeedTag, uint64(i))))
		bootMeans[i] = resampleMean(rng, values, len(values), true)
	})
	sort.Float64s(bootMeans)

	alpha := 1 - confidenceLevel
	lower := stat.Quantile(alpha/2, stat.Empirical, bootMeans, nil)
	upper := stat.Quantile(1-alpha/2, stat.Empirical, bootMeans, nil)
	return inference.IntervalResult{
		PointEstimate:   mean,
		LowerBound:      lower,
		UpperBound:      upper,
		MarginOfError:   (upper - lower) / 2,
		ConfidenceLevel: confidenceLevel,
		SampleSize:      len(values),
	}, nil
}
