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

// Package inference computes statistical-inference artifacts over in-memory
// numeric samples: summary statistics, confidence intervals for the mean,
// pairwise group comparisons, two-sample hypothesis tests, and one-way
// analysis of variance.
//
// The package is a pure library surface. Every operation is a deterministic
// function of its inputs, returns freshly allocated value types that are
// never mutated afterwards, and reports contract violations through errors
// wrapping the sentinels of the checks package. Samples are expected to be
// cleaned upstream: values must be finite, and missing-value handling is the
// caller's responsibility.
package inference

import (
	"math"

	"github.com/google/statistical-inference/go/checks"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the basic descriptive statistics of a single sample.
type Summary struct {
	// N is the number of observations.
	N int
	// Mean is the arithmetic mean of the observations.
	Mean float64
	// StdDev is the unbiased (n−1 denominator) sample standard deviation.
	StdDev float64
	// StdErr is the standard error of the mean, StdDev / √N.
	StdErr float64
}

// Mean returns the arithmetic mean of values. It is defined for any
// non-empty sample and returns an error wrapping checks.ErrInsufficientData
// for an empty one.
func Mean(values []float64) (float64, error) {
	if err := checks.CheckSampleSize("Mean", len(values), 1); err != nil {
		return 0, err
	}
	return stat.Mean(values, nil), nil
}

// Summarize computes the count, mean, sample standard deviation and standard
// error of values. Because the standard deviation uses the unbiased n−1
// denominator, at least two observations are required; smaller samples yield
// an error wrapping checks.ErrInsufficientData.
func Summarize(values []float64) (Summary, error) {
	if err := checks.CheckSampleSize("Summarize", len(values), 2); err != nil {
		return Summary{}, err
	}
	n := len(values)
	stdDev := stat.StdDev(values, nil)
	return Summary{
		N:      n,
		Mean:   stat.Mean(values, nil),
		StdDev: stdDev,
		StdErr: stdDev / math.Sqrt(float64(n)),
	}, nil
}
