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

package inference

import (
	"fmt"
	"math"

	"github.com/google/statistical-inference/go/checks"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultNormalApproximationThreshold is the sample size at and above which
// EstimateMeanInterval uses the standard-normal critical value instead of the
// Student-t one. The value 30 is the conventional rule of thumb for invoking
// the Central Limit Theorem; it is a policy choice, not a derived constant,
// and can be overridden through IntervalEstimatorOptions.
const DefaultNormalApproximationThreshold = 30

// IntervalResult holds a confidence interval for a population mean.
type IntervalResult struct {
	// PointEstimate is the sample mean.
	PointEstimate float64
	// LowerBound and UpperBound delimit the interval. They satisfy
	// LowerBound ≤ PointEstimate ≤ UpperBound; for a zero-variance sample
	// the interval collapses to [mean, mean].
	LowerBound float64
	UpperBound float64
	// MarginOfError is half the width of the interval.
	MarginOfError float64
	// ConfidenceLevel is the level the interval was constructed for.
	ConfidenceLevel float64
	// SampleSize is the number of observations the interval is based on.
	SampleSize int
}

// IntervalEstimatorOptions contains the options necessary to initialize an
// IntervalEstimator.
type IntervalEstimatorOptions struct {
	// NormalApproximationThreshold is the sample size at and above which the
	// standard-normal critical value is used instead of the Student-t one.
	// Defaults to DefaultNormalApproximationThreshold.
	NormalApproximationThreshold int
}

// IntervalEstimator constructs confidence intervals for population means.
//
// Safe for concurrent use: it holds only immutable configuration.
type IntervalEstimator struct {
	normalApproximationThreshold int
}

// NewIntervalEstimator returns a new IntervalEstimator.
func NewIntervalEstimator(opt *IntervalEstimatorOptions) (*IntervalEstimator, error) {
	if opt == nil {
		opt = &IntervalEstimatorOptions{}
	}
	threshold := opt.NormalApproximationThreshold
	if threshold == 0 {
		threshold = DefaultNormalApproximationThreshold
	}
	if threshold < 2 {
		return nil, fmt.Errorf("NewIntervalEstimator: NormalApproximationThreshold is %d, must be at least 2: %w", threshold, checks.ErrInvalidParameter)
	}
	return &IntervalEstimator{normalApproximationThreshold: threshold}, nil
}

// EstimateMeanInterval returns a confidence interval for the population mean
// underlying values. Samples at least as large as the estimator's normal
// approximation threshold use the standard-normal critical value; smaller
// samples use the Student-t critical value with n−1 degrees of freedom.
//
// A sample of identical values has zero standard error and yields the
// degenerate interval [mean, mean]; this is a documented convention, not an
// error. Increasing the confidence level for a fixed sample never decreases
// the margin of error.
func (e *IntervalEstimator) EstimateMeanInterval(values []float64, confidenceLevel float64) (IntervalResult, error) {
	if err := checks.CheckConfidenceLevel("EstimateMeanInterval", confidenceLevel); err != nil {
		return IntervalResult{}, err
	}
	s, err := Summarize(values)
	if err != nil {
		return IntervalResult{}, fmt.Errorf("EstimateMeanInterval: %w", err)
	}
	margin := e.criticalValue(s.N, confidenceLevel) * s.StdErr
	return IntervalResult{
		PointEstimate:   s.Mean,
		LowerBound:      s.Mean - margin,
		UpperBound:      s.Mean + margin,
		MarginOfError:   margin,
		ConfidenceLevel: confidenceLevel,
		SampleSize:      s.N,
	}, nil
}

// criticalValue returns the two-sided critical value for the given sample
// size and confidence level, i.e. the (1+level)/2 quantile of the reference
// distribution.
func (e *IntervalEstimator) criticalValue(n int, confidenceLevel float64) float64 {
	p := (1 + confidenceLevel) / 2
	if n >= e.normalApproximationThreshold {
		return distuv.UnitNormal.Quantile(p)
	}
	studentsT := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	return studentsT.Quantile(p)
}

// RequiredSampleSize returns the smallest sample size for which a confidence
// interval at the given level is expected to have at most the given margin of
// error, assuming the given population standard deviation. It uses the
// standard-normal critical value, so the answer is an approximation for small
// results.
func RequiredSampleSize(marginOfError, stdDev, confidenceLevel float64) (int, error) {
	if err := checks.CheckConfidenceLevel("RequiredSampleSize", confidenceLevel); err != nil {
		return 0, err
	}
	if err := checks.CheckPositiveFloat64("RequiredSampleSize", "marginOfError", marginOfError); err != nil {
		return 0, err
	}
	if err := checks.CheckPositiveFloat64("RequiredSampleSize", "stdDev", stdDev); err != nil {
		return 0, err
	}
	z := distuv.UnitNormal.Quantile((1 + confidenceLevel) / 2)
	n := math.Pow(z*stdDev/marginOfError, 2)
	return int(math.Ceil(n)), nil
}
