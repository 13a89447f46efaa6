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
	"math"

	"github.com/google/statistical-inference/go/checks"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultAlpha is the significance level used when TTestOptions does not
	// specify one.
	DefaultAlpha = 0.05
	// DefaultVarianceRatioThreshold is the largest ratio of the two sample
	// variances for which the pooled-variance formula is still used. Above
	// it, Welch's unequal-variance formula is used instead.
	DefaultVarianceRatioThreshold = 2.0
)

// TTestOptions contains the options necessary to run TestMeanDifference.
type TTestOptions struct {
	// Alpha is the significance level. Defaults to DefaultAlpha.
	Alpha float64
	// VarianceRatioThreshold is the variance-equality heuristic: the
	// pooled-variance formula is used when the larger sample variance is at
	// most this multiple of the smaller one. Defaults to
	// DefaultVarianceRatioThreshold.
	VarianceRatioThreshold float64
}

// TTestResult holds the outcome of an independent two-sample test of mean
// equality.
type TTestResult struct {
	// Statistic is the t statistic of the difference of means.
	Statistic float64
	// DegreesOfFreedom of the reference Student-t distribution: n₁+n₂−2 for
	// the pooled branch, the Welch–Satterthwaite approximation otherwise.
	DegreesOfFreedom float64
	// PValue is the two-sided p-value.
	PValue float64
	// EffectSize is Cohen's d, the difference of means in units of the
	// pooled standard deviation. It is always computed with the pooled
	// standard deviation, independently of which variance assumption the
	// test statistic used.
	EffectSize float64
	// Alpha is the significance level the decision was made at.
	Alpha float64
	// EqualVariance records whether the pooled-variance branch was chosen.
	EqualVariance bool
	// RejectNull is true iff PValue < Alpha.
	RejectNull bool
}

// TestMeanDifference performs an independent two-sample test of the null
// hypothesis that the two population means are equal. The variance-equality
// heuristic deterministically selects between the pooled-variance and Welch
// formulas; see TTestOptions.VarianceRatioThreshold.
//
// Degeneracy convention: when the standard error of the difference is zero
// (both samples constant), the statistic is defined as 0 with p-value 1 if
// the means are equal, and p-value 0 if they differ. Cohen's d is defined as
// 0 whenever the pooled standard deviation is zero. Zero variance is never
// an error.
func TestMeanDifference(a, b []float64, opt *TTestOptions) (TTestResult, error) {
	if opt == nil {
		opt = &TTestOptions{}
	}
	alpha := opt.Alpha
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	ratioThreshold := opt.VarianceRatioThreshold
	if ratioThreshold == 0 {
		ratioThreshold = DefaultVarianceRatioThreshold
	}
	if err := checks.CheckAlpha("TestMeanDifference", alpha); err != nil {
		return TTestResult{}, err
	}
	if err := checks.CheckPositiveFloat64("TestMeanDifference", "VarianceRatioThreshold", ratioThreshold); err != nil {
		return TTestResult{}, err
	}
	if err := checks.CheckSampleSize("TestMeanDifference (sample A)", len(a), 2); err != nil {
		return TTestResult{}, err
	}
	if err := checks.CheckSampleSize("TestMeanDifference (sample B)", len(b), 2); err != nil {
		return TTestResult{}, err
	}

	n1, n2 := float64(len(a)), float64(len(b))
	mean1, mean2 := stat.Mean(a, nil), stat.Mean(b, nil)
	var1, var2 := stat.Variance(a, nil), stat.Variance(b, nil)

	equalVariance := varianceEquality(var1, var2, ratioThreshold)

	// The pooled variance feeds Cohen's d on both branches.
	pooledVariance := ((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2)
	pooledStdDev := math.Sqrt(pooledVariance)

	var stdErr, df float64
	if equalVariance {
		stdErr = pooledStdDev * math.Sqrt(1/n1+1/n2)
		df = n1 + n2 - 2
	} else {
		se1, se2 := var1/n1, var2/n2
		stdErr = math.Sqrt(se1 + se2)
		df = math.Pow(se1+se2, 2) / (math.Pow(se1, 2)/(n1-1) + math.Pow(se2, 2)/(n2-1))
	}

	result := TTestResult{
		Alpha:         alpha,
		EqualVariance: equalVariance,
		EffectSize:    cohensD(mean1, mean2, pooledStdDev),
	}
	if stdErr == 0 {
		result.Statistic = 0
		result.DegreesOfFreedom = n1 + n2 - 2
		if mean1 == mean2 {
			result.PValue = 1
		} else {
			result.PValue = 0
		}
	} else {
		result.Statistic = (mean1 - mean2) / stdErr
		result.DegreesOfFreedom = df
		studentsT := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
		result.PValue = 2 * (1 - studentsT.CDF(math.Abs(result.Statistic)))
	}
	result.RejectNull = result.PValue < alpha
	return result, nil
}

// varianceEquality is the heuristic that decides between the pooled-variance
// and Welch formulas. Two zero variances count as equal; a single zero
// variance does not.
func varianceEquality(var1, var2, ratioThreshold float64) bool {
	lo, hi := math.Min(var1, var2), math.Max(var1, var2)
	if lo == 0 {
		return hi == 0
	}
	return hi/lo <= ratioThreshold
}

// cohensD returns the standardized mean difference, defined as 0 when the
// pooled standard deviation is 0.
func cohensD(mean1, mean2, pooledStdDev float64) float64 {
	if pooledStdDev == 0 {
		return 0
	}
	return (mean1 - mean2) / pooledStdDev
}
