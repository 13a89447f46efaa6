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
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ANOVAResult holds the outcome of a one-way analysis of variance.
type ANOVAResult struct {
	// Statistic is the F statistic, the ratio of the between-group to the
	// within-group mean square.
	Statistic float64
	// DFBetween is k−1 for k groups; DFWithin is N−k for N total
	// observations.
	DFBetween int
	DFWithin  int
	// PValue is the upper-tail p-value from the F distribution.
	PValue float64
	// Alpha is the significance level the decision was made at.
	Alpha float64
	// RejectNull is true iff PValue < Alpha.
	RejectNull bool
}

// OneWayANOVA tests the null hypothesis that all group means are equal.
// It requires at least two groups, at least one observation per group, and
// more observations in total than groups.
//
// Degeneracy convention: when the within-group mean square is zero (every
// group constant), the statistic is 0 with p-value 1 if all group means are
// equal, and +Inf with p-value 0 if they differ.
func OneWayANOVA(groups []Group, alpha float64) (ANOVAResult, error) {
	if err := checks.CheckAlpha("OneWayANOVA", alpha); err != nil {
		return ANOVAResult{}, err
	}
	if len(groups) < 2 {
		return ANOVAResult{}, fmt.Errorf("OneWayANOVA: got %d groups, need at least 2: %w", len(groups), checks.ErrInvalidParameter)
	}
	total := 0
	for _, g := range groups {
		if err := checks.CheckSampleSize(fmt.Sprintf("OneWayANOVA (group %q)", g.Label), len(g.Values), 1); err != nil {
			return ANOVAResult{}, err
		}
		total += len(g.Values)
	}
	k := len(groups)
	if total <= k {
		return ANOVAResult{}, fmt.Errorf("OneWayANOVA: %d observations across %d groups leave no within-group degrees of freedom: %w", total, k, checks.ErrInsufficientData)
	}

	var grandSum float64
	for _, g := range groups {
		for _, v := range g.Values {
			grandSum += v
		}
	}
	grandMean := grandSum / float64(total)

	var ssBetween, ssWithin float64
	for _, g := range groups {
		groupMean := stat.Mean(g.Values, nil)
		ssBetween += float64(len(g.Values)) * math.Pow(groupMean-grandMean, 2)
		for _, v := range g.Values {
			ssWithin += math.Pow(v-groupMean, 2)
		}
	}

	dfBetween := k - 1
	dfWithin := total - k
	msBetween := ssBetween / float64(dfBetween)
	msWithin := ssWithin / float64(dfWithin)

	result := ANOVAResult{
		DFBetween: dfBetween,
		DFWithin:  dfWithin,
		Alpha:     alpha,
	}
	switch {
	case msWithin == 0 && msBetween == 0:
		result.Statistic = 0
		result.PValue = 1
	case msWithin == 0:
		result.Statistic = math.Inf(1)
		result.PValue = 0
	default:
		result.Statistic = msBetween / msWithin
		fDist := distuv.F{D1: float64(dfBetween), D2: float64(dfWithin)}
		result.PValue = 1 - fDist.CDF(result.Statistic)
	}
	result.RejectNull = result.PValue < alpha
	return result, nil
}
