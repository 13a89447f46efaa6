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
	"sort"

	"github.com/google/statistical-inference/go/checks"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Group is a named sample, e.g. the transaction amounts of one demographic
// subgroup. Groups are passed as ordered slices rather than maps so that the
// pair ordering of CompareGroups is a stable output contract; Go map
// iteration order is deliberately randomized and cannot carry it.
type Group struct {
	Label  string
	Values []float64
}

// ComparisonResult reports whether the confidence intervals of two groups
// overlap. Overlap is symmetric in the two groups.
type ComparisonResult struct {
	GroupA    string
	GroupB    string
	IntervalA IntervalResult
	IntervalB IntervalResult
	Overlap   bool
}

// GroupSummary holds per-group descriptive statistics, one row of the
// summary table produced by GroupSummaries.
type GroupSummary struct {
	Label  string
	N      int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// CompareGroups estimates a confidence interval for every group and reports,
// for every unordered pair of groups, whether the two intervals overlap.
// Pairs are emitted in input order (all pairs (i, j) with i < j, without
// repetition).
//
// If any single group cannot produce an interval the whole call fails and no
// partial results are returned; a comparison with a missing side would be
// meaningless.
func (e *IntervalEstimator) CompareGroups(groups []Group, confidenceLevel float64) ([]ComparisonResult, error) {
	if len(groups) < 2 {
		return nil, fmt.Errorf("CompareGroups: got %d groups, need at least 2: %w", len(groups), checks.ErrInvalidParameter)
	}
	intervals := make([]IntervalResult, len(groups))
	for i, g := range groups {
		interval, err := e.EstimateMeanInterval(g.Values, confidenceLevel)
		if err != nil {
			return nil, fmt.Errorf("CompareGroups: group %q: %w", g.Label, err)
		}
		intervals[i] = interval
	}
	var results []ComparisonResult
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			a, b := intervals[i], intervals[j]
			results = append(results, ComparisonResult{
				GroupA:    groups[i].Label,
				GroupB:    groups[j].Label,
				IntervalA: a,
				IntervalB: b,
				Overlap:   !(a.UpperBound < b.LowerBound || b.UpperBound < a.LowerBound),
			})
		}
	}
	return results, nil
}

// GroupSummaries computes descriptive statistics for every group, preserving
// input order. Any group with fewer than two observations fails the whole
// call with an error wrapping checks.ErrInsufficientData.
func GroupSummaries(groups []Group) ([]GroupSummary, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("GroupSummaries: got no groups, need at least 1: %w", checks.ErrInvalidParameter)
	}
	summaries := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		s, err := Summarize(g.Values)
		if err != nil {
			return nil, fmt.Errorf("GroupSummaries: group %q: %w", g.Label, err)
		}
		sorted := make([]float64, len(g.Values))
		copy(sorted, g.Values)
		sort.Float64s(sorted)
		summaries = append(summaries, GroupSummary{
			Label:  g.Label,
			N:      s.N,
			Mean:   s.Mean,
			Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
			StdDev: s.StdDev,
			Min:    floats.Min(sorted),
			Max:    floats.Max(sorted),
		})
	}
	return summaries, nil
}
