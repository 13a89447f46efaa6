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
	"errors"
	"testing"

	"github.com/google/statistical-inference/go/checks"
	"github.com/google/statistical-inference/go/stattestutils"
)

// Both samples have variance 1.3; the pooled branch applies and the ten-unit
// difference of means yields t = −10/√(1.3·(1/5+1/5)) ≈ −13.8675 with 8
// degrees of freedom, a p-value far below 0.05, and Cohen's d = −10/√1.3 ≈
// −8.7706.
func TestTestMeanDifferencePooledScenario(t *testing.T) {
	a := []float64{10, 12, 11, 13, 12}
	b := []float64{20, 22, 21, 23, 22}
	got, err := TestMeanDifference(a, b, nil)
	if err != nil {
		t.Fatalf("TestMeanDifference: got unexpected error %v", err)
	}
	if !got.EqualVariance {
		t.Errorf("TestMeanDifference: got EqualVariance false, want true for identical variances")
	}
	if !stattestutils.NearlyEqual(got.Statistic, -13.8675, 1e-3) {
		t.Errorf("TestMeanDifference: got statistic %f, want ≈ -13.8675", got.Statistic)
	}
	if got.DegreesOfFreedom != 8.0 {
		t.Errorf("TestMeanDifference: got %f degrees of freedom, want 8", got.DegreesOfFreedom)
	}
	if got.PValue >= 1e-5 {
		t.Errorf("TestMeanDifference: got p-value %e, want it far below 0.05", got.PValue)
	}
	if !got.RejectNull {
		t.Errorf("TestMeanDifference: got RejectNull false, want true at alpha %f", got.Alpha)
	}
	if !stattestutils.NearlyEqual(got.EffectSize, -8.7706, 1e-3) {
		t.Errorf("TestMeanDifference: got effect size %f, want ≈ -8.7706", got.EffectSize)
	}
}

// A variance ratio far above the threshold selects Welch's formula, whose
// Welch–Satterthwaite degrees of freedom are non-integral: ≈ 4.0015 here,
// against 13 for the pooled branch.
func TestTestMeanDifferenceWelchBranch(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	b := []float64{100, 200, 300, 400, 500}
	got, err := TestMeanDifference(a, b, nil)
	if err != nil {
		t.Fatalf("TestMeanDifference: got unexpected error %v", err)
	}
	if got.EqualVariance {
		t.Errorf("TestMeanDifference: got EqualVariance true, want false for strongly unequal variances")
	}
	if !stattestutils.NearlyEqual(got.DegreesOfFreedom, 4.0015, 1e-3) {
		t.Errorf("TestMeanDifference: got %f degrees of freedom, want ≈ 4.0015", got.DegreesOfFreedom)
	}
	if !got.RejectNull {
		t.Errorf("TestMeanDifference: got RejectNull false, want true")
	}
}

// Cohen's d always uses the pooled standard deviation, even when the test
// statistic came from Welch's formula.
func TestTestMeanDifferenceEffectSizeUsesPooledStdDev(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	b := []float64{100, 200, 300, 400, 500}
	got, err := TestMeanDifference(a, b, nil)
	if err != nil {
		t.Fatalf("TestMeanDifference: got unexpected error %v", err)
	}
	// Pooled variance: (9·9.1667 + 4·25000) / 13 ≈ 7698.72.
	wantEffectSize := (5.5 - 300.0) / 87.7423
	if !stattestutils.NearlyEqual(got.EffectSize, wantEffectSize, 1e-3) {
		t.Errorf("TestMeanDifference: got effect size %f, want ≈ %f from the pooled standard deviation",
			got.EffectSize, wantEffectSize)
	}
}

func TestTestMeanDifferenceDegenerateSamples(t *testing.T) {
	for _, tc := range []struct {
		desc           string
		a, b           []float64
		wantPValue     float64
		wantRejectNull bool
	}{
		{"constant samples with equal means",
			[]float64{5, 5, 5},
			[]float64{5, 5, 5},
			1.0,
			false},
		{"constant samples with different means",
			[]float64{5, 5, 5},
			[]float64{7, 7, 7},
			0.0,
			true},
	} {
		got, err := TestMeanDifference(tc.a, tc.b, nil)
		if err != nil {
			t.Fatalf("TestMeanDifference: when %s got unexpected error %v", tc.desc, err)
		}
		if got.Statistic != 0.0 {
			t.Errorf("TestMeanDifference: when %s got statistic %f, want 0 by convention", tc.desc, got.Statistic)
		}
		if got.PValue != tc.wantPValue {
			t.Errorf("TestMeanDifference: when %s got p-value %f, want %f", tc.desc, got.PValue, tc.wantPValue)
		}
		if got.RejectNull != tc.wantRejectNull {
			t.Errorf("TestMeanDifference: when %s got RejectNull %t, want %t", tc.desc, got.RejectNull, tc.wantRejectNull)
		}
		if got.EffectSize != 0.0 {
			t.Errorf("TestMeanDifference: when %s got effect size %f, want 0 by convention", tc.desc, got.EffectSize)
		}
	}
}

func TestTestMeanDifferenceSymmetry(t *testing.T) {
	a := []float64{10, 12, 11, 13, 12}
	b := []float64{20, 22, 21, 23, 22}
	forward, err := TestMeanDifference(a, b, nil)
	if err != nil {
		t.Fatalf("TestMeanDifference: got unexpected error %v", err)
	}
	backward, err := TestMeanDifference(b, a, nil)
	if err != nil {
		t.Fatalf("TestMeanDifference: got unexpected error %v", err)
	}
	if !stattestutils.NearlyEqual(forward.Statistic, -backward.Statistic, defaultTolerance) {
		t.Errorf("TestMeanDifference: statistic for (a, b) is %f and for (b, a) is %f, want them negated",
			forward.Statistic, backward.Statistic)
	}
	if !stattestutils.NearlyEqual(forward.PValue, backward.PValue, defaultTolerance) {
		t.Errorf("TestMeanDifference: p-value for (a, b) is %f and for (b, a) is %f, want them equal",
			forward.PValue, backward.PValue)
	}
}

func TestTestMeanDifferenceDefaultOptions(t *testing.T) {
	got, err := TestMeanDifference([]float64{1, 2, 3}, []float64{2, 3, 4}, nil)
	if err != nil {
		t.Fatalf("TestMeanDifference: got unexpected error %v", err)
	}
	if got.Alpha != DefaultAlpha {
		t.Errorf("TestMeanDifference: got alpha %f, want the default %f", got.Alpha, DefaultAlpha)
	}
}

func TestTestMeanDifferenceArgumentErrors(t *testing.T) {
	valid := []float64{1, 2, 3}
	for _, tc := range []struct {
		desc    string
		a, b    []float64
		opt     *TTestOptions
		wantErr error
	}{
		{"sample A of size one",
			[]float64{1},
			valid,
			nil,
			checks.ErrInsufficientData},
		{"sample B of size one",
			valid,
			[]float64{1},
			nil,
			checks.ErrInsufficientData},
		{"empty sample A",
			nil,
			valid,
			nil,
			checks.ErrInsufficientData},
		{"alpha of one",
			valid,
			valid,
			&TTestOptions{Alpha: 1},
			checks.ErrInvalidParameter},
		{"negative alpha",
			valid,
			valid,
			&TTestOptions{Alpha: -0.05},
			checks.ErrInvalidParameter},
		{"negative variance ratio threshold",
			valid,
			valid,
			&TTestOptions{VarianceRatioThreshold: -1},
			checks.ErrInvalidParameter},
	} {
		if _, err := TestMeanDifference(tc.a, tc.b, tc.opt); !errors.Is(err, tc.wantErr) {
			t.Errorf("TestMeanDifference: when %s got %v, want error wrapping %v", tc.desc, err, tc.wantErr)
		}
	}
}
