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

// Package checks contains input validation for the statistical inference
// library.
//
// All validation failures wrap one of two sentinel errors so that callers can
// classify them with errors.Is: ErrInsufficientData for samples that are too
// small to support the requested statistic, and ErrInvalidParameter for
// configuration values that violate their contract. The label argument of
// each check names the calling operation and is included in the error
// message.
package checks

import (
	"errors"
	"fmt"
	"math"
)

// ErrInsufficientData indicates that a sample does not contain enough
// observations to compute the requested statistic.
var ErrInsufficientData = errors.New("insufficient data")

// ErrInvalidParameter indicates that a configuration value violates its
// contract, e.g. a confidence level outside the open interval (0,1).
var ErrInvalidParameter = errors.New("invalid parameter")

// CheckSampleSize returns an error wrapping ErrInsufficientData if a sample
// with n observations cannot support an operation that needs at least min of
// them.
func CheckSampleSize(label string, n, min int) error {
	if n < min {
		return fmt.Errorf("%s: sample has %d observations, need at least %d: %w", label, n, min, ErrInsufficientData)
	}
	return nil
}

// CheckConfidenceLevel returns an error wrapping ErrInvalidParameter if level
// is not strictly between 0 and 1.
func CheckConfidenceLevel(label string, level float64) error {
	if math.IsNaN(level) || level <= 0 || level >= 1 {
		return fmt.Errorf("%s: confidence level is %f, must be strictly between 0 and 1: %w", label, level, ErrInvalidParameter)
	}
	return nil
}

// CheckAlpha returns an error wrapping ErrInvalidParameter if the
// significance level alpha is not strictly between 0 and 1.
func CheckAlpha(label string, alpha float64) error {
	if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
		return fmt.Errorf("%s: alpha is %f, must be strictly between 0 and 1: %w", label, alpha, ErrInvalidParameter)
	}
	return nil
}

// CheckPositive returns an error wrapping ErrInvalidParameter if the named
// integer parameter is not at least 1.
func CheckPositive(label, name string, v int) error {
	if v < 1 {
		return fmt.Errorf("%s: %s is %d, must be at least 1: %w", label, name, v, ErrInvalidParameter)
	}
	return nil
}

// CheckPositiveFloat64 returns an error wrapping ErrInvalidParameter if the
// named float64 parameter is not strictly positive and finite.
func CheckPositiveFloat64(label, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%s: %s is %f, must be strictly positive and finite: %w", label, name, v, ErrInvalidParameter)
	}
	return nil
}
