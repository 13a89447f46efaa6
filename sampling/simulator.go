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

// Package sampling draws repeated sub-samples from a population to produce
// empirical sampling distributions: the Central Limit Theorem demonstration
// of the sample mean and percentile-bootstrap confidence intervals.
//
// Randomness is owned by the Simulator, never by process-wide state. Every
// resample is driven by its own generator derived from the configured seed
// and the resample index, so runs with an explicit seed are bit-for-bit
// reproducible at any parallelism.
package sampling

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	log "github.com/golang/glog"
	"github.com/google/statistical-inference/go/checks"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// Run records one sampling-distribution simulation. It is created fresh per
// invocation and never mutated after being returned.
type Run struct {
	// SampleSize is the size of each sub-sample.
	SampleSize int
	// NumResamples is the number of sub-samples drawn.
	NumResamples int
	// MeanOfMeans is the mean of the recorded sample means.
	MeanOfMeans float64
	// StdDevOfMeans is the unbiased sample standard deviation of the
	// recorded sample means; 0 when only one resample was drawn.
	StdDevOfMeans float64
	// SampleMeans holds the mean of each sub-sample, in resample order.
	SampleMeans []float64
}

// SimulatorOptions contains the options necessary to initialize a Simulator.
type SimulatorOptions struct {
	// Seed makes the simulation reproducible. When nil, a seed is drawn from
	// the operating system's entropy source and runs are not reproducible.
	Seed *uint64
	// WithReplacement forces bootstrap-style resampling even when the
	// sub-sample size is smaller than the population. When false, sub-samples
	// smaller than the population are drawn without replacement.
	WithReplacement bool
	// Parallelism is the number of goroutines the resampling loop is
	// partitioned across. Defaults to 1. Results are independent of the
	// parallelism level.
	Parallelism int
}

// Simulator draws repeated sub-samples from a population.
//
// Safe for concurrent use: it holds only immutable configuration, and each
// resample derives its own generator.
type Simulator struct {
	seed            uint64
	withReplacement bool
	parallelism     int
}

// NewSimulator returns a new Simulator.
func NewSimulator(opt *SimulatorOptions) (*Simulator, error) {
	if opt == nil {
		opt = &SimulatorOptions{}
	}
	parallelism := opt.Parallelism
	if parallelism == 0 {
		parallelism = 1
	}
	if parallelism < 0 {
		return nil, fmt.Errorf("NewSimulator: Parallelism is %d, must be positive: %w", opt.Parallelism, checks.ErrInvalidParameter)
	}
	var seed uint64
	if opt.Seed != nil {
		seed = *opt.Seed
	} else {
		seed = entropySeed()
	}
	return &Simulator{
		seed:            seed,
		withReplacement: opt.WithReplacement,
		parallelism:     parallelism,
	}, nil
}

// SampleMeans draws numResamples sub-samples of size sampleSize from the
// population and records the mean of each. Sub-samples are drawn without
// replacement unless the Simulator was configured for replacement or the
// sub-sample size reaches the population size, in which case resampling
// switches to with-replacement (bootstrap) mode.
//
// With a fixed seed, repeated calls with identical inputs return identical
// SampleMeans sequences.
func (s *Simulator) SampleMeans(population []float64, sampleSize, numResamples int) (*Run, error) {
	if err := checks.CheckPositive("SampleMeans", "sampleSize", sampleSize); err != nil {
		return nil, err
	}
	if err := checks.CheckPositive("SampleMeans", "numResamples", numResamples); err != nil {
		return nil, err
	}
	if err := checks.CheckSampleSize("SampleMeans (population)", len(population), 1); err != nil {
		return nil, err
	}
	withReplacement := s.withReplacement
	if !withReplacement {
		if sampleSize > len(population) {
			return nil, fmt.Errorf("SampleMeans: sampleSize %d exceeds population size %d in without-replacement mode: %w", sampleSize, len(population), checks.ErrInvalidParameter)
		}
		if sampleSize == len(population) {
			// Drawing the whole population without replacement is the
			// identity permutation; every sample mean would equal the
			// population mean.
			log.Warningf("SampleMeans: sampleSize %d equals population size, switching to with-replacement resampling", sampleSize)
			withReplacement = true
		}
	}

	means := make([]float64, numResamples)
	s.forEachResample(numResamples, func(i int) {
		rng := rand.New(rand.NewSource(subSeed(s.seed, uint64(i))))
		means[i] = resampleMean(rng, population, sampleSize, withReplacement)
	})

	run := &Run{
		SampleSize:   sampleSize,
		NumResamples: numResamples,
		MeanOfMeans:  stat.Mean(means, nil),
		SampleMeans:  means,
	}
	if numResamples > 1 {
		run.StdDevOfMeans = stat.StdDev(means, nil)
	}
	return run, nil
}

// forEachResample invokes fn for every resample index, partitioned across
// the configured number of goroutines. Each index is visited exactly once,
// so fn may write to index-addressed shared storage without locking.
func (s *Simulator) forEachResample(n int, fn func(i int)) {
	workers := s.parallelism
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// resampleMean draws one sub-sample of size k and returns its mean.
func resampleMean(rng *rand.Rand, population []float64, k int, withReplacement bool) float64 {
	n := len(population)
	var sum float64
	if withReplacement {
		for j := 0; j < k; j++ {
			sum += population[rng.Intn(n)]
		}
		return sum / float64(k)
	}
	// Floyd's algorithm samples k distinct indexes in O(k) expected time,
	// without permuting or copying the population.
	chosen := make(map[int]struct{}, k)
	for j := n - k; j < n; j++ {
		idx := rng.Intn(j + 1)
		if _, ok := chosen[idx]; ok {
			idx = j
		}
		chosen[idx] = struct{}{}
		sum += population[idx]
	}
	return sum / float64(k)
}

// subSeed derives an independent per-resample seed by running the base seed
// and resample index through the splitmix64 finalizer. Sharing one mutable
// generator across resamples would make results depend on scheduling order.
func subSeed(seed, index uint64) uint64 {
	z := seed + (index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// entropySeed returns a seed read from the operating system's entropy
// source, for simulations that do not need reproducibility.
func entropySeed() uint64 {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		log.Fatalf("out of randomness, should never happen: %v", err)
	}
	return binary.LittleEndian.Uint64(b[:])
}
