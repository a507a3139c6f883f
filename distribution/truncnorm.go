// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package distribution samples a player's initial balance from a
// truncated normal distribution: draw from N(mu, sigma) and resample
// until the value falls in [min, max]. gonum's distuv.Normal supplies
// the underlying draw; rejection sampling supplies the truncation,
// since distuv has no built-in truncated-normal type.
package distribution

import (
	"github.com/zintix-labs/slotmc/model"
	"gonum.org/v1/gonum/stat/distuv"
)

// rngSource adapts any func() uint64 to gonum's rand.Source
// interface (Uint64 only — distuv.Normal.Rand needs Float64, which
// gonum derives from Uint64 internally, but distuv also accepts a
// bare *rand.Rand; we instead implement the minimal Source contract
// gonum actually calls).
type rngSource struct {
	uint64 func() uint64
}

func (s rngSource) Uint64() uint64 { return s.uint64() }

// maxRejections bounds the resampling loop so a pathological
// configuration (min/max far outside a few sigma of mu) cannot spin
// forever; after this many misses Sample returns Mu clamped into range.
const maxRejections = 10000

// Sample draws one truncated-normal value per BalanceDistribution's
// invariant: the result always lies in [d.Min, d.Max].
func Sample(d model.BalanceDistribution, uint64Source func() uint64) float64 {
	if d.Sigma == 0 {
		return clamp(d.Mu, d.Min, d.Max)
	}
	n := distuv.Normal{
		Mu:    d.Mu,
		Sigma: d.Sigma,
		Src:   rngSource{uint64: uint64Source},
	}
	for i := 0; i < maxRejections; i++ {
		v := n.Rand()
		if v >= d.Min && v <= d.Max {
			return v
		}
	}
	return clamp(d.Mu, d.Min, d.Max)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
