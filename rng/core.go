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

package rng

import (
	"errors"
	"math"
)

var errShortSnapshot = errors.New("rng: snapshot too short")

// PRNG is the sampling + state contract every worker's random source
// must satisfy. Requiring UintN/IntN/Float64 alongside Uint64 (rather
// than deriving them at the call site) lets each implementation pick
// its own fastest bounded-sampling strategy.
type PRNG interface {
	Uint64() uint64
	Float64() float64
	UintN(uint) uint
	IntN(int) int
	Snapshot() ([]byte, error)
	Restore([]byte) error
}

// Factory builds a PRNG deterministically from a seed: same seed, same
// stream, in a given implementation and version. The simulator never
// calls an unseeded constructor — the engine derives every worker and
// machine seed from one base seed so a run is fully auditable.
type Factory interface {
	New(seed int64) PRNG
}

// DefaultFactory produces PCG64 streams.
type DefaultFactory struct{}

func (DefaultFactory) New(seed int64) PRNG { return NewPCG64WithSeed(seed) }

// FastFactory produces PCG32 streams: narrower state, cheaper per draw,
// traded precision — selected by --fast-rng for very large runs.
type FastFactory struct{}

func (FastFactory) New(seed int64) PRNG { return NewPCG32WithSeed(seed) }

// Core wraps a PRNG with the sampling helpers hot paths reach for
// repeatedly, so machine/player code never open-codes a rejection loop.
type Core struct {
	PRNG
}

func New(p PRNG) *Core { return &Core{p} }

// Pick returns a uniformly random element of src, or -1 if src is empty.
func (c *Core) Pick(src []int) int {
	if len(src) == 0 {
		return -1
	}
	return src[c.IntN(len(src))]
}

// ShuffleInts performs an unbiased in-place Fisher-Yates shuffle.
func (c *Core) ShuffleInts(src []int) {
	for i := len(src) - 1; i > 0; i-- {
		j := c.IntN(i + 1)
		src[i], src[j] = src[j], src[i]
	}
}

// ExpFloat64 draws from the standard exponential distribution via
// inverse-CDF.
func (c *Core) ExpFloat64() float64 {
	u := c.Float64()
	for u == 0 {
		u = c.Float64()
	}
	return -math.Log(u)
}

// Uint64Source adapts Core to gonum's rand.Source-shaped Uint64()
// contract, so distuv.Normal and friends can draw from the same
// per-worker stream the rest of the engine uses (see distribution/).
func (c *Core) Uint64Source() func() uint64 {
	return c.PRNG.Uint64
}
