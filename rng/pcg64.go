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

// Package rng provides the per-worker seedable PRNG the simulator
// requires: a PCG64 core with Snapshot/Restore for reproducibility, and
// a thin Core wrapper with the sampling helpers hot paths need.
//
// The PCG algorithm is designed by Melissa O'Neill. Portions of the
// bounded random generation logic (UintN/IntN) are adapted from the Go
// standard library (math/rand), which is licensed under the BSD
// 3-Clause License.
package rng

import (
	"math/bits"
	r2 "math/rand/v2"
)

const is32bit = ^uint(0)>>32 == 0

// PCG64 is the default 64-bit-output PRNG: fast, well-distributed, and
// exposes Snapshot/Restore (built on the wrapped PCG's
// MarshalBinary/UnmarshalBinary).
type PCG64 struct {
	rng *r2.PCG
}

// NewPCG64WithSeed builds a PCG64 whose full internal state is a
// deterministic function of seed — same seed, same output stream.
func NewPCG64WithSeed(seed int64) *PCG64 {
	x := uint64(seed) ^ 0x9e3779b97f4a7c15
	hi := splitmix64(x)
	lo := splitmix64(x ^ 0xDA942042E4DD58B5)
	return &PCG64{rng: r2.NewPCG(hi, lo)}
}

func (r *PCG64) Uint64() uint64 { return r.rng.Uint64() }

func (r *PCG64) UintN(max uint) uint {
	if max == 0 {
		return 0
	}
	return uint(r.uint64n(uint64(max)))
}

func (r *PCG64) IntN(max int) int {
	if max <= 0 {
		return -1
	}
	return int(r.uint64n(uint64(max)))
}

// Float64 returns a [0,1) value at 53-bit mantissa precision.
func (r *PCG64) Float64() float64 {
	return float64(r.Uint64()<<11>>11) / (1 << 53)
}

func (r *PCG64) Restore(data []byte) error { return r.rng.UnmarshalBinary(data) }
func (r *PCG64) Snapshot() ([]byte, error) { return r.rng.MarshalBinary() }

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

func (r *PCG64) uint64n(n uint64) uint64 {
	if is32bit && uint64(uint32(n)) == n {
		return uint64(r.uint32n(uint32(n)))
	}
	if n&(n-1) == 0 {
		return r.Uint64() & (n - 1)
	}
	hi, lo := bits.Mul64(r.Uint64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(r.Uint64(), n)
		}
	}
	return hi
}

func (r *PCG64) uint32n(n uint32) uint32 {
	if n&(n-1) == 0 {
		return uint32(r.Uint64()) & (n - 1)
	}
	x := r.Uint64()
	lo1a, lo0 := bits.Mul32(uint32(x), n)
	hi, lo1b := bits.Mul32(uint32(x>>32), n)
	lo1, c := bits.Add32(lo1a, lo1b, 0)
	hi += c
	if lo1 == 0 && lo0 < n {
		n64 := uint64(n)
		thresh := uint32(-n64 % n64)
		for lo1 == 0 && lo0 < thresh {
			x := r.Uint64()
			lo1a, lo0 = bits.Mul32(uint32(x), n)
			hi, lo1b = bits.Mul32(uint32(x>>32), n)
			lo1, c = bits.Add32(lo1a, lo1b, 0)
			hi += c
		}
	}
	return hi
}
