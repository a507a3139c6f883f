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

package distribution

import (
	"testing"

	"github.com/zintix-labs/slotmc/model"
	"github.com/zintix-labs/slotmc/rng"
)

func TestSampleWithinBounds(t *testing.T) {
	d := model.BalanceDistribution{Mu: 100, Sigma: 50, Min: 10, Max: 200}
	r := rng.NewPCG64WithSeed(1)
	for i := 0; i < 500; i++ {
		v := Sample(d, r.Uint64)
		if v < d.Min || v > d.Max {
			t.Fatalf("Sample() = %v, out of [%v,%v]", v, d.Min, d.Max)
		}
	}
}

func TestSampleZeroSigmaReturnsClampedMu(t *testing.T) {
	d := model.BalanceDistribution{Mu: 500, Sigma: 0, Min: 10, Max: 200}
	r := rng.NewPCG64WithSeed(1)
	if got := Sample(d, r.Uint64); got != 200 {
		t.Fatalf("Sample() = %v, want clamped to max 200", got)
	}
}

func TestSampleIndependentDraws(t *testing.T) {
	d := model.BalanceDistribution{Mu: 100, Sigma: 20, Min: 0, Max: 1000}
	r := rng.NewPCG64WithSeed(2)
	a := Sample(d, r.Uint64)
	b := Sample(d, r.Uint64)
	if a == b {
		t.Fatal("two consecutive samples were identical (extremely unlikely with sigma>0)")
	}
}
