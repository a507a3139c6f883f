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

package player

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/slotmc/model"
	"github.com/zintix-labs/slotmc/oracle"
	"github.com/zintix-labs/slotmc/rng"
)

func TestRandomDecideChoosesAffordableBet(t *testing.T) {
	profile := model.PlayerProfile{
		Currency: "USD",
		Balance:  model.BalanceDistribution{Mu: 10, Sigma: 0, Min: 10, Max: 10},
	}
	cfg := RandomConfig{MinDelay: time.Second, MaxDelay: 2 * time.Second}
	r := NewRandom(profile, cfg, rng.New(rng.NewPCG64WithSeed(1)))

	obs := Observation{
		Balance:       decimal.NewFromInt(10),
		AvailableBets: []decimal.Decimal{decimal.NewFromInt(1)},
	}
	d := r.Decide(obs)
	if !d.Continue {
		t.Fatal("expected Continue=true")
	}
	if !d.Bet.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("Bet = %v, want 1", d.Bet)
	}
}

func TestRandomDecideStopsWithNoAffordableBets(t *testing.T) {
	profile := model.PlayerProfile{Currency: "USD", Balance: model.BalanceDistribution{Mu: 0, Max: 0}}
	r := NewRandom(profile, RandomConfig{}, rng.New(rng.NewPCG64WithSeed(1)))
	d := r.Decide(Observation{AvailableBets: nil})
	if d.Continue {
		t.Fatal("expected Continue=false with no affordable bets")
	}
}

func TestRandomDecideStopsOnConsecutiveLosses(t *testing.T) {
	profile := model.PlayerProfile{Currency: "USD", Balance: model.BalanceDistribution{Mu: 10, Max: 10}}
	cfg := RandomConfig{MaxConsecutiveLosses: 3}
	r := NewRandom(profile, cfg, rng.New(rng.NewPCG64WithSeed(1)))
	obs := Observation{
		Balance:         decimal.NewFromInt(10),
		AvailableBets:   []decimal.Decimal{decimal.NewFromInt(1)},
		ConsecutiveLoss: 3,
	}
	d := r.Decide(obs)
	if d.Continue {
		t.Fatal("expected termination at consecutive loss threshold")
	}
}

func TestRandomResetProducesFreshBalance(t *testing.T) {
	profile := model.PlayerProfile{Currency: "USD", Balance: model.BalanceDistribution{Mu: 100, Sigma: 20, Min: 0, Max: 1000}}
	core := rng.New(rng.NewPCG64WithSeed(1))
	r := NewRandom(profile, RandomConfig{}, core)
	first := r.Balance()
	r.Reset()
	second := r.Balance()
	if first.Equal(second) {
		t.Fatal("two resets produced identical balances (sigma>0 should differ overwhelmingly)")
	}
}

func TestV1DecideFirstSpinUsesCategorical(t *testing.T) {
	profile := model.PlayerProfile{Currency: "USD", Balance: model.BalanceDistribution{Mu: 100, Max: 100, Min: 100}}
	cfg := V1Config{
		FirstBetWeights: map[string]float64{"1": 1, "5": 1},
		MinDelay:        time.Second,
		MaxDelay:        2 * time.Second,
	}
	core := rng.New(rng.NewPCG64WithSeed(1))
	v, err := NewV1(profile, cfg, core, oracle.NewHeuristic(), nil)
	if err != nil {
		t.Fatalf("NewV1: %v", err)
	}
	obs := Observation{
		Balance:       decimal.NewFromInt(100),
		AvailableBets: []decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(5)},
	}
	d := v.Decide(obs)
	if !d.Continue {
		// heuristic oracle's stop score could plausibly trigger; only assert bet validity when continuing.
		return
	}
	found := false
	for _, b := range obs.AvailableBets {
		if b.Equal(d.Bet) {
			found = true
		}
	}
	if !found {
		t.Fatalf("first bet %v not in available bets", d.Bet)
	}
}

func TestV1RejectsBadWeights(t *testing.T) {
	profile := model.PlayerProfile{Currency: "USD", Balance: model.BalanceDistribution{Max: 1}}
	cfg := V1Config{FirstBetWeights: map[string]float64{}}
	core := rng.New(rng.NewPCG64WithSeed(1))
	if _, err := NewV1(profile, cfg, core, oracle.NewHeuristic(), nil); err == nil {
		t.Fatal("expected error building V1 with empty weight map")
	}
}
