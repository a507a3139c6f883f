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

package session

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/slotmc/machine"
	"github.com/zintix-labs/slotmc/model"
	"github.com/zintix-labs/slotmc/player"
	"github.com/zintix-labs/slotmc/rng"
)

// Scenario 6: random player exhaustion. Initial balance 10, bets [1],
// paytable always zero. Session terminates in exactly 10 spins with
// final balance 0.
func TestControllerRandomPlayerExhaustion(t *testing.T) {
	const A, B model.Symbol = 0, 1
	cfg := &model.MachineConfig{
		ID: "m",
		Reels: map[string]model.ReelSet{
			"normal": model.NewReelSetFromKeyed(map[string][]model.Symbol{
				"r0": {A}, "r1": {B}, "r2": {A}, "r3": {B}, "r4": {A},
			}),
		},
		Paylines:    []model.Payline{{0, 1, 2, 3, 4}},
		Paytable:    model.Paytable{Rows: [][]int{{1, 2, 5}, {1, 2, 5}}},
		Symbols:     model.SymbolSet{Normal: []model.Symbol{A, B}},
		Bets:        model.BetTable{ByCurrency: map[string][]decimal.Decimal{"USD": {decimal.NewFromInt(1)}}},
		WindowSize:  1,
		ActiveLines: 1,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	m := machine.New(cfg, rng.New(rng.NewPCG64WithSeed(1)))

	profile := model.PlayerProfile{
		Currency: "USD",
		Balance:  model.BalanceDistribution{Mu: 10, Min: 10, Max: 10},
	}
	p := player.NewRandom(profile, player.RandomConfig{}, rng.New(rng.NewPCG64WithSeed(2)))

	bets := model.BetTable{ByCurrency: map[string][]decimal.Decimal{
		"USD": {decimal.NewFromInt(1)},
	}}

	ctrl := &Controller{
		SessionID: "s1",
		PlayerID:  "p1",
		MachineID: "m",
		Player:    p,
		Machine:   m,
		Bets:      bets,
		Caps:      Caps{MaxSpins: 1000},
	}
	rec, _, err := ctrl.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.TotalSpins != 10 {
		t.Fatalf("TotalSpins = %d, want 10", rec.TotalSpins)
	}
	if !rec.FinalBalance.IsZero() {
		t.Fatalf("FinalBalance = %v, want 0", rec.FinalBalance)
	}
}

func TestControllerInvariantFinalBalance(t *testing.T) {
	const A model.Symbol = 0
	cfg := &model.MachineConfig{
		ID: "m2",
		Reels: map[string]model.ReelSet{
			"normal": model.NewReelSetFromKeyed(map[string][]model.Symbol{
				"r0": {A}, "r1": {A}, "r2": {A}, "r3": {A}, "r4": {A},
			}),
		},
		Paylines:    []model.Payline{{0, 1, 2, 3, 4}},
		Paytable:    model.Paytable{Rows: [][]int{{1, 2, 5}}},
		Symbols:     model.SymbolSet{Normal: []model.Symbol{A}},
		Bets:        model.BetTable{ByCurrency: map[string][]decimal.Decimal{"USD": {decimal.NewFromInt(1)}}},
		WindowSize:  1,
		ActiveLines: 1,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	m := machine.New(cfg, rng.New(rng.NewPCG64WithSeed(3)))

	profile := model.PlayerProfile{Currency: "USD", Balance: model.BalanceDistribution{Mu: 100, Min: 100, Max: 100}}
	p := player.NewRandom(profile, player.RandomConfig{}, rng.New(rng.NewPCG64WithSeed(4)))

	bets := model.BetTable{ByCurrency: map[string][]decimal.Decimal{"USD": {decimal.NewFromInt(1)}}}
	ctrl := &Controller{SessionID: "s2", Player: p, Machine: m, Bets: bets, Caps: Caps{MaxSpins: 10}}
	rec, _, err := ctrl.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := rec.InitialBalance.Add(rec.TotalProfit)
	if !rec.FinalBalance.Equal(want) {
		t.Fatalf("FinalBalance = %v, want %v (initial + profit)", rec.FinalBalance, want)
	}
}
