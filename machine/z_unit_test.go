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

package machine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/slotmc/model"
	"github.com/zintix-labs/slotmc/rng"
)

func trivialWinConfig() *model.MachineConfig {
	const A model.Symbol = 0
	cfg := &model.MachineConfig{
		ID: "trivial",
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
		panic(err)
	}
	return cfg
}

func TestMachineSpinTrivialWin(t *testing.T) {
	cfg := trivialWinConfig()
	m := New(cfg, rng.New(rng.NewPCG64WithSeed(1)))
	res, err := m.Spin(decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	if !res.WinAmount.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("WinAmount = %v, want 5", res.WinAmount)
	}
	if len(res.Grid) != 5 {
		t.Fatalf("grid length = %d, want 5", len(res.Grid))
	}
}

func TestMachineSpinRejectsNegativeBet(t *testing.T) {
	cfg := trivialWinConfig()
	m := New(cfg, rng.New(rng.NewPCG64WithSeed(1)))
	if _, err := m.Spin(decimal.NewFromInt(-1)); err == nil {
		t.Fatal("expected error for negative bet")
	}
}

func scatterConfig() *model.MachineConfig {
	const A, S model.Symbol = 0, 1
	cfg := &model.MachineConfig{
		ID: "scatter",
		Reels: map[string]model.ReelSet{
			"normal": model.NewReelSetFromKeyed(map[string][]model.Symbol{
				"r0": {S}, "r1": {A}, "r2": {S}, "r3": {A}, "r4": {S},
			}),
		},
		Paylines:             []model.Payline{{0, 1, 2, 3, 4}},
		Paytable:             model.Paytable{Rows: [][]int{{1, 2, 5}}},
		Symbols:              model.SymbolSet{Normal: []model.Symbol{A}, Scatter: S},
		Bets:                 model.BetTable{ByCurrency: map[string][]decimal.Decimal{"USD": {decimal.NewFromInt(1)}}},
		WindowSize:           1,
		ActiveLines:          1,
		FreeSpinsCount:       5,
		FreeSpinsMultiplier:  2,
		FreeSpinsMinScatters: 3,
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func TestMachineSpinTriggersFreeSpins(t *testing.T) {
	cfg := scatterConfig()
	m := New(cfg, rng.New(rng.NewPCG64WithSeed(1)))
	res, err := m.Spin(decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	if !res.TriggerFreeSpins {
		t.Fatal("expected free spins to trigger with scatter on 3 columns")
	}
	if res.FreeSpinsRemaining != 5 {
		t.Fatalf("FreeSpinsRemaining = %d, want 5", res.FreeSpinsRemaining)
	}
	if res.InFreeSpins {
		t.Fatal("the triggering spin itself was played in base mode and must report InFreeSpins=false")
	}
}

func TestMachineSpinNoRetriggerDuringFreeSpins(t *testing.T) {
	cfg := scatterConfig()
	m := New(cfg, rng.New(rng.NewPCG64WithSeed(1)))
	if _, err := m.Spin(decimal.NewFromInt(1)); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	res, err := m.Spin(decimal.Zero)
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	if res.TriggerFreeSpins {
		t.Fatal("free spins must not re-trigger while already in free-spin mode")
	}
	if res.FreeSpinsRemaining != 4 {
		t.Fatalf("FreeSpinsRemaining = %d, want 4", res.FreeSpinsRemaining)
	}
	if !res.InFreeSpins {
		t.Fatal("a genuine free spin must report InFreeSpins=true")
	}
}

func TestMachineResetClearsFreeSpinState(t *testing.T) {
	cfg := scatterConfig()
	m := New(cfg, rng.New(rng.NewPCG64WithSeed(1)))
	if _, err := m.Spin(decimal.NewFromInt(1)); err != nil {
		t.Fatalf("Spin: %v", err)
	}
	m.Reset()
	if m.state.InFreeSpins {
		t.Fatal("Reset did not clear free-spin state")
	}
}
