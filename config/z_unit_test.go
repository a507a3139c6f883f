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

package config

import "testing"

const validYAML = `
machines:
  - id: "wild-classic"
    reels_normal:
      "0": [0, 1, 2, 3, 4]
      "1": [0, 1, 2, 3, 4]
      "2": [0, 1, 2, 3, 4]
    paylines:
      - [1, 1, 1]
    paytable_rows:
      - [2, 5, 10]
      - [3, 8, 20]
    bets:
      USD: ["1.00", "2.00", "5.00"]
    symbols_normal: [0, 1]
    symbols_wild: [2]
    symbol_scatter: 3
    window_size: 3
    active_lines: 1
players:
  - id: "casual"
    model_version: "random"
    cluster: "default"
    currency: "USD"
    balance:
      mu: 100
      sigma: 20
      min: 10
      max: 500
run:
  sessions_per_pair: 10
  base_seed: 42
  max_spins: 500
  workers: 4
`

func TestParseYAMLValidConfig(t *testing.T) {
	loaded, err := ParseYAML([]byte(validYAML))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if len(loaded.Machines) != 1 {
		t.Fatalf("len(Machines) = %d, want 1", len(loaded.Machines))
	}
	if len(loaded.Players) != 1 {
		t.Fatalf("len(Players) = %d, want 1", len(loaded.Players))
	}
	if loaded.Run.Workers != 4 {
		t.Fatalf("Run.Workers = %d, want 4", loaded.Run.Workers)
	}
	if loaded.Machines[0].NormalReels().NumReels() != 3 {
		t.Fatalf("NumReels = %d, want 3", loaded.Machines[0].NormalReels().NumReels())
	}
}

func TestParseYAMLRejectsNoMachines(t *testing.T) {
	_, err := ParseYAML([]byte("players:\n  - id: p1\nrun:\n  sessions_per_pair: 1\n"))
	if err == nil {
		t.Fatal("expected error for config with no machines")
	}
}

func TestParseYAMLRejectsBadBetAmount(t *testing.T) {
	bad := `
machines:
  - id: "m1"
    reels_normal:
      "0": [0, 1]
    paylines:
      - [0]
    paytable_rows:
      - [2, 5, 10]
    bets:
      USD: ["not-a-number"]
    symbols_normal: [0]
    window_size: 1
    active_lines: 1
players:
  - id: "p1"
    model_version: "random"
    currency: "USD"
    balance: { mu: 10, sigma: 0, min: 10, max: 10 }
run:
  sessions_per_pair: 1
`
	_, err := ParseYAML([]byte(bad))
	if err == nil {
		t.Fatal("expected error for unparseable bet amount")
	}
}

func TestParseYAMLDefaultsOutputDir(t *testing.T) {
	loaded, err := ParseYAML([]byte(validYAML))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if loaded.Run.OutputDir == "" {
		t.Fatal("expected default output dir to be set")
	}
}
