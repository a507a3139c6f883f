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

// Package config loads the run configuration (machine catalogs, player
// profiles, and run-wide parameters) from YAML or JSON into the
// model package's types.
package config

// RunConfig is the top-level document `slotsim --config` points at.
type RunConfig struct {
	Machines []MachineDoc `yaml:"machines" json:"machines"`
	Players  []PlayerDoc  `yaml:"players"  json:"players"`
	Run      RunParamsDoc `yaml:"run"      json:"run"`
}

// MachineDoc mirrors model.MachineConfig field-for-field, but with
// YAML-friendly shapes: symbol lists as plain ints, bets as decimal
// strings (so "1.50" round-trips exactly), and reel strips as a
// name-keyed map exactly as model.NewReelSetFromKeyed expects.
type MachineDoc struct {
	ID                   string              `yaml:"id"                       json:"id"`
	ReelsNormal          map[string][]int    `yaml:"reels_normal"              json:"reels_normal"`
	ReelsBonus           map[string][]int    `yaml:"reels_bonus,omitempty"     json:"reels_bonus,omitempty"`
	Paylines             [][]int             `yaml:"paylines"                  json:"paylines"`
	PaytableRows         [][]int             `yaml:"paytable_rows"             json:"paytable_rows"`
	Bets                 map[string][]string `yaml:"bets"                      json:"bets"`
	SymbolsNormal        []int               `yaml:"symbols_normal"            json:"symbols_normal"`
	SymbolsWild          []int               `yaml:"symbols_wild"              json:"symbols_wild"`
	SymbolScatter        int                 `yaml:"symbol_scatter"            json:"symbol_scatter"`
	WindowSize           int                 `yaml:"window_size"               json:"window_size"`
	ActiveLines          int                 `yaml:"active_lines"              json:"active_lines"`
	FreeSpinsCount       int                 `yaml:"free_spins_count"          json:"free_spins_count"`
	FreeSpinsMultiplier  int                 `yaml:"free_spins_multiplier"     json:"free_spins_multiplier"`
	FreeSpinsMinScatters int                 `yaml:"free_spins_min_scatters"   json:"free_spins_min_scatters"`
}

// PlayerDoc mirrors model.PlayerProfile.
type PlayerDoc struct {
	ID           string             `yaml:"id"            json:"id"`
	ModelVersion string             `yaml:"model_version"  json:"model_version"`
	Cluster      string             `yaml:"cluster"        json:"cluster"`
	Currency     string             `yaml:"currency"       json:"currency"`
	Balance      BalanceDoc         `yaml:"balance"        json:"balance"`
	Config       map[string]any     `yaml:"config,omitempty" json:"config,omitempty"`
}

// BalanceDoc mirrors model.BalanceDistribution.
type BalanceDoc struct {
	Mu    float64 `yaml:"mu"    json:"mu"`
	Sigma float64 `yaml:"sigma" json:"sigma"`
	Min   float64 `yaml:"min"   json:"min"`
	Max   float64 `yaml:"max"   json:"max"`
}

// RunParamsDoc configures the distributor, executor and sink.
type RunParamsDoc struct {
	SessionsPerPair   int    `yaml:"sessions_per_pair"    json:"sessions_per_pair"`
	BaseSeed          int64  `yaml:"base_seed"            json:"base_seed"`
	MaxSpins          int    `yaml:"max_spins"            json:"max_spins"`
	MaxWallSeconds    int64  `yaml:"max_wall_seconds"     json:"max_wall_seconds"`
	MaxLogicalSeconds float64 `yaml:"max_logical_seconds" json:"max_logical_seconds"`
	Workers           int    `yaml:"workers"              json:"workers"`
	OutputDir         string `yaml:"output_dir"           json:"output_dir"`
	BatchWriteSize    int    `yaml:"batch_write_size"     json:"batch_write_size"`
	RawSpinBuffer     int    `yaml:"raw_spin_buffer"      json:"raw_spin_buffer"`
	RecordRawSpins    bool   `yaml:"record_raw_spins"     json:"record_raw_spins"`
}
