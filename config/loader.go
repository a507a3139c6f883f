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

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/zintix-labs/slotmc/errs"
	"github.com/zintix-labs/slotmc/model"
)

// Loaded is the fully validated, model-native result of a config load:
// everything the engine orchestrator needs to build catalogs.
type Loaded struct {
	Machines []model.MachineConfig
	Players  []model.PlayerProfile
	Run      RunParamsDoc
}

// Load reads path (YAML for extension .yaml/.yml, JSON for .json; any
// other extension is an error) and returns a fully validated Loaded, the same two-step
// unmarshal-then-init discipline `zintix-labs-problab/spec` uses for
// its own game settings.
func Load(path string) (*Loaded, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.ErrConfigLoad("read " + path + ": " + err.Error())
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(raw)
	case ".json":
		return ParseJSON(raw)
	default:
		return nil, errs.ErrConfigLoad("unrecognized config extension " + ext)
	}
}

// ParseYAML parses a RunConfig document from YAML bytes.
func ParseYAML(raw []byte) (*Loaded, error) {
	var doc RunConfig
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errs.Wrap(err, "unmarshal yaml config")
	}
	return build(&doc)
}

// ParseJSON parses a RunConfig document from JSON bytes.
func ParseJSON(raw []byte) (*Loaded, error) {
	var doc RunConfig
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errs.Wrap(err, "unmarshal json config")
	}
	return build(&doc)
}

func build(doc *RunConfig) (*Loaded, error) {
	if len(doc.Machines) == 0 {
		return nil, errs.ErrConfigLoad("config has no machines")
	}
	if len(doc.Players) == 0 {
		return nil, errs.ErrConfigLoad("config has no players")
	}

	machines := make([]model.MachineConfig, 0, len(doc.Machines))
	for _, md := range doc.Machines {
		mc, err := buildMachine(md)
		if err != nil {
			return nil, err
		}
		machines = append(machines, mc)
	}

	players := make([]model.PlayerProfile, 0, len(doc.Players))
	for _, pd := range doc.Players {
		pp, err := buildPlayer(pd)
		if err != nil {
			return nil, err
		}
		players = append(players, pp)
	}

	run := doc.Run
	if run.SessionsPerPair <= 0 {
		return nil, errs.ErrConfigLoad("run.sessions_per_pair must be positive")
	}
	if run.Workers <= 0 {
		run.Workers = 1
	}
	if run.OutputDir == "" {
		run.OutputDir = "./output"
	}

	return &Loaded{Machines: machines, Players: players, Run: run}, nil
}

func buildMachine(md MachineDoc) (model.MachineConfig, error) {
	toSymbols := func(ints map[string][]int) map[string][]model.Symbol {
		out := make(map[string][]model.Symbol, len(ints))
		for k, v := range ints {
			syms := make([]model.Symbol, len(v))
			for i, s := range v {
				syms[i] = model.Symbol(s)
			}
			out[k] = syms
		}
		return out
	}

	reels := map[string]model.ReelSet{
		"normal": model.NewReelSetFromKeyed(toSymbols(md.ReelsNormal)),
	}
	if len(md.ReelsBonus) > 0 {
		reels["bonus"] = model.NewReelSetFromKeyed(toSymbols(md.ReelsBonus))
	}

	paylines := make([]model.Payline, len(md.Paylines))
	for i, pl := range md.Paylines {
		paylines[i] = model.Payline(pl)
	}

	bets := model.BetTable{ByCurrency: make(map[string][]decimal.Decimal, len(md.Bets))}
	for cur, amounts := range md.Bets {
		parsed := make([]decimal.Decimal, len(amounts))
		for i, a := range amounts {
			d, err := decimal.NewFromString(a)
			if err != nil {
				return model.MachineConfig{}, errs.ErrConfigLoad("machine " + md.ID + " invalid bet amount " + a)
			}
			parsed[i] = d
		}
		bets.ByCurrency[cur] = parsed
	}

	wild := make([]model.Symbol, len(md.SymbolsWild))
	for i, s := range md.SymbolsWild {
		wild[i] = model.Symbol(s)
	}
	normal := make([]model.Symbol, len(md.SymbolsNormal))
	for i, s := range md.SymbolsNormal {
		normal[i] = model.Symbol(s)
	}

	rows := make([][]int, len(md.PaytableRows))
	copy(rows, md.PaytableRows)

	mc := model.MachineConfig{
		ID:                   md.ID,
		Reels:                reels,
		Paylines:             paylines,
		Paytable:             model.Paytable{Rows: rows},
		Bets:                 bets,
		Symbols:              model.SymbolSet{Normal: normal, Wild: wild, Scatter: model.Symbol(md.SymbolScatter)},
		WindowSize:           md.WindowSize,
		ActiveLines:          md.ActiveLines,
		FreeSpinsCount:       md.FreeSpinsCount,
		FreeSpinsMultiplier:  md.FreeSpinsMultiplier,
		FreeSpinsMinScatters: md.FreeSpinsMinScatters,
	}
	if err := mc.Validate(); err != nil {
		return model.MachineConfig{}, err
	}
	return mc, nil
}

func buildPlayer(pd PlayerDoc) (model.PlayerProfile, error) {
	pp := model.PlayerProfile{
		ID:           pd.ID,
		ModelVersion: pd.ModelVersion,
		Cluster:      pd.Cluster,
		Currency:     pd.Currency,
		Balance: model.BalanceDistribution{
			Mu:    pd.Balance.Mu,
			Sigma: pd.Balance.Sigma,
			Min:   pd.Balance.Min,
			Max:   pd.Balance.Max,
		},
		Config: pd.Config,
	}
	if err := pp.Validate(); err != nil {
		return model.PlayerProfile{}, err
	}
	return pp, nil
}
