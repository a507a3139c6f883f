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

// Package machine composes a reel set and a paytable into something
// that can resolve one spin: sample a grid, evaluate every active
// payline, and track free-spin sub-mode state across the calls a
// session makes to it.
//
// A Machine is not safe for concurrent Spin calls — like the teacher's
// Machine, it carries reusable request/result buffers on the hot path.
// Concurrent simulation runs one Machine instance per worker, borrowed
// from the instance pool (see package pool).
package machine

import (
	"github.com/shopspring/decimal"
	"github.com/zintix-labs/slotmc/errs"
	"github.com/zintix-labs/slotmc/model"
	"github.com/zintix-labs/slotmc/payline"
	"github.com/zintix-labs/slotmc/rng"
)

// State is a machine's free-spin sub-mode, reset whenever the instance
// pool recycles it back for a new session.
type State struct {
	InFreeSpins        bool
	FreeSpinsRemaining int
}

func (s *State) reset() { *s = State{} }

// Machine resolves spins against one MachineConfig using one Core RNG
// stream. Config is shared read-only across every Machine instance
// bound to the same machine id; Core and State are exclusive to this
// instance.
type Machine struct {
	ID    string
	cfg   *model.MachineConfig
	core  *rng.Core
	eval  *payline.Evaluator
	state State

	grid []model.Symbol // reused scratch buffer, len == numReels*windowSize
}

// New builds a machine bound to cfg, drawing from core for every
// sample it needs. cfg must already have passed Validate.
func New(cfg *model.MachineConfig, core *rng.Core) *Machine {
	eval := payline.NewEvaluator(cfg.Symbols, &cfg.Paytable)
	numReels := cfg.NormalReels().NumReels()
	return &Machine{
		ID:   cfg.ID,
		cfg:  cfg,
		core: core,
		eval: eval,
		grid: make([]model.Symbol, numReels*cfg.WindowSize),
	}
}

// Reset clears free-spin state; called by the instance pool before an
// instance is returned to a new borrower.
func (m *Machine) Reset() { m.state.reset() }

// SetCore rebinds the machine to a new RNG stream. The engine calls
// this after every borrow from the instance pool so a pooled Machine reused across many
// sessions never continues drawing from a prior session's stream.
func (m *Machine) SetCore(core *rng.Core) { m.core = core }

// SpinResult is what one call to Spin produces: the win multiplier
// (already applied to bet), free-spin transition flags, and the grid
// that produced it (for optional raw recording).
type SpinResult struct {
	Grid               []model.Symbol
	WinAmount          decimal.Decimal
	TriggerFreeSpins   bool
	FreeSpinsRemaining int
	InFreeSpins        bool
	Lines              []payline.LineResult
}

// assembleGrid samples a fresh window from every reel in the active
// reel set into m.grid, row-major: index = reel*windowSize + row.
func (m *Machine) assembleGrid() {
	reels := m.cfg.ActiveReels(m.state.InFreeSpins)
	ws := m.cfg.WindowSize
	for reel, strip := range reels.Strips {
		start := m.core.IntN(strip.Len())
		for row := 0; row < ws; row++ {
			m.grid[reel*ws+row] = strip.At(start + row)
		}
	}
}

// Spin resolves one spin at the given bet amount. In free-spin mode
// the wager passed in is conventionally zero (a free spin is taken at
// zero wager per the glossary); the multiplier is applied to whatever
// amount is passed so callers stay in control of that convention.
// It implements §4.3: on a base-play trigger it grants free spins; in
// free-spin mode wins are scaled by FreeSpinsMultiplier and
// re-triggering is disabled, matching the preserved source behavior.
func (m *Machine) Spin(bet decimal.Decimal) (*SpinResult, error) {
	if bet.IsNegative() {
		return nil, errs.ErrInvalidBet("bet amount must not be negative")
	}
	m.assembleGrid()

	numReels := m.cfg.NormalReels().NumReels()
	total, lines := m.eval.EvaluateSpin(m.grid, m.cfg.Paylines, m.cfg.ActiveLines)
	win := bet.Mul(decimal.NewFromInt(int64(total)))

	wasInFreeSpins := m.state.InFreeSpins
	if wasInFreeSpins {
		win = win.Mul(decimal.NewFromInt(int64(m.cfg.FreeSpinsMultiplier)))
	}

	triggered := false
	if !wasInFreeSpins {
		ok, _ := payline.ScatterTrigger(m.grid, m.cfg.Symbols.Scatter, numReels, m.cfg.WindowSize, m.cfg.FreeSpinsMinScatters)
		if ok {
			triggered = true
			m.state.InFreeSpins = true
			m.state.FreeSpinsRemaining = m.cfg.FreeSpinsCount
		}
	}

	if wasInFreeSpins {
		m.state.FreeSpinsRemaining--
		if m.state.FreeSpinsRemaining <= 0 {
			m.state.InFreeSpins = false
			m.state.FreeSpinsRemaining = 0
		}
	}

	gridCopy := make([]model.Symbol, len(m.grid))
	copy(gridCopy, m.grid)

	return &SpinResult{
		Grid:               gridCopy,
		WinAmount:          win,
		TriggerFreeSpins:   triggered,
		FreeSpinsRemaining: m.state.FreeSpinsRemaining,
		InFreeSpins:        wasInFreeSpins,
		Lines:              lines,
	}, nil
}
