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

package model

import "github.com/zintix-labs/slotmc/errs"

// MachineConfig is everything a slot machine needs to resolve a spin:
// id, reel sets (normal, and optionally bonus for free-spin mode),
// paylines, paytable, bet table, symbol categorization, and the
// free-spin grant parameters. Loaded once at startup, shared read-only
// by every worker's machine instances.
type MachineConfig struct {
	ID                   string
	Reels                map[string]ReelSet // keyed "normal", "bonus", ...
	Paylines             []Payline
	Paytable             Paytable
	Bets                 BetTable
	Symbols              SymbolSet
	WindowSize           int
	ActiveLines          int
	FreeSpinsCount       int
	FreeSpinsMultiplier  int
	FreeSpinsMinScatters int // default 3 per spec §4.3
}

// NormalReels returns the base reel set, required to exist.
func (m *MachineConfig) NormalReels() ReelSet { return m.Reels["normal"] }

// ActiveReels returns the bonus reel set when present and inFreeSpins
// is true, falling back to normal otherwise (per §4.3).
func (m *MachineConfig) ActiveReels(inFreeSpins bool) ReelSet {
	if inFreeSpins {
		if bonus, ok := m.Reels["bonus"]; ok {
			return bonus
		}
	}
	return m.NormalReels()
}

// Validate enforces the loader-time invariants §6 delegates to the
// core: non-empty reels, non-empty paylines, payout rows ≥3 long,
// a bet table with at least one currency and amount, and a positive
// window size. A scatter threshold of zero or less is set to 3; the
// threshold is not checked against the number of reels.
func (m *MachineConfig) Validate() error {
	if m.ID == "" {
		return errs.ErrConfigLoad("machine id is empty")
	}
	normal, ok := m.Reels["normal"]
	if !ok {
		return errs.ErrConfigLoad("machine " + m.ID + " has no normal reel set")
	}
	if err := normal.validate(); err != nil {
		return errs.Wrap(err, "machine "+m.ID)
	}
	if bonus, ok := m.Reels["bonus"]; ok {
		if err := bonus.validate(); err != nil {
			return errs.Wrap(err, "machine "+m.ID+" bonus reels")
		}
	}
	if len(m.Paylines) == 0 {
		return errs.ErrConfigLoad("machine " + m.ID + " has no paylines")
	}
	for _, pl := range m.Paylines {
		if len(pl) != normal.NumReels() {
			return errs.ErrConfigLoad("machine " + m.ID + " payline length mismatch")
		}
	}
	if m.ActiveLines <= 0 || m.ActiveLines > len(m.Paylines) {
		return errs.ErrConfigLoad("machine " + m.ID + " active_lines out of range")
	}
	if err := m.Paytable.Build(); err != nil {
		return errs.Wrap(err, "machine "+m.ID)
	}
	if err := m.Bets.validate(); err != nil {
		return errs.Wrap(err, "machine "+m.ID)
	}
	if m.WindowSize <= 0 {
		return errs.ErrConfigLoad("machine " + m.ID + " window_size must be positive")
	}
	if m.FreeSpinsMinScatters <= 0 {
		m.FreeSpinsMinScatters = 3
	}
	return nil
}
