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

// Package player implements the decision engines a session controller
// drives: a capability-based Player interface with two variants
// (random, model-driven v1), replacing the inherited-base-class
// PlayerInterface/BasePlayer hierarchy the source uses (see
// SPEC_FULL.md §9's re-architecture note) with a small interface plus
// concrete structs, no shared mutable base state.
package player

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/slotmc/model"
	"github.com/zintix-labs/slotmc/rng"
)

// Observation is what a session controller hands the player each
// turn: current balance, recent history, running totals, the
// affordable bet list, and free-spin state. It never exposes the
// player's own internal fields — decide() is a pure function of this
// snapshot plus whatever state the player keeps privately.
type Observation struct {
	Balance         decimal.Decimal
	RecentSpins     []model.SpinRecord // last up to 10, per §4.4
	TotalBet        decimal.Decimal
	TotalWin        decimal.Decimal
	TotalProfit     decimal.Decimal
	SpinsPlayed     int
	AvailableBets   []decimal.Decimal
	InFreeSpins     bool
	FreeSpinsLeft   int
	ConsecutiveLoss int
}

// Decision is a player's response to one Observation: the bet to
// place, the think-time delay to advance the logical clock by, and
// whether to continue at all.
type Decision struct {
	Bet      decimal.Decimal
	Delay    time.Duration
	Continue bool
}

// Player is the capability every profile variant implements. Reset
// re-samples a fresh initial balance and clears session-scoped state;
// it is called by the instance pool before a recycled instance starts
// a new session, never mid-session.
type Player interface {
	Decide(obs Observation) Decision
	Reset()
	Balance() decimal.Decimal
	Currency() string
}

// CoreSetter is implemented by every Player variant so the engine can
// rebind an instance borrowed from the instance pool to the new session's RNG stream
// before resampling its initial balance.
type CoreSetter interface {
	SetCore(*rng.Core)
}
