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

// Package session drives the player<->machine interaction loop.
// Controller is the sole writer of the SessionRecord it produces; the
// player and machine it holds are used exclusively within one Run
// call, never shared across concurrent sessions (§4.4).
package session

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/slotmc/machine"
	"github.com/zintix-labs/slotmc/model"
	"github.com/zintix-labs/slotmc/player"
)

// Caps bounds a session's progress independent of what the player
// decides, per §4.4's termination inputs.
type Caps struct {
	MaxSpins        int
	MaxWallDuration time.Duration
	MaxLogicalTime  time.Duration
}

// Controller runs one session to completion and returns its record
// plus, if raw recording is enabled, every spin taken.
type Controller struct {
	SessionID string
	PlayerID  string
	MachineID string
	Player    player.Player
	Machine   *machine.Machine
	Bets      model.BetTable
	Caps      Caps
	RecordRaw bool
}

// Run executes the full session loop (§4.4, steps 1-6) and returns the
// finished SessionRecord plus any captured SpinRecords. It never
// panics on player/machine-supplied invalid input — invalid decisions
// simply end the session (§7's "Invalid bet from player" row); a spin
// error from the machine is the only condition that returns a non-nil
// error, signaling the caller to drop this session per §4.9.
func (c *Controller) Run() (*model.SessionRecord, []model.SpinRecord, error) {
	rec := &model.SessionRecord{
		SessionID:      c.SessionID,
		PlayerID:       c.PlayerID,
		MachineID:      c.MachineID,
		InitialBalance: c.Player.Balance(),
		TotalBet:       decimal.Zero,
		TotalWin:       decimal.Zero,
		TotalProfit:    decimal.Zero,
		MaxWin:         decimal.Zero,
	}

	balance := c.Player.Balance()
	var spins []model.SpinRecord
	var recent []model.SpinRecord
	var logicalElapsed time.Duration
	var wallStart = time.Now()
	consecutiveLoss := 0
	inFreeSpins := false
	freeSpinsLeft := 0

	for {
		if c.Caps.MaxSpins > 0 && rec.TotalSpins >= c.Caps.MaxSpins {
			break
		}
		if c.Caps.MaxWallDuration > 0 && time.Since(wallStart) >= c.Caps.MaxWallDuration {
			break
		}
		if c.Caps.MaxLogicalTime > 0 && logicalElapsed >= c.Caps.MaxLogicalTime {
			break
		}

		obs := player.Observation{
			Balance:         balance,
			RecentSpins:     recent,
			TotalBet:        rec.TotalBet,
			TotalWin:        rec.TotalWin,
			TotalProfit:     rec.TotalProfit,
			SpinsPlayed:     rec.TotalSpins,
			AvailableBets:   c.Bets.Affordable(c.Player.Currency(), balance),
			InFreeSpins:     inFreeSpins,
			FreeSpinsLeft:   freeSpinsLeft,
			ConsecutiveLoss: consecutiveLoss,
		}
		decision := c.Player.Decide(obs)

		if !decision.Continue {
			break
		}
		if decision.Bet.IsNegative() || decision.Bet.IsZero() {
			break
		}
		if !c.Bets.IsValidBet(c.Player.Currency(), decision.Bet, balance) {
			break
		}

		balance = balance.Sub(decision.Bet)
		result, err := c.Machine.Spin(decision.Bet)
		if err != nil {
			return nil, nil, err
		}
		balance = balance.Add(result.WinAmount)
		profit := result.WinAmount.Sub(decision.Bet)

		rec.TotalSpins++
		rec.TotalBet = rec.TotalBet.Add(decision.Bet)
		rec.TotalWin = rec.TotalWin.Add(result.WinAmount)
		rec.TotalProfit = rec.TotalProfit.Add(profit)
		if result.WinAmount.GreaterThan(rec.MaxWin) {
			rec.MaxWin = result.WinAmount
		}
		if result.TriggerFreeSpins {
			rec.FreeSpinsTriggered++
		}
		if result.InFreeSpins {
			rec.FreeSpinsPlayed++
		}
		if profit.IsNegative() {
			consecutiveLoss++
		} else {
			consecutiveLoss = 0
		}
		if consecutiveLoss > rec.MaxLossStreak {
			rec.MaxLossStreak = consecutiveLoss
		}
		inFreeSpins = result.InFreeSpins
		freeSpinsLeft = result.FreeSpinsRemaining

		spin := model.SpinRecord{
			SessionID:          c.SessionID,
			SpinNumber:         rec.TotalSpins,
			Bet:                decision.Bet,
			Win:                result.WinAmount,
			Profit:             profit,
			TriggerFreeSpins:   result.TriggerFreeSpins,
			FreeSpinsRemaining: result.FreeSpinsRemaining,
			InFreeSpins:        result.InFreeSpins,
			Timestamp:          time.Now(),
			Grid:               result.Grid,
		}
		recent = append(recent, spin)
		if len(recent) > 10 {
			recent = recent[len(recent)-10:]
		}
		if c.RecordRaw {
			spins = append(spins, spin)
		}

		logicalElapsed += decision.Delay
	}

	rec.FinalBalance = balance
	rec.Duration = time.Since(wallStart)
	rec.ComputeRTP()
	return rec, spins, nil
}
