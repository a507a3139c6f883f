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

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionRecord is mutated only by its owning session controller and
// published immutably to the sink at session end. Every decimal field
// carries six-decimal fixed-point semantics on output (see sink/csv.go).
type SessionRecord struct {
	SessionID          string
	PlayerID           string
	MachineID          string
	TotalSpins         int
	TotalBet           decimal.Decimal
	TotalWin           decimal.Decimal
	TotalProfit        decimal.Decimal
	InitialBalance     decimal.Decimal
	FinalBalance       decimal.Decimal
	Duration           time.Duration
	FreeSpinsTriggered int
	FreeSpinsPlayed    int
	MaxWin             decimal.Decimal
	MaxLossStreak      int
	RTP                float64
}

// ComputeRTP sets RTP = TotalWin/TotalBet, or 0 when nothing was
// wagered, per §3's definition.
func (s *SessionRecord) ComputeRTP() {
	if s.TotalBet.IsZero() {
		s.RTP = 0
		return
	}
	ratio, _ := s.TotalWin.Div(s.TotalBet).Float64()
	s.RTP = ratio
}

// SpinRecord is the optional per-spin tuple, only materialized when
// raw recording is enabled.
type SpinRecord struct {
	SessionID          string
	SpinNumber         int
	Bet                decimal.Decimal
	Win                decimal.Decimal
	Profit             decimal.Decimal
	TriggerFreeSpins   bool
	FreeSpinsRemaining int
	InFreeSpins        bool
	Timestamp          time.Time
	Grid               []Symbol
}
