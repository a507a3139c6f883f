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

package player

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/slotmc/distribution"
	"github.com/zintix-labs/slotmc/model"
	"github.com/zintix-labs/slotmc/rng"
)

// RandomConfig holds the random profile's tunables, read from
// PlayerProfile.Config by the config loader.
type RandomConfig struct {
	MinDelay             time.Duration   `mapstructure:"min_delay"`
	MaxDelay             time.Duration   `mapstructure:"max_delay"`
	EndProbability       float64         `mapstructure:"end_probability"` // per-spin chance to voluntarily stop
	MaxConsecutiveLosses int             `mapstructure:"max_consecutive_losses"` // 0 = unbounded
	SessionBudget        decimal.Decimal `mapstructure:"session_budget"`
}

// Random chooses uniformly among affordable bets, a uniform think-time
// delay, and terminates on configured probability, consecutive-loss
// threshold, budget exhaustion, or balance depletion — per §4.5.
type Random struct {
	profile model.PlayerProfile
	cfg     RandomConfig
	core    *rng.Core

	balance     decimal.Decimal
	lossStreak  int
	initialBank decimal.Decimal
}

func NewRandom(profile model.PlayerProfile, cfg RandomConfig, core *rng.Core) *Random {
	r := &Random{profile: profile, cfg: cfg, core: core}
	r.Reset()
	return r
}

func (r *Random) Reset() {
	v := distribution.Sample(r.profile.Balance, r.core.Uint64)
	r.balance = decimal.NewFromFloat(v)
	r.initialBank = r.balance
	r.lossStreak = 0
}

func (r *Random) Balance() decimal.Decimal { return r.balance }
func (r *Random) Currency() string         { return r.profile.Currency }

// SetCore rebinds the player to a new RNG stream, called by the
// engine after every borrow from the instance pool so a pooled player never continues
// drawing from a prior session's stream.
func (r *Random) SetCore(core *rng.Core) { r.core = core }

func (r *Random) Decide(obs Observation) Decision {
	r.balance = obs.Balance
	r.lossStreak = obs.ConsecutiveLoss

	if len(obs.AvailableBets) == 0 {
		return Decision{Continue: false}
	}
	if !r.cfg.SessionBudget.IsZero() {
		loss := r.initialBank.Sub(obs.Balance)
		if loss.GreaterThanOrEqual(r.cfg.SessionBudget) {
			return Decision{Continue: false}
		}
	}
	if r.cfg.MaxConsecutiveLosses > 0 && obs.ConsecutiveLoss >= r.cfg.MaxConsecutiveLosses {
		return Decision{Continue: false}
	}
	if r.cfg.EndProbability > 0 && r.core.Float64() < r.cfg.EndProbability {
		return Decision{Continue: false}
	}

	bet := obs.AvailableBets[r.core.IntN(len(obs.AvailableBets))]
	delay := r.randomDelay()
	return Decision{Bet: bet, Delay: delay, Continue: true}
}

func (r *Random) randomDelay() time.Duration {
	lo, hi := r.cfg.MinDelay, r.cfg.MaxDelay
	if hi <= lo {
		return lo
	}
	span := int64(hi - lo)
	return lo + time.Duration(r.core.IntN(int(span)))
}

var _ Player = (*Random)(nil)
