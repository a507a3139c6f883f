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
	"github.com/zintix-labs/slotmc/errs"
	"github.com/zintix-labs/slotmc/model"
	"github.com/zintix-labs/slotmc/oracle"
	"github.com/zintix-labs/slotmc/rng"
	"github.com/zintix-labs/slotmc/sampler"
)

// V1Config holds the model-driven profile's tunables: the first-bet
// weight map (bet amount -> weight, sampled via inverse-CDF per the
// spec's Open-Question resolution) and a slot-type constant folded
// into the bet-predictor feature vector.
type V1Config struct {
	FirstBetWeights map[string]float64 `mapstructure:"first_bet_weights"` // key: decimal string, to survive config round-trips exactly
	SlotTypeConst   float32            `mapstructure:"slot_type_const"`
	MinDelay        time.Duration      `mapstructure:"min_delay"`
	MaxDelay        time.Duration      `mapstructure:"max_delay"`
}

// V1 is the model-driven player: first bet from a categorical
// distribution, subsequent bets and termination from an opaque
// Oracle (§4.5, §7). When the bet prediction errors or is not an
// affordable bet, it falls back to a uniform affordable choice. When
// the termination prediction errors, the error is logged and the
// session continues; the random profile's termination policy is not
// used.
type V1 struct {
	profile model.PlayerProfile
	cfg     V1Config
	core    *rng.Core
	oracle  oracle.Oracle
	logf    func(format string, args ...any)

	balance     decimal.Decimal
	firstBet    *sampler.Categorical[string]
	spinIdx     int
	prevBet     decimal.Decimal
	prevProfit  decimal.Decimal
	prevBalance decimal.Decimal
	lossStreak  int
	winStreak   int
}

func NewV1(profile model.PlayerProfile, cfg V1Config, core *rng.Core, oc oracle.Oracle, logf func(string, ...any)) (*V1, error) {
	items := make([]string, 0, len(cfg.FirstBetWeights))
	weights := make([]float64, 0, len(cfg.FirstBetWeights))
	for k, w := range cfg.FirstBetWeights {
		items = append(items, k)
		weights = append(weights, w)
	}
	cat, err := sampler.NewCategorical(items, weights)
	if err != nil {
		return nil, errs.Wrap(err, "v1 player first-bet weights")
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	v := &V1{profile: profile, cfg: cfg, core: core, oracle: oc, logf: logf, firstBet: cat}
	v.Reset()
	return v, nil
}

func (v *V1) Reset() {
	val := distribution.Sample(v.profile.Balance, v.core.Uint64)
	v.balance = decimal.NewFromFloat(val)
	v.spinIdx = 0
	v.prevBet = decimal.Zero
	v.prevProfit = decimal.Zero
	v.prevBalance = v.balance
	v.lossStreak = 0
	v.winStreak = 0
}

func (v *V1) Balance() decimal.Decimal { return v.balance }
func (v *V1) Currency() string         { return v.profile.Currency }

// SetCore rebinds the player to a new RNG stream; see Random.SetCore.
func (v *V1) SetCore(core *rng.Core) { v.core = core }

func (v *V1) currencyFlag() float32 {
	if v.profile.Currency == "USD" {
		return 1
	}
	return 0
}

func (v *V1) Decide(obs Observation) Decision {
	v.balance = obs.Balance
	v.lossStreak = obs.ConsecutiveLoss
	v.winStreak = consecutiveWins(obs.RecentSpins)
	if len(obs.AvailableBets) == 0 {
		return Decision{Continue: false}
	}

	var bet decimal.Decimal
	if v.spinIdx == 0 {
		bet = v.sampleFirstBet(obs.AvailableBets)
	} else {
		bet = v.predictBet(obs)
	}

	stop := v.predictTerminate(obs)
	v.spinIdx++
	if stop {
		return Decision{Continue: false}
	}
	return Decision{Bet: bet, Delay: v.randomDelay(), Continue: true}
}

// sampleFirstBet draws from the configured categorical weights and
// uses the result if it equals an affordable bet exactly; otherwise
// (unparseable key or no exact match) it falls back to a uniform
// affordable choice.
func (v *V1) sampleFirstBet(available []decimal.Decimal) decimal.Decimal {
	key := v.firstBet.Sample(v.core.Float64())
	target, err := decimal.NewFromString(key)
	if err == nil {
		for _, b := range available {
			if b.Equal(target) {
				return b
			}
		}
	}
	return available[v.core.IntN(len(available))]
}

// consecutiveWins counts trailing spins in recent (most recent last)
// with strictly positive profit, the same "walk backward from the last
// spin, stop at the first non-winning one" rule the loss-streak
// counter in the session controller uses for its own sign.
func consecutiveWins(recent []model.SpinRecord) int {
	n := 0
	for i := len(recent) - 1; i >= 0; i-- {
		if !recent[i].Profit.IsPositive() {
			break
		}
		n++
	}
	return n
}

func (v *V1) predictBet(obs Observation) decimal.Decimal {
	profit, _ := obs.TotalProfit.Float64()
	balance, _ := obs.Balance.Float64()
	prevBet, _ := v.prevBet.Float64()
	prevProfit, _ := v.prevProfit.Float64()
	prevBalance, _ := v.prevBalance.Float64()

	features := [oracle.BetFeatureLen]float32{
		float32(balance), float32(profit),
		float32(v.lossStreak - v.winStreak), v.cfg.SlotTypeConst,
		float32(balance), 0, float32(profit) - float32(prevProfit), 0,
		float32(prevBet), float32(prevBalance), float32(prevProfit), v.currencyFlag(),
	}

	out, err := v.oracle.PredictBet(features)
	if err != nil {
		v.logf("v1 player: oracle predict_bet failed, falling back to random: %v", err)
		return obs.AvailableBets[v.core.IntN(len(obs.AvailableBets))]
	}
	amount := decimal.NewFromFloat(float64(out))
	if amount.IsPositive() {
		for _, b := range obs.AvailableBets {
			if b.Equal(amount) {
				v.prevBet = b
				return b
			}
		}
	}
	fallback := obs.AvailableBets[v.core.IntN(len(obs.AvailableBets))]
	v.prevBet = fallback
	return fallback
}

func (v *V1) predictTerminate(obs Observation) bool {
	profit, _ := obs.TotalProfit.Float64()
	balance, _ := obs.Balance.Float64()
	prevBet, _ := v.prevBet.Float64()
	prevBalance, _ := v.prevBalance.Float64()
	prevProfit, _ := v.prevProfit.Float64()

	features := [oracle.TerminateFeatureLen]float32{
		float32(balance), float32(profit), float32(prevBet),
		float32(v.lossStreak), float32(v.winStreak),
		float32(prevBet), float32(prevBalance), float32(prevProfit),
	}

	stopScore, anomaly, err := v.oracle.PredictTerminate(features)
	v.prevBalance = obs.Balance
	v.prevProfit = obs.TotalProfit
	if err != nil {
		v.logf("v1 player: oracle predict_terminate failed: %v", err)
		return false
	}
	if anomaly > 0.9 {
		return true
	}
	return stopScore >= 0.5
}

func (v *V1) randomDelay() time.Duration {
	lo, hi := v.cfg.MinDelay, v.cfg.MaxDelay
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(v.core.IntN(int(hi-lo)))
}

var _ Player = (*V1)(nil)
