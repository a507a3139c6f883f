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
	"sort"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/slotmc/errs"
)

// BetTable lists, per currency code, the admissible bet amounts. A bet
// is valid iff it is a member of this list and does not exceed the
// current balance. Amounts use decimal.Decimal rather than float64 so
// membership comparisons never suffer binary-float rounding drift.
type BetTable struct {
	ByCurrency map[string][]decimal.Decimal
}

func (b BetTable) validate() error {
	if len(b.ByCurrency) == 0 {
		return errs.ErrConfigLoad("bet table is empty")
	}
	for cur, bets := range b.ByCurrency {
		if len(bets) == 0 {
			return errs.ErrConfigLoad("bet table has no amounts for currency " + cur)
		}
	}
	return nil
}

// Bets returns the admissible bet list for currency, sorted ascending.
func (b BetTable) Bets(currency string) []decimal.Decimal {
	bets := b.ByCurrency[currency]
	out := make([]decimal.Decimal, len(bets))
	copy(out, bets)
	sort.Slice(out, func(i, j int) bool { return out[i].LessThan(out[j]) })
	return out
}

// Affordable returns the subset of Bets(currency) that does not exceed
// balance, still ascending.
func (b BetTable) Affordable(currency string, balance decimal.Decimal) []decimal.Decimal {
	all := b.Bets(currency)
	out := all[:0:0]
	for _, amt := range all {
		if amt.LessThanOrEqual(balance) {
			out = append(out, amt)
		}
	}
	return out
}

// IsValidBet reports whether amount is a listed bet for currency and
// does not exceed balance.
func (b BetTable) IsValidBet(currency string, amount, balance decimal.Decimal) bool {
	if amount.GreaterThan(balance) {
		return false
	}
	for _, bet := range b.ByCurrency[currency] {
		if bet.Equal(amount) {
			return true
		}
	}
	return false
}
