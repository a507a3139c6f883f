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

// Package payline evaluates a spin grid against a machine's paylines.
// The run-detection contract is the hot path of the whole simulator —
// every spin in every session walks it once per active line — so it
// is written the way the teacher's ScreenCalculator hot path is:
// bitmask membership tests instead of set lookups, and short
// left-to-right scans over each line's symbols.
package payline

import "github.com/zintix-labs/slotmc/model"

// symbolMask turns a small symbol universe into a uint64 bitmask so
// membership tests are a shift-and-AND instead of a slice scan. The
// simulator's symbol id space is expected to stay well under 64
// distinct values per machine, matching the teacher's wildMask/paidMask
// convention in calc_by_line.go.
func symbolMask(syms []model.Symbol) uint64 {
	var mask uint64
	for _, s := range syms {
		if s >= 0 && s < 64 {
			mask |= 1 << uint(s)
		}
	}
	return mask
}

// Evaluator precomputes the bitmasks and paytable a spin needs, so a
// session's hot loop does not rebuild them on every spin.
type Evaluator struct {
	Symbols  model.SymbolSet
	Paytable *model.Paytable
	wildMask uint64
}

func NewEvaluator(symbols model.SymbolSet, pt *model.Paytable) *Evaluator {
	return &Evaluator{
		Symbols:  symbols,
		Paytable: pt,
		wildMask: symbolMask(symbols.Wild),
	}
}

func (e *Evaluator) isWild(s model.Symbol) bool {
	if s < 0 || s >= 64 {
		return e.Symbols.IsWild(s)
	}
	return e.wildMask&(1<<uint(s)) != 0
}

// LineResult is one payline's outcome: the symbol paid, run length,
// and the multiplier owed (before bet scaling).
type LineResult struct {
	Symbol  model.Symbol
	RunLen  int
	Payout  int // multiplier units, caller scales by bet
	IsWild  bool
	HitCols []int // grid indices that contributed to the win
}

// EvaluateLine implements §4.2's left-anchored run contract exactly:
//   - anchor = first symbol not in the wild set, scanning left to right;
//     if none exists the run is entirely wild.
//   - starting from index 0, the run extends while the symbol equals
//     anchor or is wild; the first symbol that is neither terminates it.
//   - an all-wild run pays the wild symbol's own paytable row if one
//     exists, otherwise it pays nothing.
func (e *Evaluator) EvaluateLine(grid []model.Symbol, line model.Payline) LineResult {
	n := len(line)
	if n == 0 {
		return LineResult{}
	}
	seq := make([]model.Symbol, n)
	for i, idx := range line {
		seq[i] = grid[idx]
	}

	anchor := model.Symbol(-1)
	anchorIsWild := true
	for _, s := range seq {
		if !e.isWild(s) {
			anchor = s
			anchorIsWild = false
			break
		}
	}
	if anchorIsWild {
		anchor = seq[0]
	}

	run := 0
	for _, s := range seq {
		if s == anchor || e.isWild(s) {
			run++
			continue
		}
		break
	}

	symIdx := e.Symbols.IndexOfNormal(anchor)
	payout := 0
	if run >= 3 {
		payout = e.Paytable.Payout(symIdx, run)
	}

	hit := line[:run]
	hitCols := make([]int, len(hit))
	copy(hitCols, hit)

	return LineResult{
		Symbol:  anchor,
		RunLen:  run,
		Payout:  payout,
		IsWild:  anchorIsWild,
		HitCols: hitCols,
	}
}

// EvaluateSpin scores the first activeLines paylines and returns the
// total multiplier owed plus each line's detail (for spin-record
// diagnostics; callers that don't need detail can ignore it).
func (e *Evaluator) EvaluateSpin(grid []model.Symbol, lines []model.Payline, activeLines int) (int, []LineResult) {
	if activeLines > len(lines) {
		activeLines = len(lines)
	}
	total := 0
	results := make([]LineResult, activeLines)
	for i := 0; i < activeLines; i++ {
		lr := e.EvaluateLine(grid, lines[i])
		results[i] = lr
		total += lr.Payout
	}
	return total, results
}

// ScatterTrigger reports whether the scatter symbol appears on at
// least minCols distinct reel columns of a row-major grid, and returns
// the columns it was found on. windowSize is the number of rows per
// reel column, needed to map a flat index back to its column.
func ScatterTrigger(grid []model.Symbol, scatter model.Symbol, numReels, windowSize, minCols int) (bool, []int) {
	var colMask uint64
	cols := make([]int, 0, numReels)
	for reel := 0; reel < numReels; reel++ {
		found := false
		for row := 0; row < windowSize; row++ {
			if grid[reel*windowSize+row] == scatter {
				found = true
				break
			}
		}
		if found && colMask&(1<<uint(reel)) == 0 {
			colMask |= 1 << uint(reel)
			cols = append(cols, reel)
		}
	}
	return len(cols) >= minCols, cols
}
