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

package payline

import (
	"testing"

	"github.com/zintix-labs/slotmc/model"
)

func newEval(t *testing.T, rows [][]int, symbols model.SymbolSet) *Evaluator {
	t.Helper()
	pt := &model.Paytable{Rows: rows}
	if err := pt.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return NewEvaluator(symbols, pt)
}

// Scenario 1: trivial win, AAAAA, paytable {"A":[1,2,5]}.
func TestEvaluateLineTrivialWin(t *testing.T) {
	const A model.Symbol = 0
	symbols := model.SymbolSet{Normal: []model.Symbol{A}}
	e := newEval(t, [][]int{{1, 2, 5}}, symbols)
	grid := []model.Symbol{A, A, A, A, A}
	line := model.Payline{0, 1, 2, 3, 4}
	lr := e.EvaluateLine(grid, line)
	if lr.RunLen != 5 || lr.Payout != 5 {
		t.Fatalf("got runLen=%d payout=%d, want 5,5", lr.RunLen, lr.Payout)
	}
}

// Scenario 2: no-pay spin, ABABA.
func TestEvaluateLineNoPay(t *testing.T) {
	const A, B model.Symbol = 0, 1
	symbols := model.SymbolSet{Normal: []model.Symbol{A, B}}
	e := newEval(t, [][]int{{1, 2, 5}, {1, 2, 5}}, symbols)
	grid := []model.Symbol{A, B, A, B, A}
	line := model.Payline{0, 1, 2, 3, 4}
	lr := e.EvaluateLine(grid, line)
	if lr.Payout != 0 {
		t.Fatalf("payout = %d, want 0", lr.Payout)
	}
}

// Scenario 3: wild substitution, W,A,A,A,X -> anchor=A run=4 payout=2.
func TestEvaluateLineWildSubstitution(t *testing.T) {
	const W, A, X model.Symbol = 0, 1, 2
	symbols := model.SymbolSet{Normal: []model.Symbol{A}, Wild: []model.Symbol{W}}
	e := newEval(t, [][]int{{1, 2, 5}}, symbols)
	grid := []model.Symbol{W, A, A, A, X}
	line := model.Payline{0, 1, 2, 3, 4}
	lr := e.EvaluateLine(grid, line)
	if lr.RunLen != 4 || lr.Payout != 2 {
		t.Fatalf("got runLen=%d payout=%d, want 4,2", lr.RunLen, lr.Payout)
	}
}

// Boundary: leftmost is wild and no non-wild symbol exists at all ->
// pays the wild row if defined, else 0.
func TestEvaluateLineAllWildNoRow(t *testing.T) {
	const W model.Symbol = 0
	symbols := model.SymbolSet{Wild: []model.Symbol{W}} // no Normal entries at all
	e := newEval(t, [][]int{{1, 2, 5}}, symbols)
	grid := []model.Symbol{W, W, W, W, W}
	line := model.Payline{0, 1, 2, 3, 4}
	lr := e.EvaluateLine(grid, line)
	if lr.Payout != 0 {
		t.Fatalf("payout = %d, want 0 (no wild payout row)", lr.Payout)
	}
	if !lr.IsWild || lr.RunLen != 5 {
		t.Fatalf("expected all-wild run of 5, got isWild=%v runLen=%d", lr.IsWild, lr.RunLen)
	}
}

func TestEvaluateLineAllWildWithRow(t *testing.T) {
	const W model.Symbol = 0
	symbols := model.SymbolSet{Normal: []model.Symbol{W}, Wild: []model.Symbol{W}}
	e := newEval(t, [][]int{{1, 2, 5}}, symbols)
	grid := []model.Symbol{W, W, W, W, W}
	line := model.Payline{0, 1, 2, 3, 4}
	lr := e.EvaluateLine(grid, line)
	if lr.Payout != 5 {
		t.Fatalf("payout = %d, want 5 (wild has its own row)", lr.Payout)
	}
}

// Boundary: paytable row length exactly 3 must not crash on a 5-run.
func TestEvaluateLineClampsToLastEntry(t *testing.T) {
	const A model.Symbol = 0
	symbols := model.SymbolSet{Normal: []model.Symbol{A}}
	e := newEval(t, [][]int{{1, 2, 5}}, symbols)
	grid := []model.Symbol{A, A, A, A, A}
	line := model.Payline{0, 1, 2, 3, 4}
	lr := e.EvaluateLine(grid, line)
	if lr.Payout != 5 {
		t.Fatalf("payout = %d, want 5 (clamped to last row entry)", lr.Payout)
	}
}

func TestScatterTriggerThreeColumns(t *testing.T) {
	const scatter model.Symbol = 9
	// 5 reels x 3 rows, row-major: index = reel*3+row
	grid := make([]model.Symbol, 15)
	grid[0*3+0] = scatter
	grid[2*3+1] = scatter
	grid[4*3+2] = scatter
	ok, cols := ScatterTrigger(grid, scatter, 5, 3, 3)
	if !ok {
		t.Fatal("expected trigger on 3 distinct columns")
	}
	if len(cols) != 3 {
		t.Fatalf("cols = %v, want 3 entries", cols)
	}
}

func TestScatterTriggerTwoColumnsNoTrigger(t *testing.T) {
	const scatter model.Symbol = 9
	grid := make([]model.Symbol, 15)
	grid[0*3+0] = scatter
	grid[2*3+1] = scatter
	ok, _ := ScatterTrigger(grid, scatter, 5, 3, 3)
	if ok {
		t.Fatal("expected no trigger on only 2 distinct columns")
	}
}
