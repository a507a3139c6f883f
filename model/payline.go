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

// Payline is a fixed sequence of flat grid indices, one per reel
// column, naming which visible row of that column contributes to the
// line. Grid layout is row-major: index = reel*windowSize + row (see
// package machine).
type Payline []int

// Paytable maps a normal symbol's index in SymbolSet.Normal to a
// payout-multiplier vector indexed by (run length - 3). Stored flat
// (payFlat/payIdx), CSR-style, mirroring the teacher's
// PayTableFlat/PayTableIndex so a lookup is one slice index instead of
// a map probe on every line evaluated.
type Paytable struct {
	Rows    [][]int // Rows[i] is the payout vector for SymbolSet.Normal[i]
	payFlat []int
	payIdx  []int
	rowLen  int
}

// Build flattens Rows into the CSR layout used by payline.Evaluator. It
// must be called once after Rows is populated (by the config loader).
func (p *Paytable) Build() error {
	if len(p.Rows) == 0 {
		return errs.ErrConfigLoad("paytable has no rows")
	}
	rowLen := len(p.Rows[0])
	if rowLen < 3 {
		return errs.ErrConfigLoad("paytable row shorter than 3")
	}
	flat := make([]int, 0, len(p.Rows)*rowLen)
	idx := make([]int, len(p.Rows))
	for i, row := range p.Rows {
		if len(row) != rowLen {
			return errs.ErrConfigLoad("inconsistent paytable row lengths")
		}
		idx[i] = len(flat)
		flat = append(flat, row...)
	}
	p.payFlat = flat
	p.payIdx = idx
	p.rowLen = rowLen
	return nil
}

// Payout returns the multiplier for symbolIdx paying out with a run of
// runLen matches, clamping runLen to the table's longest defined run.
func (p *Paytable) Payout(symbolIdx, runLen int) int {
	if symbolIdx < 0 || symbolIdx >= len(p.payIdx) {
		return 0
	}
	k := runLen - 3
	if k < 0 {
		return 0
	}
	if k >= p.rowLen {
		k = p.rowLen - 1
	}
	return p.payFlat[p.payIdx[symbolIdx]+k]
}

// MaxPayout is the largest multiplier the table can produce, used by
// property tests to bound a single line's win.
func (p *Paytable) MaxPayout() int {
	max := 0
	for _, v := range p.payFlat {
		if v > max {
			max = v
		}
	}
	return max
}
